package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/tresse/internal/profiles"
)

// upsertProfile inserts a profile row or updates its display name.
const upsertProfile = `INSERT INTO profiles (pubkey, display_name, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(pubkey) DO UPDATE SET
		display_name = excluded.display_name,
		updated_at = excluded.updated_at`

// profileRepository implements profiles.Repository using SQLite.
type profileRepository struct {
	db *sql.DB
}

// newProfileRepository creates a new profileRepository instance.
func newProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{db: db}
}

// Ensure profileRepository implements profiles.Repository.
var _ profiles.Repository = (*profileRepository)(nil)

// Save persists a profile, inserting or updating by pubkey.
func (r *profileRepository) Save(p profiles.Profile) error {
	model := toProfileModel(p)
	_, err := r.db.Exec(upsertProfile, model.Pubkey, model.DisplayName, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// FindByPubkey retrieves the profile for a pubkey.
// Returns ProfileNotFoundError if no matching record exists.
func (r *profileRepository) FindByPubkey(pubkey string) (profiles.Profile, error) {
	row := r.db.QueryRow(`SELECT pubkey, display_name, updated_at FROM profiles WHERE pubkey = ?`, pubkey)
	var model ProfileModel
	err := row.Scan(&model.Pubkey, &model.DisplayName, &model.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, &profiles.ProfileNotFoundError{Pubkey: pubkey}
	}
	if err != nil {
		return profiles.Profile{}, fmt.Errorf("failed to find profile by pubkey: %w", err)
	}
	return model.toDomain(), nil
}

// ListAll returns every stored profile ordered by pubkey.
func (r *profileRepository) ListAll() ([]profiles.Profile, error) {
	rows, err := r.db.Query(`SELECT pubkey, display_name, updated_at FROM profiles ORDER BY pubkey ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []profiles.Profile
	for rows.Next() {
		var model ProfileModel
		if err := rows.Scan(&model.Pubkey, &model.DisplayName, &model.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		out = append(out, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return out, nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *profileRepository) Close() error {
	// No-op: connection is owned by DB struct
	return nil
}
