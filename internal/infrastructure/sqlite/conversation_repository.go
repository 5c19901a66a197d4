package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/tresse/internal/hierarchy"
)

// conversationColumns is the list of columns to select for conversation queries.
const conversationColumns = `id, parent_id, author, author_pubkey, last_activity, created_at, updated_at`

// upsertConversation inserts a row or updates it in place. created_at is
// preserved across updates.
const upsertConversation = `INSERT INTO conversations (id, parent_id, author, author_pubkey, last_activity, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		parent_id = excluded.parent_id,
		author = excluded.author,
		author_pubkey = excluded.author_pubkey,
		last_activity = excluded.last_activity,
		updated_at = excluded.updated_at`

// conversationRepository implements hierarchy.ConversationRepository using SQLite.
type conversationRepository struct {
	db *sql.DB
}

// newConversationRepository creates a new conversationRepository instance.
func newConversationRepository(db *sql.DB) *conversationRepository {
	return &conversationRepository{db: db}
}

// Ensure conversationRepository implements hierarchy.ConversationRepository.
var _ hierarchy.ConversationRepository = (*conversationRepository)(nil)

// scanConversation scans a row into a ConversationModel.
func scanConversation(scanner interface{ Scan(...any) error }) (*ConversationModel, error) {
	var model ConversationModel
	err := scanner.Scan(
		&model.ID, &model.ParentID, &model.Author, &model.AuthorPubkey,
		&model.LastActivity, &model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Save persists a conversation, inserting or updating by ID.
func (r *conversationRepository) Save(c hierarchy.Conversation) error {
	model := toConversationModel(c)
	now := time.Now().Unix()
	_, err := r.db.Exec(upsertConversation,
		model.ID, model.ParentID, model.Author, model.AuthorPubkey, model.LastActivity, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// SaveAll persists a batch of conversations in a single transaction.
func (r *conversationRepository) SaveAll(conversations []hierarchy.Conversation) error {
	if len(conversations) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(upsertConversation)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, c := range conversations {
		model := toConversationModel(c)
		if _, err := stmt.Exec(model.ID, model.ParentID, model.Author, model.AuthorPubkey, model.LastActivity, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save conversation %s: %w", model.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a conversation by its ID.
// Returns ConversationNotFoundError if no matching record exists.
func (r *conversationRepository) FindByID(id string) (hierarchy.Conversation, error) {
	row := r.db.QueryRow(`SELECT `+conversationColumns+` FROM conversations WHERE id = ?`, id)
	model, err := scanConversation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hierarchy.Conversation{}, &hierarchy.ConversationNotFoundError{ID: id}
	}
	if err != nil {
		return hierarchy.Conversation{}, fmt.Errorf("failed to find conversation by id: %w", err)
	}
	return model.toDomain(), nil
}

// ListAll returns every stored conversation ordered by last activity
// descending, ties by ID ascending.
func (r *conversationRepository) ListAll() ([]hierarchy.Conversation, error) {
	rows, err := r.db.Query(`SELECT ` + conversationColumns + ` FROM conversations ORDER BY last_activity DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var conversations []hierarchy.Conversation
	for rows.Next() {
		model, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		conversations = append(conversations, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}
	return conversations, nil
}

// Delete removes a conversation by ID.
// Returns ConversationNotFoundError if no matching record exists.
func (r *conversationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &hierarchy.ConversationNotFoundError{ID: id}
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *conversationRepository) Close() error {
	// No-op: connection is owned by DB struct
	return nil
}
