package profiles

// Repository defines the persistence interface for profile records.
type Repository interface {
	// Save persists a profile, inserting or updating by pubkey.
	Save(p Profile) error

	// FindByPubkey retrieves the profile for a pubkey.
	// Returns ProfileNotFoundError if no record exists.
	FindByPubkey(pubkey string) (Profile, error)

	// ListAll returns every stored profile ordered by pubkey.
	ListAll() ([]Profile, error)

	// Close releases any resources held by the repository.
	Close() error
}
