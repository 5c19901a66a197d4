package hierarchy

// ConversationRepository defines the persistence interface for conversation
// records. Implementations supply the flat snapshot that [Build] turns into
// an Index.
type ConversationRepository interface {
	// Save persists a conversation, inserting or updating by ID.
	Save(c Conversation) error

	// SaveAll persists a batch of conversations in a single transaction.
	SaveAll(conversations []Conversation) error

	// FindByID retrieves a conversation by its ID.
	// Returns ConversationNotFoundError if no record exists.
	FindByID(id string) (Conversation, error)

	// ListAll returns every stored conversation ordered by last activity
	// descending, ties by ID ascending.
	ListAll() ([]Conversation, error)

	// Delete removes a conversation by ID.
	// Returns ConversationNotFoundError if no record exists.
	Delete(id string) error

	// Close releases any resources held by the repository.
	Close() error
}
