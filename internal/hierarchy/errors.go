package hierarchy

import "fmt"

// ConversationNotFoundError indicates a lookup for a conversation ID with no
// stored record. Index queries never return it; storage layers do.
type ConversationNotFoundError struct {
	ID string
}

func (e *ConversationNotFoundError) Error() string {
	return fmt.Sprintf("conversation %q not found", e.ID)
}
