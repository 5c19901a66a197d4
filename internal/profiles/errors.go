package profiles

import "fmt"

// ProfileNotFoundError indicates that no profile is stored for a pubkey.
type ProfileNotFoundError struct {
	Pubkey string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Pubkey)
}
