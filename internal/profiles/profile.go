// Package profiles maps agent pubkeys to display names.
//
// Conversation snapshots carry raw author pubkeys; profile records supply
// the human-readable names shown in their place. Resolution falls back to a
// truncated pubkey when no profile is stored.
package profiles

// Profile is one pubkey-to-name mapping.
type Profile struct {
	Pubkey      string
	DisplayName string
}
