package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/infrastructure/sqlite"
	"github.com/zjrosen/tresse/internal/profiles"
)

// Builder accumulates test data and saves it through the repositories.
type Builder struct {
	t             *testing.T
	db            *sqlite.DB
	conversations []conversationData
	profiles      []profiles.Profile
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sqlite.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithConversation adds a conversation with optional configuration.
func (b *Builder) WithConversation(id string, opts ...ConversationOption) *Builder {
	conv := defaultConversation(id)
	for _, opt := range opts {
		opt(&conv)
	}
	b.conversations = append(b.conversations, conv)
	return b
}

// WithProfile adds a pubkey-to-name profile.
func (b *Builder) WithProfile(pubkey, displayName string) *Builder {
	b.profiles = append(b.profiles, profiles.Profile{Pubkey: pubkey, DisplayName: displayName})
	return b
}

// Build saves all accumulated data.
func (b *Builder) Build() {
	b.t.Helper()

	records := make([]hierarchy.Conversation, 0, len(b.conversations))
	for _, c := range b.conversations {
		records = append(records, hierarchy.Conversation{
			ID:           c.id,
			ParentID:     c.parentID,
			Author:       c.author,
			AuthorPubkey: c.authorPubkey,
			LastActivity: c.lastActivity,
		})
	}
	require.NoError(b.t, b.db.ConversationRepository().SaveAll(records))

	for _, p := range b.profiles {
		require.NoError(b.t, b.db.ProfileRepository().Save(p))
	}
}
