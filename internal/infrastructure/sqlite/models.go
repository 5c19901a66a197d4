package sqlite

import (
	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/profiles"
)

// ConversationModel represents the database row for the conversations table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type ConversationModel struct {
	ID           string
	ParentID     *string // nullable
	Author       string
	AuthorPubkey string
	LastActivity int64 // Unix timestamp
	CreatedAt    int64 // Unix timestamp
	UpdatedAt    int64 // Unix timestamp
}

// toConversationModel converts a domain conversation to a database model.
func toConversationModel(c hierarchy.Conversation) *ConversationModel {
	m := &ConversationModel{
		ID:           c.ID,
		Author:       c.Author,
		AuthorPubkey: c.AuthorPubkey,
		LastActivity: int64(c.LastActivity), //nolint:gosec // G115: activity timestamps fit in int64
	}
	if c.ParentID != "" {
		parentID := c.ParentID
		m.ParentID = &parentID
	}
	return m
}

// toDomain converts a database model to a domain conversation.
func (m *ConversationModel) toDomain() hierarchy.Conversation {
	c := hierarchy.Conversation{
		ID:           m.ID,
		Author:       m.Author,
		AuthorPubkey: m.AuthorPubkey,
		LastActivity: uint64(m.LastActivity), //nolint:gosec // G115: the schema forbids negative activity
	}
	if m.ParentID != nil {
		c.ParentID = *m.ParentID
	}
	return c
}

// ProfileModel represents the database row for the profiles table.
type ProfileModel struct {
	Pubkey      string
	DisplayName string
	UpdatedAt   int64 // Unix timestamp
}

func toProfileModel(p profiles.Profile) *ProfileModel {
	return &ProfileModel{Pubkey: p.Pubkey, DisplayName: p.DisplayName}
}

func (m *ProfileModel) toDomain() profiles.Profile {
	return profiles.Profile{Pubkey: m.Pubkey, DisplayName: m.DisplayName}
}
