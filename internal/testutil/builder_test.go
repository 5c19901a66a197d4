package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tresse/internal/hierarchy"
)

func TestBuilder_WithConversation(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithConversation("conv-1").
		Build()

	var count int
	err := db.Connection().QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	got, err := db.ConversationRepository().FindByID("conv-1")
	require.NoError(t, err)
	require.Equal(t, "conv-1", got.ID)
	require.Equal(t, "", got.ParentID)
	require.Equal(t, "agent-conv-1", got.Author) // default author derives from the ID
	require.Equal(t, "pk-conv-1", got.AuthorPubkey)
	require.Equal(t, uint64(0), got.LastActivity)
}

func TestBuilder_WithConversation_AllOptions(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithConversation("conv-1",
			Parent("conv-0"),
			Author("alice"),
			AuthorPubkey("pk-alice"),
			LastActivity(1234),
		).
		Build()

	got, err := db.ConversationRepository().FindByID("conv-1")
	require.NoError(t, err)
	require.Equal(t, hierarchy.Conversation{
		ID:           "conv-1",
		ParentID:     "conv-0",
		Author:       "alice",
		AuthorPubkey: "pk-alice",
		LastActivity: 1234,
	}, got)
}

func TestBuilder_WithProfile(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithProfile("pk-alice", "alice").
		Build()

	got, err := db.ProfileRepository().FindByPubkey("pk-alice")
	require.NoError(t, err)
	require.Equal(t, "alice", got.DisplayName)
}

func TestBuilder_ParentDoesNotRequireExistingRow(t *testing.T) {
	db := NewTestDB(t)

	// Orphans are a legitimate snapshot state, so the parent column carries
	// no foreign key.
	NewBuilder(t, db).
		WithConversation("conv-1", Parent("conv-missing")).
		Build()

	got, err := db.ConversationRepository().FindByID("conv-1")
	require.NoError(t, err)
	require.Equal(t, "conv-missing", got.ParentID)
}

func TestBuilder_ChainMethods(t *testing.T) {
	db := NewTestDB(t)

	// Verify method chaining returns *Builder and works correctly
	builder := NewBuilder(t, db)
	result := builder.
		WithConversation("conv-1").
		WithConversation("conv-2").
		WithConversation("conv-3").
		WithProfile("pk-conv-1", "alice")

	require.Same(t, builder, result, "chained methods should return same builder")

	result.Build()

	var count int
	err := db.Connection().QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	err = db.Connection().QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestBuilder_EmptyBuildIsANoOp(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).Build()

	var count int
	err := db.Connection().QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
