package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tresse/internal/hierarchy"
)

func sampleIndex() *hierarchy.Index {
	return hierarchy.Build([]hierarchy.Conversation{
		{ID: "conv-a", Author: "alice", AuthorPubkey: "pk-alice", LastActivity: 100},
		{ID: "conv-b", ParentID: "conv-a", Author: "bob", AuthorPubkey: "pk-bob", LastActivity: 200},
		{ID: "conv-c", ParentID: "conv-b", Author: "carol", AuthorPubkey: "pk-carol", LastActivity: 50},
		{ID: "conv-d", ParentID: "conv-z", Author: "dave", AuthorPubkey: "pk-dave", LastActivity: 300},
	})
}

func TestFromRoots(t *testing.T) {
	dtos := FromRoots(sampleIndex())

	require.Len(t, dtos, 2)
	// Sorted by effective activity descending
	assert.Equal(t, "conv-d", dtos[0].ID)
	assert.Equal(t, "conv-a", dtos[1].ID)

	assert.Equal(t, uint64(200), dtos[1].EffectiveLastActivity)
	assert.Equal(t, 2, dtos[1].DescendantCount)
	assert.Equal(t, 3, dtos[1].AgentCount)
}

func TestFromOutline(t *testing.T) {
	idx := sampleIndex()
	dtos := FromOutline(idx.Outline())

	require.Len(t, dtos, 4)
	assert.Equal(t, "conv-d", dtos[0].ID)
	assert.Equal(t, 0, dtos[0].Depth)
	assert.Equal(t, "conv-b", dtos[2].ID)
	assert.Equal(t, 1, dtos[2].Depth)
}

func TestFromDetail(t *testing.T) {
	idx := sampleIndex()
	c, ok := idx.Get("conv-c")
	require.True(t, ok)

	detail := FromDetail(idx, c)

	assert.Equal(t, "conv-c", detail.ID)
	assert.Equal(t, []string{"conv-b", "conv-a"}, detail.Ancestors)
	assert.Equal(t, uint64(50), detail.Aggregate.EffectiveLastActivity)
	require.NotNil(t, detail.Aggregate.AuthorInfo)
	assert.Equal(t, "pk-carol", detail.Aggregate.AuthorInfo.Pubkey)
}

func TestFromAggregate_ZeroValue(t *testing.T) {
	dto := FromAggregate(hierarchy.Aggregate{})

	assert.Nil(t, dto.AuthorInfo)
	assert.Empty(t, dto.ParticipatingAgentInfos)
	assert.Zero(t, dto.DescendantCount)
}

func TestFromStats(t *testing.T) {
	dto := FromStats(sampleIndex().Stats())

	assert.Equal(t, 4, dto.Conversations)
	assert.Equal(t, 2, dto.Roots)
	assert.Equal(t, 1, dto.Orphans)
	assert.Equal(t, 4, dto.Agents)
	assert.Equal(t, 3, dto.MaxDepth)
}
