// Package hierarchy builds an immutable, queryable tree index over a flat
// snapshot of conversation records.
//
// Records arrive as an unordered list in which each conversation may name a
// parent by ID. Build assembles parent-to-children buckets, promotes records
// with unresolvable parents to roots, and precomputes per-conversation
// aggregates (effective activity, participant sets, descendant counts) with
// cycle-safe traversal. The resulting Index is immutable and safe for
// concurrent readers; rebuilding on a new snapshot produces an independent
// Index that callers swap in atomically.
package hierarchy

// Conversation is the atomic unit the index operates on: one thread node
// with optional parent linkage. The index copies records by value and never
// mutates them.
type Conversation struct {
	// ID uniquely identifies the conversation within a snapshot.
	ID string

	// ParentID names the parent conversation, or is empty for top-level
	// conversations. It is a back-reference only and may dangle.
	ParentID string

	// Author is the display name of the conversation's author.
	Author string

	// AuthorPubkey is the author's identity key. Display names may collide;
	// pubkeys only collide when they are the same agent.
	AuthorPubkey string

	// LastActivity is the conversation's own most recent activity in
	// seconds since epoch. Never an aggregate.
	LastActivity uint64
}

// AgentInfo pairs an agent's display name with its identity key.
type AgentInfo struct {
	Name   string
	Pubkey string
}

// Aggregate holds the derived statistics for one conversation and its
// cycle-free descendants. The zero value is the defined result for IDs not
// present in the snapshot.
//
// Slices on a stored Aggregate are shared with the index; callers must
// treat them as read-only.
type Aggregate struct {
	// EffectiveLastActivity is the maximum LastActivity over the
	// conversation and all of its descendants.
	EffectiveLastActivity uint64

	// ActivitySpan is max minus min LastActivity over the conversation and
	// its descendants. Zero for leaves.
	ActivitySpan uint64

	// ParticipatingAgents lists the sorted, de-duplicated author display
	// names across the conversation and its descendants.
	ParticipatingAgents []string

	// ParticipatingAgentInfos is DelegationAgentInfos plus the
	// conversation's own info, sorted by name.
	ParticipatingAgentInfos []AgentInfo

	// AuthorInfo is the conversation's own (name, pubkey).
	AuthorInfo *AgentInfo

	// DelegationAgentInfos lists descendants' infos de-duplicated by
	// pubkey, excluding any pubkey equal to the conversation's own, sorted
	// by name.
	DelegationAgentInfos []AgentInfo

	// DescendantCount counts distinct cycle-free descendants.
	DescendantCount int
}
