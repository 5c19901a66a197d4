package testutil

// WithSampleForest adds the standard four-conversation dataset.
//
// Structure:
//
//	conv-a (activity 100)
//	  └── conv-b (activity 200)
//	        └── conv-c (activity 50)
//	conv-d (activity 300, parent conv-z not in the snapshot)
func (b *Builder) WithSampleForest() *Builder {
	return b.
		WithConversation("conv-a", LastActivity(100)).
		WithConversation("conv-b", Parent("conv-a"), LastActivity(200)).
		WithConversation("conv-c", Parent("conv-b"), LastActivity(50)).
		WithConversation("conv-d", Parent("conv-z"), LastActivity(300))
}

// WithDelegationTestData adds a deeper tree where one coordinator delegates
// to several workers.
//
// Structure:
//
//	plan-1 (coordinator)
//	  ├── task-1 (builder)
//	  │     └── subtask-1 (reviewer)
//	  └── task-2 (builder)
//	standalone (coordinator)
func (b *Builder) WithDelegationTestData() *Builder {
	return b.
		WithConversation("plan-1", Author("coordinator"), AuthorPubkey("pk-coordinator"), LastActivity(1000)).
		WithConversation("task-1", Parent("plan-1"), Author("builder"), AuthorPubkey("pk-builder"), LastActivity(1200)).
		WithConversation("task-2", Parent("plan-1"), Author("builder"), AuthorPubkey("pk-builder"), LastActivity(900)).
		WithConversation("subtask-1", Parent("task-1"), Author("reviewer"), AuthorPubkey("pk-reviewer"), LastActivity(1500)).
		WithConversation("standalone", Author("coordinator"), AuthorPubkey("pk-coordinator"), LastActivity(400))
}

// WithSampleProfiles adds display names for the sample forest authors.
func (b *Builder) WithSampleProfiles() *Builder {
	return b.
		WithProfile("pk-conv-a", "alice").
		WithProfile("pk-conv-b", "bob").
		WithProfile("pk-conv-c", "carol").
		WithProfile("pk-conv-d", "dave")
}
