package tracing

// Span attribute keys shared across the index pipeline.
const (
	// Rebuild attributes
	AttrBuildID           = "build.id"
	AttrConversationCount = "conversation.count"
	AttrRootCount         = "root.count"

	// Store attributes
	AttrDBPath = "db.path"

	// Ingest attributes
	AttrFilePath    = "file.path"
	AttrRecordCount = "record.count"
)

// Span names for the rebuild pipeline.
const (
	SpanRebuild  = "refresh.rebuild"
	SpanSnapshot = "store.snapshot"
	SpanBuild    = "hierarchy.build"
	SpanImport   = "ingest.import"
)
