package tracing

// Span names.
const (
	SpanChainRun    = "editor.chain.run"
	SpanTransaction = "editor.transaction"
	SpanSave        = "store.save"
)

// Span attribute keys.
const (
	AttrChainCommands = "chain.commands"
	AttrChainLength   = "chain.length"
	AttrChainApplied  = "chain.applied"
	AttrRevision      = "doc.revision"
	AttrDocChanged    = "doc.changed"
	AttrDocID         = "doc.id"
	AttrSelectionKind = "selection.kind"
	AttrSelectionFrom = "selection.from"
	AttrSelectionTo   = "selection.to"
	AttrSteps         = "transaction.steps"
	AttrInserted      = "save.inserted"
	AttrDeleted       = "save.deleted"
)

// Event names.
const (
	EventCommandQueued = "command.queued"
)
