package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Event types
const (
	LootDropped         Type = "loot.dropped"
	MultiDropCompleted  Type = "loot.multidrop.completed"
	UniquenessExhausted Type = "loot.multidrop.uniqueness_exhausted"
	TableReloaded       Type = "loot.table.reloaded"
	StatsReset          Type = "stats.reset"
)

// LogMsgHandlerErrorFormat formats the error returned when handlers fail.
const LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
