package stats

// Log messages
const (
	LogMsgStatsLoadFailed    = "Failed to load player loot stats"
	LogMsgStatsSaveFailed    = "Failed to save player loot stats"
	LogMsgStatsCreated       = "Created player loot stats"
	LogMsgEventPublishFailed = "Failed to publish stats event"
)

// Log fields
const (
	LogFieldPlayerRef = "player_ref"
	LogFieldError     = "error"
)

// Error context strings
const (
	ErrContextLoadStats   = "load stats for %s"
	ErrContextSaveStats   = "save stats for %s"
	ErrContextDeleteStats = "delete stats for %s"
)
