package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgPlayerNotFoundError   = "Player not found"
	ErrMsgUnknownRarityError    = "Unknown rarity"
	ErrMsgInvalidMultiDropError = "Invalid multi-drop config"
	ErrMsgInvalidInputError     = "Invalid input"

	ErrMsgReloadFailed      = "Failed to reload loot data"
	ErrMsgStatsUnavailable  = "Stats are not available"
	ErrMsgDifficultyMissing = "Difficulty curve is not configured"
)

// Success messages for API responses
const (
	MsgStatsResetSuccess = "Player stats reset"
	MsgReloadSuccess     = "Loot data reloaded"
)

// Health response values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgDatabaseFailed = "database connection failed"
	HealthMsgNoTable        = "no loot table loaded"
)

// Request limits
const (
	MaxSourceTags     = 32
	MaxTagLength      = 128
	MaxPlayerRefLen   = 128
	MaxMultiDropTotal = 1000
	MaxBuckets        = 64
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgRolled            = "Loot rolled"
	LogMsgMultiDropRolled   = "Multi-drop rolled"
	LogMsgServiceError      = "Request failed"
	LogMsgReloading         = "Reloading loot data"
	LogMsgReloaded          = "Loot data reloaded"
	LogMsgReloadFailed      = "Failed to reload loot data"
	LogMsgDifficultyUpdated = "Difficulty updated"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteBufferFailed = "Failed to write response buffer"
)

// Log fields
const (
	LogFieldError     = "error"
	LogFieldAction    = "action"
	LogFieldPlayerRef = "player_ref"
	LogFieldRarity    = "rarity"
	LogFieldItemID    = "item_id"
	LogFieldStage     = "stage"
	LogFieldResults   = "results"
	LogFieldTarget    = "target"
	LogFieldAlpha     = "alpha"
	LogFieldTable     = "table"
	LogFieldPools     = "pools"
	LogFieldItems     = "items"
)
