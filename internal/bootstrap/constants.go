package bootstrap

import "time"

// Version is overridden at build time with -ldflags "-X ...bootstrap.Version=..."
var Version = "dev"

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLootForge   = "Starting LootForge"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// =============================================================================
// Stats Storage
// =============================================================================

const (
	// DBMaxConnIdleTime closes pooled connections idle for this long
	DBMaxConnIdleTime = 5 * time.Minute

	// DBMaxConnLifetime recycles pooled connections after this long
	DBMaxConnLifetime = time.Hour

	LogMsgStatsBackend = "Stats backend ready"

	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedOpenSQLite    = "failed to open sqlite database"
	ErrMsgFailedMigrate       = "failed to apply migrations"
	ErrMsgUnknownStatsBackend = "unknown stats backend %q"
)

// =============================================================================
// Loot Data
// =============================================================================

const (
	LogMsgLootDataLoaded = "Loot data loaded"
	LogMsgRulesSkipped   = "No loot rules configured"
	LogMsgCatalogSkipped = "No item catalog configured"

	ErrMsgFailedLoadCatalog = "failed to load item catalog"
	ErrMsgFailedLoadRules   = "failed to load loot rules"
	ErrMsgFailedLoadTable   = "failed to load loot table"
)

// Log fields
const (
	LogFieldError       = "error"
	LogFieldBackend     = "backend"
	LogFieldTable       = "table"
	LogFieldPools       = "pools"
	LogFieldItems       = "items"
	LogFieldRules       = "rules"
	LogFieldDuration    = "duration"
	LogFieldEnvironment = "environment"
	LogFieldLogLevel    = "log_level"
	LogFieldLogFormat   = "log_format"
	LogFieldVersion     = "version"
	LogFieldPort        = "port"
	LogFieldWarning     = "warning"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgDBClosed              = "Database connection closed"
	LogMsgTracingShutdownFailed = "Failed to flush traces"
)

// =============================================================================
// Tracing Messages
// =============================================================================

const (
	ErrMsgTracingSetupFailed = "failed to set up tracing"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	JobNameLootReload      = "loot_reload"
	ReloadWorkers          = 1
	ReloadQueueSize        = 1
	LogMsgReloadScheduled  = "Periodic loot data reload scheduled"
	LogFieldReloadInterval = "interval"
)
