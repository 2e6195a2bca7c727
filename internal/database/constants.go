package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// SQLite connection settings
const (
	SQLiteDriverName    = "sqlite"
	SQLiteBusyTimeoutMs = 5000
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToOpenSQLite       = "failed to open sqlite database"
	ErrMsgFailedToCreateDataDir    = "failed to create data directory"
	ErrMsgFailedToLoadMigrations   = "failed to load migrations"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToRevertMigration  = "failed to revert migration"
	ErrMsgFailedToReadStatus       = "failed to read migration status"
	ErrMsgUnsupportedDialect       = "unsupported migration dialect %q"
	ErrMsgFailedToEncodeStatsField = "failed to encode stats field %s"
	ErrMsgFailedToDecodeStatsField = "failed to decode stats field %s"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened sqlite database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationReverted               = "Reverted migration"
	LogMsgMigrationsUpToDate              = "Database migrations up to date"
)

// Log fields
const (
	LogFieldPath     = "path"
	LogFieldDialect  = "dialect"
	LogFieldVersion  = "version"
	LogFieldSource   = "source"
	LogFieldDuration = "duration"
)
