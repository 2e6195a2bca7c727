package config

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// Stats backends
const (
	StatsBackendMemory   = "memory"
	StatsBackendPostgres = "postgres"
	StatsBackendSQLite   = "sqlite"
)

// Default data file paths, relative to the project root
const (
	ConfigPathLootTable = "configs/loot_tables/default.json"
	ConfigPathItems     = "configs/items.json"
	ConfigPathLootRules = "configs/loot_rules.yaml"
)

// Example values that must not reach production
const (
	ExampleDBPassword  = "change_this_secure_password"
	ExampleAdminAPIKey = "generate_with_openssl_rand_hex_32"
)
