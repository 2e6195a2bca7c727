package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration
type Config struct {
	EnvSchemaVersion string `env:"ENV_SCHEMA_VERSION" envDefault:"1.0"`
	Environment      string `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev test staging production"`

	Port            int           `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	AdminAPIKey     string        `env:"ADMIN_API_KEY"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// OTLP HTTP endpoint, e.g. http://localhost:4318. Empty disables tracing.
	OtelEndpoint string `env:"OTEL_ENDPOINT" validate:"omitempty,url"`

	LootTablePath string `env:"LOOT_TABLE_PATH" envDefault:"configs/loot_tables/default.json" validate:"required"`
	CatalogPath   string `env:"ITEM_CATALOG_PATH" envDefault:"configs/items.json"`
	RulesPath     string `env:"LOOT_RULES_PATH" envDefault:"configs/loot_rules.yaml"`

	CatalogCacheSize int           `env:"CATALOG_CACHE_SIZE" envDefault:"256" validate:"gte=0"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m" validate:"gte=0"`

	// Re-read the loot data files on this interval; 0 disables
	ReloadInterval time.Duration `env:"LOOT_RELOAD_INTERVAL" envDefault:"0s" validate:"gte=0"`

	StatsBackend    string `env:"STATS_BACKEND" envDefault:"memory" validate:"oneof=memory postgres sqlite"`
	StatsAutoCreate bool   `env:"STATS_AUTO_CREATE" envDefault:"true"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"data/lootforge.db" validate:"required_if=StatsBackend sqlite"`

	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"lootforge"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10" validate:"gt=0"`

	Pity       PityConfig       `envPrefix:"PITY_"`
	Difficulty DifficultyConfig `envPrefix:"DIFFICULTY_"`
}

// PityConfig mirrors the roll engine's pity tuning
type PityConfig struct {
	SoftStart          int     `env:"SOFT_START" envDefault:"20" validate:"gte=0"`
	SoftSlope          float64 `env:"SOFT_SLOPE" envDefault:"0.005" validate:"gte=0"`
	HardDrops          int     `env:"HARD_DROPS" envDefault:"70" validate:"gte=0"`
	MaxChance          float64 `env:"MAX_CHANCE" envDefault:"0.25" validate:"gte=0,lte=1"`
	StarvedBonus       float64 `env:"STARVED_BONUS" envDefault:"0.02" validate:"gte=0"`
	StarvedWindowCount int     `env:"STARVED_WINDOW_COUNT" envDefault:"20" validate:"gte=0,lte=100"`
}

// DifficultyConfig places the run difficulty slider
type DifficultyConfig struct {
	MaxScalar float64 `env:"MAX_SCALAR" envDefault:"100" validate:"gt=0"`
	Alpha     float64 `env:"ALPHA" envDefault:"0" validate:"gte=0,lte=1"`
}

// Load loads the configuration from environment variables and validates it
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the env schema version
func (c *Config) Validate() error {
	if c.EnvSchemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%w: ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated",
			ErrInvalidConfig, ExpectedEnvSchemaVersion, c.EnvSchemaVersion)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Warnings reports non-fatal issues such as example secrets
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StatsBackend == StatsBackendPostgres && c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.AdminAPIKey == ExampleAdminAPIKey {
		warnings = append(warnings, "ADMIN_API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.AdminAPIKey == "" {
		warnings = append(warnings, "ADMIN_API_KEY is not set - admin routes are disabled")
	}
	if c.Pity.HardDrops > 0 && c.Pity.SoftStart >= c.Pity.HardDrops {
		warnings = append(warnings, "PITY_SOFT_START is at or above PITY_HARD_DROPS - soft pity never applies")
	}

	return warnings
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
