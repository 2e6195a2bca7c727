package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/database"
	"github.com/osse101/LootForge_Go/internal/database/postgres"
	"github.com/osse101/LootForge_Go/internal/database/sqlite"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/stats"
)

// StatsStorage is the stats store chosen by configuration. Pool is nil for
// the in-memory backend.
type StatsStorage struct {
	Store stats.Store
	Pool  database.Pool
}

// Close releases the backing database, if any.
func (s StatsStorage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		logger.Info(LogMsgDBClosed)
	}
}

// InitializeStatsStorage opens the configured backend and applies pending
// migrations to it.
func InitializeStatsStorage(ctx context.Context, cfg *config.Config) (StatsStorage, error) {
	var storage StatsStorage

	switch cfg.StatsBackend {
	case config.StatsBackendMemory:
		storage.Store = stats.NewMemoryStore(cfg.StatsAutoCreate)

	case config.StatsBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), int(cfg.DBMaxConns), DBMaxConnIdleTime, DBMaxConnLifetime)
		if err != nil {
			return storage, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return storage, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		storage.Store = stats.NewPersistentStore(postgres.NewStatsRepository(pool), cfg.StatsAutoCreate)
		storage.Pool = pool

	case config.StatsBackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return storage, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
			_ = db.Close()
			return storage, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		storage.Store = stats.NewPersistentStore(sqlite.NewStatsRepository(db), cfg.StatsAutoCreate)
		storage.Pool = database.SQLitePool{DB: db}

	default:
		return storage, fmt.Errorf(ErrMsgUnknownStatsBackend, cfg.StatsBackend)
	}

	logger.Info(LogMsgStatsBackend, LogFieldBackend, cfg.StatsBackend)
	return storage, nil
}
