package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/database"
)

const migrateTimeout = 2 * time.Minute

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Usage() string {
	return "<up|down|status>"
}

func (c *MigrateCommand) Description() string {
	return "Manage stats database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	db, dialect, closeDB, err := openStatsDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	switch args[0] {
	case "up":
		PrintInfo("Applying %s migrations...", dialect)
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
	case "down":
		PrintInfo("Reverting last %s migration...", dialect)
		if err := database.Rollback(ctx, db, dialect); err != nil {
			return err
		}
		PrintSuccess("Migration reverted")
	case "status":
		statuses, err := database.Status(ctx, db, dialect)
		if err != nil {
			return err
		}
		PrintHeader(fmt.Sprintf("Migrations (%s)", dialect))
		for _, st := range statuses {
			if st.Applied {
				PrintSuccess("%d %s", st.Version, st.Source)
			} else {
				PrintWarning("%d %s (pending)", st.Version, st.Source)
			}
		}
	default:
		return fmt.Errorf("unknown subcommand %q: want up, down, status", args[0])
	}
	return nil
}

// openStatsDB opens the configured stats backend as a *sql.DB.
func openStatsDB(ctx context.Context, cfg *config.Config) (*sql.DB, database.Dialect, func(), error) {
	switch cfg.StatsBackend {
	case config.StatsBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), int(cfg.DBMaxConns), time.Minute, time.Hour)
		if err != nil {
			return nil, "", nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, database.DialectPostgres, func() {
			_ = db.Close()
			pool.Close()
		}, nil
	case config.StatsBackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return db, database.DialectSQLite, func() { _ = db.Close() }, nil
	default:
		return nil, "", nil, fmt.Errorf("stats backend %q has no database to migrate", cfg.StatsBackend)
	}
}
