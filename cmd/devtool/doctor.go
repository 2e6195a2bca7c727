package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/validation"
)

const doctorTimeout = 10 * time.Second

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Usage() string {
	return ""
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (config + loot data + db)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	cfg, err := config.Load()
	if err != nil {
		PrintError("Configuration invalid: %v", err)
		return fmt.Errorf("doctor found issues")
	}
	PrintSuccess("Configuration OK (backend %s)", cfg.StatsBackend)
	for _, w := range cfg.Warnings() {
		PrintWarning("%s", w)
	}

	hasError := false

	v := validation.NewSchemaValidator()
	files := []struct{ kind, path string }{
		{dataKindCatalog, cfg.CatalogPath},
		{dataKindRules, cfg.RulesPath},
		{dataKindTable, cfg.LootTablePath},
	}
	for _, f := range files {
		if f.path == "" {
			PrintInfo("No %s configured", f.kind)
			continue
		}
		summary, err := loadData(v, f.kind, f.path)
		if err != nil {
			PrintError("Loot data check failed: %v", err)
			hasError = true
			continue
		}
		PrintSuccess("%s", summary)
	}

	if cfg.StatsBackend != config.StatsBackendMemory {
		ctx, cancel := context.WithTimeout(context.Background(), doctorTimeout)
		defer cancel()

		db, _, closeDB, err := openStatsDB(ctx, cfg)
		if err != nil {
			PrintError("Database check failed: %v", err)
			hasError = true
		} else {
			if err := db.PingContext(ctx); err != nil {
				PrintError("Database check failed: %v", err)
				hasError = true
			} else {
				PrintSuccess("Database OK")
			}
			closeDB()
		}
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
