package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/handler"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/lootrules"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/tracing"
	"github.com/osse101/LootForge_Go/internal/validation"
)

// LootDataPaths names the files a reload reads. Empty catalog or rules
// paths disable that input.
type LootDataPaths struct {
	Table   string
	Catalog string
	Rules   string
}

// LootData owns the swappable loot inputs: the engine's table, the item
// catalog and the rule set. Reload loads everything first and only swaps
// once all inputs are valid.
type LootData struct {
	// reloadMu keeps overlapping reloads from swapping a table linked
	// against another reload's catalog.
	reloadMu sync.Mutex

	paths     LootDataPaths
	cacheCfg  catalog.CacheConfig
	validator validation.SchemaValidator

	Engine  *loot.Engine
	Catalog *catalog.Holder
	Rules   *lootrules.Holder
}

// NewLootData creates empty holders. The engine is attached by the caller
// once it is built over Catalog.
func NewLootData(paths LootDataPaths, cacheCfg catalog.CacheConfig, v validation.SchemaValidator) *LootData {
	return &LootData{
		paths:     paths,
		cacheCfg:  cacheCfg,
		validator: v,
		Catalog:   catalog.NewHolder(nil),
		Rules:     lootrules.NewHolder(nil),
	}
}

type loaded struct {
	table   *loottable.Table
	catalog *catalog.MemoryCatalog
	rules   *lootrules.RuleSet
}

// load reads the catalog and rules concurrently, then the table, which links
// its entries against the new catalog.
func (d *LootData) load(ctx context.Context) (loaded, error) {
	var out loaded

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if d.paths.Catalog == "" {
			logger.Info(LogMsgCatalogSkipped)
			return nil
		}
		c, err := catalog.Load(d.validator, d.paths.Catalog, d.cacheCfg)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
		out.catalog = c
		return nil
	})
	g.Go(func() error {
		if d.paths.Rules == "" {
			logger.Info(LogMsgRulesSkipped)
			return nil
		}
		rs, err := lootrules.Load(d.validator, d.paths.Rules)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedLoadRules, err)
		}
		out.rules = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return out, err
	}

	var resolver loottable.DefinitionResolver
	if out.catalog != nil {
		resolver = out.catalog
	}
	table, err := loottable.NewLoader(d.validator, resolver).Load(d.paths.Table)
	if err != nil {
		return out, fmt.Errorf("%s: %w", ErrMsgFailedLoadTable, err)
	}
	out.table = table
	return out, nil
}

// Reload loads every input and swaps them in. On error nothing changes.
func (d *LootData) Reload(ctx context.Context) (handler.ReloadSummary, error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, tracing.SpanReload)
	defer span.End()

	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	in, err := d.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return handler.ReloadSummary{}, err
	}

	d.Catalog.Store(in.catalog)
	d.Rules.Store(in.rules)
	if d.Engine != nil {
		d.Engine.SetTable(in.table)
	}

	summary := handler.ReloadSummary{
		Table: in.table.Name,
		Pools: len(in.table.Pools),
		Items: d.Catalog.Len(),
	}
	if in.rules != nil {
		summary.Rules = len(in.rules.Rules)
	}

	logger.Info(LogMsgLootDataLoaded,
		LogFieldTable, summary.Table,
		LogFieldPools, summary.Pools,
		LogFieldItems, summary.Items,
		LogFieldRules, summary.Rules,
		LogFieldDuration, time.Since(start))
	return summary, nil
}

// reloadJob re-reads the loot data on a schedule.
type reloadJob struct {
	data *LootData
}

func (j reloadJob) Name() string {
	return JobNameLootReload
}

func (j reloadJob) Process(ctx context.Context) error {
	_, err := j.data.Reload(ctx)
	return err
}
