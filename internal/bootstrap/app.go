package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/handler"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/scheduler"
	"github.com/osse101/LootForge_Go/internal/server"
	"github.com/osse101/LootForge_Go/internal/sse"
	"github.com/osse101/LootForge_Go/internal/stats"
	"github.com/osse101/LootForge_Go/internal/tracing"
	"github.com/osse101/LootForge_Go/internal/validation"
	"github.com/osse101/LootForge_Go/internal/worker"
)

// App is the assembled service.
type App struct {
	Config     *config.Config
	Bus        event.Bus
	Storage    StatsStorage
	Data       *LootData
	Difficulty *loot.DifficultyCurve
	Stats      stats.Service
	Events     *sse.Hub
	Workers    *worker.Pool
	Scheduler  *scheduler.Scheduler
	Server     *server.Server

	shutdownTracing func(context.Context) error
}

// PityConfig converts the environment tuning to the engine's.
func PityConfig(cfg config.PityConfig) loot.PityConfig {
	return loot.PityConfig{
		SoftPityStart:         cfg.SoftStart,
		SoftPitySlope:         cfg.SoftSlope,
		HardPityDrops:         cfg.HardDrops,
		MaxLegendaryChance:    cfg.MaxChance,
		StarvedWindowBonus:    cfg.StarvedBonus,
		StarvedWindowMinCount: cfg.StarvedWindowCount,
	}
}

// NewApp wires storage, events, the engine and the HTTP server, and loads
// the loot data once. The caller owns Shutdown.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	handler.InitValidator()

	shutdownTracing, err := tracing.Setup(ctx, logger.DefaultServiceName, Version, cfg.OtelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgTracingSetupFailed, err)
	}

	bus := InitializeEventSystem()

	storage, err := InitializeStatsStorage(ctx, cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}

	data := NewLootData(
		LootDataPaths{Table: cfg.LootTablePath, Catalog: cfg.CatalogPath, Rules: cfg.RulesPath},
		catalog.CacheConfig{Size: cfg.CatalogCacheSize, TTL: cfg.CatalogCacheTTL},
		validation.NewSchemaValidator(),
	)
	curve := loot.NewDifficultyCurve(cfg.Difficulty.MaxScalar, cfg.Difficulty.Alpha)

	data.Engine = loot.NewEngine(nil,
		loot.WithCatalog(data.Catalog),
		loot.WithStatsStore(storage.Store),
		loot.WithDifficultySource(curve),
		loot.WithPityConfig(PityConfig(cfg.Pity)),
		loot.WithEventBus(bus),
	)
	if _, err := data.Reload(ctx); err != nil {
		storage.Close()
		_ = shutdownTracing(ctx)
		return nil, err
	}

	statsService := stats.NewService(storage.Store, bus)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	pool := worker.NewPool(ReloadWorkers, ReloadQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.ReloadInterval > 0 {
		sched.Schedule(cfg.ReloadInterval, reloadJob{data: data})
		logger.Info(LogMsgReloadScheduled, LogFieldReloadInterval, cfg.ReloadInterval)
	}

	srv := server.NewServer(cfg.Port, cfg.AdminAPIKey, cfg.TrustedProxies, server.Dependencies{
		DBPool:     storage.Pool,
		Roller:     data.Engine,
		Rules:      data.Rules,
		Items:      data.Catalog,
		Stats:      statsService,
		Reloader:   data,
		Difficulty: curve,
		Events:     hub,
	})

	return &App{
		Config:     cfg,
		Bus:        bus,
		Storage:    storage,
		Data:       data,
		Difficulty: curve,
		Stats:      statsService,
		Events:     hub,
		Workers:    pool,
		Scheduler:  sched,
		Server:     srv,

		shutdownTracing: shutdownTracing,
	}, nil
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		GracefulShutdown(shutdownCtx, a.components())
		return nil
	})

	return g.Wait()
}

func (a *App) components() ShutdownComponents {
	return ShutdownComponents{
		Scheduler: a.Scheduler,
		Workers:   a.Workers,
		Events:    a.Events,
		Server:    a.Server,
		Storage:   a.Storage,
		Tracing:   a.shutdownTracing,
	}
}
