package loot

import (
	"context"
	"sync/atomic"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/stats"
)

// Engine rolls loot against a table snapshot. It is safe for concurrent use;
// SetTable swaps the snapshot without disturbing rolls in flight.
type Engine struct {
	table atomic.Pointer[loottable.Table]

	catalog    catalog.Catalog
	stats      stats.Store
	difficulty DifficultySource
	weights    loottable.RarityWeightProvider
	pity       PityConfig
	rng        RandomSource
	bus        event.Bus
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the last-resort item catalog.
func WithCatalog(c catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithStatsStore sets the owner of player stats used for pity.
func WithStatsStore(s stats.Store) Option {
	return func(e *Engine) { e.stats = s }
}

// WithDifficultySource sets the source consulted for the derive sentinel.
func WithDifficultySource(d DifficultySource) Option {
	return func(e *Engine) { e.difficulty = d }
}

// WithRarityWeightProvider overrides the table's weight curve.
func WithRarityWeightProvider(p loottable.RarityWeightProvider) Option {
	return func(e *Engine) { e.weights = p }
}

// WithPityConfig replaces the default pity tuning.
func WithPityConfig(cfg PityConfig) Option {
	return func(e *Engine) { e.pity = cfg }
}

// WithRandomSource replaces the process-wide generator.
func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithEventBus publishes roll events to bus.
func WithEventBus(bus event.Bus) Option {
	return func(e *Engine) { e.bus = bus }
}

// NewEngine creates an engine over table, which may be nil.
func NewEngine(table *loottable.Table, opts ...Option) *Engine {
	e := &Engine{
		pity: DefaultPityConfig(),
		rng:  DefaultRandomSource(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetTable(table)
	return e
}

// Table returns the current snapshot.
func (e *Engine) Table() *loottable.Table {
	return e.table.Load()
}

// SetTable prepares and installs a new table snapshot.
func (e *Engine) SetTable(t *loottable.Table) {
	if t != nil {
		t.Prepare()
	}
	e.table.Store(t)

	if t != nil {
		logger.Info(LogMsgTableSwapped, LogFieldTable, t.Name, LogFieldPools, len(t.Pools))
		e.publish(context.Background(), event.NewTableReloadedEvent(t.Name, len(t.Pools)))
	}
}

// PityConfig returns the engine's pity tuning.
func (e *Engine) PityConfig() PityConfig {
	return e.pity
}

// Roll is a drop result plus how it was produced.
type Roll struct {
	Result          domain.LootDropResult
	LegendaryChance float64
	Stage           Stage
	PityForced      bool
}

// RollLoot turns one context into one drop. It never fails: a missing or
// misconfigured table degrades to an empty-identity result with the rolled
// rarity and level.
func (e *Engine) RollLoot(ctx context.Context, lc domain.LootContext) domain.LootDropResult {
	return e.RollDetailed(ctx, lc).Result
}

// RollDetailed is RollLoot with the legendary chance and fallback stage.
func (e *Engine) RollDetailed(ctx context.Context, lc domain.LootContext) Roll {
	return e.roll(ctx, e.Table(), lc)
}

func (e *Engine) roll(ctx context.Context, table *loottable.Table, lc domain.LootContext) Roll {
	lc = normalizeContext(lc)

	var out Roll
	rolled := false
	if e.stats != nil && lc.PlayerRef != "" {
		found, err := e.stats.WithStats(ctx, lc.PlayerRef, func(s *domain.PlayerLootStats) {
			out = e.rollWith(ctx, table, lc, s)
			s.RecordItemDropped(out.Result)
			rolled = true
		})
		switch {
		case err != nil && rolled:
			logger.FromContext(ctx).Warn(LogMsgStatsSaveFailed, LogFieldPlayer, lc.PlayerRef, LogFieldError, err)
		case err != nil:
			logger.FromContext(ctx).Warn(LogMsgStatsUnavailable, LogFieldPlayer, lc.PlayerRef, LogFieldError, err)
		case !found:
			logger.FromContext(ctx).Debug(LogMsgStatsUnavailable, LogFieldPlayer, lc.PlayerRef)
		}
	}
	if !rolled {
		out = e.rollWith(ctx, table, lc, nil)
	}

	e.publish(ctx, event.NewLootDroppedEvent(event.LootDroppedPayloadV1{
		PlayerRef:       lc.PlayerRef,
		SourceTag:       lc.SourceTag,
		Rarity:          out.Result.Rarity,
		ItemID:          out.Result.IdentityKey(),
		ItemLevel:       out.Result.ItemLevel,
		LegendaryChance: out.LegendaryChance,
		Stage:           string(out.Stage),
		PityForced:      out.PityForced,
	}))
	return out
}

// rollWith performs one roll; s may be nil.
func (e *Engine) rollWith(ctx context.Context, table *loottable.Table, lc domain.LootContext, s *domain.PlayerLootStats) Roll {
	pool := loottable.FindMatchingPool(lc, table)
	entries := table.CollectEntries(pool)

	out := Roll{LegendaryChance: ComputeLegendaryChance(lc.BaseLegendaryChance, s, e.pity)}

	if lc.HasForcedItem() {
		out.Result.Rarity = lc.MinimumRarity
	} else {
		weights := e.rarityWeights(table, entries, lc)
		out.Result.Rarity = ChooseRarity(e.rng, out.LegendaryChance, weights, lc.MinimumRarity)
		out.PityForced = e.pity.HardPityReached(s) && out.Result.Rarity == domain.RarityLegendary
	}
	out.Result.ItemLevel = RollItemLevel(e.rng, lc)
	out.Result.Seed = e.rng.Int64()

	out.Stage = e.resolveItem(ctx, table, e.catalogSnapshot(), entries, lc, &out.Result)
	return out
}

// catalogSnapshot pins one catalog version for a roll.
func (e *Engine) catalogSnapshot() catalog.Catalog {
	if s, ok := e.catalog.(catalog.Snapshotter); ok {
		return s.Snapshot()
	}
	return e.catalog
}

// rarityWeights picks the weight source: an injected provider, the table's
// curve rows, the pool entries aggregated by rarity, then the context.
func (e *Engine) rarityWeights(table *loottable.Table, entries []loottable.Entry, lc domain.LootContext) map[domain.Rarity]float64 {
	difficulty := e.resolveDifficulty(lc)
	if e.weights != nil {
		return e.weights.BuildRarityWeights(lc.EnemyLevel, difficulty)
	}
	if table.HasRarityWeights() {
		return table.BuildRarityWeights(lc.EnemyLevel, difficulty)
	}
	if agg := loottable.AggregateEntryWeights(entries); len(agg) > 0 {
		return agg
	}
	return lc.RarityWeights
}

// resolveDifficulty returns the context's scalar, or the difficulty source's
// when the context carries the derive sentinel.
func (e *Engine) resolveDifficulty(lc domain.LootContext) float64 {
	if !lc.DerivesDifficulty() {
		return lc.DifficultyScale
	}
	if e.difficulty != nil {
		if s := e.difficulty.CurrentDifficultyScalar(); s > 0 {
			return s
		}
	}
	return domain.DefaultDifficultyScale
}

func (e *Engine) publish(ctx context.Context, evt event.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, LogFieldEventType, evt.Type, LogFieldError, err)
	}
}

// normalizeContext clamps values a caller may have authored out of range.
func normalizeContext(lc domain.LootContext) domain.LootContext {
	if !lc.MinimumRarity.Valid() {
		lc.MinimumRarity = domain.RarityCommon
	}
	lc.BaseLegendaryChance = clamp(lc.BaseLegendaryChance, 0, 1)
	lc.SourceTag = domain.NormalizeTag(string(lc.SourceTag))
	lc.ItemLevelJitterMin, lc.ItemLevelJitterMax = lc.JitterBounds()
	return lc
}
