package loot

import (
	"context"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loottable"
)

// resolveItem fills the result's identity, stopping at the first stage that
// produces one, and reports that stage.
func (e *Engine) resolveItem(ctx context.Context, table *loottable.Table, cat catalog.Catalog, entries []loottable.Entry, lc domain.LootContext, result *domain.LootDropResult) Stage {
	if lc.HasForcedItem() {
		applyForced(ctx, cat, lc, result)
		return StageForced
	}

	gates := newEntryGates(entries, lc.EnemyLevel, e.rng)

	if entry := gates.pick(e.rng, func(en *loottable.Entry) bool { return en.Rarity == result.Rarity }); entry != nil {
		applyEntry(entry, result)
		return StagePoolRarity
	}
	if entry := gates.pick(e.rng, nil); entry != nil {
		applyEntry(entry, result)
		return StagePoolAny
	}

	if gates.hasEligible() {
		logger.FromContext(ctx).Debug(LogMsgDropSuppressed, LogFieldPlayer, lc.PlayerRef, LogFieldRarity, result.Rarity)
		return StageSuppressed
	}

	if entry := e.firstPassingEntry(table); entry != nil {
		applyEntry(entry, result)
		return StageTableWide
	}

	if e.pickFromCatalog(cat, lc, result) {
		return StageCatalog
	}

	logger.FromContext(ctx).Debug(LogMsgNoItemResolved, LogFieldRarity, result.Rarity, LogFieldSourceTag, lc.SourceTag)
	return StageNone
}

func applyForced(ctx context.Context, cat catalog.Catalog, lc domain.LootContext, result *domain.LootDropResult) {
	if def := lc.ForcedItemDefinition; def != nil {
		result.Definition = def
		result.ItemID = def.ID
		if result.ItemID == "" {
			result.ItemID = lc.ForcedItemID
		}
		return
	}

	result.ItemID = lc.ForcedItemID
	if cat == nil {
		return
	}
	if def, ok := cat.Resolve(lc.ForcedItemID); ok {
		result.Definition = def
	} else {
		logger.FromContext(ctx).Debug(LogMsgForcedItemUnresolved, LogFieldItemID, lc.ForcedItemID)
	}
}

func applyEntry(entry *loottable.Entry, result *domain.LootDropResult) {
	result.Definition = entry.Definition
	result.ItemID = entry.IdentityKey()
}

// firstPassingEntry scans every pool in table order for the first weighted
// entry whose drop chance passes. Entry level gates do not apply here.
func (e *Engine) firstPassingEntry(table *loottable.Table) *loottable.Entry {
	if table.IsEmpty() {
		return nil
	}
	for i := range table.Pools {
		entries := table.CollectEntries(&table.Pools[i])
		for j := range entries {
			entry := &entries[j]
			if entry.EffectiveWeight() > 0 && entry.HasItem() && passes(e.rng, entry.EffectiveDropChance()) {
				return entry
			}
		}
	}
	return nil
}

// pickFromCatalog asks the catalog for items supporting the rarity, filtered
// by source tag first, then unfiltered, and picks one uniformly.
func (e *Engine) pickFromCatalog(cat catalog.Catalog, lc domain.LootContext, result *domain.LootDropResult) bool {
	if cat == nil {
		return false
	}

	var ids []string
	if !lc.SourceTag.IsEmpty() {
		ids = cat.FindByRarity(result.Rarity, lc.SourceTag)
	}
	if len(ids) == 0 {
		ids = cat.FindByRarity(result.Rarity, "")
	}
	if len(ids) == 0 {
		return false
	}

	id := ids[e.rng.IntN(len(ids))]
	result.ItemID = id
	if def, ok := cat.Resolve(id); ok {
		result.Definition = def
	}
	return true
}

// eligible gates an entry on weight, item reference and level.
func eligible(entry *loottable.Entry, level int) bool {
	return entry.EffectiveWeight() > 0 && entry.HasItem() && entry.AllowsLevel(level)
}

// passes evaluates a drop chance gate.
func passes(rng RandomSource, chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	return rng.Float64() < chance
}

type gateState uint8

const (
	gateUnknown gateState = iota
	gatePassed
	gateFailed
)

// entryGates evaluates each eligible entry's drop chance at most once per
// roll, on first use.
type entryGates struct {
	entries  []loottable.Entry
	eligible []bool
	state    []gateState
	rng      RandomSource
}

func newEntryGates(entries []loottable.Entry, level int, rng RandomSource) *entryGates {
	g := &entryGates{
		entries:  entries,
		eligible: make([]bool, len(entries)),
		state:    make([]gateState, len(entries)),
		rng:      rng,
	}
	for i := range entries {
		g.eligible[i] = eligible(&entries[i], level)
	}
	return g
}

func (g *entryGates) passed(i int) bool {
	if g.state[i] == gateUnknown {
		g.state[i] = gateFailed
		if passes(g.rng, g.entries[i].EffectiveDropChance()) {
			g.state[i] = gatePassed
		}
	}
	return g.state[i] == gatePassed
}

func (g *entryGates) hasEligible() bool {
	for _, ok := range g.eligible {
		if ok {
			return true
		}
	}
	return false
}

// pick draws by weight among eligible, passing entries accepted by filter
// (nil accepts all).
func (g *entryGates) pick(rng RandomSource, filter func(*loottable.Entry) bool) *loottable.Entry {
	var candidates []int
	var total float64
	for i := range g.entries {
		if !g.eligible[i] {
			continue
		}
		if filter != nil && !filter(&g.entries[i]) {
			continue
		}
		if !g.passed(i) {
			continue
		}
		candidates = append(candidates, i)
		total += g.entries[i].EffectiveWeight()
	}
	if len(candidates) == 0 || total <= 0 {
		return nil
	}

	draw := rng.Float64() * total
	var acc float64
	for _, i := range candidates {
		acc += g.entries[i].EffectiveWeight()
		if draw <= acc {
			return &g.entries[i]
		}
	}
	return &g.entries[candidates[len(candidates)-1]]
}
