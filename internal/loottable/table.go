package loottable

import (
	"strings"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Table is a designer-authored loot table. It is immutable once Prepare has
// run and may then be shared between goroutines.
type Table struct {
	Name          string              `json:"name"`
	Pools         []Pool              `json:"pools"`
	EntrySets     map[string]EntrySet `json:"entry_sets,omitempty"`
	RarityWeights []RarityWeightRow   `json:"rarity_weights,omitempty"`
	NameFormats   []NameFormat        `json:"name_formats,omitempty"`
	RarityScaling []RarityScalingRow  `json:"rarity_scaling,omitempty"`
	StatScaling   []StatScalingRow    `json:"stat_scaling,omitempty"`

	prepared    bool
	flat        [][]Entry
	statIndex   map[string]int
	nameFormats map[domain.Rarity]NameFormat
}

// Pool is a scoped list of entries. Zero bounds and an empty tag are unbounded.
type Pool struct {
	Name         string     `json:"name"`
	SourceTag    domain.Tag `json:"source_tag,omitempty"`
	MinWorldTier int        `json:"min_world_tier,omitempty"`
	MaxWorldTier int        `json:"max_world_tier,omitempty"`
	MinLevel     int        `json:"min_level,omitempty"`
	MaxLevel     int        `json:"max_level,omitempty"`
	Entries      []Entry    `json:"entries,omitempty"`
	EntrySets    []string   `json:"entry_sets,omitempty"`
}

// EntrySet is a reusable list of entries shared by several pools.
type EntrySet struct {
	Entries []Entry `json:"entries"`
}

// RarityWeightRow is one level/difficulty weight curve for a rarity.
type RarityWeightRow struct {
	Rarity               domain.Rarity `json:"rarity"`
	MinLevel             int           `json:"min_level,omitempty"`
	MaxLevel             int           `json:"max_level,omitempty"`
	BaseWeight           float64       `json:"base_weight"`
	WeightPerLevel       float64       `json:"weight_per_level,omitempty"`
	DifficultyMultiplier float64       `json:"difficulty_multiplier"`
}

// NameFormat decorates item names of one rarity.
type NameFormat struct {
	Rarity domain.Rarity `json:"rarity"`
	Prefix string        `json:"prefix,omitempty"`
	Suffix string        `json:"suffix,omitempty"`
}

// RarityScalingRow holds the per-rarity item power multipliers.
type RarityScalingRow struct {
	Rarity                   domain.Rarity `json:"rarity"`
	BonusAffixes             int           `json:"bonus_affixes"`
	BaseModifierMultiplier   float64       `json:"base_modifier_multiplier"`
	AffixModifierMultiplier  float64       `json:"affix_modifier_multiplier"`
	GrantedEffectLevelFactor float64       `json:"granted_effect_level_multiplier"`
	DisplayHeading           string        `json:"display_heading,omitempty"`
	DisplayValue             string        `json:"display_value,omitempty"`
}

// StatScalingRow scales one attribute with item level.
type StatScalingRow struct {
	Attribute          string  `json:"attribute"`
	PerLevelMultiplier float64 `json:"per_level_multiplier"`
	PerLevelAdd        float64 `json:"per_level_add"`
}

// RarityWeightProvider produces non-legendary rarity weights for a level and
// difficulty scalar.
type RarityWeightProvider interface {
	BuildRarityWeights(level int, difficulty float64) map[domain.Rarity]float64
}

// Prepare builds the flattened entry lists and lookup indexes. It must run
// before the table is shared; later calls are no-ops.
func (t *Table) Prepare() {
	if t == nil || t.prepared {
		return
	}

	t.flat = make([][]Entry, len(t.Pools))
	for i := range t.Pools {
		t.flat[i] = t.collect(&t.Pools[i])
	}

	t.statIndex = make(map[string]int, len(t.StatScaling))
	for i, row := range t.StatScaling {
		key := NormalizeAttributeName(row.Attribute)
		if _, dup := t.statIndex[key]; dup || key == "" {
			continue
		}
		t.statIndex[key] = i
	}

	t.nameFormats = make(map[domain.Rarity]NameFormat, len(t.NameFormats))
	for _, f := range t.NameFormats {
		if _, dup := t.nameFormats[f.Rarity]; !dup {
			t.nameFormats[f.Rarity] = f
		}
	}

	t.prepared = true
}

// IsEmpty reports whether the table has no pools.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Pools) == 0
}

// HasRarityWeights reports whether the table carries weight curve rows.
func (t *Table) HasRarityWeights() bool {
	return t != nil && len(t.RarityWeights) > 0
}

// CollectEntries returns the pool's own entries followed by the entries of
// its referenced entry sets, in authored order. The result must not be modified.
func (t *Table) CollectEntries(pool *Pool) []Entry {
	if t == nil || pool == nil {
		return nil
	}
	if t.prepared {
		for i := range t.Pools {
			if &t.Pools[i] == pool {
				return t.flat[i]
			}
		}
	}
	return t.collect(pool)
}

func (t *Table) collect(pool *Pool) []Entry {
	out := make([]Entry, 0, len(pool.Entries))
	out = append(out, pool.Entries...)
	for _, name := range pool.EntrySets {
		if set, ok := t.EntrySets[name]; ok {
			out = append(out, set.Entries...)
		}
	}
	return out
}

// FindMatchingPool returns the first pool in authored order whose scope
// matches the context, else the first pool as a catch-all, else nil.
func FindMatchingPool(ctx domain.LootContext, t *Table) *Pool {
	if t.IsEmpty() {
		return nil
	}
	for i := range t.Pools {
		if t.Pools[i].Matches(ctx) {
			return &t.Pools[i]
		}
	}
	return &t.Pools[0]
}

// Matches reports whether the pool's source tag, world tier and level gates
// admit the context.
func (p *Pool) Matches(ctx domain.LootContext) bool {
	if !p.SourceTag.IsEmpty() && !ctx.SourceTag.IsUnder(p.SourceTag) {
		return false
	}
	if !withinBounds(ctx.WorldTier, p.MinWorldTier, p.MaxWorldTier) {
		return false
	}
	return withinBounds(ctx.EnemyLevel, p.MinLevel, p.MaxLevel)
}

// withinBounds treats non-positive bounds as unbounded.
func withinBounds(v, lo, hi int) bool {
	if lo > 0 && v < lo {
		return false
	}
	if hi > 0 && v > hi {
		return false
	}
	return true
}

// BuildRarityWeights accumulates the weight curve rows that apply at level.
// Legendary rows are skipped: legendary odds come only from pity.
func (t *Table) BuildRarityWeights(level int, difficulty float64) map[domain.Rarity]float64 {
	weights := make(map[domain.Rarity]float64)
	if t == nil {
		return weights
	}

	scale := difficulty
	if scale <= 0 {
		scale = 1
	}

	for _, row := range t.RarityWeights {
		if row.Rarity == domain.RarityLegendary {
			continue
		}
		if !withinBounds(level, row.MinLevel, row.MaxLevel) {
			continue
		}

		delta := level
		if row.MinLevel > 0 {
			delta = max(0, level-row.MinLevel)
		}

		w := (row.BaseWeight + row.WeightPerLevel*float64(delta)) *
			max(0, row.DifficultyMultiplier) * scale
		if w > 0 {
			weights[row.Rarity] += w
		}
	}
	return weights
}

// AggregateEntryWeights sums weight × drop chance per rarity.
func AggregateEntryWeights(entries []Entry) map[domain.Rarity]float64 {
	weights := make(map[domain.Rarity]float64)
	for i := range entries {
		if w := entries[i].EffectiveWeight() * entries[i].EffectiveDropChance(); w > 0 {
			weights[entries[i].Rarity] += w
		}
	}
	return weights
}

// FormatName decorates base with the rarity's prefix and suffix.
func (t *Table) FormatName(r domain.Rarity, base string) string {
	if t == nil {
		return base
	}

	var f NameFormat
	var ok bool
	if t.prepared {
		f, ok = t.nameFormats[r]
	} else {
		for _, candidate := range t.NameFormats {
			if candidate.Rarity == r {
				f, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return base
	}
	return f.Prefix + base + f.Suffix
}

// FindRarityScaling returns the scaling row for r.
func (t *Table) FindRarityScaling(r domain.Rarity) (RarityScalingRow, bool) {
	if t != nil {
		for _, row := range t.RarityScaling {
			if row.Rarity == r {
				return row, true
			}
		}
	}
	return RarityScalingRow{
		Rarity:                   r,
		BaseModifierMultiplier:   DefaultScalingMultiplier,
		AffixModifierMultiplier:  DefaultScalingMultiplier,
		GrantedEffectLevelFactor: DefaultScalingMultiplier,
	}, false
}

// FindStatScaling looks up the scaling row for an attribute using its
// normalized name, so "CombatSet.AttackDamage" and "attack_damage" match.
func (t *Table) FindStatScaling(attribute string) (StatScalingRow, bool) {
	if t == nil {
		return StatScalingRow{}, false
	}
	key := NormalizeAttributeName(attribute)
	if t.prepared {
		if i, ok := t.statIndex[key]; ok {
			return t.StatScaling[i], true
		}
		return StatScalingRow{}, false
	}
	for _, row := range t.StatScaling {
		if NormalizeAttributeName(row.Attribute) == key {
			return row, true
		}
	}
	return StatScalingRow{}, false
}

// ScaleStat applies the attribute's per-level scaling to value.
func (t *Table) ScaleStat(attribute string, value float64, itemLevel int) float64 {
	row, ok := t.FindStatScaling(attribute)
	delta := max(itemLevel, 1) - 1
	if !ok || delta == 0 {
		return value
	}
	d := float64(delta)
	return value*(1+row.PerLevelMultiplier*d) + row.PerLevelAdd*d
}

// NormalizeAttributeName keeps the part after the last '.', lower-cased with
// underscores, dashes and spaces removed.
func NormalizeAttributeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)
	return strings.ToLower(name)
}
