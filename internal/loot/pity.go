package loot

import "github.com/osse101/LootForge_Go/internal/domain"

// PityConfig tunes the anti-drought adjustments to the legendary chance.
// A non-positive SoftPityStart or HardPityDrops disables that adjustment.
type PityConfig struct {
	SoftPityStart         int     `json:"soft_pity_start"`
	SoftPitySlope         float64 `json:"soft_pity_slope"`
	HardPityDrops         int     `json:"hard_pity_drops"`
	MaxLegendaryChance    float64 `json:"max_legendary_chance"`
	StarvedWindowBonus    float64 `json:"starved_window_bonus"`
	StarvedWindowMinCount int     `json:"starved_window_min_count"`
}

// DefaultPityConfig returns the stock tuning.
func DefaultPityConfig() PityConfig {
	return PityConfig{
		SoftPityStart:         DefaultSoftPityStart,
		SoftPitySlope:         DefaultSoftPitySlope,
		HardPityDrops:         DefaultHardPityDrops,
		MaxLegendaryChance:    DefaultMaxLegendaryChance,
		StarvedWindowBonus:    DefaultStarvedWindowBonus,
		StarvedWindowMinCount: DefaultStarvedWindowMinCount,
	}
}

// HardPityReached reports whether the next drop is a guaranteed legendary.
func (c PityConfig) HardPityReached(stats *domain.PlayerLootStats) bool {
	return stats != nil && c.HardPityDrops > 0 && int(stats.DropsSinceLastLegendary) >= c.HardPityDrops
}

// ComputeLegendaryChance applies pity to base. Without stats the result is
// base clamped to [0,1]. Hard pity returns exactly 1 and ignores
// MaxLegendaryChance; every other path is clamped to [0, MaxLegendaryChance].
func ComputeLegendaryChance(base float64, stats *domain.PlayerLootStats, cfg PityConfig) float64 {
	chance := clamp(base, 0, 1)
	if stats == nil {
		return chance
	}
	if cfg.HardPityReached(stats) {
		return 1.0
	}

	drops := int(stats.DropsSinceLastLegendary)
	if cfg.SoftPityStart > 0 && drops > cfg.SoftPityStart {
		chance += float64(drops-cfg.SoftPityStart) * cfg.SoftPitySlope
	}

	if int(stats.WindowCount) >= cfg.StarvedWindowMinCount && stats.LegendariesInWindow == 0 {
		chance += cfg.StarvedWindowBonus
	}

	return clamp(chance, 0, max(0, cfg.MaxLegendaryChance))
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
