package loot

import (
	"math"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// ChooseRarity draws a rarity. The legendary branch fires when chance is
// positive and the first draw is at or below it. Otherwise a rarity is drawn
// from the positive, non-Legendary weights at or above minimum, walked in
// rarity order. With no usable weight the result is minimum.
func ChooseRarity(rng RandomSource, chance float64, weights map[domain.Rarity]float64, minimum domain.Rarity) domain.Rarity {
	if !minimum.Valid() {
		minimum = domain.RarityCommon
	}

	u := rng.Float64()
	if chance > 0 && u <= chance {
		return domain.RarityLegendary
	}

	var total float64
	for _, r := range domain.AllRarities() {
		if w := bucketWeight(weights, r, minimum); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return minimum
	}

	draw := rng.Float64() * total
	var acc float64
	last := minimum
	for _, r := range domain.AllRarities() {
		w := bucketWeight(weights, r, minimum)
		if w <= 0 {
			continue
		}
		acc += w
		last = r
		if draw <= acc {
			return r
		}
	}
	// Rounding can leave draw a hair above the final sum.
	return last
}

func bucketWeight(weights map[domain.Rarity]float64, r, minimum domain.Rarity) float64 {
	if r == domain.RarityLegendary || r < minimum {
		return 0
	}
	w := weights[r]
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return max(0, w)
}

// RollItemLevel returns the item level for a context: the player level (or
// enemy level when unset) floored at 1, resampled from a triangular
// distribution over the jitter range with its mode at the base level.
func RollItemLevel(rng RandomSource, lc domain.LootContext) int {
	base := lc.PlayerLevel
	if base <= 0 {
		base = lc.EnemyLevel
	}
	base = max(1, base)

	lo, hi := lc.JitterBounds()
	low, high := base+lo, base+hi
	if low == high {
		return base
	}
	return max(1, triangularInt(rng.Float64(), low, base, high))
}

// triangularInt maps u in [0,1) onto a triangular distribution over
// [low, high] with the given mode, rounded to the nearest integer.
func triangularInt(u float64, low, mode, high int) int {
	if low > high {
		low, high = high, low
	}
	if low == high {
		return low
	}

	a, b := float64(low), float64(high)
	c := clamp(float64(mode), a, b)
	split := (c - a) / (b - a)

	var sample float64
	if u <= split {
		sample = a + math.Sqrt(u*(b-a)*(c-a))
	} else {
		sample = b - math.Sqrt((1-u)*(b-a)*(b-c))
	}
	return int(math.Round(sample))
}
