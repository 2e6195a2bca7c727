package loot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/stats"
)

func distinctPool(n int, r domain.Rarity) *loottable.Table {
	entries := make([]loottable.Entry, n)
	for i := range entries {
		entries[i] = entry(fmt.Sprintf("item_%d", i), r, 1)
	}
	return singlePool(entries...)
}

func TestRollMultiDrop_TopUpReachesTotal(t *testing.T) {
	e := NewEngine(distinctPool(3, domain.RarityCommon), WithRandomSource(NewSeededRand(10)))

	cfg := NewMultiDropConfig()
	cfg.TotalBaseDrops = 10

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, out.TotalTarget)
	assert.Len(t, out.Results, 10)
}

func TestRollMultiDrop_UniqueWithinBucket(t *testing.T) {
	e := NewEngine(distinctPool(8, domain.RarityCommon), WithRandomSource(NewSeededRand(11)))

	cfg := NewMultiDropConfig()
	cfg.UniquenessRetryCount = 40
	bucket := NewBucket("gear", 5)
	bucket.UniqueWithinBucket = true
	bucket.UniqueAcrossBuckets = false
	cfg.Buckets = []Bucket{bucket}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	require.Len(t, out.Results, 5)

	seen := make(map[string]bool)
	for _, r := range out.Results {
		assert.False(t, seen[r.ItemID], "duplicate %s", r.ItemID)
		seen[r.ItemID] = true
	}
	assert.Empty(t, out.Diagnostics)
}

func TestRollMultiDrop_ExhaustionIsReported(t *testing.T) {
	e := NewEngine(distinctPool(1, domain.RarityCommon))

	cfg := NewMultiDropConfig()
	cfg.UniquenessRetryCount = 2
	cfg.LogDiagnostics = true
	bucket := NewBucket("gear", 3)
	bucket.UniqueWithinBucket = true
	cfg.Buckets = []Bucket{bucket}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	assert.Len(t, out.Results, 1)
	require.Len(t, out.Diagnostics, 2)
	assert.Equal(t, Diagnostic{Bucket: "gear", Unit: 1, Attempts: 3}, out.Diagnostics[0])
	assert.Equal(t, 2, out.Diagnostics[1].Unit)
}

func TestRollMultiDrop_GlobalUniquenessAcrossBuckets(t *testing.T) {
	e := NewEngine(distinctPool(1, domain.RarityCommon))

	cfg := NewMultiDropConfig()
	cfg.UniquenessRetryCount = 0
	cfg.Buckets = []Bucket{NewBucket("a", 1), NewBucket("b", 1)}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	assert.Len(t, out.Results, 1)
	assert.Len(t, out.Diagnostics, 1)
}

func TestRollMultiDrop_EmptyIdentityNeverDuplicate(t *testing.T) {
	e := NewEngine(nil)

	cfg := NewMultiDropConfig()
	bucket := NewBucket("nothing", 4)
	bucket.UniqueWithinBucket = true
	cfg.Buckets = []Bucket{bucket}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	assert.Len(t, out.Results, 4)
	assert.Empty(t, out.Diagnostics)
}

func TestRollMultiDrop_BucketClampedByTotal(t *testing.T) {
	e := NewEngine(distinctPool(2, domain.RarityCommon))

	cfg := NewMultiDropConfig()
	cfg.TotalBaseDrops = 2
	b := NewBucket("many", 5)
	b.UniqueAcrossBuckets = false
	cfg.Buckets = []Bucket{b}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)
}

func TestRollMultiDrop_BucketRarityFloor(t *testing.T) {
	table := singlePool(entry("c", domain.RarityCommon, 1), entry("e", domain.RarityEpic, 1))
	e := NewEngine(table, WithRandomSource(NewSeededRand(12)))

	cfg := NewMultiDropConfig()
	b := NewBucket("epics", 6)
	b.MinimumRarity = domain.RarityEpic
	b.UniqueAcrossBuckets = false
	cfg.Buckets = []Bucket{b}

	out, err := e.RollMultiDrop(context.Background(), domain.NewLootContext(), cfg)
	require.NoError(t, err)
	require.Len(t, out.Results, 6)
	for _, r := range out.Results {
		assert.Equal(t, domain.RarityEpic, r.Rarity)
		assert.Equal(t, "e", r.ItemID)
	}
}

func TestRollMultiDrop_InvalidConfig(t *testing.T) {
	store := stats.NewMemoryStore(true)
	e := NewEngine(distinctPool(2, domain.RarityCommon), WithStatsStore(store))

	lc := domain.NewLootContext()
	lc.PlayerRef = "p1"

	tests := []struct {
		name string
		cfg  MultiDropConfig
	}{
		{"negative total", MultiDropConfig{TotalBaseDrops: -1, Buckets: []Bucket{{BaseDrops: 1}}}},
		{"negative total variance", MultiDropConfig{TotalBaseDrops: 3, TotalVariance: -1}},
		{"negative bucket", MultiDropConfig{Buckets: []Bucket{{Name: "x", BaseDrops: 2, Variance: -3}}}},
		{"empty", MultiDropConfig{}},
		{"total overflows", MultiDropConfig{TotalBaseDrops: math.MaxInt64, TotalVariance: 1}},
		{"total over limit", MultiDropConfig{TotalBaseDrops: MaxDropsPerCall + 1}},
		{"bucket overflows", MultiDropConfig{Buckets: []Bucket{{Name: "x", BaseDrops: math.MaxInt64, Variance: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.RollMultiDrop(context.Background(), lc, tt.cfg)
			assert.ErrorIs(t, err, domain.ErrInvalidMultiDropConfig)
			assert.Nil(t, out)
		})
	}

	s := readStats(t, store, "p1")
	assert.Zero(t, s.WindowCount, "no roll may happen for a rejected config")
}

func TestMultiDropConfig_JSONDefaults(t *testing.T) {
	var cfg MultiDropConfig
	require.NoError(t, json.Unmarshal([]byte(`{"total_base_drops": 3, "buckets": [{"name": "a", "base_drops": 1}]}`), &cfg))

	assert.True(t, cfg.ShuffleBuckets)
	assert.Equal(t, DefaultUniquenessRetryCount, cfg.UniquenessRetryCount)
	require.Len(t, cfg.Buckets, 1)
	assert.True(t, cfg.Buckets[0].UniqueAcrossBuckets)

	require.NoError(t, json.Unmarshal([]byte(`{"shuffle_buckets": false, "buckets": [{"unique_across_buckets": false}]}`), &cfg))
	assert.False(t, cfg.ShuffleBuckets)
	assert.False(t, cfg.Buckets[0].UniqueAcrossBuckets)
}

func TestRollCount(t *testing.T) {
	rng := NewSeededRand(5)
	assert.Equal(t, 4, rollCount(rng, 4, 0))
	assert.Equal(t, 0, rollCount(rng, -4, 0))
	for i := 0; i < 200; i++ {
		n := rollCount(rng, 2, 3)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, 0, rollCount(&scriptedRand{ints: []int{0}}, 1, 3), "jitter below zero floors at zero")
}

func TestWithinDropLimit(t *testing.T) {
	assert.True(t, WithinDropLimit(0, 0, 10))
	assert.True(t, WithinDropLimit(7, 3, 10))
	assert.False(t, WithinDropLimit(7, 4, 10))
	assert.False(t, WithinDropLimit(-1, 0, 10))
	assert.False(t, WithinDropLimit(math.MaxInt64, 1, 10))
	assert.False(t, WithinDropLimit(1, math.MaxInt64, math.MaxInt64))
	assert.True(t, WithinDropLimit(math.MaxInt64, 0, math.MaxInt64))
}
