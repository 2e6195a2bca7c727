package handler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/loot"
)

type tagStruct struct {
	Tags []domain.Tag `json:"tags" validate:"max=32,dive,tag"`
}

// =============================================================================
// Validator Tests
// =============================================================================

func TestValidator_TagValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		tag     domain.Tag
		wantErr bool
	}{
		// CASE 1: Best Case
		{"dotted tag", "Enemy.Elite.Fire", false},
		{"single segment", "Chest", false},

		// CASE 2: Boundary Case
		{"exactly max length", domain.Tag(strings.Repeat("a", MaxTagLength)), false},
		{"over max length", domain.Tag(strings.Repeat("a", MaxTagLength+1)), true},

		// CASE 3: Edge - empty is dropped later
		{"empty tag", "", false},

		// CASE 4: Invalid Case
		{"inner space", "Enemy Elite", true},
		{"newline", "Enemy\n", true},
		{"null byte", "Enemy\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tagStruct{Tags: []domain.Tag{tt.tag}})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_LootContext(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		mutate  func(*domain.LootContext)
		field   string
		wantErr bool
	}{
		{"defaults", func(*domain.LootContext) {}, "", false},
		{"chance at one", func(c *domain.LootContext) { c.BaseLegendaryChance = 1 }, "", false},
		{"weights", func(c *domain.LootContext) {
			c.RarityWeights = map[domain.Rarity]float64{domain.RarityRare: 2}
		}, "", false},

		{"chance above one", func(c *domain.LootContext) { c.BaseLegendaryChance = 1.5 }, "base_legendary_chance", true},
		{"chance nan", func(c *domain.LootContext) { c.BaseLegendaryChance = math.NaN() }, "base_legendary_chance", true},
		{"negative level", func(c *domain.LootContext) { c.EnemyLevel = -1 }, "enemy_level", true},
		{"unknown minimum rarity", func(c *domain.LootContext) { c.MinimumRarity = 42 }, "minimum_rarity", true},
		{"infinite difficulty", func(c *domain.LootContext) { c.DifficultyScale = math.Inf(1) }, "difficulty_scale", true},
		{"negative weight", func(c *domain.LootContext) {
			c.RarityWeights = map[domain.Rarity]float64{domain.RarityRare: -1}
		}, "rarity_weights", true},
		{"player ref with newline", func(c *domain.LootContext) { c.PlayerRef = "p\n1" }, "player_ref", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := domain.NewLootContext()
			tt.mutate(&lc)

			err := v.ValidateStruct(RollRequest{Context: lc})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FormatValidationError(err), tt.field)
		})
	}
}

func TestValidator_MultiDropConfig(t *testing.T) {
	InitValidator()
	v := GetValidator()

	valid := loot.NewMultiDropConfig()
	valid.Buckets = []loot.Bucket{loot.NewBucket("main", 3)}
	assert.NoError(t, v.ValidateStruct(MultiDropRequest{Context: domain.NewLootContext(), Config: valid}))

	huge := loot.NewMultiDropConfig()
	huge.TotalBaseDrops = MaxMultiDropTotal + 1
	err := v.ValidateStruct(MultiDropRequest{Context: domain.NewLootContext(), Config: huge})
	require.Error(t, err)
	assert.Equal(t, "Must be at most 1000", FormatValidationError(err)["total_base_drops"])

	overflow := []struct {
		name string
		cfg  loot.MultiDropConfig
	}{
		{"total wraps", loot.MultiDropConfig{TotalBaseDrops: math.MaxInt64, TotalVariance: 1}},
		{"bucket wraps", loot.MultiDropConfig{Buckets: []loot.Bucket{{Name: "x", BaseDrops: math.MaxInt64, Variance: 1}}}},
		{"bucket sum wraps", loot.MultiDropConfig{Buckets: []loot.Bucket{{BaseDrops: 600}, {BaseDrops: math.MaxInt64 - 100}}}},
		{"buckets over cap", loot.MultiDropConfig{Buckets: []loot.Bucket{{BaseDrops: 600}, {BaseDrops: 300, Variance: 101}}}},
	}
	for _, tt := range overflow {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(MultiDropRequest{Context: domain.NewLootContext(), Config: tt.cfg})
			require.Error(t, err)
			assert.Contains(t, FormatValidationError(err), "total_base_drops")
		})
	}

	badRarity := loot.NewMultiDropConfig()
	badRarity.Buckets = []loot.Bucket{{Name: "x", BaseDrops: 1, MinimumRarity: 99}}
	err = v.ValidateStruct(MultiDropRequest{Context: domain.NewLootContext(), Config: badRarity})
	require.Error(t, err)
	assert.Equal(t, "Unknown rarity", FormatValidationError(err)["minimum_rarity"])
}

func TestValidator_PickupRequest(t *testing.T) {
	InitValidator()
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(PickupRequest{ItemID: "ember_blade", Rarity: domain.RarityEpic}))

	err := v.ValidateStruct(PickupRequest{Rarity: domain.RarityEpic})
	require.Error(t, err)
	assert.Equal(t, "This field is required", FormatValidationError(err)["item_id"])

	err = v.ValidateStruct(PickupRequest{ItemID: "a", Rarity: domain.Rarity(domain.RarityCount)})
	require.Error(t, err)
	assert.Equal(t, "Unknown rarity", FormatValidationError(err)["rarity"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
