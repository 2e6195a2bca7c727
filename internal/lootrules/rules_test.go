package lootrules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/validation"
)

func tags(s ...string) []domain.Tag {
	out := make([]domain.Tag, len(s))
	for i, v := range s {
		out[i] = domain.Tag(v)
	}
	return out
}

func TestTagQuery_Matches(t *testing.T) {
	tests := []struct {
		name  string
		query TagQuery
		tags  []domain.Tag
		want  bool
	}{
		{"empty never matches", TagQuery{}, tags("Enemy"), false},
		{"all satisfied by descendant", TagQuery{All: tags("Enemy")}, tags("Enemy.Elite"), true},
		{"all missing one", TagQuery{All: tags("Enemy", "Boss")}, tags("Enemy.Elite"), false},
		{"any matches", TagQuery{Any: tags("Chest", "Boss")}, tags("Boss.Dragon"), true},
		{"any none present", TagQuery{Any: tags("Chest")}, tags("Enemy"), false},
		{"none excludes", TagQuery{All: tags("Enemy"), None: tags("Enemy.Minion")}, tags("Enemy.Minion.Rat"), false},
		{"none only", TagQuery{None: tags("Chest")}, tags("Enemy"), true},
		{"parent does not match child query", TagQuery{All: tags("Enemy.Elite")}, tags("Enemy"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(tt.tags))
		})
	}
}

func testRuleSet() *RuleSet {
	rs := NewRuleSet()
	rs.DefaultProfile.BaseLegendaryChance = 0.01
	rs.Rules = []Rule{
		{Name: "elite", Priority: 5, Query: TagQuery{All: tags("Enemy.Elite")}, Profile: Profile{
			BaseLegendaryChance: 0.05, MinimumRarity: domain.RarityRare, DifficultyScale: 2,
			ItemLevelJitterMin: 3, ItemLevelJitterMax: -1,
		}},
		{Name: "elite-dup", Priority: 5, Query: TagQuery{All: tags("Enemy")}, Profile: Profile{MinimumRarity: domain.RarityCommon}},
		{Name: "boss", Priority: 10, Query: TagQuery{All: tags("Boss")}, Profile: Profile{
			BaseLegendaryChance: -1, MinimumRarity: domain.RarityEpic, DifficultyScale: 0,
			RarityWeights: map[domain.Rarity]float64{domain.RarityEpic: -3, domain.RarityLegendary: 2},
		}},
		{Name: "empty", Priority: 100},
	}
	return rs
}

func TestRuleSet_Select(t *testing.T) {
	rs := testRuleSet()

	require.NotNil(t, rs.Select(tags("Enemy.Elite.Fire")))
	assert.Equal(t, "elite", rs.Select(tags("Enemy.Elite.Fire")).Name, "ties keep the first rule")
	assert.Equal(t, "boss", rs.Select(tags("Enemy.Elite", "Boss")).Name)
	assert.Equal(t, "elite-dup", rs.Select(tags("Enemy.Minion")).Name)
	assert.Nil(t, rs.Select(tags("Chest")), "empty query rule never wins")

	var nilSet *RuleSet
	assert.Nil(t, nilSet.Select(tags("Enemy")))
}

func TestRuleSet_ResolveContext(t *testing.T) {
	rs := testRuleSet()
	base := domain.NewLootContext()
	base.EnemyLevel = 30

	t.Run("matching rule", func(t *testing.T) {
		out := rs.ResolveContext(base, tags(" Enemy.Elite.Fire "))
		assert.Equal(t, 30, out.EnemyLevel)
		assert.Equal(t, domain.Tag("Enemy.Elite.Fire"), out.SourceTag)
		assert.InDelta(t, 0.05, out.BaseLegendaryChance, 1e-9)
		assert.Equal(t, domain.RarityRare, out.MinimumRarity)
		assert.InDelta(t, 2.0, out.DifficultyScale, 1e-9)
		assert.Equal(t, -1, out.ItemLevelJitterMin)
		assert.Equal(t, 3, out.ItemLevelJitterMax)
	})

	t.Run("clamps profile values", func(t *testing.T) {
		out := rs.ResolveContext(base, tags("Boss"))
		assert.Zero(t, out.BaseLegendaryChance)
		assert.InDelta(t, domain.DefaultDifficultyScale, out.DifficultyScale, 1e-9)
		assert.Zero(t, out.RarityWeights[domain.RarityEpic])
		assert.InDelta(t, 2.0, out.RarityWeights[domain.RarityLegendary], 1e-9)
	})

	t.Run("default profile", func(t *testing.T) {
		withTag := base
		withTag.SourceTag = "Chest.Gold"
		out := rs.ResolveContext(withTag, tags("Chest"))
		assert.Equal(t, domain.Tag("Chest.Gold"), out.SourceTag)
		assert.InDelta(t, 0.01, out.BaseLegendaryChance, 1e-9)
		assert.Equal(t, domain.RarityCommon, out.MinimumRarity)
	})

	t.Run("base untouched", func(t *testing.T) {
		b := base
		b.RarityWeights = map[domain.Rarity]float64{domain.RarityCommon: 1}
		_ = rs.ResolveContext(b, tags("Boss"))
		assert.Equal(t, map[domain.Rarity]float64{domain.RarityCommon: 1}, b.RarityWeights)
	})

	t.Run("nil rule set uses defaults", func(t *testing.T) {
		var nilSet *RuleSet
		out := nilSet.ResolveContext(base, nil)
		assert.Equal(t, domain.DefaultItemLevelJitterMin, out.ItemLevelJitterMin)
		assert.Equal(t, domain.DefaultItemLevelJitterMax, out.ItemLevelJitterMax)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_profile:
  base_legendary_chance: 0.002
rules:
  - name: elites
    priority: 3
    query:
      all: [Enemy.Elite]
    profile:
      minimum_rarity: Rare
      rarity_weights:
        Epic: 4
        Legendary: 1
`), 0o600))

	rs, err := Load(validation.NewSchemaValidator(), path)
	require.NoError(t, err)

	assert.InDelta(t, 0.002, rs.DefaultProfile.BaseLegendaryChance, 1e-9)
	assert.Equal(t, domain.DefaultItemLevelJitterMax, rs.DefaultProfile.ItemLevelJitterMax)
	require.Len(t, rs.Rules, 1)
	assert.Equal(t, domain.RarityRare, rs.Rules[0].Profile.MinimumRarity)
	assert.InDelta(t, domain.DefaultDifficultyScale, rs.Rules[0].Profile.DifficultyScale, 1e-9)
	assert.InDelta(t, 4.0, rs.Rules[0].Profile.RarityWeights[domain.RarityEpic], 1e-9)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"missing default", `{"rules": []}`},
		{"unknown field", `{"default_profile": {}, "extra": 1}`},
		{"chance above one", `{"default_profile": {"base_legendary_chance": 3}}`},
		{"unknown rarity name", `{"default_profile": {"minimum_rarity": "Shiny"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))
			_, err := Load(validation.NewSchemaValidator(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrContextFailedToLoadRules)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), domain.ErrInvalidRuleSet)

	rs := NewRuleSet()
	rs.DefaultProfile.MinimumRarity = 42
	assert.ErrorIs(t, Validate(rs), domain.ErrInvalidRuleSet)

	rs = NewRuleSet()
	rs.Rules = []Rule{{Profile: Profile{RarityWeights: map[domain.Rarity]float64{-1: 1}}}}
	assert.ErrorIs(t, Validate(rs), domain.ErrInvalidRuleSet)

	assert.NoError(t, Validate(testRuleSet()))
}

func TestHolder(t *testing.T) {
	h := NewHolder(nil)
	base := domain.NewLootContext()
	base.BaseLegendaryChance = 0.3

	out := h.ResolveContext(base, tags("Enemy.Elite"))
	assert.Zero(t, out.BaseLegendaryChance, "nil rule set applies the built-in default profile")
	assert.Nil(t, h.Select(tags("Enemy.Elite")))

	h.Store(testRuleSet())
	require.NotNil(t, h.Select(tags("Enemy.Elite")))
	assert.Equal(t, "elite", h.Select(tags("Enemy.Elite")).Name)
	assert.InDelta(t, 0.05, h.ResolveContext(base, tags("Enemy.Elite")).BaseLegendaryChance, 1e-9)
	assert.Same(t, h.Rules(), h.Rules())
}
