package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/validation"
)

func testItems() []domain.ItemDefinition {
	return []domain.ItemDefinition{
		{ID: "ember_blade", Tags: []domain.Tag{"Enemy.Elite.Fire"}, Rarities: []domain.Rarity{domain.RarityEpic, domain.RarityLegendary}},
		{ID: "oak_staff", Tags: []domain.Tag{"Enemy"}, Rarities: []domain.Rarity{domain.RarityEpic}},
		{ID: "pebble"},
	}
}

func TestMemoryCatalog_FindByRarity(t *testing.T) {
	c, err := NewMemoryCatalog(testItems(), CacheConfig{Size: 8, TTL: time.Minute})
	require.NoError(t, err)

	assert.Equal(t, []string{"ember_blade", "oak_staff", "pebble"}, c.FindByRarity(domain.RarityEpic, ""))
	assert.Equal(t, []string{"ember_blade", "pebble"}, c.FindByRarity(domain.RarityLegendary, ""))
	assert.Equal(t, []string{"ember_blade"}, c.FindByRarity(domain.RarityEpic, "Enemy.Elite"))
	assert.Equal(t, []string{"ember_blade", "oak_staff"}, c.FindByRarity(domain.RarityEpic, "Enemy"))
	assert.Empty(t, c.FindByRarity(domain.RarityEpic, "Chest"))
	assert.Nil(t, c.FindByRarity(domain.Rarity(42), ""))
}

func TestMemoryCatalog_CachesQueries(t *testing.T) {
	c, err := NewMemoryCatalog(testItems(), CacheConfig{Size: 8, TTL: time.Minute})
	require.NoError(t, err)

	first := c.FindByRarity(domain.RarityEpic, "Enemy")
	assert.Equal(t, 1, c.cache.Len())

	second := c.FindByRarity(domain.RarityEpic, "Enemy")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.cache.Len())

	c.FindByRarity(domain.RarityCommon, "")
	assert.Equal(t, 2, c.cache.Len())
}

func TestMemoryCatalog_Resolve(t *testing.T) {
	c, err := NewMemoryCatalog(testItems(), CacheConfig{})
	require.NoError(t, err)

	def, ok := c.Resolve("oak_staff")
	require.True(t, ok)
	assert.Equal(t, "oak_staff", def.ID)

	_, ok = c.Resolve("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestNewMemoryCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.ItemDefinition
	}{
		{"empty id", []domain.ItemDefinition{{ID: ""}}},
		{"duplicate id", []domain.ItemDefinition{{ID: "a"}, {ID: "a"}}},
		{"bad rarity", []domain.ItemDefinition{{ID: "a", Rarities: []domain.Rarity{99}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMemoryCatalog(tt.items, CacheConfig{})
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestNewMemoryCatalog_DoesNotMutateInput(t *testing.T) {
	items := []domain.ItemDefinition{{ID: "a", Tags: []domain.Tag{" Enemy.Elite. "}}}

	c, err := NewMemoryCatalog(items, CacheConfig{})
	require.NoError(t, err)

	assert.Equal(t, domain.Tag(" Enemy.Elite. "), items[0].Tags[0])
	def, _ := c.Resolve("a")
	assert.Equal(t, domain.Tag("Enemy.Elite"), def.Tags[0])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - id: ember_blade
    display_name: Ember Blade
    tags: [Enemy.Elite.Fire]
    rarities: [Epic, Legendary]
  - id: pebble
`), 0o600))

	c, err := Load(validation.NewSchemaValidator(), path, CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"ember_blade", "pebble"}, c.FindByRarity(domain.RarityLegendary, ""))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"items": [{"id": "a"}, {"id": "a"}]}`), 0o600))
	_, err = Load(validation.NewSchemaValidator(), bad, CacheConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestHolder(t *testing.T) {
	h := NewHolder(nil)
	assert.Zero(t, h.Len())
	assert.Nil(t, h.FindByRarity(domain.RarityEpic, ""))
	_, ok := h.Resolve("ember_blade")
	assert.False(t, ok)

	c, err := NewMemoryCatalog(testItems(), CacheConfig{})
	require.NoError(t, err)
	h.Store(c)

	var _ Catalog = h
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"ember_blade"}, h.FindByRarity(domain.RarityEpic, "Enemy.Elite"))
	def, ok := h.Resolve("oak_staff")
	require.True(t, ok)
	assert.Equal(t, "oak_staff", def.ID)
}

func TestHolder_Snapshot(t *testing.T) {
	h := NewHolder(nil)
	assert.Nil(t, h.Snapshot())

	first, err := NewMemoryCatalog(testItems(), CacheConfig{})
	require.NoError(t, err)
	h.Store(first)
	snap := h.Snapshot()

	second, err := NewMemoryCatalog([]domain.ItemDefinition{{ID: "other"}}, CacheConfig{})
	require.NoError(t, err)
	h.Store(second)

	_, ok := snap.Resolve("oak_staff")
	assert.True(t, ok, "snapshot keeps the version it pinned")
	_, ok = h.Resolve("oak_staff")
	assert.False(t, ok)

	var _ Snapshotter = h
}
