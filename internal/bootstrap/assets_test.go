package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/validation"
)

func shippedPaths() LootDataPaths {
	root := filepath.Join("..", "..")
	return LootDataPaths{
		Table:   filepath.Join(root, "configs", "loot_tables", "default.json"),
		Catalog: filepath.Join(root, "configs", "items.json"),
		Rules:   filepath.Join(root, "configs", "loot_rules.yaml"),
	}
}

func newTestData(t *testing.T, paths LootDataPaths) *LootData {
	t.Helper()
	data := NewLootData(paths, catalog.CacheConfig{Size: 16}, validation.NewSchemaValidator())
	data.Engine = loot.NewEngine(nil, loot.WithCatalog(data.Catalog))
	return data
}

func TestLootData_ReloadShippedConfigs(t *testing.T) {
	data := newTestData(t, shippedPaths())

	summary, err := data.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", summary.Table)
	assert.Equal(t, 3, summary.Pools)
	assert.Equal(t, 8, summary.Items)
	assert.Equal(t, 3, summary.Rules)

	require.NotNil(t, data.Engine.Table())
	def, ok := data.Catalog.Resolve("ember_blade")
	require.True(t, ok)
	assert.Equal(t, "Ember Blade", def.Name())

	rule := data.Rules.Select([]domain.Tag{"Enemy.Boss"})
	require.NotNil(t, rule)
	assert.Equal(t, "bosses", rule.Name)
}

func TestLootData_FailedReloadKeepsPrevious(t *testing.T) {
	paths := shippedPaths()
	data := newTestData(t, paths)
	_, err := data.Reload(context.Background())
	require.NoError(t, err)
	before := data.Engine.Table()

	broken := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"items": [{"id": "a"}, {"id": "a"}]}`), 0o600))
	data.paths.Catalog = broken

	_, err = data.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)

	assert.Same(t, before, data.Engine.Table())
	assert.Equal(t, 8, data.Catalog.Len())
}

func TestLootData_ConcurrentReloadsStayLinked(t *testing.T) {
	data := newTestData(t, shippedPaths())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := data.Reload(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	current := data.Catalog.Load()
	require.NotNil(t, current)
	table := data.Engine.Table()
	linked := 0
	for i := range table.Pools {
		for _, e := range table.CollectEntries(&table.Pools[i]) {
			if e.Definition == nil {
				continue
			}
			def, ok := current.Resolve(e.ItemID)
			require.True(t, ok, e.ItemID)
			assert.Same(t, def, e.Definition, "table entry %s linked against a stale catalog", e.ItemID)
			linked++
		}
	}
	assert.Positive(t, linked)
}

func TestLootData_OptionalInputs(t *testing.T) {
	paths := shippedPaths()
	paths.Catalog = ""
	paths.Rules = ""
	data := newTestData(t, paths)

	summary, err := data.Reload(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Items)
	assert.Zero(t, summary.Rules)
	assert.Nil(t, data.Rules.Rules())
}

func TestLootData_ReloadPublishesTableEvent(t *testing.T) {
	bus := event.NewMemoryBus()
	var tables []string
	bus.Subscribe(event.TableReloaded, func(_ context.Context, evt event.Event) error {
		p, err := event.DecodePayload[event.TableReloadedPayloadV1](evt.Payload)
		require.NoError(t, err)
		tables = append(tables, p.Table)
		return nil
	})

	data := NewLootData(shippedPaths(), catalog.CacheConfig{}, validation.NewSchemaValidator())
	data.Engine = loot.NewEngine(nil, loot.WithCatalog(data.Catalog), loot.WithEventBus(bus))

	_, err := data.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, tables)
}
