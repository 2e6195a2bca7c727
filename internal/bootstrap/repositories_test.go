package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/domain"
)

func TestInitializeStatsStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		storage, err := InitializeStatsStorage(ctx, &config.Config{StatsBackend: config.StatsBackendMemory, StatsAutoCreate: true})
		require.NoError(t, err)
		assert.Nil(t, storage.Pool)
		storage.Close()
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			StatsBackend:    config.StatsBackendSQLite,
			StatsAutoCreate: true,
			SQLitePath:      filepath.Join(t.TempDir(), "nested", "stats.db"),
		}
		storage, err := InitializeStatsStorage(ctx, cfg)
		require.NoError(t, err)
		defer storage.Close()

		require.NotNil(t, storage.Pool)
		assert.NoError(t, storage.Pool.Ping(ctx))

		found, err := storage.Store.WithStats(ctx, "p1", func(s *domain.PlayerLootStats) {
			s.RecordItemDropped(domain.LootDropResult{Rarity: domain.RarityLegendary, ItemID: "ember_blade"})
		})
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := InitializeStatsStorage(ctx, &config.Config{StatsBackend: "redis"})
		assert.ErrorContains(t, err, "redis")
	})
}
