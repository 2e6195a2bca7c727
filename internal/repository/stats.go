package repository

import (
	"context"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Stats defines the interface for player loot stats persistence.
// Load returns domain.ErrPlayerNotFound when no record exists.
type Stats interface {
	Load(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error)
	Save(ctx context.Context, playerRef string, stats *domain.PlayerLootStats) error
	Delete(ctx context.Context, playerRef string) error
}
