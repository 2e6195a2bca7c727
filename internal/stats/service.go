package stats

import (
	"context"
	"fmt"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// Service exposes player-facing stats operations on top of a Store.
type Service interface {
	GetStats(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error)
	RecordPickup(ctx context.Context, playerRef string, def *domain.ItemDefinition, rarity domain.Rarity) (*domain.PlayerLootStats, error)
	ResetStats(ctx context.Context, playerRef string) error
}

type service struct {
	store Store
	bus   event.Bus
}

// NewService creates a new stats service. bus may be nil.
func NewService(store Store, bus event.Bus) Service {
	return &service{store: store, bus: bus}
}

// GetStats returns a copy of the player's record.
func (s *service) GetStats(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error) {
	if playerRef == "" {
		return nil, fmt.Errorf("%w: player ref is required", domain.ErrInvalidInput)
	}

	var snapshot *domain.PlayerLootStats
	found, err := s.store.WithStats(ctx, playerRef, func(st *domain.PlayerLootStats) {
		snapshot = st.Clone()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerRef)
	}
	return snapshot, nil
}

// RecordPickup records that the player picked up an item and returns the updated record.
func (s *service) RecordPickup(ctx context.Context, playerRef string, def *domain.ItemDefinition, rarity domain.Rarity) (*domain.PlayerLootStats, error) {
	if playerRef == "" {
		return nil, fmt.Errorf("%w: player ref is required", domain.ErrInvalidInput)
	}
	if !rarity.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownRarity, int(rarity))
	}

	var snapshot *domain.PlayerLootStats
	found, err := s.store.WithStats(ctx, playerRef, func(st *domain.PlayerLootStats) {
		st.RecordItemPickedUp(def, rarity)
		snapshot = st.Clone()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerRef)
	}
	return snapshot, nil
}

// ResetStats clears the player's record in place.
func (s *service) ResetStats(ctx context.Context, playerRef string) error {
	found, err := s.store.WithStats(ctx, playerRef, func(st *domain.PlayerLootStats) {
		st.Reset()
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerRef)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewStatsResetEvent(playerRef)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, LogFieldPlayerRef, playerRef, LogFieldError, err)
		}
	}
	return nil
}
