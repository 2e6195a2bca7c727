package stats

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// MockRepository implements [repository.Stats].
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error) {
	args := m.Called(ctx, playerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerLootStats), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, playerRef string, stats *domain.PlayerLootStats) error {
	args := m.Called(ctx, playerRef, stats)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, playerRef string) error {
	args := m.Called(ctx, playerRef)
	return args.Error(0)
}
