package stats

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
)

func recordCommon(st *domain.PlayerLootStats) {
	st.RecordItemDropped(domain.LootDropResult{Rarity: domain.RarityCommon})
}

func TestMemoryStore_UnknownPlayer(t *testing.T) {
	store := NewMemoryStore(false)

	found, err := store.WithStats(context.Background(), "nobody", recordCommon)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = store.WithStats(context.Background(), "", recordCommon)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_AutoCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(true)

	found, err := store.WithStats(ctx, "p1", recordCommon)
	require.NoError(t, err)
	require.True(t, found)

	var drops int32
	_, _ = store.WithStats(ctx, "p1", func(st *domain.PlayerLootStats) { drops = st.DropsSinceLastLegendary })
	assert.Equal(t, int32(1), drops)
}

func TestMemoryStore_PutCopies(t *testing.T) {
	store := NewMemoryStore(false)
	seed := domain.NewPlayerLootStats()
	seed.DropsSinceLastLegendary = 40
	store.Put("p1", seed)

	seed.DropsSinceLastLegendary = 0

	var got int32
	found, _ := store.WithStats(context.Background(), "p1", func(st *domain.PlayerLootStats) { got = st.DropsSinceLastLegendary })
	assert.True(t, found)
	assert.Equal(t, int32(40), got)

	store.Delete("p1")
	found, _ = store.WithStats(context.Background(), "p1", recordCommon)
	assert.False(t, found)
}

func TestMemoryStore_ConcurrentMutation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(true)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.WithStats(ctx, "p1", recordCommon)
		}()
	}
	wg.Wait()

	_, _ = store.WithStats(ctx, "p1", func(st *domain.PlayerLootStats) {
		assert.Equal(t, int32(200), st.DropsSinceLastLegendary)
		assert.Equal(t, int32(domain.RollingWindowSize), st.WindowCount)
	})
}

func TestPersistentStore_LoadMutateSave(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	existing := domain.NewPlayerLootStats()
	existing.DropsSinceLastLegendary = 5

	repo.On("Load", ctx, "p1").Return(existing, nil)
	repo.On("Save", ctx, "p1", mock.MatchedBy(func(st *domain.PlayerLootStats) bool {
		return st.DropsSinceLastLegendary == 6
	})).Return(nil)

	store := NewPersistentStore(repo, false)
	found, err := store.WithStats(ctx, "p1", recordCommon)

	require.NoError(t, err)
	assert.True(t, found)
	repo.AssertExpectations(t)
}

func TestPersistentStore_NotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("without auto create", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "p1").Return(nil, domain.ErrPlayerNotFound)

		found, err := NewPersistentStore(repo, false).WithStats(ctx, "p1", recordCommon)
		require.NoError(t, err)
		assert.False(t, found)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("with auto create", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "p1").Return(nil, domain.ErrPlayerNotFound)
		repo.On("Save", ctx, "p1", mock.Anything).Return(nil)

		found, err := NewPersistentStore(repo, true).WithStats(ctx, "p1", recordCommon)
		require.NoError(t, err)
		assert.True(t, found)
		repo.AssertExpectations(t)
	})
}

func TestPersistentStore_Errors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	t.Run("load failure skips fn", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "p1").Return(nil, dbErr)

		called := false
		found, err := NewPersistentStore(repo, true).WithStats(ctx, "p1", func(*domain.PlayerLootStats) { called = true })
		require.ErrorIs(t, err, dbErr)
		assert.False(t, found)
		assert.False(t, called)
	})

	t.Run("save failure reports fn ran", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "p1").Return(domain.NewPlayerLootStats(), nil)
		repo.On("Save", ctx, "p1", mock.Anything).Return(dbErr)

		found, err := NewPersistentStore(repo, false).WithStats(ctx, "p1", recordCommon)
		require.ErrorIs(t, err, dbErr)
		assert.True(t, found)
	})
}

func TestService(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(false)
	store.Put("p1", domain.NewPlayerLootStats())
	bus := event.NewMemoryBus()
	var resets []string
	bus.Subscribe(event.StatsReset, func(_ context.Context, evt event.Event) error {
		resets = append(resets, evt.Payload.(event.StatsResetPayloadV1).PlayerRef)
		return nil
	})
	svc := NewService(store, bus)

	_, err := svc.GetStats(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	_, err = svc.GetStats(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.RecordPickup(ctx, "p1", &domain.ItemDefinition{ID: "crown"}, domain.RarityLegendary)
	require.NoError(t, err)
	assert.True(t, updated.HasPickedUpItemID("crown"))

	_, err = svc.RecordPickup(ctx, "p1", nil, domain.Rarity(99))
	assert.ErrorIs(t, err, domain.ErrUnknownRarity)

	require.NoError(t, svc.ResetStats(ctx, "p1"))
	got, err := svc.GetStats(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, got.HasPickedUpItemID("crown"))
	assert.Equal(t, []string{"p1"}, resets)

	assert.ErrorIs(t, svc.ResetStats(ctx, "ghost"), domain.ErrPlayerNotFound)
	assert.Len(t, resets, 1)
}
