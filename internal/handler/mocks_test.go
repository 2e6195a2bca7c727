package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/lootrules"
	"github.com/osse101/LootForge_Go/internal/loottable"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockRoller struct {
	mock.Mock
}

func (m *MockRoller) RollDetailed(ctx context.Context, lc domain.LootContext) loot.Roll {
	args := m.Called(ctx, lc)
	return args.Get(0).(loot.Roll)
}

func (m *MockRoller) RollMultiDrop(ctx context.Context, base domain.LootContext, cfg loot.MultiDropConfig) (*loot.MultiDropResult, error) {
	args := m.Called(ctx, base, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loot.MultiDropResult), args.Error(1)
}

func (m *MockRoller) Table() *loottable.Table {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*loottable.Table)
}

type MockRuleResolver struct {
	mock.Mock
}

func (m *MockRuleResolver) ResolveContext(base domain.LootContext, tags []domain.Tag) domain.LootContext {
	args := m.Called(base, tags)
	return args.Get(0).(domain.LootContext)
}

func (m *MockRuleResolver) Select(tags []domain.Tag) *lootrules.Rule {
	args := m.Called(tags)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*lootrules.Rule)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error) {
	args := m.Called(ctx, playerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerLootStats), args.Error(1)
}

func (m *MockStatsService) RecordPickup(ctx context.Context, playerRef string, def *domain.ItemDefinition, rarity domain.Rarity) (*domain.PlayerLootStats, error) {
	args := m.Called(ctx, playerRef, def, rarity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerLootStats), args.Error(1)
}

func (m *MockStatsService) ResetStats(ctx context.Context, playerRef string) error {
	args := m.Called(ctx, playerRef)
	return args.Error(0)
}

type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context) (ReloadSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(ReloadSummary), args.Error(1)
}

type stubItems map[string]*domain.ItemDefinition

func (s stubItems) Resolve(id string) (*domain.ItemDefinition, bool) {
	def, ok := s[id]
	return def, ok
}

// withPlayer attaches a chi {player} route param to req.
func withPlayer(req *http.Request, player string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("player", player)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
