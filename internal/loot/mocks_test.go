package loot

import (
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/domain"
)

// MockCatalog is a mock implementation of catalog.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindByRarity(r domain.Rarity, sourceTag domain.Tag) []string {
	args := m.Called(r, sourceTag)
	ids, _ := args.Get(0).([]string)
	return ids
}

func (m *MockCatalog) Resolve(id string) (*domain.ItemDefinition, bool) {
	args := m.Called(id)
	def, _ := args.Get(0).(*domain.ItemDefinition)
	return def, args.Bool(1)
}

// MockSnapshotCatalog is a mock implementation of catalog.Snapshotter
type MockSnapshotCatalog struct {
	MockCatalog
}

func (m *MockSnapshotCatalog) Snapshot() catalog.Catalog {
	args := m.Called()
	c, _ := args.Get(0).(catalog.Catalog)
	return c
}

// MockWeightProvider is a mock implementation of loottable.RarityWeightProvider
type MockWeightProvider struct {
	mock.Mock
}

func (m *MockWeightProvider) BuildRarityWeights(level int, difficulty float64) map[domain.Rarity]float64 {
	args := m.Called(level, difficulty)
	return args.Get(0).(map[domain.Rarity]float64)
}

// scriptedRand replays fixed draws, then repeats its fallbacks.
type scriptedRand struct {
	floats []float64
	ints   []int
	seed   int64

	floatCalls int
}

func (s *scriptedRand) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (s *scriptedRand) Int64() int64 {
	return s.seed
}
