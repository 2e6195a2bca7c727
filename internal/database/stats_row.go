package database

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// StatsRow is the column layout of player_loot_stats shared by the
// postgres and sqlite repositories.
type StatsRow struct {
	DroppedByRarity         []int32
	PickedUpByRarity        []int32
	LegendariesDropped      int32
	LegendariesPickedUp     int32
	DropsSinceLastLegendary int32
	Window                  []bool
	WindowIndex             int32
	WindowCount             int32
	LegendariesInWindow     int32
	ItemsPickedUp           []byte
}

// NewStatsRow flattens a record into columns.
func NewStatsRow(s *domain.PlayerLootStats) (StatsRow, error) {
	items := s.ItemsPickedUpByID
	if items == nil {
		items = map[string]int32{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return StatsRow{}, fmt.Errorf(ErrMsgFailedToEncodeStatsField+": %w", "items_picked_up", err)
	}

	return StatsRow{
		DroppedByRarity:         append([]int32(nil), s.TotalsDroppedByRarity[:]...),
		PickedUpByRarity:        append([]int32(nil), s.TotalsPickedUpByRarity[:]...),
		LegendariesDropped:      s.LegendariesDroppedTotal,
		LegendariesPickedUp:     s.LegendariesPickedUpTotal,
		DropsSinceLastLegendary: s.DropsSinceLastLegendary,
		Window:                  append([]bool(nil), s.Window[:]...),
		WindowIndex:             s.WindowIndex,
		WindowCount:             s.WindowCount,
		LegendariesInWindow:     s.LegendariesInWindow,
		ItemsPickedUp:           itemsJSON,
	}, nil
}

// ToDomain rebuilds the record. Arrays shorter or longer than the current
// layout are truncated or zero-filled, and derived window fields are repaired.
func (r StatsRow) ToDomain() (*domain.PlayerLootStats, error) {
	s := domain.NewPlayerLootStats()
	copy(s.TotalsDroppedByRarity[:], r.DroppedByRarity)
	copy(s.TotalsPickedUpByRarity[:], r.PickedUpByRarity)
	copy(s.Window[:], r.Window)
	s.LegendariesDroppedTotal = r.LegendariesDropped
	s.LegendariesPickedUpTotal = r.LegendariesPickedUp
	s.DropsSinceLastLegendary = r.DropsSinceLastLegendary
	s.WindowIndex = r.WindowIndex
	s.WindowCount = r.WindowCount
	s.LegendariesInWindow = r.LegendariesInWindow

	if len(r.ItemsPickedUp) > 0 {
		if err := json.Unmarshal(r.ItemsPickedUp, &s.ItemsPickedUpByID); err != nil {
			return nil, fmt.Errorf(ErrMsgFailedToDecodeStatsField+": %w", "items_picked_up", err)
		}
	}

	s.Repair()
	return s, nil
}
