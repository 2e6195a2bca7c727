package domain

// RollingWindowSize is the capacity of the recent-drop history buffer.
const RollingWindowSize = 100

// PlayerLootStats is the per-player drop history that feeds pity math.
// It is owned by a stats store and mutated only through it.
//
// LegendariesInWindow always equals the number of true slots in Window, and
// WindowCount saturates at RollingWindowSize.
type PlayerLootStats struct {
	TotalsDroppedByRarity  [RarityCount]int32 `json:"totals_dropped_by_rarity"`
	TotalsPickedUpByRarity [RarityCount]int32 `json:"totals_picked_up_by_rarity"`

	LegendariesDroppedTotal  int32 `json:"legendaries_dropped_total"`
	LegendariesPickedUpTotal int32 `json:"legendaries_picked_up_total"`
	DropsSinceLastLegendary  int32 `json:"drops_since_last_legendary"`

	Window              [RollingWindowSize]bool `json:"window"`
	WindowIndex         int32                   `json:"window_index"`
	WindowCount         int32                   `json:"window_count"`
	LegendariesInWindow int32                   `json:"legendaries_in_window"`

	ItemsPickedUpByID map[string]int32 `json:"items_picked_up_by_id,omitempty"`
}

// NewPlayerLootStats returns an empty stats record.
func NewPlayerLootStats() *PlayerLootStats {
	return &PlayerLootStats{ItemsPickedUpByID: make(map[string]int32)}
}

// AppendRollingEntry pushes one drop outcome into the circular window.
// When the buffer is full the overwritten slot's contribution is removed first.
func (s *PlayerLootStats) AppendRollingEntry(legendary bool) {
	idx := int(s.WindowIndex) % RollingWindowSize
	if idx < 0 {
		idx = 0
	}

	if s.WindowCount >= RollingWindowSize {
		if s.Window[idx] {
			s.LegendariesInWindow--
		}
	} else {
		s.WindowCount++
	}

	s.Window[idx] = legendary
	if legendary {
		s.LegendariesInWindow++
	}
	s.WindowIndex = int32((idx + 1) % RollingWindowSize)
}

// RecordItemDropped updates drop counters, the pity counter and the window.
func (s *PlayerLootStats) RecordItemDropped(result LootDropResult) {
	r := result.Rarity
	if r.Valid() {
		s.TotalsDroppedByRarity[r]++
	}

	legendary := r.IsLegendaryOrAbove()
	if legendary {
		s.LegendariesDroppedTotal++
		s.DropsSinceLastLegendary = 0
	} else {
		s.DropsSinceLastLegendary++
	}
	s.AppendRollingEntry(legendary)
}

// RecordItemPickedUp updates pickup counters. Pickups are independent of
// drop bookkeeping; pity is not affected.
func (s *PlayerLootStats) RecordItemPickedUp(def *ItemDefinition, rarity Rarity) {
	if rarity.Valid() {
		s.TotalsPickedUpByRarity[rarity]++
	}
	if rarity.IsLegendaryOrAbove() {
		s.LegendariesPickedUpTotal++
	}
	if def == nil || def.ID == "" {
		return
	}
	if s.ItemsPickedUpByID == nil {
		s.ItemsPickedUpByID = make(map[string]int32)
	}
	s.ItemsPickedUpByID[def.ID]++
}

// HasPickedUpItemID reports whether the item has ever been picked up.
func (s *PlayerLootStats) HasPickedUpItemID(id string) bool {
	return s.PickupCount(id) > 0
}

// PickupCount returns how many times the item was picked up.
func (s *PlayerLootStats) PickupCount(id string) int32 {
	if s == nil || id == "" {
		return 0
	}
	return s.ItemsPickedUpByID[id]
}

// Reset clears all counters and the window.
func (s *PlayerLootStats) Reset() {
	*s = PlayerLootStats{ItemsPickedUpByID: make(map[string]int32)}
}

// Clone returns a deep copy.
func (s *PlayerLootStats) Clone() *PlayerLootStats {
	if s == nil {
		return nil
	}
	out := *s
	out.ItemsPickedUpByID = make(map[string]int32, len(s.ItemsPickedUpByID))
	for id, n := range s.ItemsPickedUpByID {
		out.ItemsPickedUpByID[id] = n
	}
	return &out
}

// Repair recomputes the derived window fields from the buffer. Used when a
// record is loaded from storage that may have been written by older code.
func (s *PlayerLootStats) Repair() {
	if s.WindowCount < 0 {
		s.WindowCount = 0
	}
	if s.WindowCount > RollingWindowSize {
		s.WindowCount = RollingWindowSize
	}
	if s.WindowIndex < 0 || s.WindowIndex >= RollingWindowSize {
		s.WindowIndex = 0
	}

	var n int32
	for _, legendary := range s.Window {
		if legendary {
			n++
		}
	}
	s.LegendariesInWindow = n
	if s.ItemsPickedUpByID == nil {
		s.ItemsPickedUpByID = make(map[string]int32)
	}
}
