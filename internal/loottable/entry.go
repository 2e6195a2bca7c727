package loottable

import (
	"encoding/json"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Entry is one weighted, rarity-tagged, independently gated loot candidate.
// Definition is linked from the catalog at load when ItemID resolves.
type Entry struct {
	ItemID     string                 `json:"item_id,omitempty"`
	Definition *domain.ItemDefinition `json:"definition,omitempty"`
	Rarity     domain.Rarity          `json:"rarity"`
	Weight     float64                `json:"weight"`
	DropChance float64                `json:"drop_chance"`
	MinLevel   int                    `json:"min_level,omitempty"`
	MaxLevel   int                    `json:"max_level,omitempty"`
}

// UnmarshalJSON applies DefaultEntryWeight and DefaultEntryDropChance to
// fields the file omits.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	decoded := plain{Weight: DefaultEntryWeight, DropChance: DefaultEntryDropChance}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*e = Entry(decoded)
	return nil
}

// UnmarshalJSON defaults DifficultyMultiplier to 1.
func (r *RarityWeightRow) UnmarshalJSON(data []byte) error {
	type plain RarityWeightRow
	decoded := plain{DifficultyMultiplier: DefaultDifficultyMultiplier}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = RarityWeightRow(decoded)
	return nil
}

// UnmarshalJSON defaults the multipliers to 1.
func (r *RarityScalingRow) UnmarshalJSON(data []byte) error {
	type plain RarityScalingRow
	decoded := plain{
		BaseModifierMultiplier:   DefaultScalingMultiplier,
		AffixModifierMultiplier:  DefaultScalingMultiplier,
		GrantedEffectLevelFactor: DefaultScalingMultiplier,
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = RarityScalingRow(decoded)
	return nil
}

// EffectiveWeight is the weight clamped to be non-negative.
func (e *Entry) EffectiveWeight() float64 {
	return max(0, e.Weight)
}

// EffectiveDropChance is the drop chance clamped to [0,1].
func (e *Entry) EffectiveDropChance() float64 {
	return min(1, max(0, e.DropChance))
}

// AllowsLevel reports whether the entry's level gates admit level.
func (e *Entry) AllowsLevel(level int) bool {
	return withinBounds(level, e.MinLevel, e.MaxLevel)
}

// IdentityKey is the item id, else the linked definition's id.
func (e *Entry) IdentityKey() string {
	if e.ItemID != "" {
		return e.ItemID
	}
	if e.Definition != nil {
		return e.Definition.ID
	}
	return ""
}

// HasItem reports whether the entry references an item at all.
func (e *Entry) HasItem() bool {
	return e.IdentityKey() != ""
}
