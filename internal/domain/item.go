package domain

// ItemDefinition describes an item that can be produced by a drop.
// An empty Rarities list means the item supports every rarity.
type ItemDefinition struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
	Rarities    []Rarity `json:"rarities,omitempty"`
}

// SupportsRarity reports whether the item can drop at rarity r.
func (d *ItemDefinition) SupportsRarity(r Rarity) bool {
	if d == nil {
		return false
	}
	if len(d.Rarities) == 0 {
		return true
	}
	for _, supported := range d.Rarities {
		if supported == r {
			return true
		}
	}
	return false
}

// HasTag reports whether one of the item's tags is under tag.
func (d *ItemDefinition) HasTag(tag Tag) bool {
	if d == nil {
		return false
	}
	return HasAnyUnder(d.Tags, tag)
}

// Name returns the display name, falling back to the id.
func (d *ItemDefinition) Name() string {
	if d == nil {
		return ""
	}
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.ID
}
