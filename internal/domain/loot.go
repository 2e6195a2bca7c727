package domain

// Context defaults applied by NewLootContext.
const (
	DefaultEnemyLevel         = 1
	DefaultDifficultyScale    = 1.0
	DefaultItemLevelJitterMin = -2
	DefaultItemLevelJitterMax = 2
)

// LootContext describes one roll request.
//
// DifficultyScale equal to DefaultDifficultyScale (or not positive) means
// "derive from the current run"; the roll engine then consults its
// difficulty source.
type LootContext struct {
	PlayerRef   string `json:"player_ref,omitempty"`
	EnemyLevel  int    `json:"enemy_level"`
	PlayerLevel int    `json:"player_level,omitempty"`
	WorldTier   int    `json:"world_tier,omitempty"`
	SourceTag   Tag    `json:"source_tag,omitempty"`

	ForcedItemID         string          `json:"forced_item_id,omitempty"`
	ForcedItemDefinition *ItemDefinition `json:"forced_item_definition,omitempty"`

	BaseLegendaryChance float64            `json:"base_legendary_chance"`
	MinimumRarity       Rarity             `json:"minimum_rarity"`
	RarityWeights       map[Rarity]float64 `json:"rarity_weights,omitempty"`
	DifficultyScale     float64            `json:"difficulty_scale"`

	ItemLevelJitterMin int `json:"item_level_jitter_min"`
	ItemLevelJitterMax int `json:"item_level_jitter_max"`
}

// NewLootContext returns a context with the default level, difficulty and jitter.
func NewLootContext() LootContext {
	return LootContext{
		EnemyLevel:         DefaultEnemyLevel,
		MinimumRarity:      RarityCommon,
		DifficultyScale:    DefaultDifficultyScale,
		ItemLevelJitterMin: DefaultItemLevelJitterMin,
		ItemLevelJitterMax: DefaultItemLevelJitterMax,
	}
}

// HasForcedItem reports whether the context bypasses rarity and item resolution.
func (c LootContext) HasForcedItem() bool {
	return c.ForcedItemDefinition != nil || c.ForcedItemID != ""
}

// DerivesDifficulty reports whether DifficultyScale carries the derive sentinel.
func (c LootContext) DerivesDifficulty() bool {
	return c.DifficultyScale == DefaultDifficultyScale || c.DifficultyScale <= 0
}

// JitterBounds returns the item level jitter bounds ordered low to high.
func (c LootContext) JitterBounds() (low, high int) {
	low, high = c.ItemLevelJitterMin, c.ItemLevelJitterMax
	if low > high {
		low, high = high, low
	}
	return low, high
}

// Clone returns a copy that does not share the weight map.
func (c LootContext) Clone() LootContext {
	out := c
	if c.RarityWeights != nil {
		out.RarityWeights = make(map[Rarity]float64, len(c.RarityWeights))
		for r, w := range c.RarityWeights {
			out.RarityWeights[r] = w
		}
	}
	return out
}

// LootDropResult is the outcome of one roll. An empty identity with a valid
// rarity means "no item this time", not a failure.
type LootDropResult struct {
	Rarity     Rarity          `json:"rarity"`
	ItemID     string          `json:"item_id,omitempty"`
	Definition *ItemDefinition `json:"definition,omitempty"`
	ItemLevel  int             `json:"item_level"`
	Seed       int64           `json:"seed"`
}

// IdentityKey is the uniqueness key: the item id, else the definition's id, else "".
func (r LootDropResult) IdentityKey() string {
	if r.ItemID != "" {
		return r.ItemID
	}
	if r.Definition != nil {
		return r.Definition.ID
	}
	return ""
}

// IsEmpty reports whether the result carries no item identity.
func (r LootDropResult) IsEmpty() bool {
	return r.IdentityKey() == ""
}
