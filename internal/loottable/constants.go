package loottable

// ============================================================================
// Entry Defaults
// ============================================================================

// DefaultEntryWeight is applied when a table file omits an entry's weight.
const DefaultEntryWeight = 1.0

// DefaultEntryDropChance is applied when a table file omits an entry's drop chance.
const DefaultEntryDropChance = 1.0

// DefaultDifficultyMultiplier is applied when a rarity weight row omits it.
const DefaultDifficultyMultiplier = 1.0

// DefaultScalingMultiplier is the neutral value for rarity scaling multipliers.
const DefaultScalingMultiplier = 1.0

// ============================================================================
// Configuration
// ============================================================================

// LootTableSchemaPath is the path (relative to project root) of the loot table schema.
const LootTableSchemaPath = "configs/schemas/loot_table.schema.json"

// ============================================================================
// Error Messages
// ============================================================================

// Error context messages for wrapped errors during loot table loading
const (
	ErrContextFailedToLoadTable  = "failed to load loot table"
	ErrContextUnknownEntrySet    = "pool %q references unknown entry set %q"
	ErrContextEntryMissingItem   = "%s entry %d has neither item_id nor definition"
	ErrContextInvalidLevelBounds = "%s has min level %d above max level %d"
	ErrContextInvalidTierBounds  = "pool %q has min world tier %d above max world tier %d"
	ErrContextNoPools            = "table %q defines no pools"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgTableLoaded        = "Loot table loaded"
	LogMsgUnresolvedItem     = "Loot entry item not found in catalog"
	LogMsgNegativeValue      = "Negative loot table value clamped to zero"
	LogMsgDuplicateStatRow   = "Duplicate stat scaling row ignored"
	LogMsgLegendaryWeightRow = "Legendary rarity weight row ignored; legendary is governed by pity"
	LogMsgUnusedEntrySet     = "Entry set not referenced by any pool"
)

// Log field keys for structured logging
const (
	LogFieldTable     = "table"
	LogFieldPool      = "pool"
	LogFieldEntrySet  = "entry_set"
	LogFieldItem      = "item"
	LogFieldAttribute = "attribute"
	LogFieldField     = "field"
	LogFieldPools     = "pools"
	LogFieldEntries   = "entries"
)
