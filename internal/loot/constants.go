package loot

// Pity defaults
const (
	DefaultSoftPityStart         = 20
	DefaultSoftPitySlope         = 0.005
	DefaultHardPityDrops         = 70
	DefaultMaxLegendaryChance    = 0.25
	DefaultStarvedWindowBonus    = 0.02
	DefaultStarvedWindowMinCount = 20
)

// Multi-drop defaults
const (
	DefaultUniquenessRetryCount = 8
	DefaultShuffleBuckets       = true
	DefaultUniqueAcrossBuckets  = true

	// MaxDropsPerCall bounds every count a MultiDropConfig may carry, and
	// the sum of base and variance.
	MaxDropsPerCall = 10000
)

// DefaultDifficultyMaxScalar is the difficulty scalar at a fully raised run
// difficulty slider.
const DefaultDifficultyMaxScalar = 100.0

// Stage names the fallback step that produced a drop's identity.
type Stage string

// Fallback stages, in evaluation order
const (
	StageForced     Stage = "forced"
	StagePoolRarity Stage = "pool_rarity"
	StagePoolAny    Stage = "pool_any"
	StageSuppressed Stage = "suppressed"
	StageTableWide  Stage = "table_wide"
	StageCatalog    Stage = "catalog"
	StageNone       Stage = "none"
)

// Error message formats
const (
	ErrMsgNegativeTotal  = "negative total base drops (%d) or variance (%d)"
	ErrMsgNegativeBucket = "bucket %q has negative base drops (%d) or variance (%d)"
	ErrMsgEmptyConfig    = "no buckets and total base drops <= 0"
	ErrMsgTotalTooLarge  = "total base drops (%d) plus variance (%d) exceeds %d"
	ErrMsgBucketTooLarge = "bucket %q base drops (%d) plus variance (%d) exceeds %d"
)

// Log messages
const (
	LogMsgStatsUnavailable     = "Loot stats unavailable, rolling without pity"
	LogMsgStatsSaveFailed      = "Loot stats could not be saved after roll"
	LogMsgDropSuppressed       = "Loot drop suppressed by drop chance"
	LogMsgNoItemResolved       = "Loot roll resolved no item"
	LogMsgUniquenessExhausted  = "Loot multi-drop uniqueness exhausted"
	LogMsgInvalidMultiDrop     = "Loot multi-drop config rejected"
	LogMsgMultiDropTopUp       = "Loot multi-drop topping up to total target"
	LogMsgTableSwapped         = "Loot table swapped"
	LogMsgEventPublishFailed   = "Loot event publish failed"
	LogMsgForcedItemUnresolved = "Forced item id is not in the catalog"
)

// Log field keys
const (
	LogFieldPlayer    = "player_ref"
	LogFieldRarity    = "rarity"
	LogFieldStage     = "stage"
	LogFieldBucket    = "bucket"
	LogFieldUnit      = "unit"
	LogFieldAttempts  = "attempts"
	LogFieldTable     = "table"
	LogFieldPools     = "pools"
	LogFieldItemID    = "item_id"
	LogFieldSourceTag = "source_tag"
	LogFieldRemaining = "remaining"
	LogFieldError     = "error"
	LogFieldEventType = "event_type"
)
