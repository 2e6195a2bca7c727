package catalog

import "time"

// CatalogSchemaPath is the path (relative to project root) of the item catalog schema.
const CatalogSchemaPath = "configs/schemas/item_catalog.schema.json"

// Query cache defaults
const (
	DefaultQueryCacheSize = 256
	DefaultQueryCacheTTL  = 10 * time.Minute
)

// Error context messages
const (
	ErrContextFailedToLoadCatalog = "failed to load item catalog"
	ErrMsgEmptyItemID             = "item %d has empty id"
	ErrMsgDuplicateItemID         = "duplicate item id %q"
	ErrMsgInvalidRarity           = "item %q lists unknown rarity %d"
)

// Log messages
const (
	LogMsgCatalogLoaded  = "Item catalog loaded"
	LogMsgCatalogIndexed = "Item catalog rarity index built"
)

// Log field keys
const (
	LogFieldItems = "items"
	LogFieldPath  = "path"
)
