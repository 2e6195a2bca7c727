package catalog

import (
	"fmt"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/validation"
)

// File is the on-disk catalog layout.
type File struct {
	Version string                  `json:"version,omitempty"`
	Items   []domain.ItemDefinition `json:"items"`
}

// Load reads a JSON or YAML catalog file and builds a MemoryCatalog.
func Load(v validation.SchemaValidator, path string, cacheCfg CacheConfig) (*MemoryCatalog, error) {
	var file File
	if err := validation.DecodeFile(v, path, CatalogSchemaPath, &file); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadCatalog, path, err)
	}

	c, err := NewMemoryCatalog(file.Items, cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadCatalog, path, err)
	}

	logger.Info(LogMsgCatalogLoaded, LogFieldPath, path, LogFieldItems, c.Len())
	return c, nil
}
