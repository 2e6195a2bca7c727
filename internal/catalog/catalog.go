package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// Catalog enumerates candidate items for a rarity and resolves ids to
// definitions.
type Catalog interface {
	// FindByRarity returns the ids of items supporting r. A non-empty
	// sourceTag keeps only items tagged at or under it.
	FindByRarity(r domain.Rarity, sourceTag domain.Tag) []string
	Resolve(id string) (*domain.ItemDefinition, bool)
}

// Snapshotter is a Catalog whose contents can change. Snapshot pins the
// current version.
type Snapshotter interface {
	Catalog
	Snapshot() Catalog
}

// CacheConfig sizes the FindByRarity query cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// MemoryCatalog is an in-memory catalog. It is built once and queried many
// times; the per-rarity index is populated on first query.
type MemoryCatalog struct {
	items []*domain.ItemDefinition
	byID  map[string]*domain.ItemDefinition

	indexOnce sync.Once
	byRarity  [domain.RarityCount][]*domain.ItemDefinition

	cache *queryCache
}

// NewMemoryCatalog validates items and builds the id lookup.
func NewMemoryCatalog(items []domain.ItemDefinition, cacheCfg CacheConfig) (*MemoryCatalog, error) {
	c := &MemoryCatalog{
		items: make([]*domain.ItemDefinition, 0, len(items)),
		byID:  make(map[string]*domain.ItemDefinition, len(items)),
		cache: newQueryCache(cacheCfg.Size, cacheCfg.TTL),
	}

	for i := range items {
		def := items[i]
		if def.ID == "" {
			return nil, fmt.Errorf("%w: "+ErrMsgEmptyItemID, domain.ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateItemID, domain.ErrInvalidCatalog, def.ID)
		}
		for _, r := range def.Rarities {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: "+ErrMsgInvalidRarity, domain.ErrInvalidCatalog, def.ID, int(r))
			}
		}
		def.Tags = append([]domain.Tag(nil), def.Tags...)
		for j, tag := range def.Tags {
			def.Tags[j] = domain.NormalizeTag(string(tag))
		}

		c.items = append(c.items, &def)
		c.byID[def.ID] = &def
	}
	return c, nil
}

// Len returns the number of items.
func (c *MemoryCatalog) Len() int {
	return len(c.items)
}

// Resolve returns the definition for id.
func (c *MemoryCatalog) Resolve(id string) (*domain.ItemDefinition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// FindByRarity returns matching ids in catalog order.
func (c *MemoryCatalog) FindByRarity(r domain.Rarity, sourceTag domain.Tag) []string {
	if !r.Valid() {
		return nil
	}
	if ids, ok := c.cache.Get(r, sourceTag); ok {
		return ids
	}

	c.indexOnce.Do(c.buildIndex)

	var ids []string
	for _, def := range c.byRarity[r] {
		if !sourceTag.IsEmpty() && !def.HasTag(sourceTag) {
			continue
		}
		ids = append(ids, def.ID)
	}

	c.cache.Set(r, sourceTag, ids)
	return ids
}

func (c *MemoryCatalog) buildIndex() {
	for _, def := range c.items {
		for _, r := range domain.AllRarities() {
			if def.SupportsRarity(r) {
				c.byRarity[r] = append(c.byRarity[r], def)
			}
		}
	}
	logger.Debug(LogMsgCatalogIndexed, LogFieldItems, len(c.items))
}
