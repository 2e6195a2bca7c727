package catalog

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// queryCache memoizes FindByRarity results per (rarity, tag) with a TTL.
// Cached slices are shared and must not be modified by callers.
type queryCache struct {
	lru *expirable.LRU[string, []string]
}

func newQueryCache(size int, ttl time.Duration) *queryCache {
	if size <= 0 {
		size = DefaultQueryCacheSize
	}
	return &queryCache{
		lru: expirable.NewLRU[string, []string](size, nil, ttl),
	}
}

func queryKey(r domain.Rarity, tag domain.Tag) string {
	return strconv.Itoa(int(r)) + "|" + string(tag)
}

func (c *queryCache) Get(r domain.Rarity, tag domain.Tag) ([]string, bool) {
	return c.lru.Get(queryKey(r, tag))
}

func (c *queryCache) Set(r domain.Rarity, tag domain.Tag, ids []string) {
	c.lru.Add(queryKey(r, tag), ids)
}

func (c *queryCache) Len() int {
	return c.lru.Len()
}

func (c *queryCache) Clear() {
	c.lru.Purge()
}
