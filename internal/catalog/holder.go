package catalog

import (
	"sync/atomic"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Holder serves whichever catalog was stored last. A nil catalog has no items.
type Holder struct {
	current atomic.Pointer[MemoryCatalog]
}

// NewHolder wraps c.
func NewHolder(c *MemoryCatalog) *Holder {
	h := &Holder{}
	h.Store(c)
	return h
}

// Store replaces the served catalog.
func (h *Holder) Store(c *MemoryCatalog) {
	h.current.Store(c)
}

// Load returns the served catalog.
func (h *Holder) Load() *MemoryCatalog {
	return h.current.Load()
}

// Snapshot returns the served catalog as a Catalog, or nil when none is
// stored. Callers that query more than once use it to see one version.
func (h *Holder) Snapshot() Catalog {
	if c := h.Load(); c != nil {
		return c
	}
	return nil
}

// Len returns the number of items in the served catalog.
func (h *Holder) Len() int {
	if c := h.Load(); c != nil {
		return c.Len()
	}
	return 0
}

func (h *Holder) FindByRarity(r domain.Rarity, sourceTag domain.Tag) []string {
	if c := h.Load(); c != nil {
		return c.FindByRarity(r, sourceTag)
	}
	return nil
}

func (h *Holder) Resolve(id string) (*domain.ItemDefinition, bool) {
	if c := h.Load(); c != nil {
		return c.Resolve(id)
	}
	return nil, false
}
