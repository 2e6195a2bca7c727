package lootrules

import (
	"sync/atomic"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Holder serves whichever rule set was stored last.
type Holder struct {
	current atomic.Pointer[RuleSet]
}

// NewHolder wraps rs, which may be nil.
func NewHolder(rs *RuleSet) *Holder {
	h := &Holder{}
	h.Store(rs)
	return h
}

// Store replaces the served rule set.
func (h *Holder) Store(rs *RuleSet) {
	h.current.Store(rs)
}

// Rules returns the served rule set. It may be nil.
func (h *Holder) Rules() *RuleSet {
	return h.current.Load()
}

// ResolveContext resolves against the served rule set.
func (h *Holder) ResolveContext(base domain.LootContext, tags []domain.Tag) domain.LootContext {
	return h.Rules().ResolveContext(base, tags)
}

// Select picks the best rule from the served rule set.
func (h *Holder) Select(tags []domain.Tag) *Rule {
	return h.Rules().Select(tags)
}
