package lootrules

import "github.com/osse101/LootForge_Go/internal/domain"

// TagQuery matches a set of source tags. A source tag satisfies a query tag
// when it is the same tag or a descendant of it.
type TagQuery struct {
	All  []domain.Tag `json:"all,omitempty"`
	Any  []domain.Tag `json:"any,omitempty"`
	None []domain.Tag `json:"none,omitempty"`
}

// IsEmpty reports whether the query has no clauses. Empty queries never match.
func (q TagQuery) IsEmpty() bool {
	return len(q.All) == 0 && len(q.Any) == 0 && len(q.None) == 0
}

// Matches evaluates the query against tags.
func (q TagQuery) Matches(tags []domain.Tag) bool {
	if q.IsEmpty() {
		return false
	}
	for _, want := range q.All {
		if !domain.HasAnyUnder(tags, want) {
			return false
		}
	}
	if len(q.Any) > 0 {
		matched := false
		for _, want := range q.Any {
			if domain.HasAnyUnder(tags, want) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, banned := range q.None {
		if domain.HasAnyUnder(tags, banned) {
			return false
		}
	}
	return true
}
