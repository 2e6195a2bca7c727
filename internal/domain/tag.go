package domain

import "strings"

// Tag is a dot-separated hierarchical tag such as "Enemy.Elite.Fire".
type Tag string

// TagSeparator separates tag levels.
const TagSeparator = "."

// NormalizeTag trims whitespace and stray separators.
func NormalizeTag(s string) Tag {
	return Tag(strings.Trim(strings.TrimSpace(s), TagSeparator))
}

// IsEmpty reports whether the tag is blank.
func (t Tag) IsEmpty() bool {
	return t == ""
}

// IsUnder reports whether t equals parent or is a descendant of it.
// "Enemy.Elite.Fire" is under "Enemy.Elite" and "Enemy", but not under "Enemy.El".
func (t Tag) IsUnder(parent Tag) bool {
	if parent == "" {
		return false
	}
	if t == parent {
		return true
	}
	return strings.HasPrefix(string(t), string(parent)+TagSeparator)
}

// Leaf returns the last segment of the tag.
func (t Tag) Leaf() string {
	s := string(t)
	if i := strings.LastIndex(s, TagSeparator); i >= 0 {
		return s[i+1:]
	}
	return s
}

// HasAnyUnder reports whether any tag in tags is under parent.
func HasAnyUnder(tags []Tag, parent Tag) bool {
	for _, t := range tags {
		if t.IsUnder(parent) {
			return true
		}
	}
	return false
}
