package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity is the ordered quality tier of a drop. Ordering matters: comparisons
// such as "at least Legendary" are plain integer comparisons.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityPure
	RarityLegendary
	RarityPerfectLegendary
	RarityCelestial
)

// RarityCount is the cardinality of the Rarity enum and sizes per-rarity counters.
const RarityCount = int(RarityCelestial) + 1

var rarityNames = [RarityCount]string{
	"Common",
	"Uncommon",
	"Rare",
	"Epic",
	"Pure",
	"Legendary",
	"PerfectLegendary",
	"Celestial",
}

var rarityTitle = cases.Title(language.English)

// AllRarities returns every rarity in ascending order.
func AllRarities() []Rarity {
	out := make([]Rarity, RarityCount)
	for i := range out {
		out[i] = Rarity(i)
	}
	return out
}

// Valid reports whether r is inside the enum range.
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityCelestial
}

// IsLegendaryOrAbove reports whether r is governed by the pity system.
func (r Rarity) IsLegendaryOrAbove() bool {
	return r >= RarityLegendary
}

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// DisplayName splits the enum name into words, e.g. "Perfect Legendary".
func (r Rarity) DisplayName() string {
	name := r.String()
	var b strings.Builder
	for i, c := range name {
		if i > 0 && c >= 'A' && c <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return rarityTitle.String(strings.ToLower(b.String()))
}

// ParseRarity parses a rarity name, ignoring case, spaces and underscores.
func ParseRarity(s string) (Rarity, error) {
	key := normalizeRarityName(s)
	for i, name := range rarityNames {
		if strings.EqualFold(name, key) {
			return Rarity(i), nil
		}
	}
	return RarityCommon, fmt.Errorf("%w: %q", ErrUnknownRarity, s)
}

func normalizeRarityName(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(s))
}

// MaxRarity returns the higher of two rarities.
func MaxRarity(a, b Rarity) Rarity {
	if a > b {
		return a
	}
	return b
}

func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRarity, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// UnmarshalJSON accepts either the rarity name or its ordinal.
func (r *Rarity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Rarity(n).Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownRarity, n)
		}
		*r = Rarity(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownRarity, string(data))
	}
	return r.UnmarshalText([]byte(s))
}
