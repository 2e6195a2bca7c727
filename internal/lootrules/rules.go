package lootrules

import (
	"encoding/json"
	"math"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// Profile carries the roll parameters a matching rule imposes on a context.
type Profile struct {
	BaseLegendaryChance float64                   `json:"base_legendary_chance"`
	MinimumRarity       domain.Rarity             `json:"minimum_rarity"`
	DifficultyScale     float64                   `json:"difficulty_scale"`
	RarityWeights       map[domain.Rarity]float64 `json:"rarity_weights,omitempty"`
	ItemLevelJitterMin  int                       `json:"item_level_jitter_min"`
	ItemLevelJitterMax  int                       `json:"item_level_jitter_max"`
}

// DefaultProfile returns the profile used when a file omits one.
func DefaultProfile() Profile {
	return Profile{
		MinimumRarity:      domain.RarityCommon,
		DifficultyScale:    domain.DefaultDifficultyScale,
		ItemLevelJitterMin: domain.DefaultItemLevelJitterMin,
		ItemLevelJitterMax: domain.DefaultItemLevelJitterMax,
	}
}

// UnmarshalJSON fills omitted fields from DefaultProfile.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type raw Profile
	out := raw(DefaultProfile())
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = Profile(out)
	return nil
}

// Rule applies Profile to sources whose tags match Query.
type Rule struct {
	Name     string   `json:"name,omitempty"`
	Priority int      `json:"priority"`
	Query    TagQuery `json:"query"`
	Profile  Profile  `json:"profile"`
}

// RuleSet maps loot source tags to roll profiles.
type RuleSet struct {
	DefaultProfile Profile `json:"default_profile"`
	Rules          []Rule  `json:"rules,omitempty"`
}

// NewRuleSet returns an empty rule set with the default profile.
func NewRuleSet() *RuleSet {
	return &RuleSet{DefaultProfile: DefaultProfile()}
}

// Select returns the highest-priority rule whose query matches tags, or nil.
// Ties keep the rule listed first.
func (rs *RuleSet) Select(tags []domain.Tag) *Rule {
	if rs == nil {
		return nil
	}
	var best *Rule
	for i := range rs.Rules {
		rule := &rs.Rules[i]
		if !rule.Query.Matches(tags) {
			continue
		}
		if best == nil || rule.Priority > best.Priority {
			best = rule
		}
	}
	return best
}

// ResolveContext copies the matching profile onto base and returns the
// result. base is not modified. When base has no source tag, the first
// non-empty tag becomes the context's source tag.
func (rs *RuleSet) ResolveContext(base domain.LootContext, tags []domain.Tag) domain.LootContext {
	out := base.Clone()

	normalized := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		if t := domain.NormalizeTag(string(tag)); !t.IsEmpty() {
			normalized = append(normalized, t)
		}
	}
	if out.SourceTag.IsEmpty() && len(normalized) > 0 {
		out.SourceTag = normalized[0]
	}

	profile := DefaultProfile()
	name := DefaultRuleName
	if rs != nil {
		profile = rs.DefaultProfile
	}
	if rule := rs.Select(normalized); rule != nil {
		profile = rule.Profile
		name = rule.Name
	}

	profile.apply(&out)
	logger.Debug(LogMsgRuleResolved, LogFieldRule, name, LogFieldTags, normalized)
	return out
}

func (p Profile) apply(c *domain.LootContext) {
	c.BaseLegendaryChance = math.Max(0, p.BaseLegendaryChance)
	c.MinimumRarity = p.MinimumRarity
	c.DifficultyScale = p.DifficultyScale
	if c.DifficultyScale <= 0 {
		c.DifficultyScale = domain.DefaultDifficultyScale
	}

	c.RarityWeights = nil
	if len(p.RarityWeights) > 0 {
		c.RarityWeights = make(map[domain.Rarity]float64, len(p.RarityWeights))
		for r, w := range p.RarityWeights {
			c.RarityWeights[r] = math.Max(0, w)
		}
	}

	c.ItemLevelJitterMin, c.ItemLevelJitterMax = p.ItemLevelJitterMin, p.ItemLevelJitterMax
	if c.ItemLevelJitterMin > c.ItemLevelJitterMax {
		c.ItemLevelJitterMin, c.ItemLevelJitterMax = c.ItemLevelJitterMax, c.ItemLevelJitterMin
	}
}
