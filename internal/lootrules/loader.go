package lootrules

import (
	"fmt"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/validation"
)

// Load reads a JSON or YAML rule set and checks it for structural problems.
func Load(v validation.SchemaValidator, path string) (*RuleSet, error) {
	rs := NewRuleSet()
	if err := validation.DecodeFile(v, path, RuleSetSchemaPath, rs); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadRules, path, err)
	}
	if err := Validate(rs); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadRules, path, err)
	}

	logger.Info(LogMsgRulesLoaded, LogFieldPath, path, LogFieldRules, len(rs.Rules))
	return rs, nil
}

// Validate rejects invalid rarities. Empty queries are kept but logged,
// since they can never match.
func Validate(rs *RuleSet) error {
	if rs == nil {
		return fmt.Errorf("%w: rule set is nil", domain.ErrInvalidRuleSet)
	}
	if err := validateProfile(DefaultRuleName, rs.DefaultProfile); err != nil {
		return err
	}
	for i, rule := range rs.Rules {
		name := rule.Name
		if name == "" {
			name = fmt.Sprintf("rules[%d]", i)
		}
		if err := validateProfile(name, rule.Profile); err != nil {
			return err
		}
		if rule.Query.IsEmpty() {
			logger.Warn(LogMsgEmptyQuery, LogFieldRule, name, LogFieldPriority, rule.Priority)
		}
	}
	return nil
}

func validateProfile(name string, p Profile) error {
	if !p.MinimumRarity.Valid() {
		return fmt.Errorf("%w: %s: minimum rarity %d", domain.ErrInvalidRuleSet, name, int(p.MinimumRarity))
	}
	for r := range p.RarityWeights {
		if !r.Valid() {
			return fmt.Errorf("%w: %s: rarity weight for %d", domain.ErrInvalidRuleSet, name, int(r))
		}
	}
	return nil
}
