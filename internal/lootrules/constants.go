package lootrules

// RuleSetSchemaPath is the path (relative to project root) of the rule set schema.
const RuleSetSchemaPath = "configs/schemas/loot_rules.schema.json"

// Error context messages
const (
	ErrContextFailedToLoadRules = "failed to load loot rules"
)

// Log messages
const (
	LogMsgRulesLoaded  = "Loot source rules loaded"
	LogMsgEmptyQuery   = "Loot rule has an empty query and will never match"
	LogMsgRuleResolved = "Loot context resolved"
)

// Log field keys
const (
	LogFieldRule     = "rule"
	LogFieldRules    = "rules"
	LogFieldPriority = "priority"
	LogFieldPath     = "path"
	LogFieldTags     = "source_tags"
)

// DefaultRuleName labels the default profile in logs.
const DefaultRuleName = "default"
