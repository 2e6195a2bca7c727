package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player stats errors
	ErrMsgPlayerNotFound = "player not found"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Configuration errors
	ErrMsgInvalidMultiDropConfig = "invalid multi-drop config"
	ErrMsgInvalidTable           = "invalid loot table"
	ErrMsgInvalidCatalog         = "invalid item catalog"
	ErrMsgInvalidRuleSet         = "invalid loot rule set"
	ErrMsgUnknownRarity          = "unknown rarity"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Configuration errors are detected before any rolling happens
	ErrInvalidMultiDropConfig = errors.New(ErrMsgInvalidMultiDropConfig)
	ErrInvalidTable           = errors.New(ErrMsgInvalidTable)
	ErrInvalidCatalog         = errors.New(ErrMsgInvalidCatalog)
	ErrInvalidRuleSet         = errors.New(ErrMsgInvalidRuleSet)
	ErrUnknownRarity          = errors.New(ErrMsgUnknownRarity)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
