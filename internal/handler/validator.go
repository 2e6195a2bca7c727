package handler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/loot"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("tag", validateTag)
	_ = v.RegisterValidation("rarity", validateRarity)
	v.RegisterStructValidation(validateLootContext, domain.LootContext{})
	v.RegisterStructValidation(validateMultiDropConfig, loot.MultiDropConfig{})

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	validateOnce.Do(func() {
		if validate == nil {
			InitValidator()
		}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "tag":
			errs[field] = "Invalid tag"
		case "rarity":
			errs[field] = "Unknown rarity"
		case "chance":
			errs[field] = "Must be between 0 and 1"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min", "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateTag accepts dotted tags without whitespace or control characters.
func validateTag(fl validator.FieldLevel) bool {
	tag := fl.Field().String()
	if tag == "" {
		return true
	}
	if len(tag) > MaxTagLength {
		return false
	}
	return !strings.ContainsAny(tag, " \t\r\n\x00")
}

func validateRarity(fl validator.FieldLevel) bool {
	return domain.Rarity(fl.Field().Int()).Valid()
}

func validChance(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

func validateLootContext(sl validator.StructLevel) {
	lc := sl.Current().Interface().(domain.LootContext)

	if len(lc.PlayerRef) > MaxPlayerRefLen || strings.ContainsAny(lc.PlayerRef, "\x00\n\r\t") {
		sl.ReportError(lc.PlayerRef, "player_ref", "PlayerRef", "excludesall", "")
	}
	if lc.EnemyLevel < 0 {
		sl.ReportError(lc.EnemyLevel, "enemy_level", "EnemyLevel", "gte", "0")
	}
	if lc.PlayerLevel < 0 {
		sl.ReportError(lc.PlayerLevel, "player_level", "PlayerLevel", "gte", "0")
	}
	if len(lc.SourceTag) > MaxTagLength {
		sl.ReportError(lc.SourceTag, "source_tag", "SourceTag", "max", fmt.Sprint(MaxTagLength))
	}
	if !validChance(lc.BaseLegendaryChance) {
		sl.ReportError(lc.BaseLegendaryChance, "base_legendary_chance", "BaseLegendaryChance", "chance", "")
	}
	if !lc.MinimumRarity.Valid() {
		sl.ReportError(lc.MinimumRarity, "minimum_rarity", "MinimumRarity", "rarity", "")
	}
	if math.IsNaN(lc.DifficultyScale) || math.IsInf(lc.DifficultyScale, 0) {
		sl.ReportError(lc.DifficultyScale, "difficulty_scale", "DifficultyScale", "number", "")
	}
	for r, w := range lc.RarityWeights {
		if !r.Valid() {
			sl.ReportError(lc.RarityWeights, "rarity_weights", "RarityWeights", "rarity", "")
			break
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			sl.ReportError(lc.RarityWeights, "rarity_weights", "RarityWeights", "gte", "0")
			break
		}
	}
}

// validateMultiDropConfig caps the batch size a single request may ask for.
func validateMultiDropConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(loot.MultiDropConfig)

	if len(cfg.Buckets) > MaxBuckets {
		sl.ReportError(cfg.Buckets, "buckets", "Buckets", "max", fmt.Sprint(MaxBuckets))
	}

	withinCap := loot.WithinDropLimit(cfg.TotalBaseDrops, cfg.TotalVariance, MaxMultiDropTotal)
	remaining := MaxMultiDropTotal
	for _, b := range cfg.Buckets {
		if withinCap && loot.WithinDropLimit(b.BaseDrops, b.Variance, remaining) {
			remaining -= b.BaseDrops + b.Variance
		} else {
			withinCap = false
		}
		if !b.MinimumRarity.Valid() {
			sl.ReportError(b.MinimumRarity, "minimum_rarity", "MinimumRarity", "rarity", "")
		}
	}
	if !withinCap {
		sl.ReportError(cfg.TotalBaseDrops, "total_base_drops", "TotalBaseDrops", "max", fmt.Sprint(MaxMultiDropTotal))
	}
	if cfg.UniquenessRetryCount < 0 || cfg.UniquenessRetryCount > MaxMultiDropTotal {
		sl.ReportError(cfg.UniquenessRetryCount, "uniqueness_retry_count", "UniquenessRetryCount", "max", fmt.Sprint(MaxMultiDropTotal))
	}
}
