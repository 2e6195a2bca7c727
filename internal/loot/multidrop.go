package loot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// Bucket is a sub-quota of a multi-drop with its own rarity floor and
// uniqueness rules.
type Bucket struct {
	Name                string        `json:"name,omitempty"`
	BaseDrops           int           `json:"base_drops"`
	Variance            int           `json:"variance"`
	MinimumRarity       domain.Rarity `json:"minimum_rarity"`
	UniqueWithinBucket  bool          `json:"unique_within_bucket"`
	UniqueAcrossBuckets bool          `json:"unique_across_buckets"`
}

// NewBucket returns a bucket with the default uniqueness flags.
func NewBucket(name string, baseDrops int) Bucket {
	return Bucket{Name: name, BaseDrops: baseDrops, UniqueAcrossBuckets: DefaultUniqueAcrossBuckets}
}

// UnmarshalJSON defaults UniqueAcrossBuckets to true.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	type plain Bucket
	decoded := plain{UniqueAcrossBuckets: DefaultUniqueAcrossBuckets}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*b = Bucket(decoded)
	return nil
}

// MultiDropConfig describes a batch roll. A zero TotalBaseDrops lets each
// bucket decide its own count.
type MultiDropConfig struct {
	TotalBaseDrops       int      `json:"total_base_drops"`
	TotalVariance        int      `json:"total_variance"`
	Buckets              []Bucket `json:"buckets,omitempty"`
	ShuffleBuckets       bool     `json:"shuffle_buckets"`
	RequireTotalUnique   bool     `json:"require_total_unique"`
	UniquenessRetryCount int      `json:"uniqueness_retry_count"`
	LogDiagnostics       bool     `json:"log_diagnostics"`
}

// NewMultiDropConfig returns a config with the default shuffle and retry budget.
func NewMultiDropConfig() MultiDropConfig {
	return MultiDropConfig{
		ShuffleBuckets:       DefaultShuffleBuckets,
		UniquenessRetryCount: DefaultUniquenessRetryCount,
	}
}

// UnmarshalJSON applies the NewMultiDropConfig defaults to omitted fields.
func (c *MultiDropConfig) UnmarshalJSON(data []byte) error {
	type plain MultiDropConfig
	decoded := plain(NewMultiDropConfig())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = MultiDropConfig(decoded)
	return nil
}

// Validate rejects negative or oversized counts and empty plans.
func (c MultiDropConfig) Validate() error {
	if c.TotalBaseDrops < 0 || c.TotalVariance < 0 {
		return fmt.Errorf("%w: "+ErrMsgNegativeTotal, domain.ErrInvalidMultiDropConfig, c.TotalBaseDrops, c.TotalVariance)
	}
	if !WithinDropLimit(c.TotalBaseDrops, c.TotalVariance, MaxDropsPerCall) {
		return fmt.Errorf("%w: "+ErrMsgTotalTooLarge, domain.ErrInvalidMultiDropConfig, c.TotalBaseDrops, c.TotalVariance, MaxDropsPerCall)
	}
	for _, b := range c.Buckets {
		if b.BaseDrops < 0 || b.Variance < 0 {
			return fmt.Errorf("%w: "+ErrMsgNegativeBucket, domain.ErrInvalidMultiDropConfig, b.Name, b.BaseDrops, b.Variance)
		}
		if !WithinDropLimit(b.BaseDrops, b.Variance, MaxDropsPerCall) {
			return fmt.Errorf("%w: "+ErrMsgBucketTooLarge, domain.ErrInvalidMultiDropConfig, b.Name, b.BaseDrops, b.Variance, MaxDropsPerCall)
		}
	}
	if len(c.Buckets) == 0 && c.TotalBaseDrops <= 0 {
		return fmt.Errorf("%w: "+ErrMsgEmptyConfig, domain.ErrInvalidMultiDropConfig)
	}
	return nil
}

// Diagnostic reports a unit skipped because every attempt was a duplicate.
type Diagnostic struct {
	Bucket   string `json:"bucket"`
	Unit     int    `json:"unit"`
	Attempts int    `json:"attempts"`
}

// MultiDropResult is the outcome of RollMultiDrop.
type MultiDropResult struct {
	TotalTarget int                     `json:"total_target"`
	Results     []domain.LootDropResult `json:"results"`
	Diagnostics []Diagnostic            `json:"diagnostics,omitempty"`
}

// RollMultiDrop rolls a bucketed batch against one table snapshot. An invalid
// config fails before any roll and touches no stats.
func (e *Engine) RollMultiDrop(ctx context.Context, base domain.LootContext, cfg MultiDropConfig) (*MultiDropResult, error) {
	log := logger.FromContext(ctx)
	if err := cfg.Validate(); err != nil {
		log.Warn(LogMsgInvalidMultiDrop, LogFieldError, err)
		return nil, err
	}

	table := e.Table()
	out := &MultiDropResult{TotalTarget: rollCount(e.rng, cfg.TotalBaseDrops, cfg.TotalVariance)}
	full := func() bool { return out.TotalTarget > 0 && len(out.Results) >= out.TotalTarget }

	buckets := append([]Bucket(nil), cfg.Buckets...)
	if cfg.ShuffleBuckets {
		for i := len(buckets) - 1; i > 0; i-- {
			j := e.rng.IntN(i + 1)
			buckets[i], buckets[j] = buckets[j], buckets[i]
		}
	}

	retries := max(0, cfg.UniquenessRetryCount)
	globalSeen := make(map[string]struct{})

	for _, bucket := range buckets {
		if full() {
			break
		}

		target := rollCount(e.rng, bucket.BaseDrops, bucket.Variance)
		if out.TotalTarget > 0 {
			target = min(target, out.TotalTarget-len(out.Results))
		}

		bucketCtx := base
		bucketCtx.MinimumRarity = domain.MaxRarity(base.MinimumRarity, bucket.MinimumRarity)
		trackGlobal := bucket.UniqueAcrossBuckets || cfg.RequireTotalUnique
		bucketSeen := make(map[string]struct{})

		for unit := 0; unit < target && !full(); unit++ {
			accepted := false
			for attempt := 0; attempt <= retries; attempt++ {
				candidate := e.roll(ctx, table, bucketCtx).Result
				key := candidate.IdentityKey()

				if key != "" {
					_, inBucket := bucketSeen[key]
					_, inGlobal := globalSeen[key]
					if (bucket.UniqueWithinBucket && inBucket) || (trackGlobal && inGlobal) {
						continue
					}
					if bucket.UniqueWithinBucket {
						bucketSeen[key] = struct{}{}
					}
					if trackGlobal {
						globalSeen[key] = struct{}{}
					}
				}

				out.Results = append(out.Results, candidate)
				accepted = true
				break
			}

			if !accepted {
				e.reportExhausted(ctx, cfg, out, bucket.Name, unit, retries+1)
			}
		}
	}

	if remaining := out.TotalTarget - len(out.Results); remaining > 0 {
		log.Debug(LogMsgMultiDropTopUp, LogFieldRemaining, remaining)
		for i := 0; i < remaining; i++ {
			out.Results = append(out.Results, e.roll(ctx, table, base).Result)
		}
	}

	e.publish(ctx, event.NewMultiDropCompletedEvent(base.PlayerRef, out.TotalTarget, len(out.Results), len(out.Diagnostics)))
	return out, nil
}

func (e *Engine) reportExhausted(ctx context.Context, cfg MultiDropConfig, out *MultiDropResult, bucket string, unit, attempts int) {
	out.Diagnostics = append(out.Diagnostics, Diagnostic{Bucket: bucket, Unit: unit, Attempts: attempts})
	if cfg.LogDiagnostics {
		logger.FromContext(ctx).Warn(LogMsgUniquenessExhausted, LogFieldBucket, bucket, LogFieldUnit, unit, LogFieldAttempts, attempts)
	}
	e.publish(ctx, event.NewUniquenessExhaustedEvent(bucket, unit, attempts))
}

// WithinDropLimit reports whether base and variance are each in [0, limit]
// and base+variance <= limit, without overflowing.
func WithinDropLimit(base, variance, limit int) bool {
	if base < 0 || variance < 0 || base > limit || variance > limit {
		return false
	}
	return base <= limit-variance
}

// rollCount jitters base by a uniform integer in [-variance, variance],
// floored at 0.
func rollCount(rng RandomSource, base, variance int) int {
	base = max(0, base)
	variance = max(0, variance)
	if variance == 0 {
		return base
	}
	if variance > math.MaxInt32 {
		variance = math.MaxInt32
	}
	delta := rng.IntN(2*variance+1) - variance
	return max(0, base+delta)
}
