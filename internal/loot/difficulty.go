package loot

import (
	"math"
	"sync/atomic"
)

// DifficultySource supplies the current run's difficulty scalar. It is
// consulted only when a context carries the derive sentinel.
type DifficultySource interface {
	CurrentDifficultyScalar() float64
}

// StaticDifficulty always reports the same scalar.
type StaticDifficulty float64

func (s StaticDifficulty) CurrentDifficultyScalar() float64 {
	return float64(s)
}

// DifficultyCurve maps a run difficulty slider in [0,1] onto
// [1, MaxScalar] linearly. The slider can be moved while rolls are running.
type DifficultyCurve struct {
	maxScalar float64
	alpha     atomic.Uint64
}

// NewDifficultyCurve creates a curve with the slider at alpha. A
// non-positive maxScalar uses DefaultDifficultyMaxScalar.
func NewDifficultyCurve(maxScalar, alpha float64) *DifficultyCurve {
	if maxScalar <= 0 {
		maxScalar = DefaultDifficultyMaxScalar
	}
	c := &DifficultyCurve{maxScalar: maxScalar}
	c.SetAlpha(alpha)
	return c
}

// SetAlpha moves the slider, clamped to [0,1].
func (c *DifficultyCurve) SetAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		alpha = 0
	}
	c.alpha.Store(math.Float64bits(clamp(alpha, 0, 1)))
}

// Alpha returns the slider position.
func (c *DifficultyCurve) Alpha() float64 {
	return math.Float64frombits(c.alpha.Load())
}

// MaxScalar returns the scalar at alpha 1.
func (c *DifficultyCurve) MaxScalar() float64 {
	return c.maxScalar
}

func (c *DifficultyCurve) CurrentDifficultyScalar() float64 {
	return 1 + (c.maxScalar-1)*c.Alpha()
}
