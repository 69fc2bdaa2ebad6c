// Package alignment computes the strategic alignment index from a year's
// Sensing, Seizing and Configuring indicators and classifies it.
//
// Everything here is pure: no randomness, no I/O, no shared mutable state.
// A Calculator is safe for concurrent use.
package alignment

import (
	"math"

	"github.com/okian/radar/internal/domain/model"
)

// seizingCeiling is the value time-to-market is subtracted from, so faster
// execution raises the Seizing term. Values above it go negative unclamped.
const seizingCeiling = 100

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights sets the default weight vector.
func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		c.weights = w
	}
}

// WithThresholds sets the classification thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Calculator) {
		c.thresholds = t
	}
}

// Calculator turns a MetricRecord into an AlignmentResult.
type Calculator struct {
	weights    Weights
	thresholds Thresholds
}

// NewCalculator creates a calculator with the default weights and thresholds.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Weights returns the calculator's default weight vector.
func (c *Calculator) Weights() Weights { return c.weights }

// Thresholds returns the calculator's classification thresholds.
func (c *Calculator) Thresholds() Thresholds { return c.thresholds }

// Compute scores r with the calculator's weights.
func (c *Calculator) Compute(r model.MetricRecord) model.AlignmentResult {
	return c.ComputeWith(r, c.weights)
}

// ComputeWith scores r with an explicit weight vector. The weights are used
// as given; they need not sum to 1.
func (c *Calculator) ComputeWith(r model.MetricRecord, w Weights) model.AlignmentResult {
	score := Score(r, w)
	return model.AlignmentResult{
		Score:  score,
		Status: Classify(score, c.thresholds),
	}
}

// Compute scores r with the default thresholds and either the default
// weights or the first weight vector given.
func Compute(r model.MetricRecord, weights ...Weights) model.AlignmentResult {
	c := NewCalculator()
	if len(weights) > 0 {
		return c.ComputeWith(r, weights[0])
	}
	return c.Compute(r)
}

// Score returns the weighted sum rounded to one decimal place.
func Score(r model.MetricRecord, w Weights) float64 {
	raw := r.MarketIntelligenceIndex*w.Sensing +
		(seizingCeiling-r.TimeToMarketWeeks)*w.Seizing +
		r.DecentralizationIndex*w.Configuring
	return Round1(raw)
}

// Classify maps a score onto a tier. Lower bounds are inclusive.
func Classify(score float64, t Thresholds) model.Status {
	switch {
	case score >= t.Strong:
		return model.StatusStrong
	case score >= t.Moderate:
		return model.StatusModerate
	default:
		return model.StatusAtRisk
	}
}

// maxRoundable bounds the magnitudes that are rounded. Beyond it a float64
// carries no fractional digits and scaling could overflow to Inf.
const maxRoundable = 1e15

// Round1 rounds half away from zero to one decimal place. Values that are
// not finite or exceed 1e15 in magnitude are returned unchanged.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.Abs(x) >= maxRoundable {
		return x
	}
	return math.Round(x*10) / 10
}
