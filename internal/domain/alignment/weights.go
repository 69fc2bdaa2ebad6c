package alignment

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel kinds for parameter validation.
var (
	ErrInvalidWeights    = errors.New("invalid weights")
	ErrInvalidThresholds = errors.New("invalid thresholds")
)

// Weights is the relative importance of each capability in the index.
type Weights struct {
	Sensing     float64 `json:"sensing" koanf:"sensing"`
	Seizing     float64 `json:"seizing" koanf:"seizing"`
	Configuring float64 `json:"configuring" koanf:"configuring"`
}

// DefaultWeights returns 0.3 / 0.3 / 0.4.
func DefaultWeights() Weights {
	return Weights{Sensing: 0.3, Seizing: 0.3, Configuring: 0.4}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Sensing + w.Seizing + w.Configuring
}

// Validate rejects negative or non-finite weights. It does not require the
// weights to sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"sensing":     w.Sensing,
		"seizing":     w.Seizing,
		"configuring": w.Configuring,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidWeights, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%g)", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

// Thresholds are the inclusive lower bounds of the Strong and Moderate tiers.
type Thresholds struct {
	Strong   float64 `json:"strong" koanf:"strong"`
	Moderate float64 `json:"moderate" koanf:"moderate"`
}

// DefaultThresholds returns Strong >= 75, Moderate >= 60.
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 75, Moderate: 60}
}

// Validate requires finite bounds with Strong >= Moderate.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.Strong) || math.IsInf(t.Strong, 0) || math.IsNaN(t.Moderate) || math.IsInf(t.Moderate, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidThresholds)
	}
	if t.Strong < t.Moderate {
		return fmt.Errorf("%w: strong (%g) below moderate (%g)", ErrInvalidThresholds, t.Strong, t.Moderate)
	}
	return nil
}
