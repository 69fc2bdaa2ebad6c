// Package generator produces demo datasets of yearly capability indicators.
//
// Generation sits behind the Source interface so tests and real data files
// can replace it entirely. The alignment calculator never depends on it.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/radar/internal/domain/model"
)

// Default generation parameters.
const (
	DefaultSeed      int64 = 42
	DefaultStartYear       = 1998
	DefaultEndYear         = 2023
)

// ErrInvalidRange is returned when the year range is empty or reversed.
var ErrInvalidRange = errors.New("invalid year range")

// Source yields the time-indexed dataset the service works on.
type Source interface {
	Records(ctx context.Context) ([]model.MetricRecord, error)
}

// Option applies a configuration option to the Synthetic source.
type Option func(*Synthetic)

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(s *Synthetic) {
		s.seed = seed
	}
}

// WithYears sets the inclusive year range.
func WithYears(start, end int) Option {
	return func(s *Synthetic) {
		s.startYear = start
		s.endYear = end
	}
}

// Synthetic generates noisy linear trends around the original demo baselines.
// Each Records call restarts from the seed, so output depends only on the
// seed and the year range.
type Synthetic struct {
	seed      int64
	startYear int
	endYear   int
}

// NewSynthetic creates a synthetic source.
func NewSynthetic(opts ...Option) *Synthetic {
	s := &Synthetic{
		seed:      DefaultSeed,
		startYear: DefaultStartYear,
		endYear:   DefaultEndYear,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed returns the configured seed.
func (s *Synthetic) Seed() int64 { return s.seed }

// Records generates one record per year. Series are drawn in blocks
// (Sensing, Seizing, Configuring, talent, R&D) so adding a series does not
// perturb the ones before it.
func (s *Synthetic) Records(ctx context.Context) ([]model.MetricRecord, error) {
	if s.startYear <= 0 || s.endYear < s.startYear {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvalidRange, s.startYear, s.endYear)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	n := s.endYear - s.startYear + 1
	rng := rand.New(rand.NewSource(s.seed)) //nolint:gosec // deterministic demo data
	noise := func(sigma float64) float64 { return rng.NormFloat64() * sigma }

	out := make([]model.MetricRecord, n)
	for i := range out {
		out[i].Year = s.startYear + i
	}

	// Sensing
	for i := range out {
		fi := float64(i)
		out[i].MarketIntelligenceIndex = clamp(60+fi*0.8+noise(6), 0, 100)
		out[i].EmergingTechDetectionDays = math.Max(5, 120-fi*2+noise(5))
	}

	// Seizing
	for i := range out {
		fi := float64(i)
		out[i].TimeToMarketWeeks = math.Max(12, 54-fi*0.9+noise(2))
		out[i].CoCreationRevenuePercent = clamp(20+fi*2.2+noise(3), 0, 100)
		out[i].PeripheryDeploymentDays = math.Max(10, 60-fi*0.7+noise(3))
	}

	// Configuring
	for i := range out {
		fi := float64(i)
		out[i].DecentralizationIndex = clamp(40+fi*0.9+noise(4), 0, 100)
		out[i].BlueArmyPlans = int(math.Max(0, math.Round(5+fi*0.9+noise(1.5))))
		out[i].DeroutinizationIndex = clamp(20+fi*1.2+noise(3), 0, 100)
	}

	// International talent, with the 2006-2008 hiring jump.
	for i := range out {
		growth := float64(i) * 1500
		if y := out[i].Year; y >= 2006 && y <= 2008 {
			growth = float64(y-2006) * 8000
		}
		out[i].InternationalTalent = int(math.Max(40000, 46000+growth+noise(3000)))
	}

	// R&D intensity against competitors.
	for i := range out {
		out[i].RnDPercentRevenue = clamp(10+0.1*float64(i)+noise(0.6), 9, 13)
	}
	for i := range out {
		out[i].CompetitorRnDPercent = math.Max(0, 11+noise(0.8))
	}

	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Fixture is a Source over a fixed record set.
type Fixture struct {
	records []model.MetricRecord
}

// NewFixture copies records into a fixed source.
func NewFixture(records ...model.MetricRecord) *Fixture {
	cp := make([]model.MetricRecord, len(records))
	copy(cp, records)
	return &Fixture{records: cp}
}

// Records returns a copy of the fixed records.
func (f *Fixture) Records(_ context.Context) ([]model.MetricRecord, error) {
	cp := make([]model.MetricRecord, len(f.records))
	copy(cp, f.records)
	return cp, nil
}
