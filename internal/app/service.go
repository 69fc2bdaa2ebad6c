// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/okian/radar/internal/adapters/repository"
	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/dashboard"
	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
)

// ErrNotStarted is returned by Reload before Start.
var ErrNotStarted = errors.New("service not started")

// rejecter is implemented by sources that drop invalid rows while loading.
type rejecter interface {
	Rejected() []error
}

// pather is implemented by file-backed sources.
type pather interface {
	Path() string
}

// Service implements the API dependencies for the alignment dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	source     generator.Source
	calculator *alignment.Calculator

	// State
	started  bool
	rejected []error
	loadedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCalculator sets the alignment calculator.
func WithCalculator(c *alignment.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithSource sets where the dataset is loaded from.
func WithSource(src generator.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the record store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// New constructs a new Service with default configuration: the default
// calculator over a seeded synthetic series kept in memory.
func New(opts ...Option) *Service {
	s := &Service{
		calculator: alignment.NewCalculator(),
		source:     generator.NewSynthetic(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithLogger(s.logger))
	}
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.NewNop()
	}
	return s.logger
}

// Start loads the source into the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting alignment service...")
	if err := s.load(ctx); err != nil {
		return err
	}
	s.started = true

	w := s.calculator.Weights()
	s.logger.Info(ctx, "alignment service started",
		logger.Int("records", s.store.Count(ctx)),
		logger.Int("rejected", len(s.rejected)),
		logger.Float64("weight_sensing", w.Sensing),
		logger.Float64("weight_seizing", w.Seizing),
		logger.Float64("weight_configuring", w.Configuring),
	)
	return nil
}

// Reload re-reads the source and swaps the dataset.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	return s.load(ctx)
}

// load must be called with mu held.
func (s *Service) load(ctx context.Context) error {
	kind := sourceKind(s.source)
	records, err := s.source.Records(ctx)
	if err != nil {
		metrics.RecordDatasetLoad(kind, "error")
		return fmt.Errorf("load %s dataset: %w", kind, err)
	}

	var rejected []error
	if r, ok := s.source.(rejecter); ok {
		rejected = r.Rejected()
	}
	for _, err := range rejected {
		s.logger.Warn(ctx, "record rejected", logger.Error(err))
	}
	metrics.RecordRejectedRecords(len(rejected))

	if err := s.store.Replace(ctx, records); err != nil {
		metrics.RecordDatasetLoad(kind, "error")
		return fmt.Errorf("store %s dataset: %w", kind, err)
	}
	metrics.RecordDatasetLoad(kind, "ok")

	s.rejected = rejected
	s.loadedAt = time.Now()
	return nil
}

func sourceKind(src generator.Source) string {
	switch src.(type) {
	case pather:
		return "file"
	case *generator.Synthetic:
		return "synthetic"
	default:
		return "fixture"
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "alignment service stopped")
}

// Years returns the loaded years in ascending order.
func (s *Service) Years(ctx context.Context) []int {
	return s.store.Years(ctx)
}

// Record returns the raw indicators for year.
func (s *Service) Record(ctx context.Context, year int) (model.MetricRecord, error) {
	return s.store.Get(ctx, year)
}

// Latest returns the record of the most recent year.
func (s *Service) Latest(ctx context.Context) (model.MetricRecord, error) {
	return s.store.Latest(ctx)
}

// Alignment computes the index for a loaded year. The result is never cached.
func (s *Service) Alignment(ctx context.Context, year int) (model.AlignmentResult, error) {
	r, err := s.store.Get(ctx, year)
	if err != nil {
		return model.AlignmentResult{}, err
	}
	return s.compute(ctx, r, nil), nil
}

// Evaluate validates a caller-supplied record and computes its index,
// optionally with custom weights.
func (s *Service) Evaluate(ctx context.Context, raw model.RawRecord, w *alignment.Weights) (model.AlignmentResult, error) {
	r, err := model.NewMetricRecord(raw)
	if err != nil {
		metrics.RecordErrorByType("invalid_input", "warning")
		return model.AlignmentResult{}, err
	}
	if w != nil {
		if err := w.Validate(); err != nil {
			return model.AlignmentResult{}, err
		}
	}
	res := s.compute(ctx, r, w)
	if math.IsInf(res.Score, 0) || math.IsNaN(res.Score) {
		return model.AlignmentResult{}, model.NewInvalidInput(r.Year, "weights", "weighted score is not finite")
	}
	return res, nil
}

func (s *Service) compute(ctx context.Context, r model.MetricRecord, w *alignment.Weights) model.AlignmentResult {
	var res model.AlignmentResult
	if w != nil {
		res = s.calculator.ComputeWith(r, *w)
	} else {
		res = s.calculator.Compute(r)
	}
	metrics.RecordAlignment(res.Status.String(), res.Score)
	s.log().Debug(ctx, "alignment computed",
		logger.Int("year", r.Year),
		logger.Float64("score", res.Score),
		logger.String("status", res.Status.String()),
	)
	return res
}

// View builds the dashboard for year.
func (s *Service) View(ctx context.Context, year int) (dashboard.View, error) {
	// The banner result and the chart must come from the same snapshot.
	records := s.store.All(ctx)
	idx := sort.Search(len(records), func(i int) bool { return records[i].Year >= year })
	if idx == len(records) || records[idx].Year != year {
		return dashboard.View{}, fmt.Errorf("%w: %d", repository.ErrNotFound, year)
	}
	res := s.compute(ctx, records[idx], nil)
	view, err := dashboard.Render(dashboard.Input{
		Records: records,
		Year:    year,
		Result:  res,
	})
	if err != nil {
		return dashboard.View{}, err
	}
	metrics.RecordViewRendered()
	return view, nil
}

// Rejected returns the validation failures from the last load.
func (s *Service) Rejected(_ context.Context) []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]error, len(s.rejected))
	copy(out, s.rejected)
	return out
}

// Calculator exposes the weights and thresholds in use.
func (s *Service) Calculator() *alignment.Calculator {
	return s.calculator
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	w := s.calculator.Weights()
	t := s.calculator.Thresholds()
	stats := map[string]interface{}{
		"started":  s.started,
		"source":   sourceKind(s.source),
		"records":  s.store.Count(ctx),
		"rejected": len(s.rejected),
		"weights":  w,
		"thresholds": map[string]float64{
			"strong":   t.Strong,
			"moderate": t.Moderate,
		},
	}
	if years := s.store.Years(ctx); len(years) > 0 {
		stats["first_year"] = years[0]
		stats["last_year"] = years[len(years)-1]
	}
	if !s.loadedAt.IsZero() {
		stats["loaded_at"] = s.loadedAt.UTC().Format(time.RFC3339)
	}

	metrics.UpdateDatasetRecords(s.store.Count(ctx))
	return stats
}
