// Package repository defines the year-indexed metric store and its errors.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
)

// MemoryStore is an in-memory Store. Readers never block each other; a
// Replace publishes a new snapshot under the write lock.
type MemoryStore struct {
	mu     sync.RWMutex
	byYear map[int]model.MetricRecord
	years  []int // ascending

	logger logger.Logger
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byYear: make(map[int]model.MetricRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps the dataset. On a duplicate year nothing changes.
func (s *MemoryStore) Replace(ctx context.Context, records []model.MetricRecord) error {
	start := time.Now()

	byYear := make(map[int]model.MetricRecord, len(records))
	years := make([]int, 0, len(records))
	for _, r := range records {
		if _, dup := byYear[r.Year]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateYear, r.Year)
		}
		byYear[r.Year] = r
		years = append(years, r.Year)
	}
	sort.Ints(years)

	s.mu.Lock()
	s.byYear = byYear
	s.years = years
	s.mu.Unlock()

	metrics.UpdateDatasetRecords(len(years))
	metrics.RecordStoreLatency("replace", float64(time.Since(start).Microseconds())/1000)
	if s.logger != nil {
		s.logger.Debug(ctx, "dataset replaced", logger.Int("records", len(years)))
	}
	return nil
}

// Get returns the record for year.
func (s *MemoryStore) Get(_ context.Context, year int) (model.MetricRecord, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("get", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.RLock()
	r, ok := s.byYear[year]
	s.mu.RUnlock()
	if !ok {
		return model.MetricRecord{}, fmt.Errorf("%w: %d", ErrNotFound, year)
	}
	return r, nil
}

// Years returns a copy of the ascending year index.
func (s *MemoryStore) Years(_ context.Context) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// All returns every record ordered by year.
func (s *MemoryStore) All(_ context.Context) []model.MetricRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MetricRecord, len(s.years))
	for i, y := range s.years {
		out[i] = s.byYear[y]
	}
	return out
}

// Latest returns the most recent year's record.
func (s *MemoryStore) Latest(_ context.Context) (model.MetricRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.years) == 0 {
		return model.MetricRecord{}, ErrEmpty
	}
	return s.byYear[s.years[len(s.years)-1]], nil
}

// Count returns the number of years held.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.years)
}
