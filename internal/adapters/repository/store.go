// Package repository defines the year-indexed metric store and its errors.
package repository

import (
	"context"

	"github.com/okian/radar/internal/domain/model"
)

// Store provides read/write access to the yearly dataset.
type Store interface {
	// Replace swaps the whole dataset atomically. Records must have unique years.
	Replace(ctx context.Context, records []model.MetricRecord) error

	// Get returns the record for year.
	// Returns ErrNotFound if the year is unknown.
	Get(ctx context.Context, year int) (model.MetricRecord, error)

	// Years returns the known years in ascending order.
	Years(ctx context.Context) []int

	// All returns every record ordered by year.
	All(ctx context.Context) []model.MetricRecord

	// Latest returns the record with the highest year.
	// Returns ErrEmpty if the store holds nothing.
	Latest(ctx context.Context) (model.MetricRecord, error)

	// Count returns the number of years held.
	Count(ctx context.Context) int
}
