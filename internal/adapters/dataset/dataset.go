// Package dataset loads and writes yearly metric datasets.
//
// This is the validating boundary: every row goes through
// model.NewMetricRecord, and rows that fail are reported as
// *model.InvalidInputError and left out of the result.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/okian/radar/internal/domain/model"
)

// Format names a dataset encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Sentinel kinds for dataset errors.
var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrDecode        = errors.New("dataset decode failed")
)

// ParseFormat accepts json, yaml/yml and csv, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Rejection is a row that failed boundary validation.
type Rejection struct {
	Row int   // 1-based data row, header excluded
	Err error // always matches model.ErrInvalidInput
}

// Result is the outcome of decoding a dataset.
type Result struct {
	Records  []model.MetricRecord // valid rows sorted by year
	Rejected []Rejection
}

// Load decodes the dataset at path.
func Load(ctx context.Context, path string) (Result, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Result{}, err
	}
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return Result{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(ctx, f, format)
}

// Decode reads a dataset in the given format. A structurally unreadable
// document fails with ErrDecode; bad rows are collected in Result.Rejected.
func Decode(ctx context.Context, r io.Reader, format Format) (Result, error) {
	var (
		raws []rawRow
		err  error
	)
	switch format {
	case FormatJSON:
		raws, err = decodeJSON(r)
	case FormatYAML:
		raws, err = decodeYAML(r)
	case FormatCSV:
		raws, err = decodeCSV(r)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	return build(raws), nil
}

// rawRow is a decoded row or the error that prevented decoding it.
type rawRow struct {
	raw model.RawRecord
	err error
}

func build(rows []rawRow) Result {
	var res Result
	seen := make(map[int]bool, len(rows))
	for i, row := range rows {
		if row.err != nil {
			res.Rejected = append(res.Rejected, Rejection{Row: i + 1, Err: row.err})
			continue
		}
		rec, err := model.NewMetricRecord(row.raw)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Row: i + 1, Err: err})
			continue
		}
		if seen[rec.Year] {
			res.Rejected = append(res.Rejected, Rejection{
				Row: i + 1,
				Err: model.NewInvalidInput(rec.Year, "year", "duplicate year"),
			})
			continue
		}
		seen[rec.Year] = true
		res.Records = append(res.Records, rec)
	}
	sort.Slice(res.Records, func(a, b int) bool { return res.Records[a].Year < res.Records[b].Year })
	return res
}

// Encode writes records in the given format.
func Encode(_ context.Context, w io.Writer, format Format, records []model.MetricRecord) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, records)
	case FormatYAML:
		return encodeYAML(w, records)
	case FormatCSV:
		return encodeCSV(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// File is a generator.Source backed by a dataset file. It remembers the
// rows rejected by the most recent load.
type File struct {
	path string

	mu       sync.RWMutex
	rejected []Rejection
}

// NewFile creates a file source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the dataset path.
func (f *File) Path() string { return f.path }

// Records loads the file and returns its valid rows.
func (f *File) Records(ctx context.Context) ([]model.MetricRecord, error) {
	res, err := Load(ctx, f.path)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.rejected = res.Rejected
	f.mu.Unlock()
	return res.Records, nil
}

// Rejected returns the validation failures of the last load.
func (f *File) Rejected() []error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]error, len(f.rejected))
	for i, r := range f.rejected {
		out[i] = fmt.Errorf("row %d: %w", r.Row, r.Err)
	}
	return out
}
