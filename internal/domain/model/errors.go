package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a record field that is missing, non-numeric or
// outside its declared domain.
type InvalidInputError struct {
	Year   int    // 0 when the year itself is unknown
	Field  string // json name of the offending field
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Year > 0 {
		return fmt.Sprintf("invalid input: year %d: %s: %s", e.Year, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(year int, field, reason string) *InvalidInputError {
	return &InvalidInputError{Year: year, Field: field, Reason: reason}
}
