package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("year not found")
	ErrEmpty         = errors.New("dataset is empty")
	ErrDuplicateYear = errors.New("duplicate year")
)
