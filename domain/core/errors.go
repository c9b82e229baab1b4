package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Reconciliation errors
	ErrMissingColumn  = errors.New("join key column not found")
	ErrReservedColumn = errors.New("table already uses the reserved key column")
	ErrEmptyResult    = errors.New("no matching records found in the first table")

	// Boundary errors
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyTable      = errors.New("file must have a header row and at least one data row")
)

// Error constructors with context
func NewMissingColumnError(column, side string) error {
	return fmt.Errorf("%w: %q in %s", ErrMissingColumn, column, side)
}

func NewReservedColumnError(reserved, side string) error {
	return fmt.Errorf("%w: %q in %s", ErrReservedColumn, reserved, side)
}

// Error checking helpers
func IsMissingColumnError(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsEmptyResultError(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsUserError reports whether err should surface to the caller as a
// user-visible message rather than an internal failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrReservedColumn) ||
		errors.Is(err, ErrEmptyResult) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrEmptyTable)
}
