package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError covers locally handled input problems: missing custom
// range dates, quantity exceeding stock, unit price below catalog price.
// These surface as transient inline messages and are never retried.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// ErrInvalidRange rejects a custom period missing either bound.
var ErrInvalidRange = &ValidationError{msg: "custom period requires both start_date and end_date"}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IntegrityError refuses an operation that would orphan dependent records,
// e.g. deleting a product that has recorded sales.
type IntegrityError struct {
	msg string
}

func NewIntegrityError(format string, args ...any) *IntegrityError {
	return &IntegrityError{msg: fmt.Sprintf(format, args...)}
}

func (e *IntegrityError) Error() string { return e.msg }

// IsIntegrity reports whether err is an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// CompositeFetchError aborts a whole metrics computation when any of the
// parallel reads fails. Nothing partial is ever returned; the caller keeps
// showing its previous snapshot, stale.
type CompositeFetchError struct {
	Source string
	Err    error
}

func (e *CompositeFetchError) Error() string {
	return fmt.Sprintf("metrics fetch failed on %s: %v", e.Source, e.Err)
}

func (e *CompositeFetchError) Unwrap() error { return e.Err }

// IsCompositeFetch reports whether err is a CompositeFetchError.
func IsCompositeFetch(err error) bool {
	var ce *CompositeFetchError
	return errors.As(err, &ce)
}
