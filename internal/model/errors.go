package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by id misses.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable wraps load/save failures of the external store.
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)

// DuplicateIDError rejects an insert whose id already exists.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

// IsDuplicate reports whether err is, or wraps, a DuplicateIDError.
func IsDuplicate(err error) bool {
	var d *DuplicateIDError
	return errors.As(err, &d)
}

// ValidationError carries a user-facing rule violation.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// IsValidation helps callers distinguish business and infrastructure failures.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
