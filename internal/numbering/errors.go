package numbering

import (
	"errors"
	"fmt"
)

// ErrUniquenessConflict is matched by every ConflictError. Callers treat it
// as a signal to allocate again.
var ErrUniquenessConflict = errors.New("external identifier already issued")

// AllocationError wraps a storage failure while reading the last issued id.
type AllocationError struct {
	Collection string
	Err        error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("numbering: allocate %s: %v", e.Collection, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// ConflictError is returned by stores when a write hits the unique
// constraint on the external identifier.
type ConflictError struct {
	Collection string
	Value      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("numbering: %s %q already exists", e.Collection, e.Value)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrUniquenessConflict
}
