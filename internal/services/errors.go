package services

import (
	"errors"
	"fmt"

	"asf-backend/internal/repositories"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrEmailTaken         = repositories.ErrDuplicateEmail
	ErrInUse              = repositories.ErrReferenced
	ErrClientGone         = repositories.ErrMissingClient
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NotFoundError names what was missing. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// missing turns a repository not-found into a NotFoundError for resource
func missing(resource string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

// clientGone reports a client removed between lookup and write as a
// NotFoundError for resource
func clientGone(resource string, err error) error {
	if errors.Is(err, ErrClientGone) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
