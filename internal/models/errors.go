package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("Invalid input")
	ErrNotFound   = errors.New("Not found")
	ErrConflict   = errors.New("Conflicting concurrent write")
	ErrPermDenied = errors.New("Missing permissions to execute action")
)

// Invalid wraps ErrValidation with a description of the offending input.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// StorageError is a failure of the backing store that isn't one of the
// sentinel kinds above: lost connections, timeouts, failed commits.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError is ErrNotFound naming the missing thing.
type NotFoundError struct {
	Thing string
}

func NotFound(thing string) error {
	return &NotFoundError{Thing: thing}
}
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Thing)
}
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
