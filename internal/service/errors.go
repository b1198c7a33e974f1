package service

import (
	"errors"
	"fmt"

	"bug-tracker/internal/validation"
)

// ErrNotFound is returned when no bug has the requested id.
var ErrNotFound = errors.New("bug not found")

// ValidationError is a client-caused failure carrying every violation.
type ValidationError = validation.Error

// StorageError wraps an opaque failure from the repository.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
