package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDependency indicates the store or another collaborator failed.
	ErrDependency = errors.New("dependency failure")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DependencyError wraps a failure of an external collaborator with the
// operation that was being attempted.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}
