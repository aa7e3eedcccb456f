package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing chapter, text, note or annotation id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument marks rejected input such as an unknown highlight colour.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPersistence marks a read or write the store rejected.
	ErrPersistence = errors.New("persistence failure")
)

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// WrapPersistence wraps a store error. Typed errors pass through unchanged.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	var ve *ValidationError
	var pe *PersistenceError
	if errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
