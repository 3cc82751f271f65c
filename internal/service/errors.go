package service

import (
	"errors"
	"fmt"
)

// Service errors checked with errors.Is by the API layer.
var (
	// ErrPersistence indicates the flashcard insert failed or returned no rows.
	// The caller's selections should be kept so the save can be retried.
	ErrPersistence = errors.New("failed to persist flashcards")

	// ErrNoFlashcards is returned when a save request carries nothing to insert.
	ErrNoFlashcards = errors.New("at least one flashcard is required")
)

// ServiceError adds operation context to a service failure.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// PersistenceError describes a failed flashcard insert. It matches ErrPersistence.
type PersistenceError struct {
	Reason string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrPersistence, e.Reason)
}

func (e *PersistenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Err}
}

// StatsAnomalyError records why acceptance statistics were not written for a
// generation. It is logged and never returned to callers.
type StatsAnomalyError struct {
	GenerationID int64
	Reason       string
	Err          error
}

func (e *StatsAnomalyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stats anomaly for generation %d: %s: %v", e.GenerationID, e.Reason, e.Err)
	}
	return fmt.Sprintf("stats anomaly for generation %d: %s", e.GenerationID, e.Reason)
}

func (e *StatsAnomalyError) Unwrap() error {
	return e.Err
}
