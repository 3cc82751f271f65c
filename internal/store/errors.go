package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every store. Entity-specific errors wrap one of the
// base errors so callers can test either level with errors.Is.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means a check, foreign key or not-null constraint
	// rejected the row.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed means an update matched no rows.
	ErrUpdateFailed = errors.New("update failed")

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrGenerationNotFound also covers generations owned by someone else.
	ErrGenerationNotFound = fmt.Errorf("%w: generation", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

func IsNotFoundError(err error) bool  { return errors.Is(err, ErrNotFound) }
func IsDuplicateError(err error) bool { return errors.Is(err, ErrDuplicate) }

// StoreError adds entity and operation context to a store failure.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s: %s", e.Operation, e.Entity, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
