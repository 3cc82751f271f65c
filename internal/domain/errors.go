package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-level failures wrap it through *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSource is returned when a flashcard source tag is unknown.
	ErrInvalidSource = errors.New("invalid flashcard source")

	// ErrMissingGenerationID is returned when an AI-sourced flashcard has no generation.
	ErrMissingGenerationID = errors.New("generation ID is required for AI-generated flashcards")

	// ErrEmptyUserID is returned when an entity has no owning user.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrStatsExceedGenerated is returned when more flashcards were accepted
	// than the generation produced.
	ErrStatsExceedGenerated = errors.New("accepted flashcards exceed generated count")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Unwrap exposes both ErrValidation and the underlying cause so callers can
// match either with errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// ValidationErrors aggregates several field failures.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// OrNil returns v as an error, or nil when it holds no failures.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
