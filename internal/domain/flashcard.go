package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Flashcard field bounds, counted in characters.
const (
	MaxFrontLength = 200
	MaxBackLength  = 500
)

// FlashcardSource tags the provenance of a flashcard.
type FlashcardSource string

const (
	SourceManual   FlashcardSource = "Manual"
	SourceAIFull   FlashcardSource = "AI-full"
	SourceAIEdited FlashcardSource = "AI-edited"
)

// Valid reports whether s is one of the known sources.
func (s FlashcardSource) Valid() bool {
	switch s {
	case SourceManual, SourceAIFull, SourceAIEdited:
		return true
	}
	return false
}

// IsAI reports whether the flashcard came out of a generation.
func (s FlashcardSource) IsAI() bool {
	return s == SourceAIFull || s == SourceAIEdited
}

// Flashcard is a persisted card owned by a user.
type Flashcard struct {
	ID           int64           `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	GenerationID *int64          `json:"generation_id"`
	Front        string          `json:"front"`
	Back         string          `json:"back"`
	Source       FlashcardSource `json:"source"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewFlashcard is a flashcard that has not been stored yet.
type NewFlashcard struct {
	Front        string
	Back         string
	Source       FlashcardSource
	GenerationID *int64
}

// FlashcardCandidate is an LLM proposal that has not been reviewed or stored.
type FlashcardCandidate struct {
	Front  string          `json:"front"`
	Back   string          `json:"back"`
	Source FlashcardSource `json:"source"`
}

// ValidateFront checks the 1..MaxFrontLength bound.
func ValidateFront(front string) error {
	return validateLength("front", front, MaxFrontLength)
}

// ValidateBack checks the 1..MaxBackLength bound.
func ValidateBack(back string) error {
	return validateLength("back", back, MaxBackLength)
}

func validateLength(field, value string, maxLen int) error {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return NewValidationError(field, fmt.Sprintf("%s cannot be empty", field), nil)
	case n > maxLen:
		return NewValidationError(field,
			fmt.Sprintf("%s must be at most %d characters", field, maxLen), nil)
	}
	return nil
}

// Validate checks field bounds, the source tag and the generation link.
func (f NewFlashcard) Validate() error {
	var errs ValidationErrors

	if err := ValidateFront(f.Front); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	if err := ValidateBack(f.Back); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	if !f.Source.Valid() {
		errs = append(errs, NewValidationError("source",
			"source must be one of Manual, AI-full, AI-edited", ErrInvalidSource))
	} else if f.Source.IsAI() && f.GenerationID == nil {
		errs = append(errs, NewValidationError("generationId",
			"generationId is required for AI-generated flashcards", ErrMissingGenerationID))
	}

	return errs.OrNil()
}
