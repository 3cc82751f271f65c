package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationErrorLog is an append-only record of a failed generation.
type GenerationErrorLog struct {
	ID               int64
	UserID           uuid.UUID
	Model            string
	SourceTextHash   string
	SourceTextLength int
	ErrorMessage     string
	CreatedAt        time.Time
}
