package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
)

// GenerationStore persists generation records and their statistics.
type GenerationStore interface {
	// Create inserts gen and sets its ID.
	Create(ctx context.Context, gen *domain.Generation) error

	// UpdateResult records the final generated count and duration in seconds.
	UpdateResult(ctx context.Context, id int64, generatedCount, durationSeconds int) error

	// GetByID returns the generation if it exists and belongs to userID,
	// otherwise ErrGenerationNotFound.
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*domain.Generation, error)

	// UpdateAcceptanceStats writes reconciled counters.
	UpdateAcceptanceStats(ctx context.Context, id int64, stats domain.AcceptanceStats) error

	// WithTx returns a GenerationStore bound to tx.
	WithTx(tx *sql.Tx) GenerationStore
}

// GenerationErrorLogStore appends generation failure records.
type GenerationErrorLogStore interface {
	Create(ctx context.Context, entry *domain.GenerationErrorLog) error
}
