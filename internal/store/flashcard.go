package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
)

// FlashcardStore persists flashcards.
type FlashcardStore interface {
	// CreateMany inserts every card for userID in one statement and returns
	// the stored rows in input order.
	CreateMany(ctx context.Context, userID uuid.UUID, cards []domain.NewFlashcard) ([]domain.Flashcard, error)

	// WithTx returns a FlashcardStore bound to tx.
	WithTx(tx *sql.Tx) FlashcardStore
}
