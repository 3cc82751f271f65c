package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/store"
)

const flashcardColumns = 5

// PostgresFlashcardStore implements store.FlashcardStore.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a flashcard store over db.
// If logger is nil, slog.Default() is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// CreateMany inserts all cards in a single statement. Rows come back ordered
// by id, which matches input order because ids are assigned as the VALUES
// list is consumed.
func (s *PostgresFlashcardStore) CreateMany(
	ctx context.Context,
	userID uuid.UUID,
	cards []domain.NewFlashcard,
) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil, nil
	}

	query, args := buildFlashcardInsert(userID, cards)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert flashcards",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.Int("count", len(cards)))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	created := make([]domain.Flashcard, 0, len(cards))
	for rows.Next() {
		var (
			card         domain.Flashcard
			generationID sql.NullInt64
			source       string
		)
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&generationID,
			&card.Front,
			&card.Back,
			&source,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			log.Error("failed to scan inserted flashcard", slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}
		if generationID.Valid {
			id := generationID.Int64
			card.GenerationID = &id
		}
		card.Source = domain.FlashcardSource(source)
		created = append(created, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating inserted flashcards", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	sort.Slice(created, func(i, j int) bool { return created[i].ID < created[j].ID })

	log.Info("flashcards created",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(created)))
	return created, nil
}

// WithTx returns a store that runs its queries in tx.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{db: tx, logger: s.logger}
}

func buildFlashcardInsert(userID uuid.UUID, cards []domain.NewFlashcard) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO flashcards (user_id, generation_id, front, back, source, created_at, updated_at) VALUES ")

	args := make([]any, 0, len(cards)*flashcardColumns)
	for i, card := range cards {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * flashcardColumns
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d, NOW(), NOW())", n+1, n+2, n+3, n+4, n+5)

		var generationID any
		if card.GenerationID != nil {
			generationID = *card.GenerationID
		}
		args = append(args, userID, generationID, card.Front, card.Back, string(card.Source))
	}
	b.WriteString(" RETURNING id, user_id, generation_id, front, back, source, created_at, updated_at")
	return b.String(), args
}
