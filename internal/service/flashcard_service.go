package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// insertOutcome classifies the result of the bulk insert.
type insertOutcome int

const (
	insertOK insertOutcome = iota
	insertStoreError
	insertEmpty
)

type insertResult struct {
	outcome insertOutcome
	rows    []domain.Flashcard
	err     error
}

// FlashcardService validates and persists flashcards and reconciles the
// acceptance statistics of the generations they came from.
type FlashcardService struct {
	db          store.Beginner
	flashcards  store.FlashcardStore
	generations store.GenerationStore
	logger      *slog.Logger
}

// NewFlashcardService creates a FlashcardService.
func NewFlashcardService(
	db store.Beginner,
	flashcards store.FlashcardStore,
	generations store.GenerationStore,
	logger *slog.Logger,
) (*FlashcardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if flashcards == nil {
		return nil, domain.NewValidationError("flashcards", "cannot be nil", domain.ErrValidation)
	}
	if generations == nil {
		return nil, domain.NewValidationError("generations", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardService{
		db:          db,
		flashcards:  flashcards,
		generations: generations,
		logger:      logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

// CreateFlashcards inserts cards for userID in one statement and returns the
// stored rows. Statistics for referenced generations are updated afterwards;
// a failure there is logged and does not affect the result.
func (s *FlashcardService) CreateFlashcards(
	ctx context.Context,
	userID uuid.UUID,
	cards []domain.NewFlashcard,
) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrEmptyUserID
	}
	if len(cards) == 0 {
		return nil, ErrNoFlashcards
	}
	if err := validateAll(cards); err != nil {
		log.Warn("flashcards failed validation at service boundary",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	res := s.insert(ctx, userID, cards)
	switch res.outcome {
	case insertStoreError:
		log.Error("failed to insert flashcards",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(res.err)))
		return nil, &PersistenceError{Reason: "store rejected insert", Err: res.err}
	case insertEmpty:
		log.Error("flashcard insert returned no rows",
			slog.String("user_id", userID.String()),
			slog.Int("requested", len(cards)))
		return nil, &PersistenceError{Reason: "no rows returned"}
	}

	s.reconcileStats(ctx, log, userID, res.rows)

	log.Info("flashcards saved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(res.rows)))
	return res.rows, nil
}

func (s *FlashcardService) insert(ctx context.Context, userID uuid.UUID, cards []domain.NewFlashcard) insertResult {
	var rows []domain.Flashcard
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		rows, err = s.flashcards.WithTx(tx).CreateMany(ctx, userID, cards)
		return err
	})
	switch {
	case err != nil:
		return insertResult{outcome: insertStoreError, err: err}
	case len(rows) == 0:
		return insertResult{outcome: insertEmpty}
	default:
		return insertResult{outcome: insertOK, rows: rows}
	}
}

// reconcileStats recomputes acceptance counters for every generation referenced
// by the inserted AI flashcards. Each generation is read and updated in its own
// transaction, after the flashcard insert has committed.
func (s *FlashcardService) reconcileStats(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	rows []domain.Flashcard,
) {
	sources := make(map[int64][]domain.FlashcardSource)
	for _, row := range rows {
		if row.Source.IsAI() && row.GenerationID != nil {
			sources[*row.GenerationID] = append(sources[*row.GenerationID], row.Source)
		}
	}
	if len(sources) == 0 {
		return
	}

	ids := make([]int64, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := s.updateStats(ctx, userID, id, sources[id]); err != nil {
			log.Warn("skipped generation stats update",
				slog.Int64("generation_id", id),
				slog.String("user_id", userID.String()),
				slog.String("error", redact.Error(err)))
		}
	}
}

func (s *FlashcardService) updateStats(
	ctx context.Context,
	userID uuid.UUID,
	generationID int64,
	sources []domain.FlashcardSource,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		generations := s.generations.WithTx(tx)

		gen, err := generations.GetByID(ctx, generationID, userID)
		if err != nil {
			return &StatsAnomalyError{GenerationID: generationID, Reason: "generation lookup failed", Err: err}
		}

		stats, err := domain.ComputeAcceptanceStats(gen.GeneratedCount, sources)
		if err != nil {
			return &StatsAnomalyError{GenerationID: generationID, Reason: "invariant violated", Err: err}
		}

		if err := generations.UpdateAcceptanceStats(ctx, generationID, stats); err != nil {
			return &StatsAnomalyError{GenerationID: generationID, Reason: "update failed", Err: err}
		}
		return nil
	})
}

// validateAll re-checks every card and prefixes field names with the index.
func validateAll(cards []domain.NewFlashcard) error {
	var errs domain.ValidationErrors
	for i, card := range cards {
		err := card.Validate()
		if err == nil {
			continue
		}
		if verrs, ok := err.(domain.ValidationErrors); ok {
			for _, v := range verrs {
				errs = append(errs, domain.NewValidationError(
					fmt.Sprintf("flashcards[%d].%s", i, v.Field), v.Message, v.Err))
			}
		}
	}
	return errs.OrNil()
}
