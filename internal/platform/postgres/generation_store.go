package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// PostgresGenerationStore implements store.GenerationStore.
type PostgresGenerationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGenerationStore creates a generation store over db.
// If logger is nil, slog.Default() is used.
func NewPostgresGenerationStore(db store.DBTX, logger *slog.Logger) *PostgresGenerationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenerationStore{
		db:     db,
		logger: logger.With(slog.String("component", "generation_store")),
	}
}

var _ store.GenerationStore = (*PostgresGenerationStore)(nil)

// Create inserts gen with zero counts and stores the assigned id in gen.ID.
func (s *PostgresGenerationStore) Create(ctx context.Context, gen *domain.Generation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO generations (
			user_id, source_text_hash, source_text_length, model,
			generated_count, generation_duration, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		gen.UserID,
		gen.SourceTextHash,
		gen.SourceTextLength,
		gen.Model,
		gen.GeneratedCount,
		gen.GenerationDuration,
		gen.CreatedAt,
		gen.UpdatedAt,
	).Scan(&gen.ID)
	if err != nil {
		log.Error("failed to create generation",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", gen.UserID.String()))
		return MapError(err)
	}

	log.Debug("generation created",
		slog.Int64("generation_id", gen.ID),
		slog.String("user_id", gen.UserID.String()),
		slog.String("model", gen.Model))
	return nil
}

// UpdateResult records the generated count and the duration in seconds.
func (s *PostgresGenerationStore) UpdateResult(ctx context.Context, id int64, generatedCount, durationSeconds int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE generations
		SET generated_count = $1, generation_duration = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, generatedCount, durationSeconds, id)
	if err != nil {
		log.Error("failed to update generation result",
			slog.String("error", redact.Error(err)),
			slog.Int64("generation_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrGenerationNotFound); err != nil {
		log.Warn("generation result update matched no rows", slog.Int64("generation_id", id))
		return err
	}

	log.Debug("generation result recorded",
		slog.Int64("generation_id", id),
		slog.Int("generated_count", generatedCount),
		slog.Int("generation_duration", durationSeconds))
	return nil
}

// GetByID returns the generation only if it belongs to userID.
func (s *PostgresGenerationStore) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*domain.Generation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, source_text_hash, source_text_length, model,
			generated_count, generation_duration,
			accepted_unedited_count, accepted_edited_count, unaccepted_count,
			created_at, updated_at
		FROM generations
		WHERE id = $1 AND user_id = $2
	`
	var gen domain.Generation
	var unedited, edited, unaccepted sql.NullInt32
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&gen.ID,
		&gen.UserID,
		&gen.SourceTextHash,
		&gen.SourceTextLength,
		&gen.Model,
		&gen.GeneratedCount,
		&gen.GenerationDuration,
		&unedited,
		&edited,
		&unaccepted,
		&gen.CreatedAt,
		&gen.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("generation not found",
				slog.Int64("generation_id", id),
				slog.String("user_id", userID.String()))
			return nil, store.ErrGenerationNotFound
		}
		log.Error("failed to get generation",
			slog.String("error", redact.Error(err)),
			slog.Int64("generation_id", id))
		return nil, MapError(err)
	}

	gen.AcceptedUneditedCount = intPtr(unedited)
	gen.AcceptedEditedCount = intPtr(edited)
	gen.UnacceptedCount = intPtr(unaccepted)
	return &gen, nil
}

// UpdateAcceptanceStats writes the three acceptance counters.
func (s *PostgresGenerationStore) UpdateAcceptanceStats(ctx context.Context, id int64, stats domain.AcceptanceStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE generations
		SET accepted_unedited_count = $1,
			accepted_edited_count = $2,
			unaccepted_count = $3,
			updated_at = NOW()
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		stats.AcceptedUnedited, stats.AcceptedEdited, stats.Unaccepted, id)
	if err != nil {
		log.Error("failed to update acceptance stats",
			slog.String("error", redact.Error(err)),
			slog.Int64("generation_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrGenerationNotFound); err != nil {
		return err
	}

	log.Debug("acceptance stats updated",
		slog.Int64("generation_id", id),
		slog.Int("accepted_unedited", stats.AcceptedUnedited),
		slog.Int("accepted_edited", stats.AcceptedEdited),
		slog.Int("unaccepted", stats.Unaccepted))
	return nil
}

// WithTx returns a store that runs its queries in tx.
func (s *PostgresGenerationStore) WithTx(tx *sql.Tx) store.GenerationStore {
	return &PostgresGenerationStore{db: tx, logger: s.logger}
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
