package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// PostgresGenerationErrorLogStore implements store.GenerationErrorLogStore.
type PostgresGenerationErrorLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGenerationErrorLogStore creates an error log store over db.
func NewPostgresGenerationErrorLogStore(db store.DBTX, logger *slog.Logger) *PostgresGenerationErrorLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenerationErrorLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "generation_error_log_store")),
	}
}

var _ store.GenerationErrorLogStore = (*PostgresGenerationErrorLogStore)(nil)

// Create appends entry and sets entry.ID.
func (s *PostgresGenerationErrorLogStore) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO generation_error_logs (
			user_id, model, source_text_hash, source_text_length, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.Model,
		entry.SourceTextHash,
		entry.SourceTextLength,
		entry.ErrorMessage,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		log.Error("failed to write generation error log",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", entry.UserID.String()))
		return MapError(err)
	}

	log.Debug("generation error logged", slog.Int64("error_log_id", entry.ID))
	return nil
}
