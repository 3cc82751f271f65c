package service

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/llm"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// FlashcardGenerator turns source text into flashcard content.
// *llm.Client satisfies it.
type FlashcardGenerator interface {
	SendMessage(ctx context.Context, message string) ([]llm.Card, error)
	ModelName() string
}

// GenerationResult is returned to the caller after a successful generation.
type GenerationResult struct {
	GenerationID   int64                       `json:"generationId"`
	TotalGenerated int                         `json:"totalGenerated"`
	Candidates     []domain.FlashcardCandidate `json:"flashcardCandidates"`
}

// GenerationService drives one generation request end to end.
type GenerationService struct {
	generations store.GenerationStore
	errorLogs   store.GenerationErrorLogStore
	generator   FlashcardGenerator
	now         func() time.Time
	logger      *slog.Logger
}

// GenerationOption configures a GenerationService.
type GenerationOption func(*GenerationService)

// WithClock replaces time.Now, so tests can control recorded durations.
func WithClock(now func() time.Time) GenerationOption {
	return func(s *GenerationService) { s.now = now }
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(
	generations store.GenerationStore,
	errorLogs store.GenerationErrorLogStore,
	generator FlashcardGenerator,
	logger *slog.Logger,
	opts ...GenerationOption,
) (*GenerationService, error) {
	if generations == nil {
		return nil, domain.NewValidationError("generations", "cannot be nil", domain.ErrValidation)
	}
	if errorLogs == nil {
		return nil, domain.NewValidationError("errorLogs", "cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &GenerationService{
		generations: generations,
		errorLogs:   errorLogs,
		generator:   generator,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "generation_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate records a generation, asks the model for flashcards and returns the
// candidates. Input is validated before any side effect. Any later failure is
// written to the error log on a best-effort basis and returned unchanged.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, sourceText string) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrEmptyUserID
	}
	if err := domain.ValidateSourceText(sourceText); err != nil {
		return nil, err
	}

	startedAt := s.now()
	model := s.generator.ModelName()

	result, err := s.generate(ctx, log, userID, sourceText, model, startedAt)
	if err != nil {
		s.recordFailure(ctx, log, userID, sourceText, model, err)
		return nil, err
	}
	return result, nil
}

func (s *GenerationService) generate(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	sourceText, model string,
	startedAt time.Time,
) (*GenerationResult, error) {
	gen, err := domain.NewGeneration(userID, sourceText, model, startedAt)
	if err != nil {
		return nil, err
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		return nil, err
	}

	cards, err := s.generator.SendMessage(ctx, sourceText)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.FlashcardCandidate, 0, len(cards))
	for _, c := range cards {
		candidates = append(candidates, domain.FlashcardCandidate{
			Front:  c.Front,
			Back:   c.Back,
			Source: domain.SourceAIFull,
		})
	}

	duration := domain.DurationSeconds(s.now().Sub(startedAt))
	if err := s.generations.UpdateResult(ctx, gen.ID, len(candidates), duration); err != nil {
		return nil, err
	}

	log.Info("flashcards generated",
		slog.Int64("generation_id", gen.ID),
		slog.String("user_id", userID.String()),
		slog.String("model", model),
		slog.Int("generated_count", len(candidates)),
		slog.Int("duration_seconds", duration))

	return &GenerationResult{
		GenerationID:   gen.ID,
		TotalGenerated: len(candidates),
		Candidates:     candidates,
	}, nil
}

// recordFailure is best-effort: a failed log write is only reported in the
// application log. It runs detached from ctx cancellation.
func (s *GenerationService) recordFailure(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	sourceText, model string,
	cause error,
) {
	log.Error("flashcard generation failed",
		slog.String("user_id", userID.String()),
		slog.String("model", model),
		slog.String("error", redact.Error(cause)))

	entry := &domain.GenerationErrorLog{
		UserID:           userID,
		Model:            model,
		SourceTextHash:   domain.HashSourceText(sourceText),
		SourceTextLength: utf8.RuneCountInString(sourceText),
		ErrorMessage:     redact.Error(cause),
		CreatedAt:        s.now().UTC(),
	}
	if err := s.errorLogs.Create(context.WithoutCancel(ctx), entry); err != nil {
		log.Warn("failed to write generation error log",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(err)))
	}
}
