package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/service"
)

// GenerationService is the part of service.GenerationService the handler needs.
type GenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, sourceText string) (*service.GenerationResult, error)
}

// GenerationHandler serves POST /api/generations.
type GenerationHandler struct {
	generations GenerationService
	logger      *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generations GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		generations: generations,
		logger:      logger.With(slog.String("component", "generation_handler")),
	}
}

// Create generates flashcard candidates from the submitted source text.
func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithValidationError(w, r, shared.FieldErrors(err))
		return
	}

	result, err := h.generations.Generate(r.Context(), userID, req.SourceText)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			shared.RespondWithValidationError(w, r, shared.FieldErrors(err))
			return
		}
		respondWithServiceError(w, r, err, MsgGenerationFailed)
		return
	}

	candidates := make([]FlashcardCandidateResponse, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		candidates = append(candidates, FlashcardCandidateResponse{
			Front:  c.Front,
			Back:   c.Back,
			Source: string(c.Source),
		})
	}

	log.Debug("generation response ready",
		slog.Int64("generation_id", result.GenerationID),
		slog.Int("total_generated", result.TotalGenerated))

	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateFlashcardsResponse{
		GenerationID:        result.GenerationID,
		TotalGenerated:      result.TotalGenerated,
		FlashcardCandidates: candidates,
	})
}

// respondWithServiceError maps err; 5xx responses use fallback as the message.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError {
		msg = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
