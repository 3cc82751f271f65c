package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
)

// FlashcardService is the part of service.FlashcardService the handler needs.
type FlashcardService interface {
	CreateFlashcards(ctx context.Context, userID uuid.UUID, cards []domain.NewFlashcard) ([]domain.Flashcard, error)
}

// FlashcardHandler serves POST /api/flashcards.
type FlashcardHandler struct {
	flashcards FlashcardService
	logger     *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(flashcards FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		flashcards: flashcards,
		logger:     logger.With(slog.String("component", "flashcard_handler")),
	}
}

// Create stores the submitted flashcards and returns the persisted rows.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateFlashcardsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithValidationError(w, r, shared.FieldErrors(err))
		return
	}

	cards := toNewFlashcards(req.Flashcards)
	if details := validateFlashcards(cards); len(details) > 0 {
		shared.RespondWithValidationError(w, r, details)
		return
	}

	rows, err := h.flashcards.CreateFlashcards(r.Context(), userID, cards)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			shared.RespondWithValidationError(w, r, shared.FieldErrors(err))
			return
		}
		respondWithServiceError(w, r, err, MsgSaveFailed)
		return
	}

	log.Debug("flashcards created", slog.Int("count", len(rows)))
	shared.RespondWithJSON(w, r, http.StatusCreated, toFlashcardResponses(rows))
}

// validateFlashcards applies the cross-field rules the struct tags cannot express.
func validateFlashcards(cards []domain.NewFlashcard) []shared.FieldError {
	var details []shared.FieldError
	for i, c := range cards {
		for _, fe := range shared.FieldErrors(c.Validate()) {
			details = append(details, shared.FieldError{
				Field:   fmt.Sprintf("flashcards[%d].%s", i, fe.Field),
				Message: fe.Message,
			})
		}
	}
	return details
}
