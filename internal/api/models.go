package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
)

// GenerateFlashcardsRequest is the body of POST /api/generations.
type GenerateFlashcardsRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1000,max=10000"`
}

// FlashcardCandidateResponse is one unsaved proposal.
type FlashcardCandidateResponse struct {
	Front  string `json:"front"`
	Back   string `json:"back"`
	Source string `json:"source"`
}

// GenerateFlashcardsResponse is returned with 201 from POST /api/generations.
type GenerateFlashcardsResponse struct {
	GenerationID        int64                        `json:"generationId"`
	TotalGenerated      int                          `json:"totalGenerated"`
	FlashcardCandidates []FlashcardCandidateResponse `json:"flashcardCandidates"`
}

// FlashcardInput is one card of a save request. The generationId requirement
// for AI sources is checked by domain validation after the tags pass.
type FlashcardInput struct {
	Front        string `json:"front" validate:"required,max=200"`
	Back         string `json:"back" validate:"required,max=500"`
	Source       string `json:"source" validate:"required,oneof=Manual AI-full AI-edited"`
	GenerationID *int64 `json:"generationId,omitempty" validate:"omitempty,gt=0"`
}

// CreateFlashcardsRequest is the body of POST /api/flashcards. The top-level
// generationId is informational.
type CreateFlashcardsRequest struct {
	Flashcards   []FlashcardInput `json:"flashcards" validate:"required,min=1,dive"`
	GenerationID *int64           `json:"generationId,omitempty"`
}

// FlashcardResponse is one stored flashcard.
type FlashcardResponse struct {
	ID           int64     `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Source       string    `json:"source"`
	GenerationID *int64    `json:"generation_id"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the body of POST /api/auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries a token pair.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func toNewFlashcards(in []FlashcardInput) []domain.NewFlashcard {
	out := make([]domain.NewFlashcard, 0, len(in))
	for _, c := range in {
		out = append(out, domain.NewFlashcard{
			Front:        c.Front,
			Back:         c.Back,
			Source:       domain.FlashcardSource(c.Source),
			GenerationID: c.GenerationID,
		})
	}
	return out
}

func toFlashcardResponses(rows []domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(rows))
	for _, f := range rows {
		out = append(out, FlashcardResponse{
			ID:           f.ID,
			Front:        f.Front,
			Back:         f.Back,
			Source:       string(f.Source),
			GenerationID: f.GenerationID,
			UserID:       f.UserID,
			CreatedAt:    f.CreatedAt,
			UpdatedAt:    f.UpdatedAt,
		})
	}
	return out
}
