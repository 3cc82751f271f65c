package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// User-facing messages for failures the client can only retry.
const (
	MsgGenerationFailed = "Failed to generate flashcards. Please try again."
	MsgSaveFailed       = "Failed to save flashcards. Please try again."
	MsgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrEmptyUserID):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrNoFlashcards),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Unmapped errors
// get a generic message.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgUnexpected

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, domain.ErrEmptyUserID):
		return "Authentication required"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, domain.ErrValidation):
		return shared.MsgInvalidInput
	case errors.Is(err, service.ErrNoFlashcards):
		return "At least one flashcard is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid flashcard data"
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email"
	case errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be between 8 and 72 characters"

	default:
		return MsgUnexpected
	}
}
