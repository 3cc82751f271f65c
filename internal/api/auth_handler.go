package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/config"
	"github.com/phrazzld/tenx-cards/internal/service"
)

// AccountService is the part of service.UserService the handler needs.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*service.TokenPair, error)
	Login(ctx context.Context, email, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
}

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	accounts      AccountService
	tokenLifetime time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts AccountService, cfg config.AuthConfig, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		accounts:      accounts,
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		now:           time.Now,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Register creates an account and responds 201 with a token pair.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, h.authResponse(pair))
}

// Login responds 200 with a token pair, or 401 on bad credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to log in")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.authResponse(pair))
}

// RefreshToken exchanges a refresh token for a new pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.accounts.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to refresh token")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.authResponse(pair))
}

// Logout is stateless; clients discard their tokens.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) authResponse(pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    h.now().Add(h.tokenLifetime).UTC(),
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationError(w, r, shared.FieldErrors(err))
		return false
	}
	return true
}
