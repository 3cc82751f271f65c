package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/phrazzld/tenx-cards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	ts.accounts.On("Register", mock.Anything, "new@example.com", "password123").
		Return(&service.TokenPair{UserID: userID, AccessToken: "a", RefreshToken: "r"}, nil)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "new@example.com", "password": "password123"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, "r", resp.RefreshToken)
	assert.False(t, resp.ExpiresAt.IsZero())
}

func TestRegisterErrors(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		ts := newTestServer(t)
		ts.accounts.On("Register", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, store.ErrEmailExists)

		rec := ts.do(t, http.MethodPost, "/api/auth/register", "",
			map[string]string{"email": "taken@example.com", "password": "password123"})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already exists", decodeError(t, rec).Error)
	})

	t.Run("short password", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodPost, "/api/auth/register", "",
			map[string]string{"email": "new@example.com", "password": "short"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "password", resp.Details[0].Field)
		ts.accounts.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		ts := newTestServer(t)
		ts.accounts.On("Login", mock.Anything, "user@example.com", "password123").
			Return(&service.TokenPair{UserID: uuid.New(), AccessToken: "a", RefreshToken: "r"}, nil)

		rec := ts.do(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "user@example.com", "password": "password123"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		ts := newTestServer(t)
		ts.accounts.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, auth.ErrInvalidCredentials)

		rec := ts.do(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "user@example.com", "password": "wrong-password"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decodeError(t, rec).Error)
	})
}

func TestRefreshToken(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.On("Refresh", mock.Anything, "stale").Return(nil, auth.ErrExpiredToken)

	rec := ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": "stale"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", decodeError(t, rec).Error)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", "", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}
