package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/config"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "thisisasecretkeythatis32charslong!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
		BCryptCost:                  4,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "short"

	_, err := auth.NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	access, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestValidateTokenFailures(t *testing.T) {
	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, auth.ErrMissingToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("other key", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "anothersecretkeythatis32charslong!!"
		other, err := auth.NewJWTService(cfg)
		require.NoError(t, err)
		token, err := other.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired beyond skew", func(t *testing.T) {
		issued := time.Now().Add(-3 * time.Hour)
		old := svc.WithClock(func() time.Time { return issued })
		token, err := old.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})
}
