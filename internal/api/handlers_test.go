package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/api/middleware"
	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/config"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:                   "thisisasecretkeythatis32charslong!!",
	TokenLifetimeMinutes:        60,
	RefreshTokenLifetimeMinutes: 120,
	BCryptCost:                  4,
}

type mockGenerationService struct{ mock.Mock }

func (m *mockGenerationService) Generate(ctx context.Context, userID uuid.UUID, text string) (*service.GenerationResult, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationResult), args.Error(1)
}

type mockFlashcardService struct{ mock.Mock }

func (m *mockFlashcardService) CreateFlashcards(ctx context.Context, userID uuid.UUID, cards []domain.NewFlashcard) ([]domain.Flashcard, error) {
	args := m.Called(ctx, userID, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

type mockAccountService struct{ mock.Mock }

func (m *mockAccountService) Register(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *mockAccountService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *mockAccountService) Refresh(ctx context.Context, token string) (*service.TokenPair, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

type testServer struct {
	router      http.Handler
	jwt         *auth.HMACJWTService
	generations *mockGenerationService
	flashcards  *mockFlashcardService
	accounts    *mockAccountService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := auth.NewJWTService(testAuthConfig)
	require.NoError(t, err)

	ts := &testServer{
		jwt:         jwtService,
		generations: &mockGenerationService{},
		flashcards:  &mockFlashcardService{},
		accounts:    &mockAccountService{},
	}

	genHandler := api.NewGenerationHandler(ts.generations, nil)
	cardHandler := api.NewFlashcardHandler(ts.flashcards, nil)
	authHandler := api.NewAuthHandler(ts.accounts, testAuthConfig, nil)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(nil))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Post("/auth/logout", authHandler.Logout)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/generations", genHandler.Create)
			r.Post("/flashcards", cardHandler.Create)
		})
	})
	r.Get("/health", api.Health)
	ts.router = r
	return ts
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sourceText(n int) string {
	return strings.Repeat("a", n)
}

func fixedTime() time.Time {
	return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
}
