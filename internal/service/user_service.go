package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/phrazzld/tenx-cards/internal/store"
)

// TokenPair is issued on register, login and refresh.
type TokenPair struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
}

// UserService registers users and exchanges credentials for tokens.
type UserService struct {
	db     store.Beginner
	users  store.UserStore
	tokens auth.JWTService
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	db store.Beginner,
	users store.UserStore,
	tokens auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		db:     db,
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a user and returns a token pair.
// Returns store.ErrEmailExists if the email is taken.
func (s *UserService) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration with existing email")
			return nil, err
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("register", "failed to create user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return s.issue(ctx, user.ID)
}

// Login verifies credentials. Unknown emails and wrong passwords both return
// auth.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("login", "failed to look up user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
			return nil, auth.ErrInvalidCredentials
		}
		return nil, NewServiceError("login", "failed to verify password", err)
	}

	return s.issue(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, NewServiceError("refresh", "failed to look up user", err)
	}

	return s.issue(ctx, claims.UserID)
}

func (s *UserService) issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate refresh token", err)
	}
	return &TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}
