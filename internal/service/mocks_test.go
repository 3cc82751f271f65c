package service_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/llm"
	"github.com/phrazzld/tenx-cards/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockGenerationStore struct {
	mock.Mock
}

func (m *MockGenerationStore) Create(ctx context.Context, gen *domain.Generation) error {
	return m.Called(ctx, gen).Error(0)
}

func (m *MockGenerationStore) UpdateResult(ctx context.Context, id int64, generatedCount, durationSeconds int) error {
	return m.Called(ctx, id, generatedCount, durationSeconds).Error(0)
}

func (m *MockGenerationStore) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*domain.Generation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Generation), args.Error(1)
}

func (m *MockGenerationStore) UpdateAcceptanceStats(ctx context.Context, id int64, stats domain.AcceptanceStats) error {
	return m.Called(ctx, id, stats).Error(0)
}

func (m *MockGenerationStore) WithTx(*sql.Tx) store.GenerationStore {
	return m
}

type MockErrorLogStore struct {
	mock.Mock
}

func (m *MockErrorLogStore) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockFlashcardStore struct {
	mock.Mock
}

func (m *MockFlashcardStore) CreateMany(ctx context.Context, userID uuid.UUID, cards []domain.NewFlashcard) ([]domain.Flashcard, error) {
	args := m.Called(ctx, userID, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) WithTx(*sql.Tx) store.FlashcardStore {
	return m
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) SendMessage(ctx context.Context, message string) ([]llm.Card, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.Card), args.Error(1)
}

func (m *MockGenerator) ModelName() string {
	return "test-model"
}
