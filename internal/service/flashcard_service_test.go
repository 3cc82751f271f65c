package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/phrazzld/tenx-cards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type flashcardFixture struct {
	sql         sqlmock.Sqlmock
	flashcards  *MockFlashcardStore
	generations *MockGenerationStore
	svc         *service.FlashcardService
	logs        *logger.TestLogBuffer
}

func newFlashcardFixture(t *testing.T) *flashcardFixture {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &flashcardFixture{
		sql:         sqlMock,
		flashcards:  &MockFlashcardStore{},
		generations: &MockGenerationStore{},
	}
	log, buf := logger.NewTestLogger()
	f.logs = buf

	svc, err := service.NewFlashcardService(db, f.flashcards, f.generations, log)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func ptr(v int64) *int64 { return &v }

// rowsFor turns requested cards into stored rows with sequential ids.
func rowsFor(userID uuid.UUID, cards []domain.NewFlashcard) []domain.Flashcard {
	rows := make([]domain.Flashcard, 0, len(cards))
	for i, c := range cards {
		rows = append(rows, domain.Flashcard{
			ID:           int64(i + 1),
			UserID:       userID,
			GenerationID: c.GenerationID,
			Front:        c.Front,
			Back:         c.Back,
			Source:       c.Source,
		})
	}
	return rows
}

func TestCreateFlashcardsReconcilesStats(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	genID := ptr(9)
	cards := []domain.NewFlashcard{
		{Front: "q1", Back: "a1", Source: domain.SourceAIFull, GenerationID: genID},
		{Front: "q2", Back: "a2", Source: domain.SourceAIFull, GenerationID: genID},
		{Front: "q3", Back: "a3", Source: domain.SourceAIEdited, GenerationID: genID},
	}

	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return(rowsFor(userID, cards), nil)
	f.generations.On("GetByID", mock.Anything, int64(9), userID).
		Return(&domain.Generation{ID: 9, UserID: userID, GeneratedCount: 5}, nil)
	f.generations.On("UpdateAcceptanceStats", mock.Anything, int64(9), domain.AcceptanceStats{
		AcceptedUnedited: 2,
		AcceptedEdited:   1,
		Unaccepted:       2,
	}).Return(nil)

	rows, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	require.NoError(t, err)
	assert.Len(t, rows, 3)
	f.generations.AssertExpectations(t)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestCreateFlashcardsGenerationNotFoundSkipsStats(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	cards := []domain.NewFlashcard{
		{Front: "q1", Back: "a1", Source: domain.SourceAIFull, GenerationID: ptr(4)},
	}

	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.sql.ExpectBegin()
	f.sql.ExpectRollback()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return(rowsFor(userID, cards), nil)
	f.generations.On("GetByID", mock.Anything, int64(4), userID).Return(nil, store.ErrGenerationNotFound)

	rows, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	f.generations.AssertNotCalled(t, "UpdateAcceptanceStats", mock.Anything, mock.Anything, mock.Anything)
	_, found := f.logs.FindByMessage("skipped generation stats update")
	assert.True(t, found)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestCreateFlashcardsStatsInvariantViolation(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	cards := []domain.NewFlashcard{
		{Front: "q1", Back: "a1", Source: domain.SourceAIFull, GenerationID: ptr(4)},
		{Front: "q2", Back: "a2", Source: domain.SourceAIEdited, GenerationID: ptr(4)},
	}

	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.sql.ExpectBegin()
	f.sql.ExpectRollback()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return(rowsFor(userID, cards), nil)
	f.generations.On("GetByID", mock.Anything, int64(4), userID).
		Return(&domain.Generation{ID: 4, GeneratedCount: 1}, nil)

	rows, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	f.generations.AssertNotCalled(t, "UpdateAcceptanceStats", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestCreateFlashcardsManualOnlyHasNoStats(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	cards := []domain.NewFlashcard{{Front: "q", Back: "a", Source: domain.SourceManual}}

	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return(rowsFor(userID, cards), nil)

	_, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	require.NoError(t, err)
	f.generations.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFlashcardsStoreErrorIsPersistenceError(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	cards := []domain.NewFlashcard{{Front: "q", Back: "a", Source: domain.SourceManual}}
	dbErr := errors.New("connection lost")

	f.sql.ExpectBegin()
	f.sql.ExpectRollback()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return(nil, dbErr)

	_, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	assert.ErrorIs(t, err, service.ErrPersistence)
	assert.ErrorIs(t, err, dbErr)
	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "store rejected insert", perr.Reason)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestCreateFlashcardsEmptyResultIsPersistenceError(t *testing.T) {
	f := newFlashcardFixture(t)
	userID := uuid.New()
	cards := []domain.NewFlashcard{{Front: "q", Back: "a", Source: domain.SourceManual}}

	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
	f.flashcards.On("CreateMany", mock.Anything, userID, cards).Return([]domain.Flashcard{}, nil)

	_, err := f.svc.CreateFlashcards(context.Background(), userID, cards)

	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "no rows returned", perr.Reason)
}

func TestCreateFlashcardsRevalidates(t *testing.T) {
	f := newFlashcardFixture(t)

	_, err := f.svc.CreateFlashcards(context.Background(), uuid.New(), []domain.NewFlashcard{
		{Front: "ok", Back: "ok", Source: domain.SourceManual},
		{Front: strings.Repeat("f", 201), Back: "b", Source: domain.SourceAIFull},
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"flashcards[1].front", "flashcards[1].generationId"}, fields)
	f.flashcards.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFlashcardsRequiresInput(t *testing.T) {
	f := newFlashcardFixture(t)

	_, err := f.svc.CreateFlashcards(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrNoFlashcards)

	_, err = f.svc.CreateFlashcards(context.Background(), uuid.Nil,
		[]domain.NewFlashcard{{Front: "q", Back: "a", Source: domain.SourceManual}})
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)
}
