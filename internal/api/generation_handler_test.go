package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/llm"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequiresAuthentication(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/generations", "", map[string]string{"source_text": sourceText(1000)})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	ts.generations.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)

	rec = ts.do(t, http.MethodPost, "/api/generations", "garbage", map[string]string{"source_text": sourceText(1000)})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateSourceTextBounds(t *testing.T) {
	tests := []struct {
		length int
		status int
	}{
		{999, http.StatusBadRequest},
		{1000, http.StatusCreated},
		{10000, http.StatusCreated},
		{10001, http.StatusBadRequest},
	}

	for _, tt := range tests {
		ts := newTestServer(t)
		userID := uuid.New()
		ts.generations.On("Generate", mock.Anything, userID, sourceText(tt.length)).
			Return(&service.GenerationResult{GenerationID: 1}, nil).Maybe()

		rec := ts.do(t, http.MethodPost, "/api/generations", ts.token(t, userID),
			map[string]string{"source_text": sourceText(tt.length)})

		assert.Equal(t, tt.status, rec.Code, "length %d", tt.length)
		if tt.status == http.StatusBadRequest {
			resp := decodeError(t, rec)
			assert.Equal(t, "Invalid input", resp.Error)
			require.Len(t, resp.Details, 1)
			assert.Equal(t, "source_text", resp.Details[0].Field)
			ts.generations.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		}
	}
}

func TestGenerateSuccessBody(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	text := sourceText(1200)
	ts.generations.On("Generate", mock.Anything, userID, text).Return(&service.GenerationResult{
		GenerationID:   42,
		TotalGenerated: 2,
		Candidates: []domain.FlashcardCandidate{
			{Front: "Q1", Back: "A1", Source: domain.SourceAIFull},
			{Front: "Q2", Back: "A2", Source: domain.SourceAIFull},
		},
	}, nil)

	rec := ts.do(t, http.MethodPost, "/api/generations", ts.token(t, userID), map[string]string{"source_text": text})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp api.GenerateFlashcardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp.GenerationID)
	assert.Equal(t, 2, resp.TotalGenerated)
	require.Len(t, resp.FlashcardCandidates, 2)
	assert.Equal(t, "AI-full", resp.FlashcardCandidates[1].Source)
}

func TestGenerateUpstreamFailureIsGeneric(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	ts.generations.On("Generate", mock.Anything, userID, mock.Anything).
		Return(nil, llm.NewAPIError(401, "Incorrect API key provided: sk-or-v1-secret", nil))

	rec := ts.do(t, http.MethodPost, "/api/generations", ts.token(t, userID),
		map[string]string{"source_text": sourceText(1000)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-or")
	resp := decodeError(t, rec)
	assert.Equal(t, api.MsgGenerationFailed, resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestGenerateMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/generations", ts.token(t, uuid.New()), "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
