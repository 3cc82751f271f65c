package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu    sync.Mutex
	saved api.CreateFlashcardsRequest
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "password123" {
			writeTestJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		writeTestJSON(w, http.StatusOK, api.AuthResponse{UserID: uuid.New(), AccessToken: "access-token"})
	})
	mux.HandleFunc("/api/generations", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			writeTestJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Error: "Invalid token"})
			return
		}
		writeTestJSON(w, http.StatusCreated, api.GenerateFlashcardsResponse{
			GenerationID:   3,
			TotalGenerated: 2,
			FlashcardCandidates: []api.FlashcardCandidateResponse{
				{Front: "Q1", Back: "A1", Source: "AI-full"},
				{Front: "Q2", Back: "A2", Source: "AI-full"},
			},
		})
	})
	mux.HandleFunc("/api/flashcards", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.saved))
		rows := make([]api.FlashcardResponse, len(f.saved.Flashcards))
		for i, c := range f.saved.Flashcards {
			rows[i] = api.FlashcardResponse{ID: int64(i + 1), Front: c.Front, Back: c.Back, Source: c.Source}
		}
		writeTestJSON(w, http.StatusCreated, rows)
	})
	return mux
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func runCLI(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginThenGenerate(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	common := []string{"--server", srv.URL, "--token-file", tokenFile}

	out, err := runCLI(t, append([]string{"login", "--email", "user@example.com"}, common...), "password123\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as user@example.com")

	token, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "access-token\n", string(token))

	source := filepath.Join(dir, "source.txt")
	require.NoError(t, os.WriteFile(source, []byte(strings.Repeat("text ", 250)), 0o600))

	out, err = runCLI(t, append([]string{"generate", "--file", source}, common...), "accept 2\nsave\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 candidates (generation 3)")
	assert.Contains(t, out, "Saved 1 flashcards.")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.saved.Flashcards, 1)
	assert.Equal(t, "Q2", fake.saved.Flashcards[0].Front)
	require.NotNil(t, fake.saved.GenerationID)
	assert.Equal(t, int64(3), *fake.saved.GenerationID)
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler(t))
	defer srv.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	_, err := runCLI(t, []string{"login", "--email", "user@example.com", "--password", "wrong-pass",
		"--server", srv.URL, "--token-file", tokenFile}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.NoFileExists(t, tokenFile)
}

func TestGenerateWithoutLogin(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler(t))
	defer srv.Close()

	dir := t.TempDir()
	source := filepath.Join(dir, "source.txt")
	require.NoError(t, os.WriteFile(source, []byte("text"), 0o600))

	_, err := runCLI(t, []string{"generate", "--file", source,
		"--server", srv.URL, "--token-file", filepath.Join(dir, "token")}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to generate flashcards. Please try again.")
	assert.Contains(t, err.Error(), "not logged in")
}

func TestGenerateRequiresFile(t *testing.T) {
	_, err := runCLI(t, []string{"generate"}, "")
	assert.Error(t, err)
}
