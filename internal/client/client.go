// Package client is a typed HTTP client for the flashcard API. It implements
// review.Saver so a terminal review session can save through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/api/shared"
	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/phrazzld/tenx-cards/internal/domain/review"
)

// DefaultTimeout covers an LLM call with retries on the server side.
const DefaultTimeout = 3 * time.Minute

// ErrNotAuthenticated is returned by protected calls made without a token.
var ErrNotAuthenticated = errors.New("not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    []shared.FieldError
	TraceID    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (status %d)", e.Message, e.StatusCode)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "\n  %s: %s", d.Field, d.Message)
	}
	return b.String()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the access token sent as a Bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client calls the flashcard API.
type Client struct {
	base *url.URL
	http *http.Client

	mu    sync.RWMutex
	token string
}

var _ review.Saver = (*Client)(nil)

// New creates a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, errors.New("server URL cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawQuery = ""
	base.Fragment = ""

	c := &Client{
		base: base,
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the access token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", api.RegisterRequest{Email: email, Password: password})
}

// Login authenticates and stores the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", api.LoginRequest{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, false, body, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Generate submits source text and returns the generation id and candidates.
func (c *Client) Generate(ctx context.Context, sourceText string) (*api.GenerateFlashcardsResponse, error) {
	var resp api.GenerateFlashcardsResponse
	err := c.do(ctx, http.MethodPost, "/api/generations", true,
		api.GenerateFlashcardsRequest{SourceText: sourceText}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveFlashcards stores cards and returns the persisted rows.
func (c *Client) SaveFlashcards(
	ctx context.Context,
	generationID int64,
	cards []domain.NewFlashcard,
) ([]domain.Flashcard, error) {
	req := api.CreateFlashcardsRequest{
		Flashcards:   make([]api.FlashcardInput, 0, len(cards)),
		GenerationID: &generationID,
	}
	for _, card := range cards {
		req.Flashcards = append(req.Flashcards, api.FlashcardInput{
			Front:        card.Front,
			Back:         card.Back,
			Source:       string(card.Source),
			GenerationID: card.GenerationID,
		})
	}

	var rows []api.FlashcardResponse
	if err := c.do(ctx, http.MethodPost, "/api/flashcards", true, req, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.Flashcard, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Flashcard{
			ID:           r.ID,
			UserID:       r.UserID,
			GenerationID: r.GenerationID,
			Front:        r.Front,
			Back:         r.Back,
			Source:       domain.FlashcardSource(r.Source),
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return out, nil
}

// Candidates converts a generation response into session input.
func Candidates(resp *api.GenerateFlashcardsResponse) []domain.FlashcardCandidate {
	out := make([]domain.FlashcardCandidate, 0, len(resp.FlashcardCandidates))
	for _, c := range resp.FlashcardCandidates {
		out = append(out, domain.FlashcardCandidate{
			Front:  c.Front,
			Back:   c.Back,
			Source: domain.FlashcardSource(c.Source),
		})
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.Token()
		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body shared.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		apiErr.TraceID = body.TraceID
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
