package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/llm"
	"google.golang.org/genai"
)

// Config holds the Gemini credentials.
type Config struct {
	APIKey string
	// BaseURL overrides the Gemini endpoint. Empty uses the default.
	BaseURL    string
	HTTPClient *http.Client
}

// Transport sends flashcard requests to Gemini.
type Transport struct {
	client *genai.Client
	logger *slog.Logger
}

var _ llm.Transport = (*Transport)(nil)

// New builds a Transport backed by the Gemini Developer API.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Transport, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Transport{
		client: client,
		logger: logger.With(slog.String("component", "gemini_transport")),
	}, nil
}

// Complete performs one GenerateContent call and returns the reply text.
func (t *Transport) Complete(ctx context.Context, req llm.Request) (string, error) {
	temperature := float32(req.Params.Temperature)
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
		Temperature:      &temperature,
		MaxOutputTokens:  int32(req.Params.MaxTokens),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toSchema(req.Schema),
	}

	t.logger.DebugContext(ctx, "sending generate content request",
		slog.String("model", req.Model),
		slog.Int("message_length", len(req.UserMessage)))

	resp, err := t.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserMessage), genCfg)
	if err != nil {
		return "", mapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.NewError(llm.KindParse, "response contained no candidates", nil)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", llm.NewError(llm.KindAPI, "content blocked by safety filters", nil)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", llm.NewError(llm.KindParse, "response contained no text", nil)
	}
	return text.String(), nil
}

// mapError classifies genai failures. API errors carry an HTTP status;
// everything else is a network failure.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.NewAPIError(apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return llm.NewAPIError(apiErrPtr.Code, apiErrPtr.Message, err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return llm.NewError(llm.KindParse, fmt.Sprintf("malformed response body: %v", err), err)
	}
	return llm.NewError(llm.KindNetwork, fmt.Sprintf("request to Gemini failed: %v", err), err)
}
