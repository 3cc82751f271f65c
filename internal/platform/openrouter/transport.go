package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

// Config holds the provider endpoint, credentials and attribution.
type Config struct {
	APIURL   string
	APIKey   string
	AppURL   string
	AppTitle string
	// HTTPClient overrides the client used for requests; its Transport is
	// wrapped to add attribution headers.
	HTTPClient *http.Client
}

// Transport sends flashcard requests to OpenRouter.
type Transport struct {
	client *openai.Client
	logger *slog.Logger
}

var _ llm.Transport = (*Transport)(nil)

// New builds a Transport.
func New(cfg Config, logger *slog.Logger) (*Transport, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key cannot be empty")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.APIURL, "/")
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = &attributionTransport{
		base:    base,
		referer: cfg.AppURL,
		title:   cfg.AppTitle,
	}
	clientCfg.HTTPClient = httpClient

	return &Transport{
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger.With(slog.String("component", "openrouter_transport")),
	}, nil
}

// Complete performs one chat completion and returns the message content.
func (t *Transport) Complete(ctx context.Context, req llm.Request) (string, error) {
	schema := req.Schema
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
		MaxTokens:        req.Params.MaxTokens,
		Temperature:      float32(req.Params.Temperature),
		FrequencyPenalty: float32(req.Params.FrequencyPenalty),
		PresencePenalty:  float32(req.Params.PresencePenalty),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: &schema,
				Strict: true,
			},
		},
	}

	t.logger.DebugContext(ctx, "sending chat completion",
		slog.String("model", req.Model),
		slog.Int("message_length", len(req.UserMessage)))

	resp, err := t.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", llm.NewError(llm.KindParse, "response contained no message content", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// mapError turns go-openai failures into llm errors. A 2xx body that does not
// decode is a parse failure; anything else without an HTTP status is treated
// as a network failure.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return llm.NewAPIError(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return llm.NewAPIError(reqErr.HTTPStatusCode, "", err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return llm.NewError(llm.KindParse, fmt.Sprintf("malformed response body: %v", err), err)
	}
	return llm.NewError(llm.KindNetwork, fmt.Sprintf("request to OpenRouter failed: %v", err), err)
}

// attributionTransport adds the headers OpenRouter uses to attribute traffic
// to an application.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (a *attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if a.referer != "" {
		r.Header.Set("HTTP-Referer", a.referer)
	}
	if a.title != "" {
		r.Header.Set("X-Title", a.title)
	}
	return a.base.RoundTrip(r)
}
