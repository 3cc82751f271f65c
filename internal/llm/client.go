package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/tenx-cards/internal/platform/logger"
	"github.com/phrazzld/tenx-cards/internal/redact"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Request is one provider call.
type Request struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Params       ModelParams
	SchemaName   string
	Schema       jsonschema.Definition
}

// Transport performs a single attempt against a provider and returns the raw
// JSON text of the reply. Failures must be *Error values: KindNetwork for
// transport problems, KindAPI for non-2xx replies, KindParse when the reply
// carries no content.
type Transport interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Option customizes a Client.
type Option func(*Client)

// WithRetryPolicy replaces the default backoff policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithSleeper replaces the function used to wait between attempts.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

// WithJitter replaces the jitter source; it must return values in [0,1).
func WithJitter(r func() float64) Option {
	return func(c *Client) { c.jitter = r }
}

// Client is the language model adapter used by the generation service.
type Client struct {
	mu        sync.RWMutex
	cfg       Config
	transport Transport
	retry     RetryPolicy
	sleep     func(ctx context.Context, d time.Duration) error
	jitter    func() float64
	logger    *slog.Logger
}

// NewClient validates cfg and returns a ready Client.
func NewClient(transport Transport, cfg Config, l *slog.Logger, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, errors.New("transport cannot be nil")
	}
	if l == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		transport: transport,
		retry:     DefaultRetryPolicy(),
		sleep:     sleepContext,
		jitter:    rand.Float64,
		logger:    l.With(slog.String("component", "llm_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// ModelName returns the configured model.
func (c *Client) ModelName() string {
	return c.Config().ModelName
}

// UpdateConfig merges u into the current configuration. The merged result is
// validated first; on failure the current configuration is left untouched.
func (c *Client) UpdateConfig(u ConfigUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.cfg.Merge(u)
	if err := next.Validate(); err != nil {
		return err
	}
	c.cfg = next
	return nil
}

// SendMessage asks the model for flashcards about message. Only KindNetwork
// failures are retried.
func (c *Client) SendMessage(ctx context.Context, message string) ([]Card, error) {
	if strings.TrimSpace(message) == "" {
		return nil, NewError(KindValidation, "message cannot be empty", nil)
	}

	cfg := c.Config()
	log := logger.FromContextOrDefault(ctx, c.logger)
	req := Request{
		Model:        cfg.ModelName,
		SystemPrompt: SystemPrompt,
		UserMessage:  message,
		Params:       cfg.Params,
		SchemaName:   SchemaName,
		Schema:       FlashcardsSchema,
	}

	var waited time.Duration
	for attempt := 0; ; attempt++ {
		content, err := c.attempt(ctx, req, cfg.Timeout)
		if err == nil {
			result := ParseFlashcards(content)
			if !result.OK() {
				return nil, NewError(KindParse, result.Reason, nil)
			}
			log.DebugContext(ctx, "llm call succeeded",
				slog.Int("attempt", attempt+1),
				slog.Int("cards", len(result.Cards)),
				slog.Duration("backoff_total", waited))
			return result.Cards, nil
		}

		if !IsRetryable(err) || attempt >= c.retry.MaxRetries || ctx.Err() != nil {
			log.ErrorContext(ctx, "llm call failed",
				slog.Int("attempt", attempt+1),
				slog.String("kind", string(KindOf(err))),
				slog.String("error", redact.Error(err)))
			return nil, err
		}

		delay := c.retry.Delay(attempt, c.jitter())
		waited += delay
		log.WarnContext(ctx, "llm network failure, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", redact.Error(err)))

		if err := c.sleep(ctx, delay); err != nil {
			return nil, NewError(KindNetwork, "retry aborted", err)
		}
	}
}

// attempt runs one bounded transport call and normalises its error.
func (c *Client) attempt(ctx context.Context, req Request, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := c.transport.Complete(callCtx, req)
	if err == nil {
		return content, nil
	}
	if KindOf(err) != "" {
		return "", err
	}
	return "", NewError(KindNetwork, "transport failure", err)
}
