package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/config"
	"github.com/phrazzld/tenx-cards/internal/llm"
	"github.com/phrazzld/tenx-cards/internal/platform/gemini"
	"github.com/phrazzld/tenx-cards/internal/platform/openrouter"
	"github.com/phrazzld/tenx-cards/internal/platform/postgres"
	"github.com/phrazzld/tenx-cards/internal/service"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
)

// application holds the wired dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	generations *service.GenerationService
	flashcards  *service.FlashcardService
	accounts    *service.UserService
}

// newApplication builds stores, the LLM client and services on top of an open
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.jwtService = jwtService
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	userStore := postgres.NewPostgresUserStore(db, logger)
	generationStore := postgres.NewPostgresGenerationStore(db, logger)
	errorLogStore := postgres.NewPostgresGenerationErrorLogStore(db, logger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)

	client, err := newLLMClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	logger.Info("LLM client initialized",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", client.ModelName()))

	app.generations, err = service.NewGenerationService(generationStore, errorLogStore, client, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}
	app.flashcards, err = service.NewFlashcardService(db, flashcardStore, generationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}
	app.accounts = service.NewUserService(db, userStore, jwtService,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost), logger)

	logger.Info("application initialized")
	return app, nil
}

// newLLMClient selects the transport for cfg.Provider and wraps it in the
// retrying client.
func newLLMClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*llm.Client, error) {
	var (
		transport llm.Transport
		err       error
	)
	switch cfg.Provider {
	case "gemini":
		gcfg := gemini.Config{APIKey: cfg.APIKey}
		// The default api_url points at OpenRouter; only an explicit override applies here.
		if cfg.APIURL != config.DefaultOpenRouterAPIURL {
			gcfg.BaseURL = cfg.APIURL
		}
		transport, err = gemini.New(ctx, gcfg, logger)
	case "openrouter":
		transport, err = openrouter.New(openrouter.Config{
			APIURL:   cfg.APIURL,
			APIKey:   cfg.APIKey,
			AppURL:   cfg.AppURL,
			AppTitle: cfg.AppTitle,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return llm.NewClient(transport, llm.Config{
		ModelName: cfg.ModelName,
		Timeout:   cfg.Timeout(),
		Params: llm.ModelParams{
			Temperature:      cfg.Temperature,
			MaxTokens:        cfg.MaxTokens,
			FrequencyPenalty: cfg.FrequencyPenalty,
			PresencePenalty:  cfg.PresencePenalty,
		},
	}, logger)
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(app.config.Server, app.logger, routes{
		tokens:      app.jwtService,
		generations: api.NewGenerationHandler(app.generations, app.logger),
		flashcards:  api.NewFlashcardHandler(app.flashcards, app.logger),
		auth:        api.NewAuthHandler(app.accounts, app.config.Auth, app.logger),
	})

	if err := serve(ctx, app.config.Server.Port, router, app.logger); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	app.logger.Info("server shutdown completed")
	return nil
}
