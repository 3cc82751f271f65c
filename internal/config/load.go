package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable, e.g. TENX_SERVER_PORT.
const envPrefix = "TENX"

// DefaultOpenRouterAPIURL is the default llm.api_url.
const DefaultOpenRouterAPIURL = "https://openrouter.ai/api/v1"

// Load configuration from a .env file, environment variables and optionally a
// config file. Environment variables take precedence over values from config
// files. Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("llm.provider", "openrouter")
	v.SetDefault("llm.api_url", DefaultOpenRouterAPIURL)
	v.SetDefault("llm.model_name", "openai/gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.frequency_penalty", 0.3)
	v.SetDefault("llm.presence_penalty", 0.3)
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.app_url", "https://10x-cards.com")
	v.SetDefault("llm.app_title", "10x Cards")
}

// bindEnvs registers keys that have no default so that Unmarshal sees their
// environment values; AutomaticEnv alone only applies to keys viper already knows.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"llm.api_key",
	} {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
}
