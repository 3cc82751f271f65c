package config

import "time"

// Config is the server configuration, loaded from config.yaml, .env and
// TENX_-prefixed environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig covers the HTTP listener and logging.
type ServerConfig struct {
	Port               int      `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig controls token signing and password hashing.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"required,min=4,max=31"`
}

// LLMConfig selects the provider and the sampling parameters sent with
// every generation request.
type LLMConfig struct {
	// Provider selects the transport: "openrouter" or "gemini".
	Provider         string  `mapstructure:"provider"          validate:"required,oneof=openrouter gemini"`
	APIURL           string  `mapstructure:"api_url"           validate:"omitempty,url"`
	APIKey           string  `mapstructure:"api_key"           validate:"required"`
	ModelName        string  `mapstructure:"model_name"        validate:"required"`
	Temperature      float64 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	MaxTokens        int     `mapstructure:"max_tokens"        validate:"gt=0"`
	FrequencyPenalty float64 `mapstructure:"frequency_penalty" validate:"gte=-2,lte=2"`
	PresencePenalty  float64 `mapstructure:"presence_penalty"  validate:"gte=-2,lte=2"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"   validate:"gt=0"`
	AppURL           string  `mapstructure:"app_url"`
	AppTitle         string  `mapstructure:"app_title"`
}

// Timeout returns the configured LLM timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
