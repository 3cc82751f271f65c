package llm

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ModelParams are the sampling parameters sent with every request.
type ModelParams struct {
	Temperature      float64 `validate:"gte=0,lte=2"`
	MaxTokens        int     `validate:"gt=0"`
	FrequencyPenalty float64 `validate:"gte=-2,lte=2"`
	PresencePenalty  float64 `validate:"gte=-2,lte=2"`
}

// Config is the mutable part of the adapter. Provider credentials and
// endpoints are fixed when the Transport is built.
type Config struct {
	ModelName string        `validate:"required"`
	Timeout   time.Duration `validate:"gt=0"`
	Params    ModelParams
}

// DefaultConfig mirrors the configuration defaults.
func DefaultConfig() Config {
	return Config{
		ModelName: "openai/gpt-4o-mini",
		Params: ModelParams{
			Temperature:      0.7,
			MaxTokens:        2048,
			FrequencyPenalty: 0.3,
			PresencePenalty:  0.3,
		},
		Timeout: 60 * time.Second,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewError(KindValidation, fmt.Sprintf("invalid configuration: %v", err), err)
	}
	return nil
}

// ParamsUpdate carries the parameters to change; nil fields are kept.
type ParamsUpdate struct {
	Temperature      *float64
	MaxTokens        *int
	FrequencyPenalty *float64
	PresencePenalty  *float64
}

// ConfigUpdate carries a partial configuration; nil fields are kept.
type ConfigUpdate struct {
	ModelName *string
	Params    *ParamsUpdate
	Timeout   *time.Duration
}

// Merge returns c with u applied. Params are merged field by field.
func (c Config) Merge(u ConfigUpdate) Config {
	out := c
	if u.ModelName != nil {
		out.ModelName = *u.ModelName
	}
	if u.Timeout != nil {
		out.Timeout = *u.Timeout
	}
	if p := u.Params; p != nil {
		if p.Temperature != nil {
			out.Params.Temperature = *p.Temperature
		}
		if p.MaxTokens != nil {
			out.Params.MaxTokens = *p.MaxTokens
		}
		if p.FrequencyPenalty != nil {
			out.Params.FrequencyPenalty = *p.FrequencyPenalty
		}
		if p.PresencePenalty != nil {
			out.Params.PresencePenalty = *p.PresencePenalty
		}
	}
	return out
}
