package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/llm"
)

// Service sends prompts to a language model.
type Service interface {
	// Generate returns the complete response text.
	Generate(ctx context.Context, prompt *llm.Prompt) (string, error)
	// Stream returns the response as it is produced.
	Stream(ctx context.Context, prompt *llm.Prompt) (llm.ResponseStreamer, error)
	// Model is the model name requests are sent to.
	Model() string
}

var (
	ErrMissingAPIKey    = errors.New("missing api key")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrEmptyResponse    = errors.New("empty response")
	ErrNilPrompt        = errors.New("nil prompt")
	missingAPIKeyAdvice = "run `compass config` or set COMPASS_API_KEY"
)

// New returns the Service for the provider selected in cfg.
func New(ctx context.Context, cfg *config.Config) (Service, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, missingAPIKeyAdvice)
		}
		return newGeminiService(ctx, cfg)
	case config.ProviderOpenAI:
		// local OpenAI-compatible servers often run without a key
		if cfg.APIKey == "" && cfg.BaseURL == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, missingAPIKeyAdvice)
		}
		return newOpenAIService(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
