package llm

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is
// reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg Config) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL

	model := cfg.Model
	if model == "" {
		model = DefaultOpenRouterModel
	}

	inner := &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   ProviderOpenRouter,
		model:  model,
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
