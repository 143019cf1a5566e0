package llm

import (
	"fmt"
	"os"
	"time"
)

// Supported provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Default models per provider.
const (
	DefaultAnthropicModel  = "claude-sonnet-4-5"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultOpenRouterModel = "openai/gpt-4o-mini"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and parameterizes a provider.
type Config struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the baseline configuration with no provider chosen.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		Timeout:    30 * time.Second,
	}
}

// ConfigFromEnv builds a config from MENTOR_* environment variables,
// falling back to the providers' conventional variable names for API keys.
// Returns an error when MENTOR_LLM_PROVIDER names an unknown provider.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("MENTOR_LLM_PROVIDER")
	cfg.Model = os.Getenv("MENTOR_LLM_MODEL")
	cfg.BaseURL = os.Getenv("MENTOR_LLM_BASE_URL")

	switch cfg.Provider {
	case "":
		return DiscoverConfig()
	case ProviderAnthropic:
		cfg.APIKey = firstEnv("MENTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	case ProviderOpenAI:
		cfg.APIKey = firstEnv("MENTOR_OPENAI_API_KEY", "OPENAI_API_KEY")
	case ProviderGemini:
		cfg.APIKey = firstEnv("MENTOR_GEMINI_API_KEY", "GEMINI_API_KEY")
	case ProviderOpenRouter:
		cfg.APIKey = firstEnv("MENTOR_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	case ProviderMock:
	default:
		return cfg, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	applyModelDefault(&cfg)
	return cfg, nil
}

// DiscoverConfig picks the first provider whose API key is present in the
// environment, checking Gemini, then OpenAI, then Anthropic, then
// OpenRouter. Returns a config with an empty Provider when none is set.
func DiscoverConfig() (Config, error) {
	cfg := DefaultConfig()

	candidates := []struct {
		provider string
		envs     []string
	}{
		{ProviderGemini, []string{"MENTOR_GEMINI_API_KEY", "GEMINI_API_KEY"}},
		{ProviderOpenAI, []string{"MENTOR_OPENAI_API_KEY", "OPENAI_API_KEY"}},
		{ProviderAnthropic, []string{"MENTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}},
		{ProviderOpenRouter, []string{"MENTOR_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}},
	}
	for _, c := range candidates {
		if key := firstEnv(c.envs...); key != "" {
			cfg.Provider = c.provider
			cfg.APIKey = key
			break
		}
	}

	if model := os.Getenv("MENTOR_LLM_MODEL"); model != "" {
		cfg.Model = model
	}
	applyModelDefault(&cfg)
	return cfg, nil
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return fmt.Errorf("no provider configured: set MENTOR_LLM_PROVIDER or an API key")
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("provider %s: missing API key", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
}

func applyModelDefault(cfg *Config) {
	if cfg.Model != "" {
		return
	}
	switch cfg.Provider {
	case ProviderAnthropic:
		cfg.Model = DefaultAnthropicModel
	case ProviderOpenAI:
		cfg.Model = DefaultOpenAIModel
	case ProviderGemini:
		cfg.Model = DefaultGeminiModel
	case ProviderOpenRouter:
		cfg.Model = DefaultOpenRouterModel
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
