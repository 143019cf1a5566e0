package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MENTOR_LLM_PROVIDER", "MENTOR_LLM_MODEL", "MENTOR_LLM_BASE_URL",
		"MENTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"MENTOR_OPENAI_API_KEY", "OPENAI_API_KEY",
		"MENTOR_GEMINI_API_KEY", "GEMINI_API_KEY",
		"MENTOR_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnvExplicitProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("MENTOR_LLM_PROVIDER", "anthropic")
	t.Setenv("MENTOR_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("MENTOR_LLM_MODEL", "claude-haiku-4-5")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("api key = %q", cfg.APIKey)
	}
	if cfg.Model != "claude-haiku-4-5" {
		t.Fatalf("model = %q", cfg.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConfigFromEnvUnknownProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("MENTOR_LLM_PROVIDER", "carrier-pigeon")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestDiscoverConfigPrecedence(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	cfg, err := DiscoverConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q, want openai before anthropic", cfg.Provider)
	}
	if cfg.Model != DefaultOpenAIModel {
		t.Fatalf("model = %q", cfg.Model)
	}
}

func TestDiscoverConfigNoKeys(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := DiscoverConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "" {
		t.Fatalf("provider = %q, want empty", cfg.Provider)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure with no provider")
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewProviderMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text == "" {
		t.Fatal("expected canned text")
	}
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"
	if _, err := NewProvider(context.Background(), cfg, nil, zap.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPurposeRoundTrip(t *testing.T) {
	ctx := WithPurpose(context.Background(), "socratic")
	if got := PurposeFrom(ctx); got != "socratic" {
		t.Fatalf("purpose = %q", got)
	}
	if got := PurposeFrom(context.Background()); got != "unspecified" {
		t.Fatalf("default purpose = %q", got)
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{&RateLimitError{Provider: "x"}, ErrRateLimit},
		{&UnavailableError{Provider: "x", Err: errors.New("down")}, ErrProviderUnavailable},
		{&InvalidResponseError{Provider: "x", Reason: "empty"}, ErrInvalidResponse},
		{&MaxTokensError{Provider: "x"}, ErrMaxTokensExceeded},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.want) {
			t.Errorf("%T does not unwrap to %v", c.err, c.want)
		}
	}
}
