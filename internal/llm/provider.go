// Package llm abstracts external language-model providers behind a single
// Generate interface. Providers return plain text; prompt construction and
// pedagogy live upstream in the strategy layer. Retry and event logging are
// middleware decorators so every backend gets them for free.
package llm

import "context"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation context sent to the provider.
type Message struct {
	Role    Role
	Content string
}

// Request is a provider-agnostic generation request. The last message is
// the prompt being answered; earlier messages are prior context.
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is the provider's generation result.
type Response struct {
	Text       string
	Model      string
	StopReason string
	Usage      Usage
}

// Provider generates text from a request. Implementations must be safe for
// concurrent use and must map transport failures onto this package's typed
// errors so callers can branch on errors.Is.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}
