package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted mock result, either text or an error.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider serves scripted responses in FIFO order and records every
// request it receives. Used in tests and as the "mock" provider for
// offline development.
type MockProvider struct {
	mu      sync.Mutex
	queue   []MockResponse
	failErr error
	calls   []Request
}

// NewMockProvider creates a mock serving the given responses in order.
// Once they run out it repeats the last one; with none scripted it returns
// a fixed placeholder.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) ModelID() string { return "mock-model" }

// AddResponse queues another canned text response.
func (m *MockProvider) AddResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, MockResponse{Text: text})
}

// FailWith makes every subsequent Generate call return err, overriding the
// scripted queue. Pass nil to restore normal behavior.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if m.failErr != nil {
		return nil, m.failErr
	}

	r := MockResponse{Text: "This is a canned response."}
	if len(m.queue) > 0 {
		r = m.queue[0]
		if len(m.queue) > 1 {
			m.queue = m.queue[1:]
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}

	return &Response{
		Text:       r.Text,
		Model:      m.ModelID(),
		StopReason: "end_turn",
		Usage:      Usage{InputTokens: 10, OutputTokens: 20},
	}, nil
}

// Calls returns a copy of every request received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
