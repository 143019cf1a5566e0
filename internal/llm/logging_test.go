package llm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/abhisek/mentor/internal/store"
)

func testEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "mentor.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingRecordsSuccess(t *testing.T) {
	repo := testEventRepo(t)
	mock := NewMockProvider(MockResponse{Text: "Think about the inputs first."})
	p := WithLogging(mock, ProviderMock, repo, zap.NewNop())

	ctx := WithPurpose(context.Background(), "socratic")
	resp, err := p.Generate(ctx, Request{
		System:   "You are a study mentor.",
		Messages: []Message{{Role: RoleUser, Content: "Why does ice float?"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	events, err := repo.ListLLMEvents(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if !ev.Success {
		t.Error("event should be marked successful")
	}
	if ev.Purpose != "socratic" {
		t.Errorf("purpose = %q", ev.Purpose)
	}
	if ev.Provider != ProviderMock || ev.Model != "mock-model" {
		t.Errorf("identity: %+v", ev)
	}
	if ev.ResponseBody != resp.Text {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
	if ev.InputTokens == 0 || ev.OutputTokens == 0 {
		t.Errorf("usage not recorded: %+v", ev)
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	repo := testEventRepo(t)
	mock := NewMockProvider()
	mock.FailWith(&UnavailableError{Provider: "mock", Err: errors.New("down")})
	p := WithLogging(mock, ProviderMock, repo, zap.NewNop())

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected unavailable error, got: %v", err)
	}

	events, err := repo.ListLLMEvents(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Success {
		t.Error("event should be marked failed")
	}
	if events[0].ErrorMessage == "" {
		t.Error("error message should be recorded")
	}
}

func TestLoggingNilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithLogging(mock, ProviderMock, nil, nil)

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("text = %q", resp.Text)
	}
}
