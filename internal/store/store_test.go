package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mentor/internal/classify"
	"github.com/abhisek/mentor/internal/notify"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mentor.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSequenceIsGloballyMonotonic(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSession(ctx, SessionEvent{SessionID: "s-1", Action: "started"}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendQuestion(ctx, QuestionEvent{SessionID: "s-1", Question: "q", Handler: "learning-question-handler"}); err != nil {
		t.Fatalf("append question: %v", err)
	}
	if err := repo.AppendHint(ctx, HintEvent{SessionID: "s-1", Question: "q", HintNumber: 1}); err != nil {
		t.Fatalf("append hint: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMEvent{Provider: "mock", Model: "m", Purpose: "socratic"}); err != nil {
		t.Fatalf("append llm: %v", err)
	}

	var seqs []int64
	for _, q := range []string{
		`SELECT sequence FROM session_events`,
		`SELECT sequence FROM question_events`,
		`SELECT sequence FROM hint_events`,
		`SELECT sequence FROM llm_events`,
	} {
		var seq int64
		if err := s.DB().QueryRow(q).Scan(&seq); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		seqs = append(seqs, seq)
	}

	for i := 1; i < len(seqs); i++ {
		if seqs[i] != seqs[i-1]+1 {
			t.Fatalf("sequences not contiguous across tables: %v", seqs)
		}
	}
}

func TestSequenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mentor.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendSession(ctx, SessionEvent{SessionID: "s-1", Action: "started"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if err := s2.EventRepo().AppendSession(ctx, SessionEvent{SessionID: "s-1", Action: "ended"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}

	var first, second int64
	if err := s2.DB().QueryRow(`SELECT MIN(sequence), MAX(sequence) FROM session_events`).Scan(&first, &second); err != nil {
		t.Fatalf("query: %v", err)
	}
	if second <= first {
		t.Errorf("sequence did not advance across reopen: %d then %d", first, second)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := LLMEvent{
		Timestamp:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "conceptual",
		InputTokens:  120,
		OutputTokens: 300,
		LatencyMS:    840,
		Success:      true,
		RequestBody:  `{"system":"..."}`,
		ResponseBody: "Think about where the energy comes from.",
	}
	if err := repo.AppendLLMRequest(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListLLMEvents(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.Provider != in.Provider || got.Model != in.Model || got.Purpose != in.Purpose {
		t.Errorf("identity fields mismatch: %+v", got)
	}
	if got.InputTokens != 120 || got.OutputTokens != 300 || got.LatencyMS != 840 {
		t.Errorf("usage fields mismatch: %+v", got)
	}
	if !got.Success {
		t.Error("success flag lost")
	}
	if !got.Timestamp.Equal(in.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, in.Timestamp)
	}

	byID, err := repo.GetLLMEvent(ctx, got.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if byID.ResponseBody != in.ResponseBody {
		t.Errorf("response body = %q", byID.ResponseBody)
	}
}

func TestListLLMEventsPurposeFilterAppliesBeforeLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Interleave so matching rows are not the most recent ones.
	for i := 0; i < 5; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMEvent{Provider: "mock", Model: "m", Purpose: "Socratic"}); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := repo.AppendLLMRequest(ctx, LLMEvent{Provider: "mock", Model: "m", Purpose: "Conceptual"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.ListLLMEvents(ctx, "Socratic", 4)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4 matching rows despite newer non-matching ones", len(events))
	}
	for _, e := range events {
		if e.Purpose != "Socratic" {
			t.Errorf("purpose = %q", e.Purpose)
		}
	}

	all, err := repo.ListLLMEvents(ctx, "", 20)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("got %d events, want 10 with no filter", len(all))
	}
}

func TestGetLLMEventNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAggregate(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	obs := NewObserver(repo)
	events := []notify.Event{
		{SessionID: "s-1", Question: "What is photosynthesis?", QuestionType: classify.TypeConceptual, Strategy: "Conceptual", Handler: "learning-question-handler"},
		{SessionID: "s-1", Question: "Why does ice float?", QuestionType: classify.TypeWhy, Strategy: "Socratic", Handler: "learning-question-handler", Degraded: true},
		{SessionID: "s-2", Question: "hint", Handler: "hint-request-handler", HintCount: 1},
		{SessionID: "s-2", Question: "hint", Handler: "hint-request-handler", HintCount: 2},
	}
	for _, ev := range events {
		if err := obs.OnEvent(ctx, ev); err != nil {
			t.Fatalf("observe: %v", err)
		}
	}
	for _, id := range []string{"s-1", "s-2"} {
		if err := repo.AppendSession(ctx, SessionEvent{SessionID: id, Action: "started"}); err != nil {
			t.Fatalf("append session: %v", err)
		}
	}

	agg, err := repo.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.Questions != 2 {
		t.Errorf("questions = %d, want 2", agg.Questions)
	}
	if agg.Hints != 2 {
		t.Errorf("hints = %d, want 2", agg.Hints)
	}
	if agg.Degraded != 1 {
		t.Errorf("degraded = %d, want 1", agg.Degraded)
	}
	if agg.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", agg.Sessions)
	}
	if agg.ByType["conceptual"] != 1 || agg.ByType["why"] != 1 {
		t.Errorf("by type = %v", agg.ByType)
	}
	if agg.ByStrategy["Socratic"] != 1 {
		t.Errorf("by strategy = %v", agg.ByStrategy)
	}
	if agg.ByHandler["hint-request-handler"] != 2 {
		t.Errorf("by handler = %v", agg.ByHandler)
	}
}

func TestDefaultDBPathPrefersEnv(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "custom.db")
	t.Setenv("MENTOR_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := filepath.Join(dir, "mentor", "mentor.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
