package session

import (
	"sync"
	"testing"
)

func TestNewSessionHasID(t *testing.T) {
	s := New()
	if s.ID() == "" {
		t.Fatal("expected non-empty session ID")
	}
	if s.ID() == New().ID() {
		t.Fatal("expected unique session IDs")
	}
}

func TestAppendHistory(t *testing.T) {
	s := New()
	s.Append(RoleLearner, "What is recursion?")
	s.Append(RoleTutor, "Let's think about it together.")

	h := s.History()
	if len(h) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h))
	}
	if h[0].Role != RoleLearner || h[1].Role != RoleTutor {
		t.Errorf("unexpected roles: %q, %q", h[0].Role, h[1].Role)
	}
	if h[0].Timestamp.IsZero() {
		t.Error("expected entry timestamp to be set")
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := New()
	s.Append(RoleLearner, "original")
	h := s.History()
	h[0].Content = "mutated"
	if s.History()[0].Content != "original" {
		t.Error("History() should return a copy")
	}
}

func TestHintCounterCap(t *testing.T) {
	s := New()
	q := "Solve 2x+5=15"

	want := []int{1, 2, 3, 3, 3}
	for i, w := range want {
		got := s.IncrementHint(q)
		if got != w {
			t.Fatalf("increment %d: got %d, want %d", i+1, got, w)
		}
	}
	if s.HintCount(q) != MaxHints {
		t.Fatalf("final count %d, want %d", s.HintCount(q), MaxHints)
	}
}

func TestHintCountAbsentQuestion(t *testing.T) {
	s := New()
	if s.HintCount("never asked") != 0 {
		t.Error("expected 0 for absent question")
	}
}

func TestStatsInvariant(t *testing.T) {
	s := New()
	s.RecordQuestion("conceptual", "Conceptual")
	s.RecordQuestion("conceptual", "Conceptual")
	s.RecordQuestion("why", "Socratic")
	s.RecordHint()

	st := s.Stats()
	sum := 0
	for _, n := range st.ByType {
		sum += n
	}
	if sum != st.QuestionsAsked {
		t.Errorf("per-type sum %d != questions asked %d", sum, st.QuestionsAsked)
	}
	if st.QuestionsAsked != 3 {
		t.Errorf("questions asked = %d, want 3", st.QuestionsAsked)
	}
	if st.HintsGiven != 1 {
		t.Errorf("hints given = %d, want 1", st.HintsGiven)
	}
}

func TestStatsSnapshotIsolated(t *testing.T) {
	s := New()
	s.RecordQuestion("why", "Socratic")
	st := s.Stats()
	st.ByType["why"] = 99
	if s.Stats().ByType["why"] != 1 {
		t.Error("Stats() snapshot should not alias internal state")
	}
}

func TestResetPreservesStats(t *testing.T) {
	s := New()
	s.Append(RoleLearner, "q")
	s.SetCurrentQuestion("q")
	s.IncrementHint("q")
	s.RecordQuestion("how-to", "Problem-Decomposition")

	s.Reset(false)

	if len(s.History()) != 0 {
		t.Error("expected empty history after reset")
	}
	if s.CurrentQuestion() != "" {
		t.Error("expected cleared current question after reset")
	}
	if s.HintCount("q") != 0 {
		t.Error("expected hint counters cleared after reset")
	}
	if s.Stats().QuestionsAsked != 1 {
		t.Error("expected stats preserved after reset")
	}
}

func TestResetZeroStats(t *testing.T) {
	s := New()
	s.RecordQuestion("why", "Socratic")
	s.Reset(true)
	if s.Stats().QuestionsAsked != 0 {
		t.Error("expected stats zeroed")
	}
}

func TestConcurrentMutation(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordQuestion("conceptual", "Conceptual")
			s.IncrementHint("q")
		}()
	}
	wg.Wait()

	if s.Stats().QuestionsAsked != 20 {
		t.Errorf("questions asked = %d, want 20", s.Stats().QuestionsAsked)
	}
	if s.HintCount("q") != MaxHints {
		t.Errorf("hint count = %d, want %d", s.HintCount("q"), MaxHints)
	}
}
