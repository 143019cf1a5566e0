// Package session holds the mutable per-conversation state of a learner:
// conversation history, per-question hint counters, and running statistics.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxHints is the hint ceiling per question. Counters never exceed it.
const MaxHints = 3

// Role identifies the author of a history entry.
type Role string

const (
	RoleLearner Role = "learner"
	RoleTutor   Role = "tutor"
)

// Entry is a single conversation turn.
type Entry struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Stats accumulates counters for a session. Per-type tallies always sum to
// QuestionsAsked: both are updated together under the session lock.
type Stats struct {
	QuestionsAsked int
	HintsGiven     int
	ByType         map[string]int
	ByStrategy     map[string]int
}

func newStats() Stats {
	return Stats{
		ByType:     make(map[string]int),
		ByStrategy: make(map[string]int),
	}
}

// clone returns a deep copy safe to hand to callers.
func (s Stats) clone() Stats {
	c := Stats{
		QuestionsAsked: s.QuestionsAsked,
		HintsGiven:     s.HintsGiven,
		ByType:         make(map[string]int, len(s.ByType)),
		ByStrategy:     make(map[string]int, len(s.ByStrategy)),
	}
	for k, v := range s.ByType {
		c.ByType[k] = v
	}
	for k, v := range s.ByStrategy {
		c.ByStrategy[k] = v
	}
	return c
}

// Session is one learner conversation. All methods are safe for concurrent
// use; a single mutex serializes mutations so interleaved calls against the
// same session cannot lose updates.
type Session struct {
	mu sync.Mutex

	id        string
	startedAt time.Time

	history         []Entry
	currentQuestion string
	hintCounts      map[string]int
	stats           Stats
}

// New creates an empty session with a fresh UUID.
func New() *Session {
	return &Session{
		id:         uuid.NewString(),
		startedAt:  time.Now(),
		hintCounts: make(map[string]int),
		stats:      newStats(),
	}
}

// ID returns the session UUID.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Append adds a turn to the conversation history.
func (s *Session) Append(role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// History returns a copy of the conversation history.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// SetCurrentQuestion marks the question the learner is currently working on.
// Hint counters are keyed by question text, so a new question starts at zero.
func (s *Session) SetCurrentQuestion(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentQuestion = q
}

// CurrentQuestion returns the tracked question, or "" if none.
func (s *Session) CurrentQuestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentQuestion
}

// HintCount returns the hint counter for the given question identity
// (0 if absent).
func (s *Session) HintCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintCounts[key]
}

// IncrementHint bumps the hint counter for key, capped at MaxHints, and
// returns the new value. A fourth increment on the same question returns
// MaxHints again rather than wrapping.
func (s *Session) IncrementHint(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.hintCounts[key]
	if n < MaxHints {
		n++
		s.hintCounts[key] = n
	}
	return n
}

// RecordQuestion updates stats for one classified question. Type and
// strategy tallies move together with QuestionsAsked so the per-type sum
// stays equal to the total.
func (s *Session) RecordQuestion(questionType, strategy string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.QuestionsAsked++
	s.stats.ByType[questionType]++
	s.stats.ByStrategy[strategy]++
}

// RecordHint updates stats for one hint served.
func (s *Session) RecordHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.HintsGiven++
}

// Stats returns a read-only snapshot of the session statistics.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.clone()
}

// Reset clears the conversation history, the tracked question, and all hint
// counters. Cumulative stats are preserved unless zeroStats is true.
func (s *Session) Reset(zeroStats bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.currentQuestion = ""
	s.hintCounts = make(map[string]int)
	if zeroStats {
		s.stats = newStats()
	}
}
