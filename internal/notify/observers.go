package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LogObserver writes every event to the structured log.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging at info level.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (l *LogObserver) Name() string { return "log" }

func (l *LogObserver) OnEvent(_ context.Context, ev Event) error {
	l.logger.Info("question processed",
		zap.String("session_id", ev.SessionID),
		zap.String("question_type", string(ev.QuestionType)),
		zap.String("strategy", ev.Strategy),
		zap.String("handler", ev.Handler),
		zap.Int("hint_count", ev.HintCount),
		zap.Bool("degraded", ev.Degraded),
	)
	return nil
}

// Totals is an aggregate view over events seen by an Analytics observer.
type Totals struct {
	Questions  int
	Hints      int
	Degraded   int
	ByType     map[string]int
	ByStrategy map[string]int
	ByHandler  map[string]int
}

// Analytics accumulates in-memory tallies across every event it observes,
// independent of which session produced it.
type Analytics struct {
	mu     sync.Mutex
	totals Totals
}

// NewAnalytics creates an empty analytics observer.
func NewAnalytics() *Analytics {
	return &Analytics{
		totals: Totals{
			ByType:     make(map[string]int),
			ByStrategy: make(map[string]int),
			ByHandler:  make(map[string]int),
		},
	}
}

func (a *Analytics) Name() string { return "analytics" }

func (a *Analytics) OnEvent(_ context.Context, ev Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totals.ByHandler[ev.Handler]++
	if ev.Strategy != "" {
		a.totals.Questions++
		a.totals.ByType[string(ev.QuestionType)]++
		a.totals.ByStrategy[ev.Strategy]++
	} else if ev.HintCount > 0 {
		// Strategy-less events with a hint count are hint-handler
		// terminations, one per hint served.
		a.totals.Hints++
	}
	if ev.Degraded {
		a.totals.Degraded++
	}
	return nil
}

// Snapshot returns a copy of the current totals.
func (a *Analytics) Snapshot() Totals {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := Totals{
		Questions:  a.totals.Questions,
		Hints:      a.totals.Hints,
		Degraded:   a.totals.Degraded,
		ByType:     make(map[string]int, len(a.totals.ByType)),
		ByStrategy: make(map[string]int, len(a.totals.ByStrategy)),
		ByHandler:  make(map[string]int, len(a.totals.ByHandler)),
	}
	for k, v := range a.totals.ByType {
		c.ByType[k] = v
	}
	for k, v := range a.totals.ByStrategy {
		c.ByStrategy[k] = v
	}
	for k, v := range a.totals.ByHandler {
		c.ByHandler[k] = v
	}
	return c
}
