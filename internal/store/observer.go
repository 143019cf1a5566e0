package store

import (
	"context"
	"time"

	"github.com/abhisek/mentor/internal/notify"
)

// Observer persists pipeline events as they happen. It implements
// notify.Observer so it can be attached to the assistant's broadcaster.
type Observer struct {
	repo EventRepo
}

// NewObserver wraps repo as a notify observer.
func NewObserver(repo EventRepo) *Observer {
	return &Observer{repo: repo}
}

func (o *Observer) Name() string { return "store" }

// OnEvent appends one question event, plus a hint event when the
// interception chain served a hint. Strategy-less events with a hint count
// are exactly the hint-handler terminations.
func (o *Observer) OnEvent(ctx context.Context, ev notify.Event) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	if err := o.repo.AppendQuestion(ctx, QuestionEvent{
		Timestamp:    ts,
		SessionID:    ev.SessionID,
		Question:     ev.Question,
		QuestionType: string(ev.QuestionType),
		Strategy:     ev.Strategy,
		Handler:      ev.Handler,
		HintCount:    ev.HintCount,
		Degraded:     ev.Degraded,
	}); err != nil {
		return err
	}

	if ev.Strategy == "" && ev.HintCount > 0 {
		return o.repo.AppendHint(ctx, HintEvent{
			Timestamp:  ts,
			SessionID:  ev.SessionID,
			Question:   ev.Question,
			HintNumber: ev.HintCount,
		})
	}
	return nil
}
