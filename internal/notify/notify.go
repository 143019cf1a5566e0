// Package notify broadcasts processed-question events to registered
// observers. Observer failures are isolated: one failing observer never
// prevents the others from receiving the event, and never fails the
// pipeline call that triggered the broadcast.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mentor/internal/classify"
)

// Event is the immutable record of one processed question.
type Event struct {
	SessionID    string
	Question     string
	QuestionType classify.Type
	Strategy     string
	Handler      string
	HintCount    int
	Degraded     bool
	Timestamp    time.Time
}

// Observer consumes events. Implementations must tolerate being called for
// every processed question, including chain-terminated ones.
type Observer interface {
	Name() string
	OnEvent(ctx context.Context, ev Event) error
}

// Broadcaster owns the observer list and fans events out in registration
// order. It is safe for concurrent use.
type Broadcaster struct {
	mu        sync.Mutex
	observers []Observer
	logger    *zap.Logger
}

// NewBroadcaster creates an empty broadcaster. A nil logger falls back to
// zap.NewNop.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{logger: logger}
}

// Attach registers an observer. Attaching the same observer twice is a
// no-op.
func (b *Broadcaster) Attach(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.observers {
		if existing == o {
			return
		}
	}
	b.observers = append(b.observers, o)
}

// Detach removes an observer. Unknown observers are ignored.
func (b *Broadcaster) Detach(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.observers {
		if existing == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers ev to every attached observer in registration order.
// Errors and panics are logged per observer and never abort the remaining
// deliveries.
func (b *Broadcaster) Notify(ctx context.Context, ev Event) {
	b.mu.Lock()
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.Unlock()

	for _, o := range observers {
		if err := b.deliver(ctx, o, ev); err != nil {
			b.logger.Warn("observer failed",
				zap.String("observer", o.Name()),
				zap.String("session_id", ev.SessionID),
				zap.Error(err),
			)
		}
	}
}

// deliver invokes one observer, converting a panic into an error.
func (b *Broadcaster) deliver(ctx context.Context, o Observer, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return o.OnEvent(ctx, ev)
}
