// Package assistant wires the full question pipeline: interception chain,
// classification, strategy selection, generation, and observer fan-out.
// It is the only package that touches all of them; the CLI talks to the
// assistant and nothing below it.
package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mentor/internal/classify"
	"github.com/abhisek/mentor/internal/intercept"
	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/notify"
	"github.com/abhisek/mentor/internal/session"
	"github.com/abhisek/mentor/internal/strategy"
)

// Reply is the outcome of processing one input, with the metadata observers
// also receive.
type Reply struct {
	Text         string
	Handler      string
	QuestionType classify.Type
	Strategy     string
	HintCount    int
	Degraded     bool
	Timestamp    time.Time
}

// Assistant orchestrates the pipeline. A nil provider is allowed: learning
// questions then get the degraded response while chain-handled inputs keep
// working, so the tool stays usable without an API key.
type Assistant struct {
	cfg         Config
	provider    llm.Provider
	chain       *intercept.Chain
	broadcaster *notify.Broadcaster
	logger      *zap.Logger
}

// New creates an assistant with the default interception chain and an empty
// observer list.
func New(cfg Config, provider llm.Provider, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		cfg:         cfg,
		provider:    provider,
		chain:       intercept.NewChain(),
		broadcaster: notify.NewBroadcaster(logger),
		logger:      logger,
	}
}

// Chain exposes the interception chain so callers can insert custom
// handlers before processing starts.
func (a *Assistant) Chain() *intercept.Chain {
	return a.chain
}

// Attach registers an observer for processed-question events.
func (a *Assistant) Attach(o notify.Observer) {
	a.broadcaster.Attach(o)
}

// Detach removes an observer.
func (a *Assistant) Detach(o notify.Observer) {
	a.broadcaster.Detach(o)
}

// Available reports whether a generation provider is configured.
func (a *Assistant) Available() bool {
	return a.provider != nil
}

// Process runs one learner input through the pipeline and returns the
// reply. It never returns an error to the caller: generation failures
// degrade to a fixed response and are reported through the Degraded flag.
func (a *Assistant) Process(ctx context.Context, sess *session.Session, input string) Reply {
	sess.Append(session.RoleLearner, input)

	res := a.chain.Handle(input, sess)
	if res.Terminated {
		return a.finishTerminated(ctx, sess, input, res)
	}
	return a.finishLearning(ctx, sess, input)
}

// RequestHint asks for the next hint on the current question, equivalent to
// typing "hint".
func (a *Assistant) RequestHint(ctx context.Context, sess *session.Session) Reply {
	return a.Process(ctx, sess, "hint")
}

// Stats returns a snapshot of the session statistics.
func (a *Assistant) Stats(sess *session.Session) session.Stats {
	return sess.Stats()
}

// Reset clears the session conversation state. Cumulative stats survive
// unless zeroStats is set.
func (a *Assistant) Reset(sess *session.Session, zeroStats bool) {
	sess.Reset(zeroStats)
}

func (a *Assistant) finishTerminated(ctx context.Context, sess *session.Session, input string, res intercept.Result) Reply {
	// A refused direct-answer request still becomes the question the
	// learner is working on, so a follow-up "hint" has a target.
	if res.Handler == intercept.HandlerDirectAnswer {
		sess.SetCurrentQuestion(input)
	}
	if res.Handler == intercept.HandlerHintRequest && res.HintCount > 0 {
		sess.RecordHint()
	}

	sess.Append(session.RoleTutor, res.Response)
	now := time.Now()
	a.broadcaster.Notify(ctx, notify.Event{
		SessionID: sess.ID(),
		Question:  input,
		Handler:   res.Handler,
		HintCount: res.HintCount,
		Timestamp: now,
	})

	return Reply{
		Text:      res.Response,
		Handler:   res.Handler,
		HintCount: res.HintCount,
		Timestamp: now,
	}
}

func (a *Assistant) finishLearning(ctx context.Context, sess *session.Session, input string) Reply {
	sess.SetCurrentQuestion(input)

	qType := classify.Classify(input)
	strat := strategy.ForType(qType)

	text, degraded := a.generate(ctx, sess, strat, input)

	sess.RecordQuestion(string(qType), strat.Name())
	sess.Append(session.RoleTutor, text)

	// A re-asked question keeps its accumulated hint counter; reply and
	// event report the same value.
	hintCount := sess.HintCount(input)
	now := time.Now()
	a.broadcaster.Notify(ctx, notify.Event{
		SessionID:    sess.ID(),
		Question:     input,
		QuestionType: qType,
		Strategy:     strat.Name(),
		Handler:      intercept.HandlerLearning,
		HintCount:    hintCount,
		Degraded:     degraded,
		Timestamp:    now,
	})

	return Reply{
		Text:         text,
		Handler:      intercept.HandlerLearning,
		QuestionType: qType,
		Strategy:     strat.Name(),
		HintCount:    hintCount,
		Degraded:     degraded,
		Timestamp:    now,
	}
}

// generate calls the provider with the strategy prompt and bounded history
// context. Any failure yields the degraded response.
func (a *Assistant) generate(ctx context.Context, sess *session.Session, strat strategy.Strategy, input string) (string, bool) {
	if a.provider == nil {
		return DegradedResponse, true
	}

	genCtx := llm.WithPurpose(ctx, strat.Name())
	if a.cfg.GenTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(genCtx, a.cfg.GenTimeout)
		defer cancel()
	}

	messages := append(a.contextMessages(sess), llm.Message{
		Role:    llm.RoleUser,
		Content: strat.Prompt(input, sess),
	})

	resp, err := a.provider.Generate(genCtx, llm.Request{
		System:      a.cfg.SystemPrompt,
		Messages:    messages,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		a.logger.Warn("generation failed, serving degraded response",
			zap.String("session_id", sess.ID()),
			zap.String("strategy", strat.Name()),
			zap.Error(err),
		)
		return DegradedResponse, true
	}
	return resp.Text, false
}

// contextMessages converts recent history into provider messages, excluding
// the learner turn appended for the in-flight input.
func (a *Assistant) contextMessages(sess *session.Session) []llm.Message {
	history := sess.History()
	if len(history) > 0 {
		history = history[:len(history)-1]
	}
	if a.cfg.HistoryTurns > 0 && len(history) > a.cfg.HistoryTurns {
		history = history[len(history)-a.cfg.HistoryTurns:]
	}

	out := make([]llm.Message, 0, len(history))
	for _, e := range history {
		role := llm.RoleUser
		if e.Role == session.RoleTutor {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: e.Content})
	}
	return out
}
