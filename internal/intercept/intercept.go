// Package intercept implements the ordered handler chain evaluated before
// classification. Handlers catch non-learning inputs (greetings, help,
// direct-answer requests, hint requests) with canned responses so only
// genuine learning questions reach the generation pipeline.
package intercept

import (
	"strings"

	"github.com/abhisek/mentor/internal/session"
)

// Handler names, stable parts of the metadata contract.
const (
	HandlerGreeting     = "greeting-handler"
	HandlerHelp         = "help-handler"
	HandlerDirectAnswer = "direct-answer-detector"
	HandlerHintRequest  = "hint-request-handler"
	HandlerLearning     = "learning-question-handler"
)

// Result is the outcome of running the chain. When Terminated is true the
// pipeline uses Response directly and skips classification, strategy
// resolution, and generation. HintCount carries the counter value after a
// hint-request termination (0 otherwise).
type Result struct {
	Terminated bool
	Response   string
	Handler    string
	HintCount  int
}

// HandlerFunc inspects a question and either terminates with a result or
// returns nil to pass control to the next handler. Implementations never
// fail: empty, whitespace-only, and non-ASCII input simply decline.
type HandlerFunc func(question string, sess *session.Session) *Result

// Handler is one named node in the chain.
type Handler struct {
	Name string
	Fn   HandlerFunc
}

// Chain is an ordered list of handlers evaluated front to back. The first
// handler whose predicate matches wins; there is no backtracking. The final
// learning handler never declines, so Handle always produces a Result.
type Chain struct {
	handlers []Handler
}

// NewChain builds the default chain. Order is significant and fixed:
// greeting before help before direct-answer before hint-request, with the
// terminal learning handler last.
func NewChain() *Chain {
	return &Chain{
		handlers: []Handler{
			{Name: HandlerGreeting, Fn: handleGreeting},
			{Name: HandlerHelp, Fn: handleHelp},
			{Name: HandlerDirectAnswer, Fn: handleDirectAnswer},
			{Name: HandlerHintRequest, Fn: handleHintRequest},
			{Name: HandlerLearning, Fn: handleLearning},
		},
	}
}

// Insert places h at position pos, shifting later handlers back. Position
// determines precedence; out-of-range positions clamp to the ends. The
// terminal learning handler should stay last.
func (c *Chain) Insert(pos int, h Handler) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.handlers) {
		pos = len(c.handlers)
	}
	c.handlers = append(c.handlers, Handler{})
	copy(c.handlers[pos+1:], c.handlers[pos:])
	c.handlers[pos] = h
}

// Handlers returns the chain order by name, for documentation and tests.
func (c *Chain) Handlers() []string {
	names := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		names[i] = h.Name
	}
	return names
}

// Handle runs the question through the chain.
func (c *Chain) Handle(question string, sess *session.Session) Result {
	for _, h := range c.handlers {
		if res := h.Fn(question, sess); res != nil {
			res.Handler = h.Name
			return *res
		}
	}
	// Unreachable with the terminal handler in place, but keep the chain
	// total even if it is misconfigured.
	return Result{Handler: HandlerLearning}
}

// normalize lower-cases and trims the question for predicate matching.
func normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}
