// Package strategy contains the pedagogical prompt policies. Each strategy
// turns a learner question into a generation prompt that instructs the model
// to teach rather than answer.
package strategy

import (
	"github.com/abhisek/mentor/internal/classify"
	"github.com/abhisek/mentor/internal/session"
)

// Strategy is a prompt-generation policy. Implementations are stateless:
// given the same question and session snapshot, Prompt is deterministic.
type Strategy interface {
	// Name returns the stable strategy label used in metadata and stats.
	Name() string

	// Prompt builds the text sent to the generation service. The result is
	// never empty and never instructs the model to state the final answer.
	Prompt(question string, sess *session.Session) string
}

var (
	socratic   = &Socratic{}
	hintBased  = &HintBased{}
	conceptual = &Conceptual{}
	decompose  = &Decomposition{}
)

// byType is the total mapping from question type to strategy. Every tag in
// the closed set has exactly one entry; TypeLearning maps to Socratic and is
// the fallback for tags missing from the table.
var byType = map[classify.Type]Strategy{
	classify.TypeConceptual:     conceptual,
	classify.TypeComparison:     conceptual,
	classify.TypeWhy:            socratic,
	classify.TypeGreeting:       socratic,
	classify.TypeHelp:           socratic,
	classify.TypeDirectAnswer:   socratic,
	classify.TypeLearning:       socratic,
	classify.TypeHowTo:          decompose,
	classify.TypeProblemSolving: decompose,
	classify.TypeHintRequest:    hintBased,
}

// ForType resolves the strategy for a question type.
func ForType(t classify.Type) Strategy {
	if s, ok := byType[t]; ok {
		return s
	}
	return socratic
}
