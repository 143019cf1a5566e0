// Package classify maps raw question text to a question type using an
// ordered keyword rule table. Classification is total: text that matches no
// rule falls back to TypeLearning.
package classify

import "strings"

// Type is the closed set of question type tags.
type Type string

const (
	TypeConceptual     Type = "conceptual"
	TypeProblemSolving Type = "problem-solving"
	TypeHowTo          Type = "how-to"
	TypeWhy            Type = "why"
	TypeComparison     Type = "comparison"
	TypeGreeting       Type = "greeting"
	TypeHelp           Type = "help"
	TypeDirectAnswer   Type = "direct-answer-request"
	TypeHintRequest    Type = "hint-request"
	TypeLearning       Type = "unclassified-learning"
)

// rule matches a question when any keyword is contained in the lower-cased
// text, or any prefix starts it.
type rule struct {
	tag      Type
	keywords []string
	prefixes []string
}

// rules is the single source of truth for classification precedence.
// First match wins, so specific cues come before generic ones: a bare
// "hint" must not fall into conceptual, and "difference between" must be
// checked before the generic "why" prefix.
var rules = []rule{
	{
		tag:      TypeGreeting,
		prefixes: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"},
	},
	{
		tag:      TypeHelp,
		keywords: []string{"how does this work", "what can you do"},
		prefixes: []string{"help", "/help"},
	},
	{
		tag:      TypeDirectAnswer,
		keywords: []string{"give me the answer", "what is the answer", "just tell me", "i give up", "show me the solution", "solve it for me"},
	},
	{
		tag:      TypeHintRequest,
		keywords: []string{"give me a hint", "i need a hint", "show hint", "another hint"},
		prefixes: []string{"hint"},
	},
	{
		tag:      TypeComparison,
		keywords: []string{"difference between", "compare", "versus", " vs ", " vs.", "differ from"},
	},
	{
		tag:      TypeConceptual,
		keywords: []string{"what is", "what are", "define", "explain", "describe"},
	},
	{
		tag:      TypeWhy,
		keywords: []string{"why does", "why is", "why do"},
		prefixes: []string{"why"},
	},
	{
		tag:      TypeHowTo,
		keywords: []string{"how do i", "how to", "how can i", "steps to"},
	},
	{
		tag:      TypeProblemSolving,
		keywords: []string{"solve", "calculate", "compute", "find the", "evaluate", "=", "+", "*", "/"},
	},
}

// Classify returns exactly one tag for the given question text. It is
// deterministic and case-insensitive, and never fails: empty, whitespace,
// and unmatched input all classify as TypeLearning.
func Classify(question string) Type {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return TypeLearning
	}

	for _, r := range rules {
		for _, p := range r.prefixes {
			if matchesPrefix(q, p) {
				return r.tag
			}
		}
		for _, k := range r.keywords {
			if strings.Contains(q, k) {
				return r.tag
			}
		}
	}
	return TypeLearning
}

// matchesPrefix reports whether q starts with the prefix as a whole word,
// so "hi" does not match "history" and "why" does not match "whyever".
func matchesPrefix(q, prefix string) bool {
	if !strings.HasPrefix(q, prefix) {
		return false
	}
	if len(q) == len(prefix) {
		return true
	}
	next := q[len(prefix)]
	return next == ' ' || next == ',' || next == '!' || next == '?' || next == '.'
}
