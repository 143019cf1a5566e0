package intercept

import (
	"strings"

	"github.com/abhisek/mentor/internal/session"
)

var greetingPrefixes = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}

const greetingResponse = `Hello! I'm your study assistant.

I'm here to help you learn, not just hand out answers. I can guide you
through understanding concepts, breaking down problems, and thinking
critically about questions.

What would you like to learn about today?`

func handleGreeting(question string, _ *session.Session) *Result {
	q := normalize(question)
	for _, g := range greetingPrefixes {
		if matchesWord(q, g) {
			return &Result{Terminated: true, Response: greetingResponse}
		}
	}
	return nil
}

var helpTriggers = []string{"help", "/help", "how does this work", "what can you do"}

const helpResponse = `Here's how I help you learn:

- Socratic method: I ask guiding questions so you think critically
- Hints: progressive hints, up to 3 per question (type "hint" to get one)
- Concept explanations: I explain underlying principles with examples
- Problem decomposition: I break complex problems into steps

Tips:
- Ask your question naturally
- If you're stuck, ask for a "hint"
- I won't give direct answers; that's the point

What would you like to learn?`

func handleHelp(question string, _ *session.Session) *Result {
	q := normalize(question)
	for _, h := range helpTriggers {
		if q == h {
			return &Result{Terminated: true, Response: helpResponse}
		}
	}
	return nil
}

// directAnswerCues recognize phrasing that asks for the final answer
// outright. Matching any of them triggers the refusal-and-redirect response;
// raw answers are never produced.
var directAnswerCues = []string{
	"give me the answer",
	"what is the answer",
	"just tell me",
	"i give up",
	"show me the solution",
	"solve it for me",
}

// directAnswerImperatives catch bare commands like "solve 2x+5=15".
var directAnswerImperatives = []string{"solve", "compute", "calculate"}

const directAnswerResponse = `I understand you want the answer, but giving it to you directly won't help you learn.

Let's work through this step by step instead. I can:
1. Break the problem into smaller steps
2. Give you a hint to point you in the right direction (type "hint")
3. Explain the underlying concept with a different example

You've got this!`

func handleDirectAnswer(question string, _ *session.Session) *Result {
	q := normalize(question)
	for _, cue := range directAnswerCues {
		if strings.Contains(q, cue) {
			return &Result{Terminated: true, Response: directAnswerResponse}
		}
	}
	for _, imp := range directAnswerImperatives {
		if matchesWord(q, imp) {
			return &Result{Terminated: true, Response: directAnswerResponse}
		}
	}
	return nil
}

var hintTriggers = []string{"hint", "give me a hint", "i need a hint", "show hint", "another hint"}

// hintTierResponses are the canned responses per hint tier. Index 0 is
// tier 1 (conceptual nudge) through index 2 (near-complete guidance).
var hintTierResponses = [session.MaxHints]string{
	`Hint 1 of 3: start from the concept. What idea or rule does this question actually test? Name it, then look at the question again with that idea in mind.`,
	`Hint 2 of 3: you know the concept; now pick the method. Which technique applies here, and what is its very first step? Set that step up, but don't carry it out yet.`,
	`Hint 3 of 3: walk the approach end to end. Apply the method step by step, checking each intermediate result. You have everything you need to reach the final value yourself; I'll leave that last step to you.`,
}

const hintNoQuestionResponse = `I'd love to give you a hint, but I don't know what you're working on yet. Ask a question first, then type "hint" when you're stuck!`

// handleHintRequest serves a tiered hint for the current question. It is the
// single writer of the hint counter; the hint strategy only reads it.
func handleHintRequest(question string, sess *session.Session) *Result {
	q := normalize(question)
	matched := false
	for _, h := range hintTriggers {
		if q == h {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	current := sess.CurrentQuestion()
	if current == "" {
		return &Result{Terminated: true, Response: hintNoQuestionResponse}
	}

	tier := sess.IncrementHint(current)
	return &Result{
		Terminated: true,
		Response:   hintTierResponses[tier-1],
		HintCount:  tier,
	}
}

// handleLearning is the terminal handler. It never terminates with a canned
// response; it hands the question on to classification and strategy.
func handleLearning(_ string, _ *session.Session) *Result {
	return &Result{Terminated: false}
}

// matchesWord reports whether q begins with w as a whole word.
func matchesWord(q, w string) bool {
	if !strings.HasPrefix(q, w) {
		return false
	}
	if len(q) == len(w) {
		return true
	}
	next := q[len(w)]
	return next == ' ' || next == ',' || next == '!' || next == '?' || next == '.' || next == ':'
}
