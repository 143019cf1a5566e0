package strategy

import (
	"fmt"
	"strings"

	"github.com/abhisek/mentor/internal/session"
)

// Socratic guides the learner through questioning. The prompt forbids
// stated conclusions entirely.
type Socratic struct{}

func (s *Socratic) Name() string { return "Socratic" }

func (s *Socratic) Prompt(question string, _ *session.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A student asked: %q\n", question)
	b.WriteString(`
Instructions:
Respond ONLY with 2-3 guiding questions related to the topic. Do not state
any conclusion or answer. Your questions should:
1. Prompt the student to think critically about the problem
2. Break the concept into smaller parts they can reason about
3. Lead them toward discovering the answer themselves

Be encouraging and supportive. Focus on understanding, never on the answer.`)

	return b.String()
}

// HintBased provides a progressive hint for the learner's current question.
// It reads the session's hint counter (0 if absent) to pick the tier; the
// interception chain owns incrementing that counter.
type HintBased struct{}

func (h *HintBased) Name() string { return "Hint-Based" }

// hintTiers describes the escalating specificity of each hint level.
var hintTiers = [session.MaxHints]string{
	"a gentle conceptual nudge that points at the relevant idea",
	"a partial-method hint that names the technique to apply, without applying it",
	"near-complete guidance walking through the approach, stopping short of the final value",
}

func (h *HintBased) Prompt(question string, sess *session.Session) string {
	tier := sess.HintCount(question)
	if tier < 1 {
		tier = 1
	}
	if tier > session.MaxHints {
		tier = session.MaxHints
	}

	var b strings.Builder

	fmt.Fprintf(&b, "A student asked: %q\n", question)
	fmt.Fprintf(&b, "\nThis is hint %d of %d. Provide %s.\n", tier, session.MaxHints, hintTiers[tier-1])
	b.WriteString(`
Instructions:
1. Point the student in the right direction
2. Do NOT reveal the complete answer or final value
3. Encourage them to think about the specific aspect your hint raises
4. Build on earlier, vaguer hints if this is not the first one

Be supportive and explain WHY this hint matters.`)

	return b.String()
}

// Conceptual explains underlying principles with a worked illustration,
// deliberately avoiding the learner's specific problem.
type Conceptual struct{}

func (c *Conceptual) Name() string { return "Conceptual" }

func (c *Conceptual) Prompt(question string, _ *session.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A student asked: %q\n", question)
	b.WriteString(`
Instructions:
1. Explain the underlying concepts and principles involved
2. Include at least one concrete example that is similar to but DIFFERENT
   from the student's question
3. Help them understand the "why" behind the topic
4. Do NOT solve their specific question or compute any final numeric answer

Be clear and thorough in explaining the concepts.`)

	return b.String()
}

// Decomposition breaks the stated problem into ordered sub-steps without
// executing any of them.
type Decomposition struct{}

func (d *Decomposition) Name() string { return "Problem-Decomposition" }

func (d *Decomposition) Prompt(question string, _ *session.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A student asked: %q\n", question)
	b.WriteString(`
Instructions:
1. Break the problem into an ordered list of smaller steps or sub-questions
2. For EACH step, explain what the student should consider
3. Do NOT execute or solve any step yourself
4. Teach the problem-solving process, not the result

Focus on methodology, never on the answer.`)

	return b.String()
}
