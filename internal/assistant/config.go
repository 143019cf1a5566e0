package assistant

import "time"

// SystemPrompt is the standing instruction sent with every generation
// request. It sets the pedagogical contract: guide, never hand over
// answers.
const SystemPrompt = `You are a patient study mentor. Your job is to help a student reach understanding on their own, never to hand over finished answers.

Rules you always follow:
- Do not state the final answer or the complete solution to any problem.
- Guide with questions, analogies, and partial steps the student completes themselves.
- Keep responses short and focused on the single next step.
- Encourage the student when they make progress, and stay warm when they struggle.`

// DegradedResponse is returned when generation fails after retries. It
// keeps the session useful without pretending to be generated content.
const DegradedResponse = "I'm having trouble thinking that one through right now. While I recover, try this: restate the question in your own words, write down what you already know, and pick the smallest piece you could figure out first. Ask me again in a moment."

// Config holds the tunables of the processing pipeline.
type Config struct {
	SystemPrompt string
	GenTimeout   time.Duration
	MaxTokens    int
	Temperature  float64
	// HistoryTurns caps how many prior conversation turns are sent as
	// context with each generation request.
	HistoryTurns int
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SystemPrompt: SystemPrompt,
		GenTimeout:   30 * time.Second,
		MaxTokens:    1024,
		Temperature:  0.7,
		HistoryTurns: 8,
	}
}
