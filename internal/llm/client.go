package llm

import "context"

// Message is one chat turn sent to the model endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// JSONSchema is a structured-output contract forwarded to the endpoint.
// Even with a schema attached the endpoint may return free-form text, which
// is why the planner carries its own repair pipeline.
type JSONSchema struct {
	Name   string
	Strict bool
	Schema map[string]any
}

// ChatRequest holds the per-call sampling parameters. The orchestrator
// computes these from the attempt index; they are never mutated in place.
type ChatRequest struct {
	Messages         []Message
	Temperature      float64
	TopP             float64
	PresencePenalty  float64
	FrequencyPenalty float64
	MaxTokens        int
	Schema           *JSONSchema
}

// ChatResult carries the raw response text and the endpoint's finish reason.
type ChatResult struct {
	Text         string
	FinishReason string
}

// FinishLength is the finish reason signaling token-limit truncation.
const FinishLength = "length"

// ChatClient abstracts the language model endpoint: an unreliable,
// latency-bearing black box.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResult, error)
}
