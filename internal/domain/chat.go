package domain

import "context"

// SamplingParams are the knobs forwarded to a chat completion request.
type SamplingParams struct {
	Temperature      float32
	MaxTokens        int
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// Choice is one candidate message returned by the model. An empty
// Content is a valid outcome signaling "no usable output".
type Choice struct {
	Content string
}

// Completion is the result of a successful chat call: zero or more
// choices. Absence of choices is not an error.
type Completion struct {
	Choices []Choice
}

// FirstContent returns the text of the first choice, or "" when the
// completion carries no usable message.
func (c *Completion) FirstContent() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Content
}

// ChatClient is the outbound LLM capability. Implementations must be
// safe for concurrent use; the batch orchestrator bounds how many
// Complete calls are outstanding at once.
type ChatClient interface {
	Complete(ctx context.Context, system, user string, params SamplingParams) (*Completion, error)
}
