package driven

import "context"

// LLMService provides chat-completion operations for answering questions.
//
// Adapters wrap the "model access not yet propagated" failure signature
// in domain.ErrModelAccessPending so callers can retry it distinctly
// from hard failures.
type LLMService interface {
	// Chat conducts a conversation and returns the assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness. Zero keeps answers reproducible.
	Temperature float32
}
