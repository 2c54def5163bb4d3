package generator

import "context"

// Prompt is one system/user message pair sent to the model.
type Prompt struct {
	System string
	User   string
}

// LLMClient abstracts the chat-completion backend so it can be swapped or
// mocked in tests.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries the base configuration for concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
