package generator

import (
	"context"
	"strings"
	"sync"
)

// MockLLM is an offline stand-in that never calls an external model. With a
// nil Reply it echoes a short canned passage, which is enough to exercise the
// whole pipeline locally; tests install a Reply to script per-call behavior.
type MockLLM struct {
	// Reply, if set, computes the response for each call.
	Reply func(prompt Prompt) (string, error)

	mu    sync.Mutex
	calls []Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()

	if m.Reply != nil {
		return m.Reply(prompt)
	}

	var sb strings.Builder
	sb.WriteString("This placeholder text was produced without contacting a model. ")
	sb.WriteString("It stands in for generated policy language during offline runs.\n")
	return sb.String(), nil
}

// Calls returns a copy of every prompt received so far.
func (m *MockLLM) Calls() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Prompt, len(m.calls))
	copy(out, m.calls)
	return out
}
