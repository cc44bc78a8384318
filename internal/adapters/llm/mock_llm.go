package llm

import (
	"context"
	"strings"
)

// MockLLM is a deterministic Generator for local mode. Routing prompts get a
// canned fallback decision so the pipeline stays exercisable offline.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "healthcare query router") {
		return `{"target_agent": "FALLBACK", "reasoning": "mock backend always routes to fallback", "confidence": 0.5}`, nil
	}
	return "I'm a local test assistant. For real guidance please run with a configured generation backend.", nil
}
