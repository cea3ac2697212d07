package llm

import (
	"context"
	"sync"
)

// MockProvider is a test double that returns canned responses and records prompts.
type MockProvider struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
	last    Settings
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, prompt string, s Settings) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.last = s
	return m.Response, m.Err
}

// Calls returns the number of Generate invocations.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or "" if none was sent.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// LastSettings returns the settings of the most recent call.
func (m *MockProvider) LastSettings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
