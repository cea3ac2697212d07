// Package llm defines the provider interface and implementations for chat-completion calls.
package llm

import "context"

// Settings configures a single request.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider generates text from a prompt using a remote model.
type Provider interface {
	Generate(ctx context.Context, prompt string, settings Settings) (string, error)
	Name() string
}

// DefaultMaxTokens is used when Settings.MaxTokens is not positive.
const DefaultMaxTokens = 1000
