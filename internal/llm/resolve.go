package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Options selects and configures a provider.
type Options struct {
	Model   string
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// Resolve selects a provider from the model name. The vendor prefix ("deepseek:",
// "openai:", "anthropic:") is optional; bare "gpt" and "claude" model IDs are recognised.
func Resolve(opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("llm.Resolve: API key is empty")
	}

	vendor, model := Vendor(opts.Model)
	var p Provider
	switch vendor {
	case "anthropic":
		a := NewAnthropic(opts.APIKey, opts.Client)
		if opts.BaseURL != "" {
			a.apiURL = opts.BaseURL
		}
		p = a
	case "openai":
		c := NewOpenAI(opts.APIKey, opts.Client)
		if opts.BaseURL != "" {
			c.apiURL = opts.BaseURL
		}
		p = c
	default:
		c := NewDeepSeek(opts.APIKey, opts.Client)
		if opts.BaseURL != "" {
			c.apiURL = opts.BaseURL
		}
		p = c
	}

	if model == "" {
		return p, nil
	}
	return &modelOverride{Provider: p, model: model}, nil
}

// Vendor splits a model flag into the vendor name and the bare model ID.
func Vendor(modelFlag string) (vendor, model string) {
	lower := strings.ToLower(modelFlag)
	switch {
	case strings.HasPrefix(lower, "anthropic:"):
		return "anthropic", modelFlag[len("anthropic:"):]
	case strings.HasPrefix(lower, "claude"):
		return "anthropic", modelFlag
	case strings.HasPrefix(lower, "openai:"):
		return "openai", modelFlag[len("openai:"):]
	case strings.HasPrefix(lower, "gpt"):
		return "openai", modelFlag
	case strings.HasPrefix(lower, "deepseek:"):
		return "deepseek", modelFlag[len("deepseek:"):]
	default:
		return "deepseek", modelFlag
	}
}

// KeyEnv returns the environment variable that conventionally holds the key for the
// vendor serving modelFlag.
func KeyEnv(modelFlag string) string {
	vendor, _ := Vendor(modelFlag)
	return strings.ToUpper(vendor) + "_API_KEY"
}

// modelOverride wraps a provider to override the model in settings.
type modelOverride struct {
	Provider
	model string
}

func (m *modelOverride) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	s.Model = m.model
	return m.Provider.Generate(ctx, prompt, s)
}
