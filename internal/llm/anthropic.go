package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	anthropicAPIURL       = "https://api.anthropic.com/v1/messages"
	anthropicDefaultModel = "claude-sonnet-4-6"
	anthropicAPIVersion   = "2023-06-01"
)

// AnthropicProvider talks to the Anthropic Messages API. It shares the chat message shape
// with ChatProvider but authenticates with an API key header.
type AnthropicProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewAnthropic creates an Anthropic provider authenticated with apiKey.
func NewAnthropic(apiKey string, client *http.Client) *AnthropicProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &AnthropicProvider{apiKey: apiKey, apiURL: anthropicAPIURL, client: client}
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

// Generate returns the text blocks of the reply joined in order. A reply cut off at
// the token limit is returned as is; the fence extraction treats it as unanswered.
func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	req := messagesRequest{
		Model:       s.Model,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}
	if req.Model == "" {
		req.Model = anthropicDefaultModel
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	header := http.Header{}
	header.Set("X-API-Key", a.apiKey)
	header.Set("Anthropic-Version", anthropicAPIVersion)

	var reply messagesResponse
	if err := postJSON(ctx, a.client, a.Name(), a.apiURL, header, req, &reply); err != nil {
		return "", err
	}

	var parts []string
	for _, block := range reply.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%s: no text content in response", a.Name())
	}
	return strings.Join(parts, ""), nil
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
