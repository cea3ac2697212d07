package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	deepseekAPIURL       = "https://api.deepseek.com/v1/chat/completions"
	deepseekDefaultModel = "deepseek-chat"

	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-4o"
)

// ChatProvider implements Provider against an OpenAI-compatible chat completions endpoint.
type ChatProvider struct {
	name         string
	apiKey       string
	apiURL       string
	defaultModel string
	client       *http.Client
}

// NewDeepSeek creates a provider for the DeepSeek chat completions API.
func NewDeepSeek(apiKey string, client *http.Client) *ChatProvider {
	return newChat("deepseek", apiKey, deepseekAPIURL, deepseekDefaultModel, client)
}

// NewOpenAI creates a provider for the OpenAI chat completions API.
func NewOpenAI(apiKey string, client *http.Client) *ChatProvider {
	return newChat("openai", apiKey, openaiAPIURL, openaiDefaultModel, client)
}

func newChat(name, apiKey, apiURL, model string, client *http.Client) *ChatProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &ChatProvider{name: name, apiKey: apiKey, apiURL: apiURL, defaultModel: model, client: client}
}

func (c *ChatProvider) Name() string { return c.name }

func (c *ChatProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = c.defaultModel
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := chatRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: s.Temperature,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var result chatResponse
	if err := postJSON(ctx, c.client, c.name, c.apiURL, header, reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}

	return result.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}
