package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendor(t *testing.T) {
	tests := []struct {
		flag       string
		wantVendor string
		wantModel  string
	}{
		{"", "deepseek", ""},
		{"deepseek-chat", "deepseek", "deepseek-chat"},
		{"deepseek:deepseek-coder", "deepseek", "deepseek-coder"},
		{"gpt-4o", "openai", "gpt-4o"},
		{"openai:o3-mini", "openai", "o3-mini"},
		{"claude-sonnet-4-6", "anthropic", "claude-sonnet-4-6"},
		{"Anthropic:claude-haiku", "anthropic", "claude-haiku"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			vendor, model := Vendor(tt.flag)
			assert.Equal(t, tt.wantVendor, vendor)
			assert.Equal(t, tt.wantModel, model)
		})
	}
}

func TestKeyEnv(t *testing.T) {
	assert.Equal(t, "DEEPSEEK_API_KEY", KeyEnv(""))
	assert.Equal(t, "OPENAI_API_KEY", KeyEnv("gpt-4o"))
	assert.Equal(t, "ANTHROPIC_API_KEY", KeyEnv("claude-sonnet-4-6"))
}

func TestResolve(t *testing.T) {
	p, err := Resolve(Options{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", p.Name())

	p, err = Resolve(Options{Model: "openai:gpt-4o", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = Resolve(Options{Model: "claude-sonnet-4-6", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
}

func TestResolveRequiresKey(t *testing.T) {
	_, err := Resolve(Options{Model: "deepseek-chat"})
	assert.Error(t, err)
}

func TestResolveBaseURLAndModelOverride(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{Choices: []chatChoice{{Message: chatMessage{Content: "ok"}}}})
	}))
	defer srv.Close()

	p, err := Resolve(Options{Model: "deepseek:deepseek-coder", APIKey: "k", BaseURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "prompt", Settings{Model: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "deepseek-coder", got.Model)
}

func TestMockProvider(t *testing.T) {
	m := &MockProvider{Response: "canned"}
	got, err := m.Generate(context.Background(), "prompt", Settings{Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "canned", got)
	assert.Equal(t, 1, m.Calls())
	assert.Equal(t, "prompt", m.LastPrompt())
	assert.Equal(t, 0.3, m.LastSettings().Temperature)
}

func TestChatProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		for _, key := range []string{"model", "messages", "max_tokens", "temperature"} {
			assert.Contains(t, raw, key)
		}
		assert.NotContains(t, raw, "response_format")

		var model string
		json.Unmarshal(raw["model"], &model)
		assert.Equal(t, "deepseek-chat", model)
		var maxTokens int
		json.Unmarshal(raw["max_tokens"], &maxTokens)
		assert.Equal(t, DefaultMaxTokens, maxTokens)

		resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "cleaned"}}}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewDeepSeek("test-key", srv.Client())
	p.apiURL = srv.URL
	got, err := p.Generate(context.Background(), "test prompt", Settings{Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "cleaned", got)
}

func TestChatProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-200", http.StatusTooManyRequests, `{"error": "rate limited"}`, "429"},
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`, "500"},
		{"malformed", http.StatusOK, `not json`, "parse response"},
		{"no choices", http.StatusOK, `{"choices": []}`, "no choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOpenAI("test-key", srv.Client())
			p.apiURL = srv.URL
			_, err := p.Generate(context.Background(), "prompt", Settings{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "openai")
		})
	}
}

func TestChatProviderEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": ""}}]}`))
	}))
	defer srv.Close()

	p := NewDeepSeek("k", srv.Client())
	p.apiURL = srv.URL
	got, err := p.Generate(context.Background(), "prompt", Settings{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChatProviderHonoursContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewDeepSeek("k", srv.Client())
	p.apiURL = srv.URL
	_, err := p.Generate(ctx, "prompt", Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
	assert.Zero(t, hits.Load())
}

func TestAnthropicProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.NotEmpty(t, r.Header.Get("Anthropic-Version"))

		var req messagesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropicDefaultModel, req.Model)
		assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
		assert.Equal(t, 0.2, req.Temperature)

		resp := messagesResponse{
			Content: []contentBlock{
				{Type: "text", Text: "ad"},
				{Type: "tool_use"},
				{Type: "text", Text: "vice"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewAnthropic("test-key", srv.Client())
	p.apiURL = srv.URL
	got, err := p.Generate(context.Background(), "test prompt", Settings{Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "advice", got)
}

func TestAnthropicErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-200", http.StatusTooManyRequests, `{"error": "rate limited"}`, "429"},
		{"malformed", http.StatusOK, `not json at all`, "parse response"},
		{"no text", http.StatusOK, `{"content": [{"type": "image"}]}`, "no text content"},
		{"empty blocks", http.StatusOK, `{"content": []}`, "no text content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewAnthropic("test-key", srv.Client())
			p.apiURL = srv.URL
			_, err := p.Generate(context.Background(), "prompt", Settings{})
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "anthropic: "), err.Error())
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "tagged fence",
			input:  "Cleaned:\n```javascript\nfoo();\nconsole.error(e);\n```\nRemoved 2 logs.",
			want:   "foo();\nconsole.error(e);",
			wantOK: true,
		},
		{
			name:   "bare fence",
			input:  "```\n  a();\n```",
			want:   "a();",
			wantOK: true,
		},
		{
			name:   "first of several",
			input:  "```js\nfirst();\n```\ntext\n```js\nsecond();\n```",
			want:   "first();",
			wantOK: true,
		},
		{
			name:   "tag with symbols",
			input:  "```c++\nint x;\n```",
			want:   "int x;",
			wantOK: true,
		},
		{
			name:   "inline fence without tag",
			input:  "```run();```",
			want:   "run();",
			wantOK: true,
		},
		{
			name:   "empty block",
			input:  "```go\n```",
			want:   "",
			wantOK: true,
		},
		{
			name:   "longer fence around inner backticks",
			input:  "````javascript\nconst md = \"```\";\nrun();\n````\ndone",
			want:   "const md = \"```\";\nrun();",
			wantOK: true,
		},
		{
			name:   "longer fence holding a nested block",
			input:  "`````md\n```go\nx := 1\n```\n`````",
			want:   "```go\nx := 1\n```",
			wantOK: true,
		},
		{
			name:   "longer fence never closed",
			input:  "````js\nconst md = \"```\";",
			wantOK: false,
		},
		{
			name:   "no fence",
			input:  "I could not clean this code.",
			wantOK: false,
		},
		{
			name:   "unclosed fence",
			input:  "```js\nfoo();",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCodeBlock(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
