package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test provider that records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Err      error
	ProvName string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		ProvName: name,
		Response: &CompletionResponse{
			Content:      "mock response",
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// --- Tests ---

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	for _, p := range []string{ProviderMoonshot, ProviderOpenAI, ProviderAnthropic} {
		_, err := NewProvider(Options{Provider: p, Model: "some-model"})
		assert.Error(t, err, "provider %q without key", p)
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	_, err := NewProvider(Options{Provider: "unknown", Model: "some-model"})
	assert.Error(t, err)
}

func TestFactoryCreatesOllamaWithDefaultHost(t *testing.T) {
	provider, err := NewProvider(Options{Provider: ProviderOllama, Model: "llama3"})
	require.NoError(t, err)

	ollamaP, ok := provider.(*OllamaProvider)
	require.True(t, ok, "expected *OllamaProvider")
	assert.Equal(t, OllamaBaseURL, ollamaP.baseURL)
}

func TestFactoryNamesProviders(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{ProviderMoonshot, "moonshot"},
		{ProviderOpenAI, "openai"},
		{ProviderAnthropic, "anthropic"},
		{ProviderOllama, "ollama"},
	}
	for _, tt := range tests {
		p, err := NewProvider(Options{Provider: tt.provider, Model: "m", APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Name())
	}
}

func TestOpenAICompatibleProviderComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"model": "moonshot-v1-8k",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Io is volcanic."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatibleProvider(ProviderMoonshot, "sk-test", srv.URL, "moonshot-v1-8k")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "Tell me about Io"}},
		Temperature: 0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "Io is volcanic.", resp.Content)
	assert.Equal(t, 12, resp.InputTokens)
	assert.Equal(t, 4, resp.OutputTokens)
	assert.Equal(t, "stop", resp.FinishReason)

	assert.Equal(t, "moonshot-v1-8k", got["model"])
	assert.EqualValues(t, defaultMaxTokens, got["max_tokens"])
	assert.Len(t, got["messages"], 2)
}

func TestOpenAICompatibleProviderNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cmpl-2", "model": "moonshot-v1-8k", "choices": []}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatibleProvider(ProviderMoonshot, "sk-test", srv.URL, "moonshot-v1-8k")
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from moonshot")
}

func TestOpenAICompatibleProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid key", "type": "invalid_authentication_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatibleProvider(ProviderMoonshot, "bad", srv.URL, "moonshot-v1-8k")
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	assert.Error(t, err)
}

func TestAnthropicProviderSplitsSystemPrompt(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content": [{"type": "text", "text": "Hello"}], "model": "claude", "stop_reason": "end_turn", "usage": {"input_tokens": 3, "output_tokens": 1}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", srv.URL, "claude")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are an astrophysicist."},
			{Role: RoleUser, Content: "hi"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", resp.Content)
	assert.Equal(t, "You are an astrophysicist.", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestOllamaProviderComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Write([]byte(`{"message": {"role": "assistant", "content": "pong"}, "model": "llama3", "done": true, "done_reason": "stop", "prompt_eval_count": 2, "eval_count": 1}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "ping"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Content)
	assert.Equal(t, 2, resp.InputTokens)
}

func TestRateLimiterPassesThrough(t *testing.T) {
	mock := NewMockProvider("test")
	rl := NewRateLimitedProvider(mock, 60)

	resp, err := rl.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "mock response", resp.Content)
	assert.Equal(t, "test", rl.Name())
}

func TestRateLimiterDisabled(t *testing.T) {
	mock := NewMockProvider("test")
	assert.Same(t, Provider(mock), NewRateLimitedProvider(mock, 0))
}

func TestRateLimiterLimitsRequests(t *testing.T) {
	mock := NewMockProvider("test")
	// Allow only 2 requests per minute.
	rl := NewRateLimitedProvider(mock, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	req := CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "hello"}}}

	for i := 0; i < 2; i++ {
		_, err := rl.Complete(ctx, req)
		require.NoError(t, err, "request %d", i)
	}

	// Third should block and eventually fail due to context timeout.
	_, err := rl.Complete(ctx, req)
	assert.Error(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestEstimateCost(t *testing.T) {
	assert.Greater(t, EstimateCost("moonshot-v1-8k", 1000, 500), 0.0)
	assert.Zero(t, EstimateCost("unknown-model", 1000, 500))

	// claude-sonnet-4-5: $3/1M input, $15/1M output
	assert.InDelta(t, 18.0, EstimateCost("claude-sonnet-4-5-20250929", 1_000_000, 1_000_000), 0.01)
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hi", 1},
		{"hello world!!", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTokens(tt.text), "EstimateTokens(%q)", tt.text)
	}
}

func TestHTTPProvidersReportStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	req := CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	for _, p := range []Provider{NewAnthropicProvider("key", srv.URL, "claude"), NewOllamaProvider(srv.URL, "llama3")} {
		_, err := p.Complete(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, p.Name()+" returned status 429: slow down", err.Error())
	}
}

func TestOllamaProviderEmptyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"role": "assistant", "content": ""}, "done": true}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Complete(context.Background(), CompletionRequest{})
	assert.EqualError(t, err, "no response from ollama")
}

func TestWithDefaults(t *testing.T) {
	req := withDefaults(CompletionRequest{}, "moonshot-v1-8k")
	assert.Equal(t, "moonshot-v1-8k", req.Model)
	assert.Equal(t, defaultMaxTokens, req.MaxTokens)

	req = withDefaults(CompletionRequest{Model: "gpt-4o", MaxTokens: 50}, "moonshot-v1-8k")
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 50, req.MaxTokens)
}
