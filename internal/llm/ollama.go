package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OllamaProvider runs completions against a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider returns a provider for model served at baseURL.
func NewOllamaProvider(baseURL string, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *OllamaProvider) Name() string { return ProviderOllama }

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  struct {
		Temperature float64 `json:"temperature"`
		NumPredict  int     `json:"num_predict,omitempty"`
	} `json:"options"`
}

type ollamaChatResponse struct {
	Message         chatMessage `json:"message"`
	Model           string      `json:"model"`
	DoneReason      string      `json:"done_reason"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

func (p *OllamaProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req = withDefaults(req, p.model)

	body := ollamaChatRequest{Model: req.Model}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	body.Options.Temperature = req.Temperature
	body.Options.NumPredict = req.MaxTokens
	if req.JSONMode {
		body.Format = "json"
	}

	var resp ollamaChatResponse
	if err := postJSON(ctx, p.client, ProviderOllama, p.baseURL+"/api/chat", nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.Message.Content == "" {
		return nil, fmt.Errorf("no response from %s", ProviderOllama)
	}

	return &CompletionResponse{
		Content:      resp.Message.Content,
		InputTokens:  resp.PromptEvalCount,
		OutputTokens: resp.EvalCount,
		Model:        resp.Model,
		FinishReason: resp.DoneReason,
	}, nil
}
