package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider talks to the Anthropic Messages API over plain HTTP.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewAnthropicProvider returns a provider for model. An empty baseURL targets
// api.anthropic.com.
func NewAnthropicProvider(apiKey, baseURL, model string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *AnthropicProvider) Name() string { return ProviderAnthropic }

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// chatMessage is the role/content pair shared by the HTTP providers.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// splitSystem joins system messages into one prompt; Anthropic takes it
// outside the message list.
func splitSystem(msgs []Message) (string, []chatMessage) {
	var system []string
	out := make([]chatMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		out = append(out, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	return strings.Join(system, "\n\n"), out
}

func (p *AnthropicProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req = withDefaults(req, p.model)
	system, messages := splitSystem(req.Messages)

	header := http.Header{}
	header.Set("x-api-key", p.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	var resp anthropicResponse
	err := postJSON(ctx, p.client, ProviderAnthropic, p.baseURL+"/v1/messages", header, anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      system,
		Messages:    messages,
	}, &resp)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("no response from %s", ProviderAnthropic)
	}

	return &CompletionResponse{
		Content:      text.String(),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		Model:        resp.Model,
		FinishReason: resp.StopReason,
	}, nil
}
