package llm

import "context"

// Provider defines the interface for chat completion providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// defaultMaxTokens mirrors the laboratory's response budget.
const defaultMaxTokens = 1000
