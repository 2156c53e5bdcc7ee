// Package embeddings turns planet descriptions into vectors for the
// semantic search index.
package embeddings

import (
	"context"
	"fmt"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// Supported embedding providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderHash   = "hash"
)

// Options selects and configures an embedder.
type Options struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Dimensions int
}

// New creates the embedder named by opts.Provider.
func New(opts Options) (Embedder, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai embeddings require an API key")
		}
		model := OpenAIModel(opts.Model)
		if model == "" {
			model = ModelTextEmbedding3Small
		}
		return NewOpenAIEmbedder(opts.APIKey, opts.BaseURL, model), nil
	case ProviderOllama:
		model := opts.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		dims := opts.Dimensions
		if dims == 0 {
			dims = 768
		}
		return NewOllamaEmbedder(model, dims, opts.BaseURL), nil
	case ProviderHash, "":
		return NewHashEmbedder(opts.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}
