package llm

import (
	"fmt"
)

// Provider type identifiers accepted by NewProvider.
const (
	ProviderMoonshot  = "moonshot"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Default endpoints per provider.
const (
	MoonshotBaseURL = "https://api.moonshot.cn/v1"
	OllamaBaseURL   = "http://localhost:11434"
)

// Options configures a provider built by NewProvider. The caller resolves the
// API key; nothing in this package reads the environment.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewProvider creates a chat completion provider from opts.
// Supported provider types: "moonshot", "openai", "anthropic", "ollama".
func NewProvider(opts Options) (Provider, error) {
	switch opts.Provider {
	case ProviderMoonshot:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("moonshot API key is not set")
		}
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = MoonshotBaseURL
		}
		return NewOpenAICompatibleProvider(ProviderMoonshot, opts.APIKey, baseURL, opts.Model), nil

	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai API key is not set")
		}
		return NewOpenAICompatibleProvider(ProviderOpenAI, opts.APIKey, opts.BaseURL, opts.Model), nil

	case ProviderAnthropic:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is not set")
		}
		return NewAnthropicProvider(opts.APIKey, opts.BaseURL, opts.Model), nil

	case ProviderOllama:
		host := opts.BaseURL
		if host == "" {
			host = OllamaBaseURL
		}
		return NewOllamaProvider(host, opts.Model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", opts.Provider)
	}
}
