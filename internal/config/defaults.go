package config

import (
	"time"

	"github.com/spacecanva/spacecanva/internal/backend"
	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/scene"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".spacecanva.yml"

// EnvPrefix prefixes every environment override. Nested keys are joined
// with a double underscore: SPACECANVA_LLM__MODEL sets llm.model.
const EnvPrefix = "SPACECANVA_"

// defaultModels maps each chat provider to the model used when none is set.
var defaultModels = map[ProviderType]string{
	ProviderMoonshot:  laboratory.DefaultModel,
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOllama:    "llama3",
}

// defaultEmbeddingModels maps each embedding provider to its default model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// DefaultModel returns the stock chat model for provider.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".spacecanva",
		LLM: LLMConfig{
			Provider:     ProviderMoonshot,
			Model:        laboratory.DefaultModel,
			RateLimitRPM: 0,
		},
		Laboratory: LaboratoryConfig{
			Temperature: laboratory.DefaultTemperature,
			MaxTokens:   laboratory.DefaultMaxTokens,
			TypingDelay: laboratory.DefaultTypewriter.Delay,
			TypingChunk: laboratory.DefaultTypewriter.ChunkWords,
		},
		Embeddings: EmbeddingsConfig{
			Provider: ProviderHash,
		},
		Catalog: CatalogConfig{
			BaseURL: catalog.DefaultBaseURL,
			Table:   catalog.DefaultTable,
			TTL:     catalog.DefaultTTL,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			PurgeEvery: 10 * time.Minute,
		},
		Scene: scene.DefaultConfig(),
		Backend: BackendConfig{
			BaseURL:      backend.DefaultBaseURL,
			PollInterval: backend.DefaultPollInterval,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
