package config

import (
	"time"

	"github.com/spacecanva/spacecanva/internal/scene"
)

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderMoonshot  ProviderType = "moonshot"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderHash      ProviderType = "hash" // offline embeddings
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
)

// Config is the top-level spacecanva configuration, corresponding to .spacecanva.yml.
type Config struct {
	DataDir    string           `yaml:"data_dir" koanf:"data_dir"`
	LLM        LLMConfig        `yaml:"llm" koanf:"llm"`
	Laboratory LaboratoryConfig `yaml:"laboratory" koanf:"laboratory"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" koanf:"embeddings"`
	Catalog    CatalogConfig    `yaml:"catalog" koanf:"catalog"`
	Cache      CacheConfig      `yaml:"cache" koanf:"cache"`
	Scene      scene.Config     `yaml:"scene" koanf:"scene"`
	Backend    BackendConfig    `yaml:"backend" koanf:"backend"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
}

// LLMConfig selects the chat model behind the laboratory.
type LLMConfig struct {
	Provider     ProviderType `yaml:"provider" koanf:"provider"`
	Model        string       `yaml:"model" koanf:"model"`
	BaseURL      string       `yaml:"base_url,omitempty" koanf:"base_url"`
	RateLimitRPM int          `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
}

// LaboratoryConfig tunes chat requests and the typing effect.
type LaboratoryConfig struct {
	Temperature float64       `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" koanf:"max_tokens"`
	TypingDelay time.Duration `yaml:"typing_delay" koanf:"typing_delay"`
	TypingChunk int           `yaml:"typing_chunk" koanf:"typing_chunk"`
}

// EmbeddingsConfig selects the embedder used by the search index.
type EmbeddingsConfig struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model,omitempty" koanf:"model"`
	BaseURL  string       `yaml:"base_url,omitempty" koanf:"base_url"`
}

// CatalogConfig points at the exoplanet archive proxy.
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url" koanf:"base_url"`
	Table   string        `yaml:"table" koanf:"table"`
	TTL     time.Duration `yaml:"ttl" koanf:"ttl"` // 0 disables expiry
}

// CacheConfig selects where catalog snapshots are kept.
type CacheConfig struct {
	Backend    string        `yaml:"backend" koanf:"backend"`
	Path       string        `yaml:"path,omitempty" koanf:"path"` // sqlite file; defaults under data_dir
	PurgeEvery time.Duration `yaml:"purge_every" koanf:"purge_every"`
}

// BackendConfig points at the workspace/training/prediction backend.
type BackendConfig struct {
	BaseURL      string        `yaml:"base_url" koanf:"base_url"`
	UserID       string        `yaml:"user_id,omitempty" koanf:"user_id"`
	PollInterval time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int      `yaml:"port" koanf:"port"`
	AllowAll       bool     `yaml:"allow_all" koanf:"allow_all"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" koanf:"allowed_origins"`
}
