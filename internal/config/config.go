package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SPACECANVA_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SPACECANVA_LLM__MODEL -> llm.model, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized chat provider values.
var validProviders = map[ProviderType]bool{
	ProviderMoonshot:  true,
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
	ProviderOllama:    true,
}

// validEmbeddingProviders is the set of recognized embedding provider values.
var validEmbeddingProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
	ProviderHash:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid llm.provider %q: must be one of moonshot, openai, anthropic, ollama", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.RateLimitRPM < 0 {
		return fmt.Errorf("llm.rate_limit_rpm must be non-negative")
	}

	if c.Laboratory.Temperature < 0 || c.Laboratory.Temperature > 1 {
		return fmt.Errorf("laboratory.temperature must be between 0 and 1")
	}
	if c.Laboratory.MaxTokens < 0 {
		return fmt.Errorf("laboratory.max_tokens must be non-negative")
	}

	if c.Embeddings.Provider != "" && !validEmbeddingProviders[c.Embeddings.Provider] {
		return fmt.Errorf("invalid embeddings.provider %q: must be one of openai, ollama, hash", c.Embeddings.Provider)
	}

	for name, raw := range map[string]string{
		"catalog.base_url": c.Catalog.BaseURL,
		"backend.base_url": c.Backend.BaseURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	// A zero catalog.ttl keeps the snapshot until `catalog clear-cache`.
	if c.Catalog.TTL < 0 {
		return fmt.Errorf("catalog.ttl must be non-negative (0 disables expiry)")
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheSQLite:
	default:
		return fmt.Errorf("invalid cache.backend %q: must be memory or sqlite", c.Cache.Backend)
	}

	if c.Scene.MaxDistance <= 0 {
		return fmt.Errorf("scene.max_distance must be positive")
	}
	if c.Scene.DistanceScale <= 0 {
		return fmt.Errorf("scene.distance_scale must be positive")
	}
	if c.Scene.PlanetSizeScale <= 0 {
		return fmt.Errorf("scene.planet_size_scale must be positive")
	}
	if c.Scene.Limit < 0 {
		return fmt.Errorf("scene.limit must be non-negative")
	}

	if c.Backend.PollInterval <= 0 {
		return fmt.Errorf("backend.poll_interval must be positive")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// CachePath returns the sqlite cache file, defaulting to cache.db under
// the data directory.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.DataDir, "cache.db")
}

// IndexDir returns the directory holding the persisted search index.
func (c *Config) IndexDir() string {
	return filepath.Join(c.DataDir, "vectordb")
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderMoonshot:
		return "MOONSHOT_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// APIKey returns the API key for provider from the environment, or ""
// for providers that need none.
func APIKey(provider ProviderType) string {
	envVar := APIKeyEnvVar(provider)
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}
