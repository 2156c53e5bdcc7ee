package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/spacecanva/spacecanva/internal/backend"
	"github.com/spacecanva/spacecanva/internal/cache"
	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/config"
	"github.com/spacecanva/spacecanva/internal/db"
	"github.com/spacecanva/spacecanva/internal/embeddings"
	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/llm"
	"github.com/spacecanva/spacecanva/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `spacecanva init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.Options{
		Provider: string(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		APIKey:   config.APIKey(cfg.LLM.Provider),
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		if envVar := config.APIKeyEnvVar(cfg.LLM.Provider); envVar != "" {
			return nil, fmt.Errorf("%w (set %s)", err, envVar)
		}
		return nil, err
	}
	if cfg.LLM.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.LLM.RateLimitRPM)
	}
	return provider, nil
}

// createEmbedderFromConfig creates the embedder used by the search index.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	return embeddings.New(embeddings.Options{
		Provider: string(cfg.Embeddings.Provider),
		Model:    cfg.Embeddings.Model,
		APIKey:   config.APIKey(cfg.Embeddings.Provider),
		BaseURL:  cfg.Embeddings.BaseURL,
	})
}

// newLaboratoryService builds the laboratory service over a fresh provider.
func newLaboratoryService(cfg *config.Config) (*laboratory.Service, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	temperature := cfg.Laboratory.Temperature
	return laboratory.NewService(laboratory.Options{
		Provider:    provider,
		Model:       cfg.LLM.Model,
		Temperature: &temperature,
		MaxTokens:   cfg.Laboratory.MaxTokens,
		Logger:      logger.Named("laboratory"),
	}), nil
}

// openCache opens the configured catalog cache. The returned close
// function releases the sqlite handle, if any.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, func() error, error) {
	if cfg.Cache.Backend != config.CacheSQLite {
		return cache.NewMemory(nil), func() error { return nil }, nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(cfg.CachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache database: %w", err)
	}
	sqlite := cache.NewSQLite(database, nil)
	cache.StartPurgeWorker(ctx, sqlite, cfg.Cache.PurgeEvery, logger.Named("cache"))
	return sqlite, database.Close, nil
}

// newCatalogClient creates a catalog client over c.
func newCatalogClient(cfg *config.Config, c cache.Cache) *catalog.Client {
	return catalog.NewClient(catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Table:   cfg.Catalog.Table,
		Cache:   c,
		TTL:     catalogTTL(cfg.Catalog.TTL),
		Logger:  logger.Named("catalog"),
	})
}

// catalogTTL maps the configured ttl onto catalog.Options, where zero means
// the default. A configured ttl of zero disables expiry.
func catalogTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return catalog.NoExpiry
	}
	return ttl
}

// newBackendClient creates a backend client bound to the configured or
// flag-supplied user id.
func newBackendClient(cfg *config.Config, userID string) *backend.Client {
	client := backend.NewClient(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Logger:  logger.Named("backend"),
	})
	if userID == "" {
		userID = cfg.Backend.UserID
	}
	return client.ForUser(userID)
}

// loadSearchIndex creates the search index and loads the persisted copy
// when one exists.
func loadSearchIndex(cfg *config.Config) (*search.Index, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	idx, err := search.NewIndex(embedder, logger.Named("search"))
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	if dir := cfg.IndexDir(); search.Exists(dir) {
		if err := idx.Load(dir); err != nil {
			return nil, fmt.Errorf("loading search index from %s: %w", dir, err)
		}
	}
	return idx, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to max runes followed by an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "..."
}
