package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// providerChoices lists the chat providers offered by the wizard.
var providerChoices = []ProviderType{ProviderMoonshot, ProviderOpenAI, ProviderAnthropic, ProviderOllama}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to spacecanva! Let's configure your dashboard service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Chat provider.
	items := make([]string, len(providerChoices))
	for i, p := range providerChoices {
		items[i] = string(p)
	}
	providerPrompt := promptui.Select{
		Label: "Select LLM provider for the laboratory",
		Items: items,
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.LLM.Provider = providerChoices[idx]

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.LLM.Provider),
	}
	if cfg.LLM.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Embeddings for semantic search.
	embeddingPrompt := promptui.Select{
		Label: "Select embeddings for semantic search",
		Items: []string{
			"hash   - offline, no API key",
			"openai - text-embedding-3-small",
			"ollama - nomic-embed-text",
		},
	}
	embIdx, _, err := embeddingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embeddings selection: %w", err)
	}
	cfg.Embeddings.Provider = []ProviderType{ProviderHash, ProviderOpenAI, ProviderOllama}[embIdx]
	cfg.Embeddings.Model = defaultEmbeddingModels[cfg.Embeddings.Provider]

	// 4. Catalog cache.
	cachePrompt := promptui.Select{
		Label: "Where should catalog snapshots be cached?",
		Items: []string{CacheMemory, CacheSQLite},
	}
	if _, cfg.Cache.Backend, err = cachePrompt.Run(); err != nil {
		return nil, fmt.Errorf("cache selection: %w", err)
	}

	// 5. Backend URL.
	backendPrompt := promptui.Prompt{
		Label:    "Backend URL",
		Default:  cfg.Backend.BaseURL,
		Validate: validateURL,
	}
	if cfg.Backend.BaseURL, err = backendPrompt.Run(); err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}

	// 6. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Check for API keys.
	for _, p := range []ProviderType{cfg.LLM.Provider, cfg.Embeddings.Provider} {
		if envVar := APIKeyEnvVar(p); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment (or .env) before running spacecanva.\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
