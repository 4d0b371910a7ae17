package config

import (
	"os"
	"sync"
)

// OpenRouterConfig also covers any OpenAI-compatible chat completions
// endpoint; point BaseURL at https://api.openai.com/v1 to talk to OpenAI.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: envString("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:   envString("OPENROUTER_MODEL", "openai/gpt-4o"),
		}
	})
	return openRouterConfig
}
