package config

import (
	"os"
	"sync"
	"time"
)

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		model := os.Getenv("OPENROUTER_MODEL")
		if model == "" {
			model = "openai/gpt-4o-mini"
		}
		baseURL := os.Getenv("OPENROUTER_BASE_URL")
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		timeout := 15 * time.Second
		if raw := os.Getenv("OPENROUTER_TIMEOUT"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				timeout = parsed
			}
		}
		openRouterConfig = &OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Model:   model,
			BaseURL: baseURL,
			Timeout: timeout,
		}
	})
	return openRouterConfig
}
