package llm

import (
	"context"
	"fmt"
	"net/http"

	"edugen/internal/config"
	"edugen/internal/domain"
)

// New builds the text model selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (domain.TextModel, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiModel(ctx, GeminiOptions{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	case config.ProviderOllama:
		return NewOllamaModel(cfg.Ollama.ServerURL, cfg.Ollama.Model, cfg.Temperature, httpClient)
	case config.ProviderOpenAI:
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Temperature, httpClient)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
