// Package ai builds the embedding and generation services from
// configuration and validates connectivity before handing them out.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/config/file"
	ollamaembed "github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/embedding/openai"
	geminillm "github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/llm/ollama"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
)

// pingTimeout bounds the connectivity check at startup.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService builds the configured embedding provider.
func CreateEmbeddingService(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("embedding provider openai: %s is not set", file.EnvOpenAIAPIKey)
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// CreateLLMService builds the configured generation provider.
func CreateLLMService(cfg file.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm provider gemini: %s is not set", file.EnvGeminiAPIKey)
		}
		return geminillm.NewLLMService(geminillm.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService builds the embedding provider and
// pings it, so a dead Ollama fails at startup instead of mid-index.
func CreateAndValidateEmbeddingService(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s unreachable: %w", domain.ErrEmbeddingService, cfg.Provider, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService builds the generation provider and pings
// it.
func CreateAndValidateLLMService(cfg file.LLMConfig) (driven.LLMService, error) {
	svc, err := CreateLLMService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s unreachable: %w", domain.ErrLLMService, cfg.Provider, err)
	}
	return svc, nil
}
