package ai

import (
	"testing"

	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/config/file"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Run("ollama by default", func(t *testing.T) {
		svc, err := CreateEmbeddingService(file.EmbeddingConfig{Model: "nomic-embed-text", Dimensions: 768})
		if err != nil {
			t.Fatalf("CreateEmbeddingService: %v", err)
		}
		defer svc.Close()
		if svc.ModelName() != "nomic-embed-text" {
			t.Errorf("unexpected model %q", svc.ModelName())
		}
		if svc.Dimensions() != 768 {
			t.Errorf("unexpected dimensions %d", svc.Dimensions())
		}
	})

	t.Run("openai requires a key", func(t *testing.T) {
		if _, err := CreateEmbeddingService(file.EmbeddingConfig{Provider: "openai"}); err == nil {
			t.Fatal("expected an error without an API key")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := CreateEmbeddingService(file.EmbeddingConfig{Provider: "cohere"}); err == nil {
			t.Fatal("expected an error for an unknown provider")
		}
	})
}

func TestCreateLLMService(t *testing.T) {
	t.Run("ollama by default", func(t *testing.T) {
		svc, err := CreateLLMService(file.LLMConfig{Model: "llama3.2"})
		if err != nil {
			t.Fatalf("CreateLLMService: %v", err)
		}
		defer svc.Close()
		if svc.ModelName() != "llama3.2" {
			t.Errorf("unexpected model %q", svc.ModelName())
		}
	})

	t.Run("gemini requires a key", func(t *testing.T) {
		if _, err := CreateLLMService(file.LLMConfig{Provider: "gemini"}); err == nil {
			t.Fatal("expected an error without an API key")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := CreateLLMService(file.LLMConfig{Provider: "claude"}); err == nil {
			t.Fatal("expected an error for an unknown provider")
		}
	})
}
