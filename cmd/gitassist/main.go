// gitassist indexes GitHub repositories into a local vector database
// and answers questions about their code.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/ai"
	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/config/file"
	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driven/storage/sqlite"
	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driving/cli"
	"github.com/bhumika152/GitAssistant-Ollama/internal/chunker"
	"github.com/bhumika152/GitAssistant-Ollama/internal/connectors/filesystem"
	"github.com/bhumika152/GitAssistant-Ollama/internal/connectors/github"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/services"
)

func main() {
	cli.SetInitializer(initServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices builds the full service stack once the CLI has parsed
// its flags. Called lazily so commands like version need no Ollama.
func initServices(dataDir string) error {
	if dataDir == "" {
		var err error
		dataDir, err = file.DefaultDataDir()
		if err != nil {
			return err
		}
	}

	cfg, err := file.Load(dataDir)
	if err != nil {
		return err
	}
	cfg.DataDir = dataDir

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}

	llm, err := ai.CreateAndValidateLLMService(cfg.LLM)
	if err != nil {
		return err
	}

	chunks, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlap(cfg.Chunking.ChunkOverlap),
	)
	if err != nil {
		return fmt.Errorf("initialising chunker: %w", err)
	}

	sourceOpts := []github.ProviderOption{
		github.WithClient(github.NewClient(context.Background(), cfg.GitHub.Token)),
	}
	if cfg.GitHub.Token != "" {
		sourceOpts = append(sourceOpts, github.WithToken(cfg.GitHub.Token))
	}
	source := github.NewProvider(cfg.RepositoriesDir(), sourceOpts...)

	retriever := services.NewRetriever(store, embedder, services.RetrieverConfig{
		TopK: cfg.Retrieval.TopK,
	})
	assistant := services.NewAssistant(source, filesystem.NewScanner(), chunks, retriever, llm)

	cli.SetServices(assistant, retriever)
	return nil
}
