package driven

import "context"

// LLMService generates natural-language answers from retrieved
// context. The core hands it a query and a formatted context block and
// does not parse or validate the returned text.
//
// Implementations may include:
//   - Ollama (llama3.2 and friends)
//   - Google Gemini
type LLMService interface {
	// GenerateAnswer answers the query grounded in the context block.
	GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error)

	// GenerateSummary produces a short repository overview.
	GenerateSummary(ctx context.Context, repoName string, fileCount int, languages []string) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
