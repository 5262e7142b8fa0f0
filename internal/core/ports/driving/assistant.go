package driving

import (
	"context"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

// Retriever answers top-k similarity queries over an indexed
// repository.
type Retriever interface {
	// BuildIndex embeds the documents and persists them under the
	// repository's collection. Building twice never duplicates
	// records; a populated collection short-circuits the build.
	BuildIndex(ctx context.Context, docs []domain.Document, repoName string) error

	// Attach binds an already-indexed repository for querying.
	Attach(ctx context.Context, repoName string) error

	// Retrieve returns up to k chunks ordered by descending
	// similarity. k <= 0 uses the configured default.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedDocument, error)

	// ContextForQuery renders the top-k chunks into the single text
	// block handed to the answer generator.
	ContextForQuery(ctx context.Context, query string, k int) (string, error)

	// DeleteIndex removes a repository's collection ahead of a forced
	// rebuild. Best-effort: callers log failures and continue, since
	// the following build attaches or recreates either way.
	DeleteIndex(ctx context.Context, repoName string) error
}

// Assistant is the full clone-index-ask pipeline.
type Assistant interface {
	// IndexRepository clones (or updates) the repository, scans and
	// chunks its files and builds the vector index. Options select a
	// fresh clone and/or an index rebuild independently.
	IndexRepository(ctx context.Context, url string, opts domain.IndexOptions) (domain.IndexReport, error)

	// Attach binds an already-indexed repository for asking.
	Attach(ctx context.Context, repoName string) error

	// Ask retrieves grounding context for the question and generates
	// an answer.
	Ask(ctx context.Context, question string) (domain.Answer, error)

	// Summary produces a short overview of the indexed repository.
	Summary(ctx context.Context) (string, error)
}
