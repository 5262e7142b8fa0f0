package driven

import (
	"context"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

// SourceProvider acquires a local working copy of a remote repository.
type SourceProvider interface {
	// CloneOrUpdate makes the repository available locally and returns
	// its path. An existing clone is pulled; forceFresh removes it and
	// clones from scratch. A failed pull on an existing clone is
	// logged, not fatal, since the stale copy is still indexable.
	CloneOrUpdate(ctx context.Context, url string, forceFresh bool) (string, error)

	// RepositoryInfo extracts name, branch, commit and remote URL from
	// a local clone. Only Name feeds retrieval.
	RepositoryInfo(ctx context.Context, path string) (domain.RepositoryInfo, error)
}

// FileScanner walks a repository and returns its processable text
// files: allow-listed extensions, size-capped, binary content and
// ignored directories excluded. Unreadable files are logged and
// skipped; partial results are acceptable.
type FileScanner interface {
	Scan(ctx context.Context, root string) ([]domain.ScannedFile, error)
}
