package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bhumika152/GitAssistant-Ollama/internal/chunker"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driving"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.Assistant = (*Assistant)(nil)

// Assistant runs the full pipeline: acquire the repository, scan and
// chunk its files, build the vector index, and answer questions
// grounded in retrieved chunks.
type Assistant struct {
	source    driven.SourceProvider
	scanner   driven.FileScanner
	chunks    *chunker.Chunker
	retriever driving.Retriever
	llm       driven.LLMService

	mu     sync.Mutex
	report *domain.IndexReport
}

// NewAssistant wires the pipeline together.
func NewAssistant(
	source driven.SourceProvider,
	scanner driven.FileScanner,
	chunks *chunker.Chunker,
	retriever driving.Retriever,
	llm driven.LLMService,
) *Assistant {
	return &Assistant{
		source:    source,
		scanner:   scanner,
		chunks:    chunks,
		retriever: retriever,
		llm:       llm,
	}
}

// IndexRepository clones (or updates) the repository, scans and chunks
// its files and builds the vector index.
func (a *Assistant) IndexRepository(ctx context.Context, url string, opts domain.IndexOptions) (domain.IndexReport, error) {
	logger.Section("Repository Indexing")

	path, err := a.source.CloneOrUpdate(ctx, url, opts.FreshClone)
	if err != nil {
		return domain.IndexReport{}, fmt.Errorf("acquiring repository: %w", err)
	}

	info, err := a.source.RepositoryInfo(ctx, path)
	if err != nil {
		return domain.IndexReport{}, fmt.Errorf("reading repository metadata: %w", err)
	}

	files, err := a.scanner.Scan(ctx, path)
	if err != nil {
		return domain.IndexReport{}, fmt.Errorf("scanning %s: %w", info.Name, err)
	}

	docs := a.chunks.ChunkFiles(files)

	if opts.RebuildIndex {
		// Best-effort: a failed delete only means create-or-get will
		// reuse or recreate the collection.
		if err := a.retriever.DeleteIndex(ctx, info.Name); err != nil {
			logger.Warn("Could not delete existing index for %s: %v", info.Name, err)
		}
	}

	if err := a.retriever.BuildIndex(ctx, docs, info.Name); err != nil {
		return domain.IndexReport{}, fmt.Errorf("indexing %s: %w", info.Name, err)
	}

	report := domain.IndexReport{
		Repository: info,
		Files:      len(files),
		Chunks:     len(docs),
		Languages:  languageCounts(docs),
		CacheHit:   lastBuildWasCacheHit(a.retriever),
	}

	a.mu.Lock()
	a.report = &report
	a.mu.Unlock()

	return report, nil
}

// lastBuildWasCacheHit reports whether the previous build
// short-circuited, when the concrete retriever exposes that.
func lastBuildWasCacheHit(r driving.Retriever) bool {
	if c, ok := r.(interface{ LastBuildWasCacheHit() bool }); ok {
		return c.LastBuildWasCacheHit()
	}
	return false
}

// languageCounts tallies chunks per language tag.
func languageCounts(docs []domain.Document) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		counts[doc.Language]++
	}
	return counts
}

// Attach binds an already-indexed repository for asking.
func (a *Assistant) Attach(ctx context.Context, repoName string) error {
	if err := a.retriever.Attach(ctx, repoName); err != nil {
		return err
	}

	a.mu.Lock()
	a.report = &domain.IndexReport{
		Repository: domain.RepositoryInfo{Name: repoName},
		CacheHit:   true,
	}
	a.mu.Unlock()
	return nil
}

// Ask retrieves grounding context for the question and generates an
// answer. The sources returned are the retrieved chunks in relevance
// order.
func (a *Assistant) Ask(ctx context.Context, question string) (domain.Answer, error) {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", question)

	results, err := a.retriever.Retrieve(ctx, question, 0)
	if err != nil {
		return domain.Answer{}, err
	}

	contextBlock := FormatContext(results)
	logger.Debug("Context block: %d chars from %d chunks", len(contextBlock), len(results))

	text, err := a.llm.GenerateAnswer(ctx, question, contextBlock)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	return domain.Answer{Text: text, Sources: results}, nil
}

// Summary produces a short overview of the indexed repository.
func (a *Assistant) Summary(ctx context.Context) (string, error) {
	a.mu.Lock()
	report := a.report
	a.mu.Unlock()

	if report == nil {
		return "", fmt.Errorf("no repository indexed: %w", domain.ErrNotInitialized)
	}

	languages := make([]string, 0, len(report.Languages))
	for lang := range report.Languages {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	summary, err := a.llm.GenerateSummary(ctx, report.Repository.Name, report.Files, languages)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return summary, nil
}

// Report returns the last index report, if any.
func (a *Assistant) Report() *domain.IndexReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report
}
