// Package services contains the core orchestration: the retriever
// over the vector index and the assistant that runs the full
// clone-scan-chunk-index-ask pipeline.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driving"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.Retriever = (*Retriever)(nil)

// DefaultTopK is the default number of chunks retrieved per query.
const DefaultTopK = 5

// RetrieverConfig holds the retriever's tunables. Passed explicitly
// to the constructor; there is no ambient global configuration.
type RetrieverConfig struct {
	// TopK is the default result count for Retrieve (default 5).
	TopK int
}

// Retriever orchestrates the embedding service and the vector store:
// it builds a repository's index and answers top-k similarity queries
// against it.
type Retriever struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
	topK     int

	// mu guards the attached collection and remembered documents.
	mu       sync.Mutex
	coll     driven.Collection
	docs     []domain.Document
	cacheHit bool

	// buildMu hands out one mutex per collection name so concurrent
	// first-time builds of the same repository cannot both observe an
	// empty collection and double-insert.
	buildMu sync.Mutex
	builds  map[string]*sync.Mutex
}

// NewRetriever creates a retriever over the given store and embedder.
func NewRetriever(store driven.VectorStore, embedder driven.EmbeddingService, cfg RetrieverConfig) *Retriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		topK:     topK,
		builds:   make(map[string]*sync.Mutex),
	}
}

// buildLock returns the mutex for a collection name.
func (r *Retriever) buildLock(name string) *sync.Mutex {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	if m, ok := r.builds[name]; ok {
		return m
	}
	m := &sync.Mutex{}
	r.builds[name] = m
	return m
}

// setAttached binds the collection and remembers the document set.
func (r *Retriever) setAttached(coll driven.Collection, docs []domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coll = coll
	r.docs = docs
}

// attached returns the bound collection, or nil.
func (r *Retriever) attached() driven.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coll
}

// DocumentCount returns the size of the remembered document set.
func (r *Retriever) DocumentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// LastBuildWasCacheHit reports whether the most recent BuildIndex
// short-circuited on an already-populated collection.
func (r *Retriever) LastBuildWasCacheHit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHit
}

// BuildIndex embeds the documents and persists them under the
// repository's collection.
//
// A collection that is already populated and marked complete is a
// cache hit: the documents are remembered for statistics and nothing
// is embedded or written, so building twice never duplicates records.
// A populated collection without the completion marker is the residue
// of a build that died between batches; it is wiped and rebuilt.
func (r *Retriever) BuildIndex(ctx context.Context, docs []domain.Document, repoName string) error {
	if len(docs) == 0 {
		return domain.ErrEmptyInput
	}

	name := domain.CollectionName(repoName)

	lock := r.buildLock(name)
	lock.Lock()
	defer lock.Unlock()

	coll, err := r.attach(ctx, name)
	if err != nil {
		return err
	}

	count, err := coll.Count(ctx)
	if err != nil {
		return fmt.Errorf("build index %s: %w", name, err)
	}

	if count > 0 {
		complete, err := coll.Complete(ctx)
		if err != nil {
			return fmt.Errorf("build index %s: %w", name, err)
		}
		if complete {
			logger.Info("Collection %q already has %d documents", name, count)
			r.setAttached(coll, docs)
			r.setCacheHit(true)
			return nil
		}

		logger.Warn("Collection %q holds %d records from an unfinished build, rebuilding", name, count)
		if err := r.store.DeleteCollection(ctx, name); err != nil {
			return fmt.Errorf("discarding partial index %s: %w", name, err)
		}
		coll, err = r.attach(ctx, name)
		if err != nil {
			return err
		}
	}

	logger.Section("Index Build")
	logger.Info("Building index with %d documents...", len(docs))

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	logger.Info("Generating embeddings for %d documents (%s)...", len(docs), r.embedder.ModelName())
	embeddings, err := r.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return fmt.Errorf("build index %s: %w", name, err)
	}

	// Ids are assigned in input order, so doc_i always corresponds to
	// docs[i].
	records := make([]driven.Record, len(docs))
	for i, doc := range docs {
		records[i] = driven.Record{
			ID:        fmt.Sprintf("doc_%d", i),
			Text:      doc.Content,
			Embedding: embeddings[i],
			Meta:      doc.Meta(),
		}
	}

	if err := coll.Add(ctx, records); err != nil {
		return fmt.Errorf("build index %s: %w", name, err)
	}
	if err := coll.MarkComplete(ctx); err != nil {
		return fmt.Errorf("build index %s: %w", name, err)
	}

	logger.Info("Index built successfully")
	r.setAttached(coll, docs)
	r.setCacheHit(false)
	return nil
}

// setCacheHit records whether the last build short-circuited.
func (r *Retriever) setCacheHit(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cacheHit = hit
}

// attach opens the collection under the embedder's identity.
func (r *Retriever) attach(ctx context.Context, name string) (driven.Collection, error) {
	coll, err := r.store.GetOrCreate(ctx, name, r.embedder.Dimensions(), r.embedder.ModelName())
	if err != nil {
		return nil, fmt.Errorf("attach collection %s: %w", name, err)
	}
	return coll, nil
}

// Attach binds an already-indexed repository for querying.
func (r *Retriever) Attach(ctx context.Context, repoName string) error {
	name := domain.CollectionName(repoName)

	coll, err := r.attach(ctx, name)
	if err != nil {
		return err
	}

	count, err := coll.Count(ctx)
	if err != nil {
		return fmt.Errorf("attach collection %s: %w", name, err)
	}
	if count == 0 {
		return fmt.Errorf("repository %q has no index: %w", repoName, domain.ErrNotFound)
	}

	logger.Info("Attached to collection %q (%d documents)", name, count)
	r.setAttached(coll, nil)
	return nil
}

// DeleteIndex removes a repository's collection ahead of a forced
// rebuild.
func (r *Retriever) DeleteIndex(ctx context.Context, repoName string) error {
	name := domain.CollectionName(repoName)

	lock := r.buildLock(name)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	if r.coll != nil && r.coll.Name() == name {
		r.coll = nil
		r.docs = nil
	}
	r.mu.Unlock()

	return r.store.DeleteCollection(ctx, name)
}

// Retrieve embeds the query and returns up to k chunks ordered by
// descending similarity. k <= 0 uses the configured default.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedDocument, error) {
	coll := r.attached()
	if coll == nil {
		return nil, domain.ErrNotInitialized
	}

	if k <= 0 {
		k = r.topK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	// The store clamps k to the record count and returns neighbours
	// already ordered by ascending distance; no re-sort here.
	hits, err := coll.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", coll.Name(), err)
	}

	results := make([]domain.RetrievedDocument, len(hits))
	for i, hit := range hits {
		results[i] = domain.RetrievedDocument{
			Document:   domain.Reconstruct(hit.Text, hit.Meta),
			Similarity: similarity(hit.Distance),
		}
	}
	return results, nil
}

// similarity converts a unit-vector euclidean distance d in [0,2] to
// a score in [0,1]: d=0 maps to 1.0, d=2 maps to 0.0. Clamping guards
// against numeric drift.
func similarity(d float64) float64 {
	s := 1 - (d*d)/2
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// ContextForQuery renders the top-k chunks into the single text block
// handed to the answer generator.
func (r *Retriever) ContextForQuery(ctx context.Context, query string, k int) (string, error) {
	results, err := r.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}
	return FormatContext(results), nil
}

// FormatContext renders retrieved chunks into one context block, each
// entry labelled with its 1-based rank and similarity score.
func FormatContext(results []domain.RetrievedDocument) string {
	entries := make([]string, len(results))
	for i, res := range results {
		entries[i] = fmt.Sprintf("--- Document %d (Score: %.3f) ---\n%s", i+1, res.Similarity, res.Document.Content)
	}
	return strings.Join(entries, "\n\n")
}
