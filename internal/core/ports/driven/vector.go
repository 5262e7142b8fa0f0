package driven

import (
	"context"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

// AddBatchSize bounds a single insert payload against the storage
// backend. Larger record sets are written in batches of this size.
const AddBatchSize = 500

// VectorStore owns named, persistent vector collections. One store
// holds many collections; each collection is scoped to exactly one
// repository.
type VectorStore interface {
	// GetOrCreate attaches to the named collection, creating it if
	// absent. The embedding identity (dimensions, model) is bound on
	// creation; reopening with a different identity fails with
	// domain.ErrDimensionMismatch.
	GetOrCreate(ctx context.Context, name string, dimensions int, model string) (Collection, error)

	// DeleteCollection removes a collection and its records.
	// Missing collections are not an error.
	DeleteCollection(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

// Collection is a named set of (id, text, vector, metadata) records.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Complete reports whether a build finished all its batches.
	// A nonzero count without the completion marker means a build
	// died between batches and the contents cannot be trusted.
	Complete(ctx context.Context) (bool, error)

	// MarkComplete records that all batches of a build committed.
	MarkComplete(ctx context.Context) error

	// Add bulk-inserts records append-only, in batches of AddBatchSize.
	// Record IDs must be unique within the collection.
	Add(ctx context.Context, records []Record) error

	// Query returns up to k nearest neighbours to the vector, ordered
	// by ascending distance. k is clamped to the record count.
	Query(ctx context.Context, vector []float32, k int) ([]Neighbor, error)
}

// Record is one entry persisted into a collection.
type Record struct {
	// ID is unique within the collection ("doc_<index>").
	ID string

	// Text is the raw chunk content.
	Text string

	// Embedding is the chunk vector.
	Embedding []float32

	// Meta reconstructs the source document on retrieval.
	Meta domain.ChunkMeta
}

// Neighbor is one similarity search hit.
type Neighbor struct {
	ID   string
	Text string
	Meta domain.ChunkMeta

	// Distance is euclidean distance between unit vectors, in [0, 2].
	// 0 means identical direction, 2 means opposite.
	Distance float64
}
