// Package memory provides in-memory implementations of the storage
// ports. Used in tests and anywhere persistence is not wanted.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory vector store.
type VectorStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		collections: make(map[string]*collection),
	}
}

// collection implements driven.Collection.
type collection struct {
	mu         sync.RWMutex
	name       string
	dimensions int
	model      string
	complete   bool
	records    []driven.Record
	ids        map[string]struct{}
}

var _ driven.Collection = (*collection)(nil)

// GetOrCreate attaches to the named collection, creating it if absent.
func (s *VectorStore) GetOrCreate(_ context.Context, name string, dimensions int, model string) (driven.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		if c.dimensions != dimensions || c.model != model {
			return nil, fmt.Errorf("collection %s was built with %s/%d, requested %s/%d: %w",
				name, c.model, c.dimensions, model, dimensions, domain.ErrDimensionMismatch)
		}
		return c, nil
	}

	c := &collection{
		name:       name,
		dimensions: dimensions,
		model:      model,
		ids:        make(map[string]struct{}),
	}
	s.collections[name] = c
	return c, nil
}

// DeleteCollection removes a collection. Missing names are ignored.
func (s *VectorStore) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

// Name returns the collection name.
func (c *collection) Name() string {
	return c.name
}

// Count returns the number of stored records.
func (c *collection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records), nil
}

// Complete reports whether a build finished all its batches.
func (c *collection) Complete(_ context.Context) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.complete, nil
}

// MarkComplete records that all batches of a build committed.
func (c *collection) MarkComplete(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.complete = true
	return nil
}

// Add appends records; duplicate ids within the collection fail.
func (c *collection) Add(_ context.Context, records []driven.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range records {
		if _, exists := c.ids[rec.ID]; exists {
			return fmt.Errorf("record %s: %w", rec.ID, domain.ErrAlreadyExists)
		}
	}
	for _, rec := range records {
		rec.Embedding = normalize(rec.Embedding)
		c.records = append(c.records, rec)
		c.ids[rec.ID] = struct{}{}
	}
	return nil
}

// Query returns up to k nearest neighbours by ascending unit-vector
// euclidean distance.
func (c *collection) Query(_ context.Context, vector []float32, k int) ([]driven.Neighbor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if k <= 0 {
		return nil, nil
	}

	query := normalize(vector)
	hits := make([]driven.Neighbor, 0, len(c.records))
	for _, rec := range c.records {
		hits = append(hits, driven.Neighbor{
			ID:       rec.ID,
			Text:     rec.Text,
			Meta:     rec.Meta,
			Distance: unitDistance(query, rec.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// normalize returns v scaled to unit length.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// unitDistance computes euclidean distance between two unit vectors.
func unitDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
