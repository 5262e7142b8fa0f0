package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
)

// collection implements driven.Collection on top of the store.
type collection struct {
	store *Store
	id    int64
	name  string
}

var _ driven.Collection = (*collection)(nil)

// GetOrCreate attaches to the named collection, creating it if absent.
// The embedding identity is bound on first creation; reopening with a
// different one fails, since the stored vectors would not be
// comparable to new ones.
func (s *Store) GetOrCreate(ctx context.Context, name string, dimensions int, model string) (driven.Collection, error) {
	var (
		id        int64
		storedDim int
		storedMod string
	)
	row := s.db.QueryRowContext(ctx,
		"SELECT id, dimensions, model FROM collections WHERE name = ?", name)
	err := row.Scan(&id, &storedDim, &storedMod)

	switch {
	case err == sql.ErrNoRows:
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO collections (name, dimensions, model) VALUES (?, ?, ?)",
			name, dimensions, model)
		if err != nil {
			return nil, fmt.Errorf("creating collection %s: %w", name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("creating collection %s: %w", name, err)
		}

	case err != nil:
		return nil, fmt.Errorf("looking up collection %s: %w", name, err)

	default:
		if storedDim != dimensions || storedMod != model {
			return nil, fmt.Errorf("collection %s was built with %s/%d, requested %s/%d: %w",
				name, storedMod, storedDim, model, dimensions, domain.ErrDimensionMismatch)
		}
	}

	return &collection{store: s, id: id, name: name}, nil
}

// DeleteCollection removes a collection and its records.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", name, err)
	}
	return nil
}

// Name returns the collection name.
func (c *collection) Name() string {
	return c.name
}

// Count returns the number of stored records.
func (c *collection) Count(ctx context.Context) (int, error) {
	var n int
	row := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE collection_id = ?", c.id)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Complete reports whether a build finished all its batches.
func (c *collection) Complete(ctx context.Context) (bool, error) {
	var indexedAt sql.NullTime
	row := c.store.db.QueryRowContext(ctx,
		"SELECT indexed_at FROM collections WHERE id = ?", c.id)
	if err := row.Scan(&indexedAt); err != nil {
		return false, fmt.Errorf("reading completion marker: %w", err)
	}
	return indexedAt.Valid, nil
}

// MarkComplete records that all batches of a build committed.
func (c *collection) MarkComplete(ctx context.Context) error {
	_, err := c.store.db.ExecContext(ctx,
		"UPDATE collections SET indexed_at = CURRENT_TIMESTAMP WHERE id = ?", c.id)
	if err != nil {
		return fmt.Errorf("setting completion marker: %w", err)
	}
	return nil
}

// Add bulk-inserts records in batches of driven.AddBatchSize, each
// batch in its own transaction. Batches are not transactional across
// each other; an aborted build leaves earlier batches committed and
// the completion marker unset.
func (c *collection) Add(ctx context.Context, records []driven.Record) error {
	for start := 0; start < len(records); start += driven.AddBatchSize {
		end := start + driven.AddBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := c.addBatch(ctx, records[start:end]); err != nil {
			return fmt.Errorf("batch starting at %d: %w", start, err)
		}
	}
	return nil
}

func (c *collection) addBatch(ctx context.Context, records []driven.Record) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (collection_id, doc_id, content, embedding, metadata)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		metaJSON, err := json.Marshal(rec.Meta)
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", rec.ID, err)
		}

		// Stored normalised so query distance reduces to unit-vector
		// euclidean.
		blob := float32SliceToBytes(normalize(rec.Embedding))

		if _, err := stmt.ExecContext(ctx, c.id, rec.ID, rec.Text, blob, string(metaJSON)); err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Query returns up to k nearest neighbours ordered by ascending
// distance. The scan is brute-force; collections here are one
// repository each, small enough that an ANN structure is not worth
// its build cost.
func (c *collection) Query(ctx context.Context, vector []float32, k int) ([]driven.Neighbor, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT doc_id, content, embedding, metadata
		FROM records WHERE collection_id = ?
	`, c.id)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	query := normalize(vector)

	var hits []driven.Neighbor
	for rows.Next() {
		var (
			docID    string
			content  string
			blob     []byte
			metaJSON string
		)
		if err := rows.Scan(&docID, &content, &blob, &metaJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		var meta domain.ChunkMeta
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata for %s: %w", docID, err)
		}

		hits = append(hits, driven.Neighbor{
			ID:       docID,
			Text:     content,
			Meta:     meta,
			Distance: unitDistance(query, bytesToFloat32Slice(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// normalize returns v scaled to unit length. Zero vectors are
// returned unchanged.
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

// unitDistance computes euclidean distance between two unit vectors,
// bounded to [0, 2]. Mismatched lengths compare only the shared
// prefix; GetOrCreate's dimension binding makes that unreachable in
// practice.
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
