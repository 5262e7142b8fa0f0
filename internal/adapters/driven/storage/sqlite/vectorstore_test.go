package sqlite

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRecord(i int, vec []float32) driven.Record {
	return driven.Record{
		ID:        fmt.Sprintf("doc_%d", i),
		Text:      fmt.Sprintf("content %d", i),
		Embedding: vec,
		Meta:      domain.ChunkMeta{FilePath: fmt.Sprintf("f%d.py", i), Language: "python", ChunkID: 0},
	}
}

func TestGetOrCreate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("creates when absent", func(t *testing.T) {
		coll, err := store.GetOrCreate(ctx, "repo_alpha", 3, "nomic-embed-text")
		require.NoError(t, err)
		assert.Equal(t, "repo_alpha", coll.Name())

		n, err := coll.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n, "fresh collection must be empty")
	})

	t.Run("idempotent reattach", func(t *testing.T) {
		first, err := store.GetOrCreate(ctx, "repo_beta", 3, "nomic-embed-text")
		require.NoError(t, err)
		require.NoError(t, first.Add(ctx, []driven.Record{testRecord(0, []float32{1, 0, 0})}))

		again, err := store.GetOrCreate(ctx, "repo_beta", 3, "nomic-embed-text")
		require.NoError(t, err)
		n, err := again.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "reattach must see existing records")
	})

	t.Run("rejects different embedding identity", func(t *testing.T) {
		_, err := store.GetOrCreate(ctx, "repo_alpha", 768, "nomic-embed-text")
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

		_, err = store.GetOrCreate(ctx, "repo_alpha", 3, "other-model")
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}

func TestAddAndQuery(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	coll, err := store.GetOrCreate(ctx, "repo_q", 3, "test-model")
	require.NoError(t, err)

	// Three orthogonal-ish vectors; the query points at doc_0.
	require.NoError(t, coll.Add(ctx, []driven.Record{
		testRecord(0, []float32{1, 0, 0}),
		testRecord(1, []float32{0, 1, 0}),
		testRecord(2, []float32{0, 0, 1}),
	}))

	hits, err := coll.Query(ctx, []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "doc_0", hits[0].ID)
	assert.Less(t, hits[0].Distance, hits[1].Distance, "hits must be ascending by distance")
	assert.Equal(t, "f0.py", hits[0].Meta.FilePath)
	assert.Equal(t, "content 0", hits[0].Text)

	t.Run("identical vector has distance zero", func(t *testing.T) {
		hits, err := coll.Query(ctx, []float32{1, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.InDelta(t, 0.0, hits[0].Distance, 1e-6)
	})

	t.Run("k clamped to count", func(t *testing.T) {
		hits, err := coll.Query(ctx, []float32{1, 0, 0}, 50)
		require.NoError(t, err)
		assert.Len(t, hits, 3)
	})

	t.Run("distances bounded to [0,2]", func(t *testing.T) {
		hits, err := coll.Query(ctx, []float32{-1, 0, 0}, 3)
		require.NoError(t, err)
		for _, h := range hits {
			assert.GreaterOrEqual(t, h.Distance, 0.0)
			assert.LessOrEqual(t, h.Distance, 2.0+1e-9)
		}
		// Opposite unit vectors sit at the metric's far end.
		assert.InDelta(t, 2.0, hits[len(hits)-1].Distance, 1e-6)
	})

	t.Run("duplicate doc id rejected", func(t *testing.T) {
		err := coll.Add(ctx, []driven.Record{testRecord(0, []float32{1, 1, 1})})
		assert.Error(t, err)
	})
}

func TestCompletionMarker(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	coll, err := store.GetOrCreate(ctx, "repo_marker", 2, "test-model")
	require.NoError(t, err)

	done, err := coll.Complete(ctx)
	require.NoError(t, err)
	assert.False(t, done, "fresh collection must not be marked complete")

	require.NoError(t, coll.Add(ctx, []driven.Record{testRecord(0, []float32{1, 0})}))
	require.NoError(t, coll.MarkComplete(ctx))

	done, err = coll.Complete(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDeleteCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	coll, err := store.GetOrCreate(ctx, "repo_del", 2, "test-model")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, []driven.Record{testRecord(0, []float32{1, 0})}))

	require.NoError(t, store.DeleteCollection(ctx, "repo_del"))
	// Deleting a missing collection is not an error.
	require.NoError(t, store.DeleteCollection(ctx, "repo_del"))

	fresh, err := store.GetOrCreate(ctx, "repo_del", 2, "test-model")
	require.NoError(t, err)
	n, err := fresh.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteCollectionCascadesOnPooledConnections(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	coll, err := store.GetOrCreate(ctx, "repo_pool", 2, "test-model")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, []driven.Record{
		testRecord(0, []float32{1, 0}),
		testRecord(1, []float32{0, 1}),
	}))

	// Hold one pooled connection so the delete runs on another.
	held, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	var fk int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk, "foreign_keys must hold on every pooled connection")

	require.NoError(t, store.DeleteCollection(ctx, "repo_pool"))

	var orphans int
	require.NoError(t, held.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&orphans))
	assert.Zero(t, orphans, "records must cascade with the collection")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	coll, err := store.GetOrCreate(ctx, "repo_persist", 2, "test-model")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, []driven.Record{
		testRecord(0, []float32{1, 0}),
		testRecord(1, []float32{0, 1}),
	}))
	require.NoError(t, coll.MarkComplete(ctx))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	coll2, err := reopened.GetOrCreate(ctx, "repo_persist", 2, "test-model")
	require.NoError(t, err)
	n, err := coll2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	done, err := coll2.Complete(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestVectorCodecRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.75, float32(math.Pi)}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], out[i])
	}
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestNormalize(t *testing.T) {
	v := normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, normalize(zero))
}

func TestQueryEmptyCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	coll, err := store.GetOrCreate(ctx, "repo_empty", 2, "test-model")
	require.NoError(t, err)

	hits, err := coll.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
