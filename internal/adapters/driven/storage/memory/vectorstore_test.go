package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	a, err := store.GetOrCreate(ctx, "repo_x", 2, "m")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := a.Add(ctx, []driven.Record{{ID: "doc_0", Embedding: []float32{1, 0}}}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	b, err := store.GetOrCreate(ctx, "repo_x", 2, "m")
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if n, _ := b.Count(ctx); n != 1 {
		t.Errorf("expected reattached collection to hold 1 record, got %d", n)
	}
}

func TestGetOrCreateDimensionMismatch(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	if _, err := store.GetOrCreate(ctx, "repo_x", 2, "m"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	_, err := store.GetOrCreate(ctx, "repo_x", 768, "m")
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	coll, _ := store.GetOrCreate(ctx, "repo_x", 2, "m")
	rec := driven.Record{ID: "doc_0", Embedding: []float32{1, 0}}
	if err := coll.Add(ctx, []driven.Record{rec}); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := coll.Add(ctx, []driven.Record{rec}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestQueryOrdering(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	coll, _ := store.GetOrCreate(ctx, "repo_x", 3, "m")
	coll.Add(ctx, []driven.Record{
		{ID: "doc_0", Text: "a", Embedding: []float32{1, 0, 0}},
		{ID: "doc_1", Text: "b", Embedding: []float32{0, 1, 0}},
		{ID: "doc_2", Text: "c", Embedding: []float32{0.9, 0.1, 0}},
	})

	hits, err := coll.Query(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected k clamped to 3, got %d", len(hits))
	}
	if hits[0].ID != "doc_0" || hits[1].ID != "doc_2" || hits[2].ID != "doc_1" {
		t.Errorf("unexpected ordering: %s %s %s", hits[0].ID, hits[1].ID, hits[2].ID)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Errorf("distances not ascending at %d", i)
		}
	}
}

func TestDeleteCollection(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	coll, _ := store.GetOrCreate(ctx, "repo_x", 2, "m")
	coll.Add(ctx, []driven.Record{{ID: "doc_0", Embedding: []float32{1, 0}}})
	coll.MarkComplete(ctx)

	if err := store.DeleteCollection(ctx, "repo_x"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}

	fresh, _ := store.GetOrCreate(ctx, "repo_x", 2, "m")
	if n, _ := fresh.Count(ctx); n != 0 {
		t.Errorf("expected empty collection after delete, got %d records", n)
	}
	if done, _ := fresh.Complete(ctx); done {
		t.Error("fresh collection must not be complete")
	}
}
