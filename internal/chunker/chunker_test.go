package chunker

import (
	"strings"
	"testing"

	"github.com/pkoukk/tiktoken-go"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

// words returns ASCII text with a predictable token count.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("hello ", n))
}

func tokenCount(t *testing.T, text string) int {
	t.Helper()
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		t.Fatalf("loading encoding: %v", err)
	}
	return len(enc.Encode(text, nil, nil))
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom sizes", func(t *testing.T) {
		c, err := New(WithChunkSize(500), WithOverlap(50))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if c.chunkSize != 500 || c.overlap != 50 {
			t.Errorf("expected 500/50, got %d/%d", c.chunkSize, c.overlap)
		}
	})

	t.Run("overlap clamped below chunk size", func(t *testing.T) {
		c, err := New(WithChunkSize(100), WithOverlap(150))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if c.overlap >= c.chunkSize {
			t.Errorf("overlap %d not reduced below chunk size %d", c.overlap, c.chunkSize)
		}
	})

	t.Run("non-positive options ignored", func(t *testing.T) {
		c, err := New(WithChunkSize(0), WithOverlap(-1))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if c.chunkSize != DefaultChunkSize || c.overlap != DefaultChunkOverlap {
			t.Errorf("expected defaults, got %d/%d", c.chunkSize, c.overlap)
		}
	})
}

func TestChunkEmptyContent(t *testing.T) {
	c, _ := New()
	if docs := c.Chunk("", "a.py"); len(docs) != 0 {
		t.Errorf("expected zero chunks for empty content, got %d", len(docs))
	}
}

func TestChunkSingleWindow(t *testing.T) {
	c, _ := New()
	text := words(50)

	docs := c.Chunk(text, "a.py")
	if len(docs) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(docs))
	}
	if docs[0].Content != text {
		t.Errorf("single chunk must carry the original content verbatim")
	}
	if docs[0].ChunkID != 0 {
		t.Errorf("expected chunk_id 0, got %d", docs[0].ChunkID)
	}
	if docs[0].Language != "python" {
		t.Errorf("expected language python, got %s", docs[0].Language)
	}
}

func TestChunkOverlappingWindows(t *testing.T) {
	c, err := New(WithChunkSize(10), WithOverlap(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := words(25)
	if n := tokenCount(t, text); n < 20 || n > 30 {
		t.Fatalf("fixture drifted: %d tokens", n)
	}

	docs := c.Chunk(text, "b.go")
	if len(docs) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(docs))
	}

	for i, doc := range docs {
		if doc.ChunkID != i {
			t.Errorf("chunk %d has id %d, ids must be 0..n-1 with no gaps", i, doc.ChunkID)
		}
		if doc.FilePath != "b.go" || doc.Language != "go" {
			t.Errorf("chunk %d lost its file tagging: %+v", i, doc)
		}
	}

	// No token is dropped: each window starts chunkSize-overlap tokens
	// after the previous, so consecutive chunks share their boundary
	// region and the last chunk ends at the text's end.
	enc, _ := tiktoken.GetEncoding("cl100k_base")
	all := enc.Encode(text, nil, nil)
	stride := 10 - 2
	for i, doc := range docs {
		start := i * stride
		end := start + 10
		if end > len(all) {
			end = len(all)
		}
		if want := enc.Decode(all[start:end]); doc.Content != want {
			t.Errorf("chunk %d content mismatch:\n got %q\nwant %q", i, doc.Content, want)
		}
	}
	last := docs[len(docs)-1]
	if !strings.HasSuffix(text, strings.TrimPrefix(last.Content, " ")) {
		t.Errorf("final chunk does not reach the end of the text: %q", last.Content)
	}
}

func TestChunkDefaultWindowScenario(t *testing.T) {
	// ~1500 tokens against the default 1000/200 window lands at token
	// offsets [0,1000) and [800,1500): exactly two chunks.
	c, _ := New()
	text := words(1499)

	n := tokenCount(t, text)
	if n < 1400 || n > 1600 {
		t.Fatalf("fixture drifted: %d tokens", n)
	}

	docs := c.Chunk(text, "b.py")
	if len(docs) != 2 {
		t.Fatalf("expected 2 chunks for %d tokens, got %d", n, len(docs))
	}
	if docs[0].ChunkID != 0 || docs[1].ChunkID != 1 {
		t.Errorf("expected ids 0,1 got %d,%d", docs[0].ChunkID, docs[1].ChunkID)
	}
}

func TestChunkFiles(t *testing.T) {
	c, _ := New()
	files := []domain.ScannedFile{
		{Path: "a.py", Content: words(10)},
		{Path: "empty.md", Content: ""},
		{Path: "b.go", Content: words(20)},
	}

	docs := c.ChunkFiles(files)
	if len(docs) != 2 {
		t.Fatalf("expected 2 chunks (empty file skipped), got %d", len(docs))
	}
	if docs[0].FilePath != "a.py" || docs[1].FilePath != "b.go" {
		t.Errorf("chunks out of input order: %+v", docs)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"main.py":      "python",
		"src/app.TSX":  "typescript",
		"Makefile":     "text",
		"styles.css":   "css",
		"query.sql":    "sql",
		"noextension":  "text",
		"weird.xyzabc": "text",
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}
