// Package chunker splits file content into token-bounded, overlapping
// document chunks. Sizes are measured in model tokens rather than
// characters so a chunk never exceeds the embedding model's context
// budget regardless of script or language.
package chunker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping tokens
// between consecutive chunks.
const DefaultChunkOverlap = 200

// encodingName is the tokenisation scheme shared with the downstream
// model family.
const encodingName = "cl100k_base"

// Chunker splits text into overlapping token windows.
type Chunker struct {
	chunkSize int
	overlap   int
	encoder   *tiktoken.Tiktoken
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap at or above the window size would never advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	encoder, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	c.encoder = encoder

	return c, nil
}

// Chunk splits content into documents tagged with the file's relative
// path and detected language. Empty content yields zero chunks.
func (c *Chunker) Chunk(content, filePath string) []domain.Document {
	if content == "" {
		return nil
	}

	language := DetectLanguage(filePath)
	tokens := c.encoder.Encode(content, nil, nil)

	if len(tokens) <= c.chunkSize {
		return []domain.Document{{
			Content:  content,
			FilePath: filePath,
			Language: language,
			ChunkID:  0,
		}}
	}

	docs := make([]domain.Document, 0, len(tokens)/(c.chunkSize-c.overlap)+1)
	start := 0
	chunkID := 0

	for start < len(tokens) {
		end := start + c.chunkSize
		sliceEnd := end
		if sliceEnd > len(tokens) {
			sliceEnd = len(tokens)
		}

		docs = append(docs, domain.Document{
			Content:  c.encoder.Decode(tokens[start:sliceEnd]),
			FilePath: filePath,
			Language: language,
			ChunkID:  chunkID,
		})

		start = end - c.overlap
		chunkID++

		// A tail that fits inside the overlap region is already
		// covered by the chunk just emitted.
		if start >= len(tokens)-c.overlap {
			break
		}
	}

	return docs
}

// ChunkFiles chunks every scanned file, skipping empty content.
func (c *Chunker) ChunkFiles(files []domain.ScannedFile) []domain.Document {
	var docs []domain.Document
	for _, f := range files {
		chunks := c.Chunk(f.Content, f.Path)
		docs = append(docs, chunks...)
	}
	logger.Info("Created %d document chunks from %d files", len(docs), len(files))
	return docs
}

// extLanguages maps file extensions to language tags.
var extLanguages = map[string]string{
	".py": "python", ".js": "javascript", ".jsx": "javascript",
	".ts": "typescript", ".tsx": "typescript", ".java": "java",
	".cpp": "cpp", ".c": "c", ".h": "c", ".cs": "csharp",
	".go": "go", ".rs": "rust", ".php": "php", ".rb": "ruby",
	".swift": "swift", ".kt": "kotlin", ".scala": "scala",
	".md": "markdown", ".txt": "text", ".json": "json",
	".yaml": "yaml", ".yml": "yaml", ".xml": "xml",
	".html": "html", ".css": "css", ".sh": "bash",
	".sql": "sql", ".r": "r", ".dart": "dart",
	".vue": "vue", ".svelte": "svelte",
}

// DetectLanguage returns the language tag for a file path, falling
// back to "text" for unknown extensions.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return "text"
}
