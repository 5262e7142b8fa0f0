package domain

import "fmt"

// Document is a bounded, token-limited slice of a source file.
// Documents are produced once by the chunker and consumed by value;
// a document coming back from the index is a reconstruction from the
// stored text and metadata, not the original instance.
type Document struct {
	// Content is the chunk text.
	Content string

	// FilePath is the path of the source file, relative to the
	// repository root.
	FilePath string

	// Language is the language tag derived from the file extension.
	// Files with an unknown extension are tagged "text".
	Language string

	// ChunkID is the 0-based position of this chunk within its source
	// file. It is only unique within that file.
	ChunkID int
}

// String implements fmt.Stringer for log output.
func (d Document) String() string {
	return fmt.Sprintf("Document(file=%s, chunk=%d, len=%d)", d.FilePath, d.ChunkID, len(d.Content))
}

// ChunkMeta is the metadata persisted alongside each vector record.
// It carries everything needed to reconstruct a Document from a hit.
type ChunkMeta struct {
	FilePath string `json:"file_path"`
	Language string `json:"language"`
	ChunkID  int    `json:"chunk_id"`
}

// Meta returns the persistable metadata for this document.
func (d Document) Meta() ChunkMeta {
	return ChunkMeta{
		FilePath: d.FilePath,
		Language: d.Language,
		ChunkID:  d.ChunkID,
	}
}

// Reconstruct builds a Document back from stored text and metadata.
func Reconstruct(content string, meta ChunkMeta) Document {
	return Document{
		Content:  content,
		FilePath: meta.FilePath,
		Language: meta.Language,
		ChunkID:  meta.ChunkID,
	}
}

// RetrievedDocument pairs a reconstructed document with its similarity
// score. Similarity is bounded to [0, 1], higher is more relevant.
type RetrievedDocument struct {
	Document   Document
	Similarity float64
}

// ScannedFile is one processable text file handed to the chunker.
type ScannedFile struct {
	// Path is relative to the repository root.
	Path string

	// Content is the full UTF-8 file content.
	Content string
}
