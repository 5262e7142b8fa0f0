package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyInput indicates an index build was requested with zero
	// documents. Nothing is written in that case.
	ErrEmptyInput = errors.New("no documents provided for indexing")

	// ErrNotInitialized indicates a retrieval was attempted before any
	// collection was attached.
	ErrNotInitialized = errors.New("collection not initialized")

	// ErrInvalidRepoURL indicates a repository identifier could not be
	// parsed into owner and name.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrEmbeddingService indicates the remote embedding call failed.
	// Fatal to the enclosing build or query; never retried silently.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrLLMService indicates the answer generation call failed.
	ErrLLMService = errors.New("LLM service failure")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDimensionMismatch indicates a collection was opened with an
	// embedding identity different from the one it was created with.
	// Vectors are only comparable within one embedding space.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
