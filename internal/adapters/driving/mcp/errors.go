// Package mcp exposes the assistant over the Model Context Protocol,
// so AI clients can query indexed repositories as tools.
package mcp

import "errors"

// ErrMissingAssistant is returned when the assistant service is not provided.
var ErrMissingAssistant = errors.New("mcp: assistant service is required")

// ErrMissingRetriever is returned when the retriever service is not provided.
var ErrMissingRetriever = errors.New("mcp: retriever service is required")
