package mcp

import (
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server exposes
// as tools. Single injection point for wiring.
type Ports struct {
	// Assistant answers questions grounded in retrieved chunks.
	Assistant driving.Assistant

	// Retriever serves raw similarity searches.
	Retriever driving.Retriever
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
