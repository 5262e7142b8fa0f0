package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Repository string `json:"repository" jsonschema:"name of an indexed repository"`
	Question   string `json:"question" jsonschema:"the question to answer about the repository"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Repository string `json:"repository" jsonschema:"name of an indexed repository"`
	Query      string `json:"query" jsonschema:"the similarity search query"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SourceOutput `json:"results"`
	Count   int            `json:"count"`
}

// SourceOutput is one retrieved chunk.
type SourceOutput struct {
	FilePath   string  `json:"file_path"`
	Language   string  `json:"language"`
	ChunkID    int     `json:"chunk_id"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about an indexed repository, grounded in its source code",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find source chunks in an indexed repository by similarity",
	}, s.handleSearch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if err := s.ports.Assistant.Attach(ctx, input.Repository); err != nil {
		return nil, AskOutput{}, err
	}

	answer, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			FilePath:   src.Document.FilePath,
			Language:   src.Document.Language,
			ChunkID:    src.Document.ChunkID,
			Similarity: src.Similarity,
		}
	}

	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.ports.Retriever.Attach(ctx, input.Repository); err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := s.ports.Retriever.Retrieve(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SourceOutput, len(results)),
		Count:   len(results),
	}
	for i, res := range results {
		output.Results[i] = SourceOutput{
			FilePath:   res.Document.FilePath,
			Language:   res.Document.Language,
			ChunkID:    res.Document.ChunkID,
			Similarity: res.Similarity,
			Content:    res.Document.Content,
		}
	}

	return nil, output, nil
}
