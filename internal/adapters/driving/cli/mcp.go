package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Exposes indexed repositories to MCP clients as 'ask' and 'search'
tools. Serves stdio by default; pass --http to serve streamable HTTP
instead.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address (e.g. :8080) instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if assistant == nil || retriever == nil {
		return errors.New("services not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Assistant: assistant,
		Retriever: retriever,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	return server.Run(cmd.Context())
}
