package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [repository] [query]",
	Short: "Search an indexed repository for relevant chunks",
	Long: `Runs a similarity search over an indexed repository and prints the
matching source chunks with their scores, without invoking the answer
model.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retriever == nil {
		return errors.New("retriever service not configured")
	}

	repo, query := args[0], args[1]

	if err := retriever.Attach(cmd.Context(), repo); err != nil {
		return fmt.Errorf("attaching %s: %w", repo, err)
	}

	results, err := retriever.Retrieve(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, results)
}

type searchResult struct {
	FilePath   string  `json:"file_path"`
	Language   string  `json:"language"`
	ChunkID    int     `json:"chunk_id"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedDocument) error {
	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{
			FilePath:   res.Document.FilePath,
			Language:   res.Document.Language,
			ChunkID:    res.Document.ChunkID,
			Similarity: res.Similarity,
			Content:    res.Document.Content,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.RetrievedDocument) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, res := range results {
		cmd.Printf("[%d] %s#%d (%.3f)\n", i+1, res.Document.FilePath, res.Document.ChunkID, res.Similarity)
		cmd.Println(indent(snippet(res.Document.Content), "    "))
		cmd.Println()
	}
	return nil
}

// snippet keeps the first few lines of a chunk for terminal output.
func snippet(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 6 {
		lines = append(lines[:6], "...")
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
