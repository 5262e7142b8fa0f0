package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

var (
	indexFresh   bool
	indexRebuild bool
)

var indexCmd = &cobra.Command{
	Use:   "index [repository-url]",
	Short: "Clone and index a GitHub repository",
	Long: `Clones the repository (or updates an existing clone), chunks its source
files and builds the local vector index. Indexing an already-indexed
repository is a no-op unless --rebuild is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexFresh, "fresh", false, "remove the local clone and re-clone")
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "discard the existing index and rebuild")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if assistant == nil {
		return errors.New("assistant service not configured")
	}

	opts := domain.IndexOptions{
		FreshClone:   indexFresh,
		RebuildIndex: indexRebuild,
	}
	report, err := assistant.IndexRepository(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	repo := report.Repository
	cmd.Printf("Indexed %s", repo.Name)
	if repo.Branch != "" {
		cmd.Printf(" (%s @ %s)", repo.Branch, repo.Commit)
	}
	cmd.Println()

	if report.CacheHit {
		cmd.Println("Index already up to date, nothing to embed.")
		return nil
	}

	cmd.Printf("  Files:  %d\n", report.Files)
	cmd.Printf("  Chunks: %d\n", report.Chunks)

	langs := make([]string, 0, len(report.Languages))
	for lang := range report.Languages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if report.Languages[langs[i]] != report.Languages[langs[j]] {
			return report.Languages[langs[i]] > report.Languages[langs[j]]
		}
		return langs[i] < langs[j]
	})
	for _, lang := range langs {
		cmd.Printf("    %-12s %d chunks\n", lang, report.Languages[lang])
	}

	return nil
}
