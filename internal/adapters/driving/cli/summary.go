package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [repository]",
	Short: "Summarize an indexed repository",
	Long: `Generates a short overview of an already-indexed repository: what it
does, its main technologies and how it is structured.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if assistant == nil {
		return errors.New("assistant service not configured")
	}

	repo := args[0]

	if err := assistant.Attach(cmd.Context(), repo); err != nil {
		return fmt.Errorf("attaching %s: %w", repo, err)
	}

	text, err := assistant.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("summarizing failed: %w", err)
	}

	cmd.Println(text)
	return nil
}
