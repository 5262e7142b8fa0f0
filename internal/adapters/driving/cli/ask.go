package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [repository] [question...]",
	Short: "Ask a question about an indexed repository",
	Long: `Answers a question about an already-indexed repository, grounded in
the most relevant source chunks. Index the repository first with
'gitassist index'.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "list the source chunks the answer is grounded on")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistant == nil {
		return errors.New("assistant service not configured")
	}

	repo := args[0]
	question := strings.Join(args[1:], " ")

	if err := assistant.Attach(cmd.Context(), repo); err != nil {
		return fmt.Errorf("attaching %s: %w", repo, err)
	}

	answer, err := assistant.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	cmd.Println(answer.Text)

	if askShowSources && len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s (%.3f)\n", i+1, src.Document.FilePath, src.Similarity)
		}
	}

	return nil
}
