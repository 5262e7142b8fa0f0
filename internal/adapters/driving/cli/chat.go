package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bhumika152/GitAssistant-Ollama/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [repository]",
	Short: "Start an interactive chat about an indexed repository",
	Long: `Opens an interactive terminal chat session over an already-indexed
repository. Each question is answered grounded in retrieved source
chunks, with the sources listed under the reply.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if assistant == nil {
		return errors.New("assistant service not configured")
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat requires an interactive terminal; use 'gitassist ask' instead")
	}

	return tui.Run(cmd.Context(), assistant, args[0])
}
