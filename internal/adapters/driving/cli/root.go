// Package cli implements the gitassist command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driving"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	assistant driving.Assistant
	retriever driving.Retriever

	// initServices builds the service stack once flags are parsed.
	// Injected from main; tests set the services directly instead.
	initServices func(dataDir string) error

	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "gitassist",
	Short: "Ask questions about any GitHub repository",
	Long: `gitassist indexes a GitHub repository into a local vector database
and answers questions about its code, grounded in retrieved source chunks.

Typical session:
  gitassist index https://github.com/owner/repo
  gitassist ask repo "How does authentication work?"
  gitassist chat repo`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if assistant == nil && initServices != nil && needsServices(cmd) {
			return initServices(dataDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.gitassist)")
}

// needsServices reports whether a command touches the service stack.
// Keeps `gitassist version` working without Ollama running.
func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return true
}

// SetServices injects the service implementations the commands run
// against.
func SetServices(a driving.Assistant, r driving.Retriever) {
	assistant = a
	retriever = r
}

// SetInitializer registers the hook that builds the service stack
// after flag parsing. The hook is expected to call SetServices.
func SetInitializer(fn func(dataDir string) error) {
	initServices = fn
}

// Execute parses arguments and runs the selected command.
func Execute() error {
	return rootCmd.Execute()
}
