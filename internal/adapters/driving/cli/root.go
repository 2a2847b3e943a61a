// Package cli contains the cobra command surface of repoqa.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/config/file"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driving"
	"github.com/arroyo-labs/repoqa-cli/internal/logger"
)

// version is the build version, overridable at link time.
var version = "0.1.0"

// Services configured by main before Execute runs.
var (
	sessionService driving.SessionService
	outlineService driving.OutlineService
	configStore    *file.ConfigStore
)

// Services bundles everything the commands need.
type Services struct {
	Session driving.SessionService
	Outline driving.OutlineService
	Config  *file.ConfigStore
}

// SetServices wires the services into the command tree.
func SetServices(s Services) {
	sessionService = s.Session
	outlineService = s.Outline
	configStore = s.Config
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "repoqa",
	Short: "Ask questions about public GitHub repositories",
	Long: `repoqa fetches a public GitHub repository, indexes its source files
and answers questions about the code using retrieval-augmented generation.

Point it at a repository once; ask as many questions as you like.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
