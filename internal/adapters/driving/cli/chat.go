package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arroyo-labs/repoqa-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive question shell",
	Long: `Open the interactive shell: enter a repository URL, wait for it to be
indexed, then ask questions in a loop. Ctrl+R switches repositories.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("no OpenAI API key configured; set OPENAI_API_KEY or run `repoqa config set-key`")
	}

	if err := tui.Run(sessionService); err != nil {
		return fmt.Errorf("shell exited with error: %w", err)
	}
	return nil
}
