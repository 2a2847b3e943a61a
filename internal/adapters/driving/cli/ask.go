package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [repo-url] [question...]",
	Short: "Ask a one-shot question about a repository",
	Long: `Fetch and index the repository, answer a single question and exit.

Example:
  repoqa ask https://github.com/octocat/Hello-World "what does this project do?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("no OpenAI API key configured; set OPENAI_API_KEY or run `repoqa config set-key`")
	}

	repoURL := args[0]
	question := strings.Join(args[1:], " ")
	ctx := context.Background()

	repo, count, err := sessionService.Load(ctx, repoURL)
	if err != nil {
		return fmt.Errorf("failed to load repository: %w", err)
	}
	cmd.Printf("Indexed %s (%d chunks)\n\n", repo, count)

	result, err := sessionService.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	cmd.Println(result.Answer)

	if len(result.Evidence) > 0 {
		cmd.Println("\nSources:")
		for i, chunk := range result.Evidence {
			cmd.Printf("  %d. %s\n", i+1, chunk.FilePath)
		}
	}
	return nil
}
