package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [repo-url] [file-path]",
	Short: "Show the structure of one repository file",
	Long: `Fetch a single file and list its functions and classes, marking the
ones that carry documentation.

Example:
  repoqa outline github.com/octocat/Hello-World src/main.py`,
	Args: cobra.ExactArgs(2),
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	if outlineService == nil {
		return errors.New("outline service not configured")
	}

	ctx := context.Background()
	file, report, err := outlineService.Outline(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to outline file: %w", err)
	}

	cmd.Printf("%s\n\n", file.Path)

	if len(report.Classes) == 0 && len(report.Functions) == 0 {
		cmd.Println("No functions or classes found.")
		return nil
	}

	if len(report.Classes) > 0 {
		cmd.Println("Classes:")
		for _, item := range report.Classes {
			cmd.Printf("  %4d  %s%s\n", item.Line, item.Name, docMarker(item.HasDocComment))
		}
	}
	if len(report.Functions) > 0 {
		cmd.Println("Functions:")
		for _, item := range report.Functions {
			cmd.Printf("  %4d  %s%s\n", item.Line, item.Name, docMarker(item.HasDocComment))
		}
	}
	return nil
}

func docMarker(documented bool) string {
	if documented {
		return ""
	}
	return "  (undocumented)"
}
