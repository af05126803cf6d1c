package plan

import (
	"fmt"
	"os"

	"github.com/pcastellanos/faro/internal/markdown"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print a markdown plan in canonical form",
	Long:  `Extract the plan from a markdown file and print it back as a canonical numbered checklist.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		entries := markdown.ParsePlan(string(content))
		if len(entries) == 0 {
			return fmt.Errorf("no plan found in %s", args[0])
		}

		fmt.Print(markdown.FormatEntries(entries))
		return nil
	},
}
