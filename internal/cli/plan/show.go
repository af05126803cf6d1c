package plan

import (
	"fmt"

	"github.com/pcastellanos/faro/internal/markdown"
	"github.com/pcastellanos/faro/internal/plan"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a plan and its progress",
	Long:  `Print a plan's entries as a markdown checklist along with its current status.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planDir, err := plan.FindPlanFolder(args[0])
		if err != nil {
			return err
		}

		p, err := plan.LoadPlan(planDir)
		if err != nil {
			return err
		}

		completed, total := p.StepCounts()

		fmt.Printf("Plan: %s-%s\n", p.ID, p.Name)
		if p.SourceFile != "" {
			fmt.Printf("Source: %s\n", p.SourceFile)
		}
		fmt.Printf("Status: %s\n", p.Status)
		fmt.Printf("Steps: %d/%d completed\n", completed, total)
		fmt.Println()
		fmt.Print(markdown.FormatEntries(p.Entries))
		return nil
	},
}
