package plan

import (
	"github.com/spf13/cobra"
)

// PlanCmd is the parent command for plan-related subcommands.
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage and execute plans",
	Long:  `Commands for extracting, inspecting, and executing plans from markdown documents.`,
}

func init() {
	PlanCmd.AddCommand(createCmd)
	PlanCmd.AddCommand(showCmd)
	PlanCmd.AddCommand(runCmd)
	PlanCmd.AddCommand(fmtCmd)
}
