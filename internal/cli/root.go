package cli

import (
	"github.com/pcastellanos/faro/internal/cli/plan"
	"github.com/pcastellanos/faro/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "faro",
	Short:   "Markdown plan runner for AI coding agents",
	Long:    `Faro turns AI-generated markdown plans into structured, resumable execution plans and runs them entry by entry through an agent CLI.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(plan.PlanCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
