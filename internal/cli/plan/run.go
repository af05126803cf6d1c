package plan

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pcastellanos/faro/internal/ai"
	"github.com/pcastellanos/faro/internal/config"
	"github.com/pcastellanos/faro/internal/display"
	"github.com/pcastellanos/faro/internal/executor"
	"github.com/pcastellanos/faro/internal/git"
	"github.com/pcastellanos/faro/internal/plan"
	"github.com/spf13/cobra"
)

var (
	runMaxAttempts int
	runAllowDirty  bool
)

func init() {
	runCmd.Flags().IntVar(&runMaxAttempts, "max-attempts", 0, "Override the per-entry retry budget")
	runCmd.Flags().BoolVar(&runAllowDirty, "allow-dirty", false, "Allow running with uncommitted changes (not recommended)")
}

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a plan (resumes from first pending entry)",
	Long:  `Execute entries from a previously created plan. Resumes from the first pending entry if interrupted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	planName := args[0]

	planDir, err := plan.FindPlanFolder(planName)
	if err != nil {
		return err
	}

	p, err := plan.LoadPlan(planDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	ai.AgentCommand = cfg.Agent.Command

	if !ai.IsAgentAvailable() {
		return fmt.Errorf("agent CLI %q not found in PATH", cfg.Agent.Command)
	}

	if !runAllowDirty {
		clean, err := git.IsClean("")
		if err == nil && !clean {
			files, _ := git.GetDirtyFiles("")
			return fmt.Errorf("workspace has uncommitted changes (%d files); commit them or pass --allow-dirty", len(files))
		}
	}

	maxAttempts := cfg.Run.MaxAttempts
	if runMaxAttempts > 0 {
		maxAttempts = runMaxAttempts
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := display.New(os.Stdout)
	d.Start()
	defer d.Stop()

	ex := executor.New(planDir, p).
		WithMaxAttempts(maxAttempts).
		WithEvents(display.NewConsoleEvents(d, maxAttempts))
	return ex.Run(ctx)
}
