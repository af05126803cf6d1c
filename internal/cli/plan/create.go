package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pcastellanos/faro/internal/ai"
	"github.com/pcastellanos/faro/internal/config"
	"github.com/pcastellanos/faro/internal/markdown"
	"github.com/pcastellanos/faro/internal/plan"
	"github.com/pcastellanos/faro/internal/util"
	"github.com/spf13/cobra"
)

var (
	createName      string
	createObjective string
	createDryRun    bool
)

// CreateOptions holds the options for the create command.
type CreateOptions struct {
	FilePath  string
	Objective string
	Name      string
	DryRun    bool
}

var createCmd = &cobra.Command{
	Use:   "create [file]",
	Short: "Create a plan from a markdown document or an objective",
	Long: `Create a plan by extracting the numbered checklist from a markdown file,
or by asking the agent to draft one from an objective (--objective).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := CreateOptions{
			Name:      createName,
			Objective: createObjective,
			DryRun:    createDryRun,
		}
		if len(args) == 1 {
			opts.FilePath = args[0]
		}

		if err := validateInputs(opts); err != nil {
			return err
		}

		var entries []plan.Entry
		var generated string

		if opts.FilePath != "" {
			content, err := os.ReadFile(opts.FilePath)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			fmt.Printf("Creating plan from: %s\n", opts.FilePath)
			entries = markdown.ParsePlan(string(content))
			if len(entries) == 0 {
				return fmt.Errorf("no plan found in %s: expected a numbered markdown list", opts.FilePath)
			}
		} else {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			ai.AgentCommand = cfg.Agent.Command

			if !ai.IsAgentAvailable() {
				return fmt.Errorf("agent CLI %q not found in PATH", cfg.Agent.Command)
			}

			fmt.Println("Asking the agent to draft a plan...")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AgentTimeout())
			defer cancel()

			result, err := ai.GeneratePlan(ctx, opts.Objective)
			if err != nil {
				return fmt.Errorf("failed to generate plan: %w", err)
			}
			entries = result.Entries
			generated = result.Markdown
		}

		p, err := assemblePlan(opts, entries)
		if err != nil {
			return err
		}

		if opts.DryRun {
			printDryRunPreview(p)
			return nil
		}

		if err := plan.CreatePlanFolder(p); err != nil {
			return err
		}

		folder := filepath.Join(plan.PlansPath(), fmt.Sprintf("%s-%s", p.ID, p.Name))

		// Keep the agent's original markdown next to the structured plan
		if generated != "" {
			if err := os.WriteFile(filepath.Join(folder, "plan.md"), []byte(generated), 0644); err != nil {
				return fmt.Errorf("failed to write plan.md: %w", err)
			}
		}

		_, totalSteps := p.StepCounts()
		if err := plan.NewProgressLogger(folder).PlanParsed(p.ID, len(p.Entries), totalSteps); err != nil {
			return fmt.Errorf("failed to log plan_parsed: %w", err)
		}

		printSuccess(p)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Name for the plan")
	createCmd.Flags().StringVar(&createObjective, "objective", "", "Objective to generate a plan from (instead of a file)")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Preview the plan without saving it")
}

// validateInputs checks that all inputs are valid before proceeding.
func validateInputs(opts CreateOptions) error {
	if opts.FilePath == "" && opts.Objective == "" {
		return fmt.Errorf("provide a markdown file or --objective")
	}
	if opts.FilePath != "" && opts.Objective != "" {
		return fmt.Errorf("provide either a file or --objective, not both")
	}

	if opts.FilePath == "" {
		return nil
	}

	info, err := os.Stat(opts.FilePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", opts.FilePath)
	}
	if err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}

	if !strings.HasSuffix(strings.ToLower(opts.FilePath), ".md") {
		return fmt.Errorf("file must be markdown (.md): %s", opts.FilePath)
	}

	if info.Size() == 0 {
		return fmt.Errorf("document is empty: %s", opts.FilePath)
	}

	return nil
}

// determinePlanBaseName selects the base plan name: --name flag, then the
// source filename, then the objective text. Normalized to kebab-case.
func determinePlanBaseName(opts CreateOptions) string {
	if opts.Name != "" {
		return util.ToKebabCase(opts.Name)
	}

	if opts.FilePath != "" {
		base := filepath.Base(opts.FilePath)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		return util.ToKebabCase(name)
	}

	return truncateName(util.ToKebabCase(opts.Objective), 40)
}

// truncateName cuts a kebab-case name at a hyphen boundary near max.
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	cut := name[:max]
	if i := strings.LastIndex(cut, "-"); i > 0 {
		cut = cut[:i]
	}
	return cut
}

// assemblePlan builds the Plan value from parsed entries.
func assemblePlan(opts CreateOptions, entries []plan.Entry) (*plan.Plan, error) {
	id, err := util.GenerateShortID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}

	baseName := determinePlanBaseName(opts)
	if baseName == "" {
		baseName = "plan"
	}

	name := baseName
	if !opts.DryRun {
		name, err = plan.ResolvePlanName(baseName)
		if err != nil {
			return nil, err
		}
	}

	return &plan.Plan{
		ID:         id,
		Name:       name,
		SourceFile: opts.FilePath,
		CreatedAt:  time.Now(),
		Status:     plan.StatusTodo,
		Entries:    entries,
	}, nil
}

// printDryRunPreview displays the plan preview without saving.
func printDryRunPreview(p *plan.Plan) {
	fmt.Println()
	fmt.Println("Plan preview (dry run - nothing saved):")
	fmt.Println()
	fmt.Printf("  Name: %s\n", p.Name)
	if p.SourceFile != "" {
		fmt.Printf("  Source: %s\n", p.SourceFile)
	}
	fmt.Printf("  Entries: %d\n", len(p.Entries))
	fmt.Println()
	fmt.Print(markdown.FormatEntries(p.Entries))
	fmt.Println()
	fmt.Println("To create this plan, run without --dry-run.")
}

// printSuccess displays the success message after plan creation.
func printSuccess(p *plan.Plan) {
	completed, total := p.StepCounts()

	fmt.Println()
	fmt.Printf("Plan created: %s-%s\n", p.ID, p.Name)
	fmt.Println()
	fmt.Printf("  %d entries, %d steps (%d already completed)\n", len(p.Entries), total, completed)
	fmt.Println()

	for i, e := range p.Entries {
		fmt.Printf("  %d. %s\n", i+1, e.Title)
	}

	fmt.Println()
	fmt.Printf("Run `faro plan run %s` to start execution.\n", p.Name)
}
