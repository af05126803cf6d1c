package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pcastellanos/faro/internal/ai"
	"github.com/pcastellanos/faro/internal/markdown"
	"github.com/pcastellanos/faro/internal/plan"
)

// ClaudeRunner executes plan entries via the agent CLI.
type ClaudeRunner struct {
	// Output receives the agent's streamed output. Defaults to os.Stdout.
	Output io.Writer
}

// NewClaudeRunner creates a new ClaudeRunner.
func NewClaudeRunner() *ClaudeRunner {
	return &ClaudeRunner{Output: os.Stdout}
}

// Run executes a single plan entry via the agent CLI. The agent is asked to
// echo the updated plan checklist at the end of its output; when that echo
// parses, it is used to verify that every step of the entry actually got
// checked off.
func (r *ClaudeRunner) Run(ctx context.Context, p *plan.Plan, entryIdx, attempt, maxAttempts int) error {
	prompt := r.buildPrompt(p, entryIdx, attempt, maxAttempts)

	cmd := ai.CommandContext(ctx, ai.AgentCommand,
		"-p", prompt,
		"--dangerously-skip-permissions",
	)

	var transcript bytes.Buffer
	out := r.Output
	if out == nil {
		out = os.Stdout
	}
	cmd.Stdout = io.MultiWriter(out, &transcript)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("agent exited with error: %w", err)
	}

	return r.verify(p, entryIdx, transcript.String())
}

// verify checks the plan checklist the agent echoed back. A transcript
// without a parseable plan is accepted as-is: exit status 0 is then the only
// success signal, matching the parser's best-effort contract.
func (r *ClaudeRunner) verify(p *plan.Plan, entryIdx int, transcript string) error {
	echoed := markdown.ParsePlan(transcript)
	if len(echoed) != len(p.Entries) {
		return nil
	}

	entry := echoed[entryIdx]
	if len(entry.Steps) != len(p.Entries[entryIdx].Steps) {
		return nil
	}
	for _, s := range entry.Steps {
		if s.Status == plan.StatusFailed {
			return fmt.Errorf("agent reported step failed: %s", s.Description)
		}
		if !s.Completed {
			return fmt.Errorf("agent left step unchecked: %s", s.Description)
		}
	}
	return nil
}

// buildPrompt constructs the prompt for the agent CLI.
func (r *ClaudeRunner) buildPrompt(p *plan.Plan, entryIdx, attempt, maxAttempts int) string {
	entry := &p.Entries[entryIdx]

	var sb strings.Builder
	sb.WriteString("You are executing one phase of an automated plan.\n\n")

	sb.WriteString("## Full Plan\n")
	sb.WriteString(markdown.FormatEntries(p.Entries))
	sb.WriteString("\n")

	sb.WriteString("## Your Phase\n")
	sb.WriteString(fmt.Sprintf("**Phase %d**: %s\n", entryIdx+1, entry.Title))
	sb.WriteString(fmt.Sprintf("**Attempt**: %d of %d\n\n", attempt, maxAttempts))

	if attempt > 1 {
		sb.WriteString("**Note**: Previous attempts at this phase failed. ")
		sb.WriteString("Consider alternative approaches or investigate what went wrong. ")
		sb.WriteString("If the previous attempt left uncommitted changes, commit ALL changes ")
		sb.WriteString("(including .faro/ metadata) and leave the workspace clean.\n\n")
	}

	if len(entry.Steps) > 0 {
		sb.WriteString("## Steps\n")
		sb.WriteString("Complete every step of this phase:\n")
		for i, step := range entry.Steps {
			mark := " "
			if step.Completed {
				mark = "x"
			}
			sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, mark, step.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Instructions\n")
	sb.WriteString("1. Implement this phase only; do not start later phases\n")
	sb.WriteString("2. Commit ALL changes with a descriptive message\n")
	sb.WriteString("3. Verify the workspace is clean with `git status` before exiting\n")
	sb.WriteString("4. Finish by printing the full plan again as a numbered markdown checklist, ")
	sb.WriteString("marking every step you completed with [x] and any step you could not finish with [!]\n")

	return sb.String()
}
