package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pcastellanos/faro/internal/markdown"
	"github.com/pcastellanos/faro/internal/plan"
)

// claudeResponse represents the JSON structure returned by Claude Code CLI
// when using --output-format json.
type claudeResponse struct {
	Type    string `json:"type"`
	Result  string `json:"result"`
	IsError bool   `json:"is_error"`
}

// CommandContext is the function used to create exec.Cmd instances.
// It can be replaced in tests to mock command execution.
var CommandContext = exec.CommandContext

// AgentCommand is the CLI binary used to reach the agent. Overridable
// through config.
var AgentCommand = "claude"

// DefaultPlanTimeout is the maximum time allowed for plan generation.
const DefaultPlanTimeout = 5 * time.Minute

// IsAgentAvailable checks if the agent command exists in PATH.
func IsAgentAvailable() bool {
	_, err := exec.LookPath(AgentCommand)
	return err == nil
}

// PlanResult holds the markdown plan an agent produced together with the
// entries extracted from it.
type PlanResult struct {
	Markdown string
	Entries  []plan.Entry
}

// GeneratePlan asks the agent for a markdown execution plan for the given
// objective and extracts the structured entries from it. The context controls
// cancellation and timeout. If the context has no deadline,
// DefaultPlanTimeout is applied.
func GeneratePlan(ctx context.Context, objective string) (*PlanResult, error) {
	if !IsAgentAvailable() {
		return nil, fmt.Errorf("%s CLI not found in PATH", AgentCommand)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPlanTimeout)
		defer cancel()
	}

	prompt := buildPlanPrompt(objective)

	// --dangerously-skip-permissions is required for non-interactive use. This is safe here
	// because we only use the -p flag with a controlled prompt (no file access or tool use).
	cmd := CommandContext(ctx, AgentCommand, "-p", prompt, "--output-format", "json", "--dangerously-skip-permissions")
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.New("plan generation timed out")
		}
		if ctx.Err() == context.Canceled {
			return nil, errors.New("plan generation was cancelled")
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("agent command failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("failed to execute agent command: %w", err)
	}

	text, err := extractMarkdown(output)
	if err != nil {
		return nil, fmt.Errorf("failed to extract plan from agent response: %w", err)
	}

	entries := markdown.ParsePlan(text)
	if len(entries) == 0 {
		return nil, errors.New("agent response contained no plan entries")
	}

	return &PlanResult{Markdown: text, Entries: entries}, nil
}

// buildPlanPrompt creates the prompt for plan generation.
func buildPlanPrompt(objective string) string {
	return fmt.Sprintf(`You are a technical project planner. Produce a step-by-step execution plan for the objective below.

OBJECTIVE:
%s

OUTPUT REQUIREMENTS:
Return the plan as markdown in exactly this shape, nothing else:

1. First phase title
   - [ ] first step
   - [ ] second step
2. Second phase title
   - [ ] first step

PLAN GUIDELINES:
- Use numbered items for phases and checklist items for the steps inside them
- Every step starts unchecked ("[ ]")
- Phases must be completable in order (later phases can depend on earlier ones)
- Keep step descriptions short and verifiable`, objective)
}

// extractMarkdown pulls the plan text out of a potentially wrapped and
// fenced agent response.
func extractMarkdown(data []byte) (string, error) {
	// Try to parse as Claude Code CLI response wrapper first
	var claudeResp claudeResponse
	if err := json.Unmarshal(data, &claudeResp); err == nil && claudeResp.Type == "result" {
		if claudeResp.IsError {
			return "", errors.New("agent returned an error: " + claudeResp.Result)
		}
		data = []byte(claudeResp.Result)
	}

	text := stripMarkdownCodeBlocks(string(data))
	if text == "" {
		return "", errors.New("empty agent response")
	}
	return text, nil
}

// stripMarkdownCodeBlocks removes code fence markers that agents often wrap
// the plan in.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(s, "```markdown"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```md"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
