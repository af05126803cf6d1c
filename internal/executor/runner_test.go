package executor

import (
	"strings"
	"testing"

	"github.com/pcastellanos/faro/internal/plan"
)

func verifyPlan() *plan.Plan {
	return &plan.Plan{
		Entries: []plan.Entry{
			{
				Title: "Models:",
				Steps: []plan.Step{
					{Description: "Entity A"},
					{Description: "Entity B"},
				},
			},
			{Title: "Deploy"},
		},
	}
}

func TestVerifyAcceptsCheckedPlan(t *testing.T) {
	transcript := "done with the work\n\n" +
		"1. Models:\n" +
		"   - [x] Entity A\n" +
		"   - [x] Entity B\n" +
		"2. Deploy\n"

	r := NewClaudeRunner()
	if err := r.verify(verifyPlan(), 0, transcript); err != nil {
		t.Errorf("verify failed: %v", err)
	}
}

func TestVerifyRejectsUncheckedStep(t *testing.T) {
	transcript := "1. Models:\n" +
		"   - [x] Entity A\n" +
		"   - [ ] Entity B\n" +
		"2. Deploy\n"

	r := NewClaudeRunner()
	err := r.verify(verifyPlan(), 0, transcript)
	if err == nil {
		t.Fatal("expected error for unchecked step")
	}
	if !strings.Contains(err.Error(), "Entity B") {
		t.Errorf("error should name the step: %v", err)
	}
}

func TestVerifyRejectsFailedStep(t *testing.T) {
	transcript := "1. Models:\n" +
		"   - [!] Entity A\n" +
		"   - [x] Entity B\n" +
		"2. Deploy\n"

	r := NewClaudeRunner()
	if err := r.verify(verifyPlan(), 0, transcript); err == nil {
		t.Error("expected error for failed step")
	}
}

func TestVerifyToleratesMissingEcho(t *testing.T) {
	// A transcript without a parseable plan is accepted: exit status is
	// then the only success signal
	r := NewClaudeRunner()
	if err := r.verify(verifyPlan(), 0, "no plan in this output"); err != nil {
		t.Errorf("verify should tolerate missing echo: %v", err)
	}
}

func TestVerifyToleratesMismatchedShape(t *testing.T) {
	transcript := "1. Something else entirely\n   - [ ] whatever\n"

	r := NewClaudeRunner()
	if err := r.verify(verifyPlan(), 0, transcript); err != nil {
		t.Errorf("verify should tolerate shape mismatch: %v", err)
	}
}

func TestBuildPromptContainsPlanAndSteps(t *testing.T) {
	p := verifyPlan()
	r := NewClaudeRunner()

	prompt := r.buildPrompt(p, 0, 2, 10)

	for _, want := range []string{
		"1. Models:",
		"Entity A",
		"**Phase 1**: Models:",
		"**Attempt**: 2 of 10",
		"Previous attempts",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptFirstAttemptHasNoRetryNote(t *testing.T) {
	r := NewClaudeRunner()
	prompt := r.buildPrompt(verifyPlan(), 1, 1, 10)
	if strings.Contains(prompt, "Previous attempts") {
		t.Error("first attempt should not mention retries")
	}
}
