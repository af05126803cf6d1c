// Package executor runs a plan entry by entry through the agent CLI,
// keeping plan.json and the progress log up to date as statuses change.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/pcastellanos/faro/internal/plan"
)

// DefaultMaxAttempts is the default number of times to retry a failed entry.
const DefaultMaxAttempts = 10

// Runner executes a single plan entry. An error means the entry did not
// finish and may be retried.
type Runner interface {
	Run(ctx context.Context, p *plan.Plan, entryIdx, attempt, maxAttempts int) error
}

// Executor orchestrates the execution of plan entries.
type Executor struct {
	planDir     string
	plan        *plan.Plan
	logger      *plan.ProgressLogger
	runner      Runner
	lock        *plan.PlanLock
	events      Events
	maxAttempts int
	startTime   time.Time
}

// New creates a new Executor for the given plan directory and plan.
func New(planDir string, p *plan.Plan) *Executor {
	return &Executor{
		planDir:     planDir,
		plan:        p,
		logger:      plan.NewProgressLogger(planDir),
		runner:      NewClaudeRunner(),
		lock:        plan.NewPlanLock(planDir),
		events:      nopEvents{},
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithRunner sets a custom runner (useful for testing).
func (e *Executor) WithRunner(r Runner) *Executor {
	e.runner = r
	return e
}

// WithEvents sets the event sink.
func (e *Executor) WithEvents(ev Events) *Executor {
	e.events = ev
	return e
}

// WithMaxAttempts overrides the retry budget per entry.
func (e *Executor) WithMaxAttempts(n int) *Executor {
	if n > 0 {
		e.maxAttempts = n
	}
	return e
}

// Run executes all pending entries in the plan.
// It acquires a lock, processes entries sequentially, and handles retries.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.lock.Acquire(); err != nil {
		return err
	}
	defer e.lock.Release()

	if e.plan.AllEntriesCompleted() {
		return nil
	}

	firstIdx := e.plan.NextPendingEntry()
	if firstIdx == -1 {
		return nil
	}

	if e.plan.Status == plan.StatusTodo || e.plan.Status == "" {
		e.plan.Status = plan.StatusInProgress
		if err := plan.SavePlan(e.planDir, e.plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
	}

	e.startTime = time.Now()
	if err := e.logger.PlanStarted(e.plan.ID); err != nil {
		return fmt.Errorf("failed to log plan started: %w", err)
	}

	for i := firstIdx; i < len(e.plan.Entries); i++ {
		// Re-check: earlier runs may have left completed entries behind
		if e.plan.Entries[i].Status == plan.StatusCompleted {
			continue
		}

		if err := e.executeEntry(ctx, i); err != nil {
			if ctx.Err() != nil {
				// Context cancelled - reset entry so a later run retries it
				e.plan.Entries[i].Status = plan.StatusTodo
				e.plan.Entries[i].Completed = false
				if saveErr := plan.SavePlan(e.planDir, e.plan); saveErr != nil {
					fmt.Printf("Warning: failed to save plan after cancel: %v\n", saveErr)
				}
				e.logger.PlanCancelled(i)
				return nil
			}

			e.plan.Status = plan.StatusFailed
			if saveErr := plan.SavePlan(e.planDir, e.plan); saveErr != nil {
				fmt.Printf("Warning: failed to save plan after failure: %v\n", saveErr)
			}
			e.logger.PlanFailed(i, e.maxAttempts)
			e.events.OnPlanFailed(&e.plan.Entries[i], err.Error())
			return fmt.Errorf("entry %d (%s) failed: %w", i+1, e.plan.Entries[i].Title, err)
		}
	}

	e.plan.Status = plan.StatusCompleted
	if err := plan.SavePlan(e.planDir, e.plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	duration := time.Since(e.startTime)
	e.logger.PlanCompleted(len(e.plan.Entries), e.countCompleted(), duration)
	e.events.OnPlanComplete(e.countCompleted(), len(e.plan.Entries), duration)
	return nil
}

// executeEntry runs a single entry with retry logic.
func (e *Executor) executeEntry(ctx context.Context, idx int) error {
	entry := &e.plan.Entries[idx]

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		entry.Status = plan.StatusInProgress
		entry.Completed = false
		if err := plan.SavePlan(e.planDir, e.plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}

		e.events.OnEntryStart(idx+1, len(e.plan.Entries), entry, attempt)
		if err := e.logger.EntryStarted(idx, entry.Title, attempt); err != nil {
			return fmt.Errorf("failed to log entry started: %w", err)
		}

		err := e.runner.Run(ctx, e.plan, idx, attempt, e.maxAttempts)
		if err == nil {
			e.markEntryCompleted(idx)
			if saveErr := plan.SavePlan(e.planDir, e.plan); saveErr != nil {
				return fmt.Errorf("failed to save plan: %w", saveErr)
			}
			if logErr := e.logger.EntryCompleted(idx, entry.Title); logErr != nil {
				return fmt.Errorf("failed to log entry completed: %w", logErr)
			}
			e.events.OnEntryComplete(entry)
			return nil
		}

		if logErr := e.logger.EntryFailed(idx, entry.Title, attempt); logErr != nil {
			fmt.Printf("Warning: failed to log entry failed: %v\n", logErr)
		}
		e.events.OnEntryFailed(entry, attempt, err)

		if attempt >= e.maxAttempts {
			entry.Status = plan.StatusFailed
			entry.Completed = false
			if saveErr := plan.SavePlan(e.planDir, e.plan); saveErr != nil {
				fmt.Printf("Warning: failed to save plan: %v\n", saveErr)
			}
			return fmt.Errorf("max attempts reached")
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("max attempts reached")
}

// markEntryCompleted records a finished entry. The runner has already
// verified against the agent's echoed plan that every step was done.
func (e *Executor) markEntryCompleted(idx int) {
	entry := &e.plan.Entries[idx]
	for s := range entry.Steps {
		if !entry.Steps[s].Completed {
			entry.Steps[s].Status = plan.StatusCompleted
			entry.Steps[s].Completed = true
			e.logger.StepCompleted(idx, s, entry.Steps[s].Description)
		}
	}
	entry.UpdateCompletion()
	entry.Status = plan.StatusCompleted
	entry.Completed = true
	e.plan.UpdateStatus()
}

// countCompleted returns the number of completed entries.
func (e *Executor) countCompleted() int {
	count := 0
	for i := range e.plan.Entries {
		if e.plan.Entries[i].Status == plan.StatusCompleted {
			count++
		}
	}
	return count
}
