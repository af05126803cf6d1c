package display

import (
	"time"

	"github.com/pcastellanos/faro/internal/plan"
)

// ConsoleEvents feeds execution callbacks into a status-line Display.
type ConsoleEvents struct {
	d           *Display
	maxAttempts int
}

// NewConsoleEvents creates an event sink that drives the given display.
func NewConsoleEvents(d *Display, maxAttempts int) *ConsoleEvents {
	return &ConsoleEvents{d: d, maxAttempts: maxAttempts}
}

func (c *ConsoleEvents) OnEntryStart(entryNum, total int, entry *plan.Entry, attempt int) {
	c.d.UpdateEntry(entryNum, total, entry.Title)
	c.d.UpdateAttempt(attempt, c.maxAttempts)
	c.d.UpdateStatus(StatusRunning)
}

func (c *ConsoleEvents) OnEntryComplete(entry *plan.Entry) {
	c.d.PrintAbove("✓ %s", entry.Title)
}

func (c *ConsoleEvents) OnEntryFailed(entry *plan.Entry, attempt int, err error) {
	c.d.PrintAbove("✗ %s (attempt %d): %v", entry.Title, attempt, err)
}

func (c *ConsoleEvents) OnPlanComplete(succeeded, total int, duration time.Duration) {
	c.d.UpdateStatus(StatusCompleted)
	c.d.PrintAbove("Plan completed: %d/%d entries in %s", succeeded, total, formatDuration(duration))
}

func (c *ConsoleEvents) OnPlanFailed(entry *plan.Entry, reason string) {
	c.d.UpdateStatus(StatusFailed)
	c.d.PrintAbove("Plan failed at %q: %s", entry.Title, reason)
}
