package executor

import (
	"time"

	"github.com/pcastellanos/faro/internal/plan"
)

// Events receives callbacks during plan execution.
// Implement this interface to surface progress in a console or TUI.
type Events interface {
	// OnEntryStart is called when an entry begins execution
	OnEntryStart(entryNum, total int, entry *plan.Entry, attempt int)

	// OnEntryComplete is called when an entry succeeds
	OnEntryComplete(entry *plan.Entry)

	// OnEntryFailed is called when an entry attempt fails
	OnEntryFailed(entry *plan.Entry, attempt int, err error)

	// OnPlanComplete is called when all entries finish successfully
	OnPlanComplete(succeeded, total int, duration time.Duration)

	// OnPlanFailed is called when an entry exhausts retries
	OnPlanFailed(entry *plan.Entry, reason string)
}

// nopEvents is used when no event sink is configured.
type nopEvents struct{}

func (nopEvents) OnEntryStart(int, int, *plan.Entry, int)         {}
func (nopEvents) OnEntryComplete(*plan.Entry)                     {}
func (nopEvents) OnEntryFailed(*plan.Entry, int, error)           {}
func (nopEvents) OnPlanComplete(int, int, time.Duration)          {}
func (nopEvents) OnPlanFailed(*plan.Entry, string)                {}
