package plan

import "time"

// Plan represents a tracked execution plan extracted from agent output.
type Plan struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SourceFile string    `json:"sourceFile,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     Status    `json:"status"`
	Entries    []Entry   `json:"entries"`
}

// UpdateStatus recomputes the plan-level status from its entries, using the
// same aggregation policy as Entry.UpdateCompletion.
func (p *Plan) UpdateStatus() {
	if len(p.Entries) == 0 {
		return
	}

	var completed, failed, inProgress int
	for _, e := range p.Entries {
		switch e.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		case StatusInProgress:
			inProgress++
		}
	}

	switch {
	case completed == len(p.Entries):
		p.Status = StatusCompleted
	case failed > 0 && inProgress == 0:
		p.Status = StatusFailed
	case inProgress > 0 || completed > 0:
		p.Status = StatusInProgress
	default:
		p.Status = StatusTodo
	}
}

// NextPendingEntry finds the first entry that still needs work.
// A failed entry is reset to todo so a new run can retry it.
// Returns -1 if every entry is completed.
func (p *Plan) NextPendingEntry() int {
	for i := range p.Entries {
		switch p.Entries[i].Status {
		case StatusTodo, StatusInProgress:
			return i
		case StatusFailed:
			p.Entries[i].Status = StatusTodo
			p.Entries[i].Completed = false
			return i
		}
	}
	return -1
}

// AllEntriesCompleted returns true if every entry has status completed.
func (p *Plan) AllEntriesCompleted() bool {
	for i := range p.Entries {
		if p.Entries[i].Status != StatusCompleted {
			return false
		}
	}
	return true
}

// StepCounts returns the number of completed steps and the total step count
// across all entries.
func (p *Plan) StepCounts() (completed, total int) {
	for _, e := range p.Entries {
		for _, s := range e.Steps {
			total++
			if s.Completed {
				completed++
			}
		}
	}
	return completed, total
}
