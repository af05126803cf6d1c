package plan

// Step represents a single checklist item under a plan entry.
type Step struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Status      Status `json:"status"`
}

// Entry represents one numbered section of a plan and its checklist steps.
// Steps are stored flat in document order; nested checklists collapse into
// the same list during extraction.
type Entry struct {
	Title     string `json:"title"`
	Steps     []Step `json:"steps"`
	Completed bool   `json:"completed"`
	Status    Status `json:"status"`
}

// UpdateCompletion recomputes the entry's own status from its steps.
//
// Policy: an entry with steps is completed iff every step is completed,
// failed iff at least one step failed and none is in progress, in progress
// if any step is in progress or some (but not all) are completed, and todo
// otherwise. Entries without steps keep the status parsed from their header.
func (e *Entry) UpdateCompletion() {
	if len(e.Steps) == 0 {
		return
	}

	var completed, failed, inProgress int
	for _, s := range e.Steps {
		switch s.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		case StatusInProgress:
			inProgress++
		}
	}

	switch {
	case completed == len(e.Steps):
		e.Status = StatusCompleted
	case failed > 0 && inProgress == 0:
		e.Status = StatusFailed
	case inProgress > 0 || completed > 0:
		e.Status = StatusInProgress
	default:
		e.Status = StatusTodo
	}
	e.Completed = e.Status == StatusCompleted
}
