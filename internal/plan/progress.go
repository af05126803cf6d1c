package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const progressLogFileName = "progress.log"

// Event type constants for progress logging.
const (
	EventPlanParsed     = "plan_parsed"
	EventPlanStarted    = "plan_started"
	EventPlanCompleted  = "plan_completed"
	EventPlanCancelled  = "plan_cancelled"
	EventPlanFailed     = "plan_failed"
	EventEntryStarted   = "entry_started"
	EventEntryCompleted = "entry_completed"
	EventEntryFailed    = "entry_failed"
	EventStepCompleted  = "step_completed"
)

// ProgressEvent represents a single progress log entry.
type ProgressEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ProgressLogger writes progress events to a JSON Lines file.
type ProgressLogger struct {
	path string
}

// NewProgressLogger creates a new progress logger for the given plan directory.
func NewProgressLogger(planDir string) *ProgressLogger {
	return &ProgressLogger{
		path: filepath.Join(planDir, progressLogFileName),
	}
}

// Log appends a progress event to the log file.
func (p *ProgressLogger) Log(event string, data map[string]interface{}) error {
	entry := ProgressEvent{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(jsonBytes)
	return err
}

// PlanParsed logs a plan_parsed event with the extraction summary.
func (p *ProgressLogger) PlanParsed(planID string, entries, steps int) error {
	return p.Log(EventPlanParsed, map[string]interface{}{
		"plan_id": planID,
		"entries": entries,
		"steps":   steps,
	})
}

// PlanStarted logs a plan_started event.
func (p *ProgressLogger) PlanStarted(planID string) error {
	return p.Log(EventPlanStarted, map[string]interface{}{
		"plan_id": planID,
	})
}

// EntryStarted logs an entry_started event.
func (p *ProgressLogger) EntryStarted(index int, title string, attempt int) error {
	return p.Log(EventEntryStarted, map[string]interface{}{
		"entry":   index,
		"title":   title,
		"attempt": attempt,
	})
}

// EntryCompleted logs an entry_completed event.
func (p *ProgressLogger) EntryCompleted(index int, title string) error {
	return p.Log(EventEntryCompleted, map[string]interface{}{
		"entry": index,
		"title": title,
	})
}

// EntryFailed logs an entry_failed event.
func (p *ProgressLogger) EntryFailed(index int, title string, attempt int) error {
	return p.Log(EventEntryFailed, map[string]interface{}{
		"entry":   index,
		"title":   title,
		"attempt": attempt,
	})
}

// StepCompleted logs a step_completed event.
func (p *ProgressLogger) StepCompleted(entryIndex, stepIndex int, description string) error {
	return p.Log(EventStepCompleted, map[string]interface{}{
		"entry":       entryIndex,
		"step":        stepIndex,
		"description": description,
	})
}

// PlanCompleted logs a plan_completed event with summary statistics.
func (p *ProgressLogger) PlanCompleted(totalEntries, succeededEntries int, duration time.Duration) error {
	return p.Log(EventPlanCompleted, map[string]interface{}{
		"total_entries":     totalEntries,
		"succeeded_entries": succeededEntries,
		"duration_ms":       duration.Milliseconds(),
	})
}

// PlanCancelled logs a plan_cancelled event.
func (p *ProgressLogger) PlanCancelled(lastEntry int) error {
	return p.Log(EventPlanCancelled, map[string]interface{}{
		"last_entry": lastEntry,
	})
}

// PlanFailed logs a plan_failed event.
func (p *ProgressLogger) PlanFailed(entryIndex int, attempts int) error {
	return p.Log(EventPlanFailed, map[string]interface{}{
		"entry":    entryIndex,
		"attempts": attempts,
	})
}
