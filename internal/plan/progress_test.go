package plan

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readEvents(t *testing.T, dir string) []ProgressEvent {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, progressLogFileName))
	if err != nil {
		t.Fatalf("failed to open progress log: %v", err)
	}
	defer f.Close()

	var events []ProgressEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev ProgressEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("invalid JSON line: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func TestProgressLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	logger := NewProgressLogger(dir)

	if err := logger.PlanStarted("plan-1"); err != nil {
		t.Fatalf("PlanStarted failed: %v", err)
	}
	if err := logger.EntryStarted(0, "Setup", 1); err != nil {
		t.Fatalf("EntryStarted failed: %v", err)
	}
	if err := logger.StepCompleted(0, 1, "Add models"); err != nil {
		t.Fatalf("StepCompleted failed: %v", err)
	}
	if err := logger.PlanCompleted(3, 3, 2*time.Second); err != nil {
		t.Fatalf("PlanCompleted failed: %v", err)
	}

	events := readEvents(t, dir)
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	wantOrder := []string{EventPlanStarted, EventEntryStarted, EventStepCompleted, EventPlanCompleted}
	for i, want := range wantOrder {
		if events[i].Event != want {
			t.Errorf("event %d = %q, want %q", i, events[i].Event, want)
		}
	}

	if events[1].Data["title"] != "Setup" {
		t.Errorf("entry_started title = %v, want Setup", events[1].Data["title"])
	}
	if events[3].Data["duration_ms"].(float64) != 2000 {
		t.Errorf("duration_ms = %v, want 2000", events[3].Data["duration_ms"])
	}
}

func TestProgressLoggerParsedEvent(t *testing.T) {
	dir := t.TempDir()
	logger := NewProgressLogger(dir)

	if err := logger.PlanParsed("plan-1", 2, 5); err != nil {
		t.Fatalf("PlanParsed failed: %v", err)
	}

	events := readEvents(t, dir)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Event != EventPlanParsed {
		t.Errorf("event = %q, want %q", events[0].Event, EventPlanParsed)
	}
	if events[0].Data["entries"].(float64) != 2 || events[0].Data["steps"].(float64) != 5 {
		t.Errorf("unexpected summary data: %v", events[0].Data)
	}
}
