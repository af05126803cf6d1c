package plan

// Status represents the execution state of a plan, entry, or step.
type Status string

// Status constants
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// markerStatus maps the single-character status glyphs that agents put inside
// checklist brackets to a Status. Anything not in the table means todo.
var markerStatus = map[string]Status{
	"x": StatusCompleted,
	"X": StatusCompleted,
	"✓": StatusCompleted,
	"!": StatusFailed,
	"*": StatusInProgress,
}

// StatusForMarker returns the status encoded by a checklist glyph.
// Unknown and empty glyphs map to StatusTodo, so the lookup never fails.
func StatusForMarker(glyph string) Status {
	if s, ok := markerStatus[glyph]; ok {
		return s
	}
	return StatusTodo
}

// MarkerCompleted reports whether a checklist glyph marks a completed item.
func MarkerCompleted(glyph string) bool {
	return StatusForMarker(glyph) == StatusCompleted
}
