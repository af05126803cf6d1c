package markdown

import (
	"fmt"
	"strings"

	"github.com/pcastellanos/faro/internal/plan"
)

// FormatEntries renders entries back into the canonical detailed plan shape:
//
//	1. Title
//	   - [x] completed step
//	   - [ ] pending step
//
// Only the completed flag round-trips; in-progress and failed step markers
// degrade to unchecked boxes. That asymmetry is part of the contract, not a
// bug.
func FormatEntries(entries []plan.Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, entry.Title)
		for _, step := range entry.Steps {
			mark := " "
			if step.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "   - [%s] %s\n", mark, step.Description)
		}
	}
	return b.String()
}
