// Package markdown extracts structured execution plans from the markdown
// that AI coding agents emit. The input is model-generated, so every part of
// the extraction is best-effort: malformed sections are skipped, unknown
// status glyphs degrade to todo, and a failed parse yields an empty plan
// instead of an error.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pcastellanos/faro/internal/plan"
)

// maxListDepth caps traversal depth so adversarial nesting cannot exhaust
// the stack. Real agent output stays in single digits.
const maxListDepth = 64

// ParsePlan extracts an ordered sequence of plan entries from markdown text.
// It never fails: input that cannot be parsed produces an empty result and a
// diagnostic log line.
func ParsePlan(source string) []plan.Entry {
	entries, err := parsePlan(source)
	if err != nil {
		log.Error("plan extraction failed", "err", err)
		return nil
	}
	return entries
}

// parsePlan is the internal entry point. Failures surface as errors here so
// tests can assert on them; ParsePlan reduces them to an empty result at the
// public boundary.
func parsePlan(source string) (entries []plan.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during plan extraction: %v", r)
		}
	}()

	tree := BuildTree(source)
	lists := tree.TopLevelOrderedLists()
	if len(lists) == 0 {
		return nil, nil
	}

	siblings := siblingChecklists(tree, lists[0])
	if isSimple(lists[0], siblings) {
		return simpleEntries(tree, lists[0]), nil
	}

	ex := &extractor{tree: tree, siblings: siblings}
	ex.walk(tree.Root, 0)
	ex.finalize()
	return ex.entries, nil
}

// siblingChecklists collects the root-level unordered lists that belong to
// the plan's numbered list. Strict markdown turns a checklist indented by
// fewer spaces than the ordered marker width into a sibling of the list it
// interrupts, and agents under-indent routinely, so unordered lists in the
// contiguous run of lists starting at the first ordered list count as part
// of the plan. Any other root block ends the run: bullet lists separated
// from the plan by prose are unrelated.
func siblingChecklists(tree *Tree, first *Node) map[*Node]bool {
	siblings := make(map[*Node]bool)
	inRun := false
	for _, c := range tree.Root.Children {
		if c == first {
			inRun = true
			continue
		}
		if !inRun {
			continue
		}
		switch c.Kind {
		case KindOrderedList:
			// the numbered list resuming after an interruption
		case KindUnorderedList:
			siblings[c] = true
		default:
			return siblings
		}
	}
	return siblings
}

// isSimple reports whether the plan is a flat numbered list with no
// checklists. The check is shallow: only unordered lists that are direct
// children of the first ordered list's items count, plus the list's
// root-level siblings.
func isSimple(list *Node, siblings map[*Node]bool) bool {
	if len(siblings) > 0 {
		return false
	}
	for _, item := range list.Children {
		if item.Kind != KindListItem {
			continue
		}
		for _, c := range item.Children {
			if c.Kind == KindUnorderedList {
				return false
			}
		}
	}
	return true
}

// simpleEntries derives one entry per numbered item of a flat plan. Items
// that do not look like numbered headers are skipped silently.
func simpleEntries(tree *Tree, list *Node) []plan.Entry {
	var entries []plan.Entry
	for _, item := range list.Children {
		if item.Kind != KindListItem {
			continue
		}
		raw := tree.SpanText(item)
		m := simpleHeaderRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		completed := strings.Contains(raw, "✓")
		status := plan.StatusTodo
		if completed {
			status = plan.StatusCompleted
		}
		entries = append(entries, plan.Entry{
			Title:     strings.TrimSpace(m[2]),
			Completed: completed,
			Status:    status,
		})
	}
	return entries
}

// sectionHeader is a parsed numbered section header line.
type sectionHeader struct {
	title     string
	completed bool
	status    plan.Status
}

// parseSectionHeader matches a numbered section header. When markers appear
// both before and after the title, the leading one wins.
func parseSectionHeader(line string) (sectionHeader, bool) {
	m := sectionHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return sectionHeader{}, false
	}
	glyph := m[2]
	if glyph == "" {
		glyph = m[4]
	}
	return sectionHeader{
		title:     strings.TrimSpace(m[3]),
		completed: plan.MarkerCompleted(glyph),
		status:    plan.StatusForMarker(glyph),
	}, true
}

// sectionBuilder accumulates the section currently being extracted until it
// is frozen into an immutable plan.Entry.
type sectionBuilder struct {
	title     string
	completed bool
	status    plan.Status
	steps     []plan.Step
}

// extractor walks the whole document tree once, keeping at most one open
// section at a time. All state is local to the parse call.
type extractor struct {
	tree     *Tree
	siblings map[*Node]bool
	entries  []plan.Entry
	open     *sectionBuilder
}

func (e *extractor) walk(n *Node, depth int) {
	if depth > maxListDepth {
		return
	}
	switch n.Kind {
	case KindOrderedList:
		e.orderedList(n, depth)
	case KindUnorderedList:
		// Root-level lists (depth 1) only attach when they are siblings of
		// the plan's numbered list; bullet lists elsewhere in the document
		// are not steps.
		if e.open != nil && (depth > 1 || e.siblings[n]) {
			e.steps(n, depth)
			return
		}
		// No section to attach to, or not part of the plan: the checklist is
		// dropped, but numbered lists nested beneath it still open sections.
		for _, c := range n.Children {
			e.walk(c, depth+1)
		}
	default:
		for _, c := range n.Children {
			e.walk(c, depth+1)
		}
	}
}

// orderedList tries to open a section for each numbered item. Items that do
// not match the header pattern are skipped without disturbing the open
// section, but their nested lists are still visited so loosely structured
// checklists end up attached to the right section.
func (e *extractor) orderedList(list *Node, depth int) {
	for _, item := range list.Children {
		if item.Kind != KindListItem {
			continue
		}
		if hdr, ok := parseSectionHeader(firstLine(e.tree.SpanText(item))); ok {
			e.finalize()
			e.open = &sectionBuilder{
				title:     hdr.title,
				completed: hdr.completed,
				status:    hdr.status,
			}
		}
		for _, c := range item.Children {
			e.walk(c, depth+1)
		}
	}
}

// steps extracts checklist items from an unordered list into the open
// section. Nested checklists are flattened depth-first into the same step
// list, in document order.
func (e *extractor) steps(list *Node, depth int) {
	if depth > maxListDepth {
		return
	}
	for _, item := range list.Children {
		if item.Kind != KindListItem {
			continue
		}
		line := firstLine(e.tree.SpanText(item))
		if m := checklistItemRe.FindStringSubmatch(line); m != nil {
			e.open.steps = append(e.open.steps, plan.Step{
				Description: strings.TrimSpace(m[2]),
				Completed:   plan.MarkerCompleted(m[1]),
				Status:      plan.StatusForMarker(m[1]),
			})
		} else if text := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, "")); text != "" {
			// Bare bullets without a status bracket become todo steps.
			e.open.steps = append(e.open.steps, plan.Step{
				Description: text,
				Status:      plan.StatusTodo,
			})
		}
		for _, c := range item.Children {
			if c.Kind == KindUnorderedList {
				e.steps(c, depth+1)
			}
		}
	}
}

// finalize freezes the open section into an entry, applies the completion
// recompute policy, and appends it to the result. Safe to call when no
// section is open.
func (e *extractor) finalize() {
	if e.open == nil {
		return
	}
	entry := plan.Entry{
		Title:     e.open.title,
		Completed: e.open.completed,
		Status:    e.open.status,
		Steps:     e.open.steps,
	}
	entry.UpdateCompletion()
	e.entries = append(e.entries, entry)
	e.open = nil
}

// firstLine returns the text up to the first newline. Continuation lines and
// nested content never take part in line matching.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
