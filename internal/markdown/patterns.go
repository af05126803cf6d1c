package markdown

import "regexp"

var (
	// checklistItemRe matches a checklist line such as "- [x] Add models".
	// Capture 1 is the status glyph (possibly empty), capture 2 the
	// description.
	checklistItemRe = regexp.MustCompile(`^\s*-\s*\[\s*([^\s\]]?)\s*\]\s+(.+)$`)

	// sectionHeaderRe matches a numbered section header with an optional
	// status marker before or after the title, e.g. "1. [x] Set up models"
	// or "2. Wire the API [!]". Captures: number, leading glyph, title,
	// trailing glyph. The title is non-greedy so a trailing marker is not
	// swallowed into it.
	sectionHeaderRe = regexp.MustCompile(`^\s*(\d+)\.\s+(?:\[\s*([^\s\]]?)\s*\]\s+)?(.+?)(?:\s*\[\s*([^\s\]]?)\s*\])?\s*$`)

	// simpleHeaderRe is the relaxed header form used for flat plans without
	// checklists, e.g. "3. Build the CLI ✓".
	simpleHeaderRe = regexp.MustCompile(`^(\d+)\.\s+(.+?)\s*✓?\s*$`)

	// bulletPrefixRe strips a bare "-" or "*" bullet from a line that did
	// not match the checklist form.
	bulletPrefixRe = regexp.MustCompile(`^\s*[-*]\s+`)
)
