package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcastellanos/faro/internal/plan"
)

// detailModel shows a single plan's entries and steps in a scrollable view.
type detailModel struct {
	plan     *plan.Plan
	viewport viewport.Model
	ready    bool
}

func newDetailModel(planDir string) (detailModel, error) {
	p, err := plan.LoadPlan(planDir)
	if err != nil {
		return detailModel{}, err
	}
	m := detailModel{plan: p}
	return m, nil
}

func (m *detailModel) setSize(width, height int) {
	// Reserve lines for the title and the help footer
	vh := height - 4
	if vh < 1 {
		vh = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vh)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vh
	}
	if m.plan != nil {
		m.viewport.SetContent(m.renderPlan())
	}
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			return m, func() tea.Msg { return closePlanMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m detailModel) view() string {
	if !m.ready || m.plan == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Plan: %s", m.plan.Name)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("[esc] back  [↑/↓] scroll"))
	return b.String()
}

// renderPlan draws entries and steps with status glyphs.
func (m detailModel) renderPlan() string {
	var b strings.Builder

	completed, total := m.plan.StepCounts()
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("Status: %s  Steps: %d/%d", m.plan.Status, completed, total)))
	b.WriteString("\n\n")

	for i, e := range m.plan.Entries {
		b.WriteString(fmt.Sprintf("%s %d. %s\n", statusGlyph(e.Status), i+1, e.Title))
		for _, s := range e.Steps {
			b.WriteString(fmt.Sprintf("   %s %s\n", statusGlyph(s.Status), s.Description))
		}
	}

	return b.String()
}

// statusGlyph renders a colored marker for a status.
func statusGlyph(s plan.Status) string {
	switch s {
	case plan.StatusCompleted:
		return SuccessStyle.Render("✓")
	case plan.StatusFailed:
		return ErrorStyle.Render("✗")
	case plan.StatusInProgress:
		return ProgressStyle.Render("◐")
	default:
		return SubtleStyle.Render("○")
	}
}
