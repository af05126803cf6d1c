package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcastellanos/faro/internal/plan"
)

// openPlanMsg asks the app to show a plan's detail view.
type openPlanMsg struct {
	dir string
}

// closePlanMsg asks the app to return to the plan list.
type closePlanMsg struct{}

// planItem is one row of the plan list.
type planItem struct {
	dir       string
	id        string
	name      string
	status    plan.Status
	completed int
	total     int
}

// listModel is the model for the plan selection view.
type listModel struct {
	plansPath string
	items     []planItem
	cursor    int
	width     int
	height    int
	err       error
}

func newListModel(plansPath string) listModel {
	m := listModel{plansPath: plansPath}
	m.items = m.loadItems()
	return m
}

// loadItems reads plan data from <plansPath>/*/plan.json.
func (m listModel) loadItems() []planItem {
	var items []planItem

	entries, err := os.ReadDir(m.plansPath)
	if err != nil {
		return items
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		p, err := plan.LoadPlan(filepath.Join(m.plansPath, entry.Name()))
		if err != nil {
			continue
		}

		completed, total := p.StepCounts()
		items = append(items, planItem{
			dir:       filepath.Join(m.plansPath, entry.Name()),
			id:        p.ID,
			name:      p.Name,
			status:    p.Status,
			completed: completed,
			total:     total,
		})
	}

	return items
}

func (m *listModel) reload() {
	m.items = m.loadItems()
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
}

func (m *listModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m listModel) update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "r":
			m.reload()
		case "enter":
			if m.cursor < len(m.items) {
				dir := m.items[m.cursor].dir
				return m, func() tea.Msg { return openPlanMsg{dir: dir} }
			}
		}
	}
	return m, nil
}

func (m listModel) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Plans"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString(SubtleStyle.Render("No plans yet. Create one with `faro plan create`."))
		b.WriteString("\n\n")
		b.WriteString(SubtleStyle.Render("[q] quit"))
		return b.String()
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%s %s (%d/%d steps)",
			statusGlyph(item.status), item.name, item.completed, item.total)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("[enter] view  [r] refresh  [q] quit"))
	return b.String()
}
