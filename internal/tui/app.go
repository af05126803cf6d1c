// Package tui implements the interactive plan browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcastellanos/faro/internal/plan"
)

// view identifies the active screen.
type view int

const (
	viewList view = iota
	viewDetail
)

// Model is the main Bubble Tea model that orchestrates the views.
type Model struct {
	view   view
	list   listModel
	detail detailModel
	width  int
	height int
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(
		initialModel(),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func initialModel() Model {
	return Model{
		view: viewList,
		list: newListModel(plan.PlansPath()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.setSize(msg.Width, msg.Height)
		m.detail.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case openPlanMsg:
		detail, err := newDetailModel(msg.dir)
		if err != nil {
			m.list.err = err
			return m, nil
		}
		m.detail = detail
		m.detail.setSize(m.width, m.height)
		m.view = viewDetail
		return m, nil

	case closePlanMsg:
		m.view = viewList
		m.list.reload()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case viewList:
		m.list, cmd = m.list.update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.view {
	case viewDetail:
		return m.detail.view()
	default:
		return m.list.view()
	}
}
