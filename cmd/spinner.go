package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type searchDoneMsg struct{ result searchResult }

// spinModel shows a spinner while a single search runs.
type spinModel struct {
	sp        spinner.Model
	msg       string
	work      func() searchResult
	result    searchResult
	done      bool
	cancelled bool
}

func newSpinnerModel(msg string, work func() searchResult) spinModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return spinModel{sp: s, msg: msg, work: work}
}

func (m spinModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(m.sp.Tick, func() tea.Msg {
		return searchDoneMsg{result: work()}
	})
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.result, m.done = msg.result, true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.sp, cmd = m.sp.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	// spinner + message on one line
	return fmt.Sprintf("\n  %s %s\n", m.sp.View(), m.msg)
}
