// Package lineinput reads one line of text behind a prompt. Terminals get a
// small bubbletea program; anything else is read line by line.
package lineinput

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var cursorStyle = lipgloss.NewStyle().Reverse(true)

type Model struct {
	prompt    string
	value     []rune
	submitted bool
	cancelled bool
}

func NewModel(prompt string) Model {
	return Model{prompt: prompt}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter, tea.KeyCtrlJ:
		m.submitted = true
		return m, tea.Quit
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyCtrlD:
		if len(m.value) == 0 {
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeyCtrlU:
		m.value = m.value[:0]
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}
	return m, nil
}

func (m Model) View() string {
	if m.submitted || m.cancelled {
		return m.prompt + string(m.value) + "\n"
	}
	return m.prompt + string(m.value) + cursorStyle.Render(" ")
}

// Value is the text typed so far.
func (m Model) Value() string {
	return strings.TrimSpace(string(m.value))
}

func (m Model) Submitted() bool {
	return m.submitted
}

func (m Model) Cancelled() bool {
	return m.cancelled
}
