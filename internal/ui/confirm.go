package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	prompt     string
	defaultYes bool
	confirmed  bool
	done       bool
	theme      Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(km.String()) {
	case "y":
		m.confirmed = true
	case "n", "esc", "ctrl+c":
		m.confirmed = false
	case "enter":
		m.confirmed = m.defaultYes
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	hint := "[y/N]"
	if m.defaultYes {
		hint = "[Y/n]"
	}
	promptStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	return fmt.Sprintf("%s %s ", promptStyle.Render(m.prompt), m.theme.DangerStyle().Render(hint))
}

// Confirm asks a yes/no question. Enter picks defaultYes.
func Confirm(prompt string, theme Theme, defaultYes bool) (bool, error) {
	result, err := tea.NewProgram(confirmModel{prompt: prompt, theme: theme, defaultYes: defaultYes}).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
