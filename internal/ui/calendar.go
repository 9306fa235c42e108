package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/calendar"
)

const (
	cellWidth   = 7
	miniBarSize = 5
)

// RenderMonth paints a month grid for the TUI. Each day takes two lines: the
// day number with the mood emoji, then a small energy bar. The selected day
// is highlighted and today is bold.
func RenderMonth(m calendar.Month, theme Theme, selected, today time.Time) string {
	gridWidth := cellWidth * 7
	var rows []string

	rows = append(rows, theme.HeaderStyle().Width(gridWidth).Align(lipgloss.Center).Render(m.Title()))

	var head strings.Builder
	for i := 0; i < 7; i++ {
		head.WriteString(theme.HelpStyle().Width(cellWidth).Align(lipgloss.Center).Render(analysis.WeekdayName(i)))
	}
	rows = append(rows, head.String())

	for _, week := range m.Weeks() {
		var top, bottom strings.Builder
		for _, c := range week {
			t, b := renderCell(c, theme, selected, today)
			top.WriteString(t)
			bottom.WriteString(b)
		}
		rows = append(rows, top.String(), bottom.String())
	}
	return strings.Join(rows, "\n")
}

func renderCell(c *calendar.Cell, theme Theme, selected, today time.Time) (string, string) {
	blank := theme.ViewPaneStyle().Width(cellWidth).Render("")
	if c == nil {
		return blank, blank
	}

	style := theme.ViewPaneStyle().Width(cellWidth)
	if calendar.SameDay(c.Date, today) {
		style = style.Bold(true).Underline(true)
	}
	if calendar.SameDay(c.Date, selected) {
		style = style.Foreground(theme.Background).Background(theme.Accent)
	}

	label := fmt.Sprintf("%2d", c.Day)
	if c.Entry == nil {
		return style.Render(" " + label), blank
	}

	top := style.Render(fmt.Sprintf(" %s %s", label, c.Entry.Mood.Emoji()))
	bar := theme.EnergyStyle(c.Entry.Energy).Width(cellWidth).Render(" " + EnergyBar(c.Entry.Energy, miniBarSize))
	return top, bar
}
