package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodlog/internal/entry"
)

// checkinItem implements list.Item for entry.Entry.
type checkinItem struct {
	entry entry.Entry
}

func (c checkinItem) Title() string {
	return fmt.Sprintf("%s  %s %s  energy %d", FormatDate(c.entry, ShortDateLayout), c.entry.Mood.Emoji(), c.entry.Mood.Description(), c.entry.Energy)
}

func (c checkinItem) Description() string { return c.entry.Preview(80) }
func (c checkinItem) FilterValue() string { return c.entry.Text }

// browseModel lists check-ins and opens the selected one full screen.
type browseModel struct {
	list          list.Model
	detail        viewport.Model
	showDetail    bool
	ready         bool
	width, height int
	maxWidth      int
	markdownStyle string
	theme         Theme
}

func newBrowseModel(entries []entry.Entry, theme Theme, maxWidth int) browseModel {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = checkinItem{entry: e}
	}
	l := theme.NewList(items, 0, 0)
	l.Title = fmt.Sprintf("Check-ins (%d)", len(entries))
	return browseModel{list: l, maxWidth: maxWidth, markdownStyle: theme.MarkdownStyle, theme: theme}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cw := m.contentWidth()
		m.list.SetSize(cw, msg.Height)
		if !m.ready {
			m.detail = viewport.New(cw, msg.Height-1)
			m.ready = true
		} else {
			m.detail.Width, m.detail.Height = cw, msg.Height-1
		}
		return m, nil

	case tea.KeyMsg:
		if m.showDetail {
			switch msg.String() {
			case "esc", "backspace", "q":
				m.showDetail = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "enter":
				if item, ok := m.list.SelectedItem().(checkinItem); ok {
					var b strings.Builder
					FormatDayDetail(&b, item.entry, max(m.contentWidth()-4, 20), m.markdownStyle)
					m.detail.SetContent(b.String())
					m.detail.GotoTop()
					m.showDetail = true
				}
				return m, nil
			case "q", "esc":
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	cw := m.contentWidth()
	if m.showDetail {
		footer := m.theme.HelpStyle().Width(cw).Render("↑/↓ scroll • esc back")
		body := m.theme.ViewPaneStyle().Width(cw).Render(m.detail.View())
		return m.theme.PaintScreen(body+"\n"+footer, m.width, m.height, cw)
	}
	return m.theme.PaintScreen(m.list.View(), m.width, m.height, cw)
}

// BrowseCheckins shows entries in a filterable full-screen list.
func BrowseCheckins(entries []entry.Entry, theme Theme, maxWidth int) error {
	if maxWidth == 0 {
		maxWidth = DefaultMaxWidth
	}
	_, err := tea.NewProgram(newBrowseModel(entries, theme, maxWidth), tea.WithAltScreen()).Run()
	return err
}
