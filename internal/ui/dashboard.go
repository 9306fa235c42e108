package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/chris-regnier/moodlog/internal/storage"
)

// DashboardConfig holds configuration needed by the dashboard.
type DashboardConfig struct {
	Theme    Theme
	MaxWidth int              // maximum content width (0 = no limit)
	Now      func() time.Time // clock, time.Now when nil
}

type dashboardKeyMap struct {
	Left, Right, Up, Down key.Binding
	PrevMonth, NextMonth  key.Binding
	Today, Open, Close    key.Binding
	New, Reload, Quit     key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.PrevMonth, k.Open, k.New, k.Today, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Close, k.Reload}}
}

var dashboardKeys = dashboardKeyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←↑↓→", "move")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	PrevMonth: key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[/]", "month")),
	NextMonth: key.NewBinding(key.WithKeys("]", "n")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view day")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	New:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check in")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// stateLoadedMsg delivers a freshly loaded journal state.
type stateLoadedMsg struct {
	state journal.State
	err   error
}

// storeChangedMsg reports that the store was modified outside the dashboard.
type storeChangedMsg struct{}

// checkinSavedMsg is the result of submitting the form.
type checkinSavedMsg struct {
	state journal.State
	entry entry.Entry
	err   error
}

// dashboardModel shows the month calendar next to the insights panels.
type dashboardModel struct {
	session *journal.Session
	events  <-chan storage.Event
	cfg     DashboardConfig

	state  journal.State
	loaded bool

	year     int
	month    time.Month
	selected time.Time

	detail     *entry.Entry // check-in shown in the day detail, nil when closed
	detailView viewport.Model

	form   *checkinForm
	status string
	help   help.Model

	width  int
	height int
	ready  bool
	err    error
}

func newDashboardModel(session *journal.Session, events <-chan storage.Event, cfg DashboardConfig) dashboardModel {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	today := calendar.NormalizeDate(cfg.Now())
	h := help.New()
	h.Styles.ShortKey = cfg.Theme.AccentStyle()
	h.Styles.ShortDesc = cfg.Theme.HelpStyle()
	h.Styles.ShortSeparator = cfg.Theme.HelpStyle()
	return dashboardModel{
		session:  session,
		events:   events,
		cfg:      cfg,
		year:     today.Year(),
		month:    today.Month(),
		selected: today,
		help:     h,
	}
}

func (m dashboardModel) loadCmd() tea.Msg {
	state, err := m.session.Load(context.Background())
	return stateLoadedMsg{state: state, err: err}
}

// waitForChange blocks on the next store event. A closed channel ends the
// subscription.
func waitForChange(events <-chan storage.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m dashboardModel) submitCmd(sub entry.Submission) tea.Cmd {
	state := m.state
	now := m.cfg.Now()
	return func() tea.Msg {
		next, e, err := m.session.Submit(context.Background(), state, sub, now)
		return checkinSavedMsg{state: next, entry: e, err: err}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd, waitForChange(m.events))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.applyState(msg.state)
		return m, nil

	case storeChangedMsg:
		return m, tea.Batch(m.loadCmd, waitForChange(m.events))

	case checkinSavedMsg:
		if msg.err != nil {
			if m.form != nil && errors.Is(msg.err, storage.ErrValidation) {
				m.form.errMsg = entry.ValidationMessage(msg.err)
				return m, nil
			}
			m.status = "Error: " + msg.err.Error()
			m.form = nil
			return m, nil
		}
		m.form = nil
		m.status = CheckinSavedMessage
		if msg.entry.HasValidDate() {
			m.selectDay(calendar.NormalizeDate(msg.entry.Date))
		}
		m.applyState(msg.state)
		return m, nil

	case formSubmittedMsg:
		return m, m.submitCmd(msg.sub)

	case formCancelledMsg:
		m.form = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		if m.form != nil {
			m.form.setWidth(m.contentWidth())
		}
		m.resizeDetail()
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			f, cmd := m.form.Update(msg)
			m.form = &f
			return m, cmd
		}
		return m.updateKeys(msg)
	}

	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}
	if m.detail != nil {
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := dashboardKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Close):
		if m.detail == nil {
			return m, tea.Quit
		}
		m.detail = nil
		return m, nil
	case key.Matches(msg, k.Left):
		m.selectDay(m.selected.AddDate(0, 0, -1))
	case key.Matches(msg, k.Right):
		m.selectDay(m.selected.AddDate(0, 0, 1))
	case key.Matches(msg, k.Up), key.Matches(msg, k.Down):
		if m.detail != nil {
			var cmd tea.Cmd
			m.detailView, cmd = m.detailView.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, k.Up) {
			m.selectDay(m.selected.AddDate(0, 0, -7))
		} else {
			m.selectDay(m.selected.AddDate(0, 0, 7))
		}
	case key.Matches(msg, k.PrevMonth):
		m.selectDay(shiftMonth(m.selected, -1))
	case key.Matches(msg, k.NextMonth):
		m.selectDay(shiftMonth(m.selected, 1))
	case key.Matches(msg, k.Today):
		m.selectDay(calendar.NormalizeDate(m.cfg.Now()))
	case key.Matches(msg, k.Open):
		m.openDetail(m.selected)
	case key.Matches(msg, k.New):
		f := newCheckinForm(m.cfg.Theme, m.selected, m.cfg.Now)
		f.setWidth(m.contentWidth())
		m.form = &f
		m.status = ""
		return m, f.Init()
	case key.Matches(msg, k.Reload):
		return m, m.loadCmd
	}
	return m, nil
}

// shiftMonth moves day by delta months, clamping to the last day of the
// target month (Jan 31 + 1 is Feb 28, not Mar 3).
func shiftMonth(day time.Time, delta int) time.Time {
	first := time.Date(day.Year(), day.Month()+time.Month(delta), 1, 0, 0, 0, 0, day.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(day.Day(), last)-1)
}

// applyState swaps in a new state and refreshes the open day detail from it.
func (m *dashboardModel) applyState(state journal.State) {
	m.state = state
	m.loaded = true
	if m.detail != nil {
		m.openDetail(m.selected)
	}
}

// selectDay moves the cursor to day, following it across months. An open
// day detail follows the cursor.
func (m *dashboardModel) selectDay(day time.Time) {
	m.selected = calendar.NormalizeDate(day)
	m.year, m.month = m.selected.Year(), m.selected.Month()
	if m.detail != nil {
		m.openDetail(m.selected)
	}
}

// openDetail shows the first check-in of day. The day is passed in rather
// than read back from the cursor so callers decide which cell is shown.
func (m *dashboardModel) openDetail(day time.Time) {
	e, ok := calendar.DayEntry(m.state.Entries, day)
	if !ok {
		m.detail = nil
		m.status = fmt.Sprintf("No check-in on %s.", day.Format(LongDateLayout))
		return
	}
	m.detail = &e
	m.status = ""
	m.resizeDetail()
}

func (m *dashboardModel) resizeDetail() {
	if m.detail == nil || !m.ready {
		return
	}
	var b strings.Builder
	FormatDayDetail(&b, *m.detail, m.contentWidth()-4, m.cfg.Theme.MarkdownStyle)
	h := max(m.height-4, 3)
	m.detailView = viewport.New(m.contentWidth(), h)
	m.detailView.SetContent(strings.TrimRight(b.String(), "\n"))
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m dashboardModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m dashboardModel) insightsPanel(width int) string {
	t := m.cfg.Theme
	var b strings.Builder
	b.WriteString(t.HeaderStyle().Render(InsightsHeading) + "\n")
	insights := m.state.Report.Insights
	if len(insights) == 0 {
		b.WriteString(t.ViewPaneStyle().Width(width).Render(analysis.EmptyPatternsMessage) + "\n")
	}
	for _, in := range insights {
		b.WriteString(t.ViewPaneStyle().Width(width).Render("• "+in) + "\n")
	}

	b.WriteString("\n" + t.HeaderStyle().Render("Summary") + "\n")
	for i, line := range analysis.Summary(m.state.Report) {
		if i > 0 {
			line = "• " + line
		}
		b.WriteString(t.ViewPaneStyle().Width(width).Render(line) + "\n")
	}

	if streak := calendar.Streak(m.state.Entries, m.cfg.Now()); streak > 0 {
		b.WriteString("\n" + t.AccentStyle().Render(fmt.Sprintf("🔥 %d day streak", streak)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	t := m.cfg.Theme
	cw := m.contentWidth()

	var body string
	switch {
	case m.form != nil:
		body = m.form.View()
	case m.detail != nil:
		footer := t.HelpStyle().Width(cw).Render("↑/↓ scroll • ←/→ day • esc close • q quit")
		body = t.ViewPaneStyle().Width(cw).Render(m.detailView.View()) + "\n" + footer
	default:
		body = m.mainView(cw)
	}
	return t.PaintScreen(body, m.width, m.height, cw)
}

func (m dashboardModel) mainView(cw int) string {
	t := m.cfg.Theme
	header := t.HeaderStyle().Width(cw).Render(fmt.Sprintf("moodlog · %d check-ins", len(m.state.Entries)))
	if !m.loaded {
		header = t.HeaderStyle().Width(cw).Render("moodlog")
	}

	month := calendar.BuildMonth(m.year, m.month, m.state.Entries)
	cal := RenderMonth(month, t, m.selected, m.cfg.Now())

	var content string
	calWidth := lipgloss.Width(cal)
	if cw-calWidth-4 >= 30 {
		panelWidth := cw - calWidth - 4
		panel := t.BorderStyle().Width(panelWidth).Render(m.insightsPanel(panelWidth - 2))
		content = lipgloss.JoinHorizontal(lipgloss.Top, cal, t.ViewPaneStyle().Render("  "), panel)
	} else {
		content = cal + "\n\n" + m.insightsPanel(cw)
	}

	sections := []string{header, "", content, ""}
	if m.status != "" {
		style := t.PositiveStyle()
		if strings.HasPrefix(m.status, "Error") || strings.HasPrefix(m.status, "No check-in") {
			style = t.HelpStyle()
		}
		sections = append(sections, style.Width(cw).Render(m.status))
	}
	sections = append(sections, m.help.View(dashboardKeys))
	return strings.Join(sections, "\n")
}

// RunDashboard launches the interactive dashboard. When events is non-nil the
// dashboard reloads on every store change.
func RunDashboard(session *journal.Session, events <-chan storage.Event, cfg DashboardConfig) error {
	m := newDashboardModel(session, events, cfg)
	result, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if dm, ok := result.(dashboardModel); ok && dm.err != nil {
		return dm.err
	}
	return nil
}
