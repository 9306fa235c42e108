package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/entry"
)

type formField int

const (
	fieldMood formField = iota
	fieldEnergy
	fieldDate
	fieldReflection
	fieldCount
)

const dateInputLayout = "2006-01-02"

// Input limits for the form.
const (
	maxReflectionLength = 4000
	reflectionHeight    = 6
)

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Left:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/→", "adjust")),
	Right:  key.NewBinding(key.WithKeys("right", "l", "+")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// formSubmittedMsg carries a submission that passed validation.
type formSubmittedMsg struct {
	sub entry.Submission
}

// formCancelledMsg is sent when the user leaves the form without saving.
type formCancelledMsg struct{}

// checkinForm is the interactive check-in: mood picker, energy slider,
// date and reflection. It validates before emitting formSubmittedMsg.
type checkinForm struct {
	theme  Theme
	now    func() time.Time
	mood   entry.Mood
	energy int
	date   textinput.Model
	text   textarea.Model
	focus  formField
	errMsg string
	width  int
}

func newCheckinForm(theme Theme, day time.Time, now func() time.Time) checkinForm {
	di := textinput.New()
	di.Placeholder = dateInputLayout
	di.CharLimit = len(dateInputLayout)
	di.SetValue(day.Format(dateInputLayout))

	ta := textarea.New()
	ta.Placeholder = "How did today go?"
	ta.CharLimit = maxReflectionLength
	ta.SetHeight(reflectionHeight)
	ta.ShowLineNumbers = false

	return checkinForm{
		theme:  theme,
		now:    now,
		energy: entry.DefaultEnergy,
		date:   di,
		text:   ta,
	}
}

func (f checkinForm) Init() tea.Cmd {
	return textarea.Blink
}

func (f *checkinForm) setWidth(w int) {
	f.width = w
	f.text.SetWidth(max(w-4, 20))
}

func (f *checkinForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	f.date.Blur()
	f.text.Blur()
	switch f.focus {
	case fieldDate:
		f.date.Focus()
	case fieldReflection:
		f.text.Focus()
	}
}

// submission builds the submission from the current field values.
func (f checkinForm) submission() (entry.Submission, error) {
	sub := entry.Submission{Mood: f.mood, Text: f.text.Value()}
	energy := f.energy
	sub.Energy = &energy

	raw := strings.TrimSpace(f.date.Value())
	if raw == "" {
		return sub, nil
	}
	day, err := time.ParseInLocation(dateInputLayout, raw, time.Local)
	if err != nil {
		return sub, fmt.Errorf("Date must look like %s.", dateInputLayout)
	}
	sub.Date = checkinTime(day, f.now())
	return sub, nil
}

func checkinTime(day, now time.Time) *time.Time {
	t := calendar.CheckinTime(day, now)
	return &t
}

func (f checkinForm) Update(msg tea.Msg) (checkinForm, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInputs(msg)
	}

	switch {
	case key.Matches(km, formKeys.Cancel):
		return f, func() tea.Msg { return formCancelledMsg{} }
	case key.Matches(km, formKeys.Submit):
		sub, err := f.submission()
		if err == nil {
			err = sub.Validate(f.now())
		}
		if err != nil {
			f.errMsg = err.Error()
			return f, nil
		}
		f.errMsg = ""
		return f, func() tea.Msg { return formSubmittedMsg{sub: sub} }
	case key.Matches(km, formKeys.Next):
		f.setFocus(f.focus + 1)
		return f, nil
	case key.Matches(km, formKeys.Prev):
		f.setFocus(f.focus - 1)
		return f, nil
	}

	switch f.focus {
	case fieldMood:
		switch {
		case key.Matches(km, formKeys.Left):
			f.mood = stepMood(f.mood, -1)
		case key.Matches(km, formKeys.Right):
			f.mood = stepMood(f.mood, 1)
		default:
			if m, err := entry.ParseMood(km.String()); err == nil {
				f.mood = m
			}
		}
		f.errMsg = ""
		return f, nil
	case fieldEnergy:
		switch {
		case key.Matches(km, formKeys.Left):
			f.energy = max(f.energy-1, entry.MinEnergy)
		case key.Matches(km, formKeys.Right):
			f.energy = min(f.energy+1, entry.MaxEnergy)
		}
		return f, nil
	}
	return f.updateInputs(msg)
}

func (f checkinForm) updateInputs(msg tea.Msg) (checkinForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldReflection:
		f.text, cmd = f.text.Update(msg)
	}
	return f, cmd
}

// stepMood moves through the five moods; from no selection it starts at the
// middle one.
func stepMood(m entry.Mood, delta int) entry.Mood {
	if !m.Valid() {
		return entry.MoodGood
	}
	next := m + entry.Mood(delta)
	if !next.Valid() {
		return m
	}
	return next
}

func (f checkinForm) label(field formField, text string) string {
	if f.focus == field {
		return f.theme.AccentStyle().Bold(true).Render("› " + text)
	}
	return f.theme.HeaderStyle().Render("  " + text)
}

func (f checkinForm) View() string {
	var b strings.Builder
	b.WriteString(f.theme.HeaderStyle().Render("Daily Check-in") + "\n\n")

	b.WriteString(f.label(fieldMood, "How are you feeling?") + "\n  ")
	for _, m := range entry.Moods {
		cell := fmt.Sprintf(" %d %s ", int(m), m.Emoji())
		if m == f.mood {
			b.WriteString(f.theme.MoodStyle(m).Reverse(true).Render(cell))
		} else {
			b.WriteString(f.theme.HelpStyle().Render(cell))
		}
	}
	if f.mood.Valid() {
		b.WriteString(" " + f.theme.MoodStyle(f.mood).Render(f.mood.Description()))
	}
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldEnergy, "Energy Level") + "\n  ")
	b.WriteString(f.theme.EnergyStyle(f.energy).Render(EnergyBar(f.energy, energyBarWidth)))
	b.WriteString(fmt.Sprintf(" %d/10\n\n", f.energy))

	b.WriteString(f.label(fieldDate, "Date") + "\n  " + f.date.View() + "\n\n")
	b.WriteString(f.label(fieldReflection, "Reflection") + "\n" + f.text.View() + "\n")

	if f.errMsg != "" {
		b.WriteString("\n" + f.theme.DangerStyle().Render(f.errMsg) + "\n")
	}
	b.WriteString("\n" + f.theme.HelpStyle().Render("tab next • 1-5 mood • ←/→ adjust • ctrl+s save • esc cancel"))
	return b.String()
}

// checkinProgram runs the form on its own, outside the dashboard.
type checkinProgram struct {
	form      checkinForm
	sub       entry.Submission
	submitted bool
	width     int
	height    int
}

func (p checkinProgram) Init() tea.Cmd {
	return p.form.Init()
}

func (p checkinProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSubmittedMsg:
		p.sub = msg.sub
		p.submitted = true
		return p, tea.Quit
	case formCancelledMsg:
		return p, tea.Quit
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.form.setWidth(min(msg.Width, DefaultMaxWidth))
		return p, nil
	}
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p checkinProgram) View() string {
	return p.form.View()
}

// RunCheckinForm shows the interactive check-in form. It returns false when
// the user cancelled.
func RunCheckinForm(theme Theme, initial entry.Submission) (entry.Submission, bool, error) {
	day := time.Now()
	if initial.Date != nil {
		day = *initial.Date
	}
	form := newCheckinForm(theme, day, time.Now)
	form.mood = initial.Mood
	if initial.Energy != nil {
		form.energy = *initial.Energy
	}
	form.text.SetValue(initial.Text)
	if form.mood.Valid() {
		form.setFocus(fieldReflection)
	}

	result, err := tea.NewProgram(checkinProgram{form: form}).Run()
	if err != nil {
		return entry.Submission{}, false, err
	}
	p := result.(checkinProgram)
	return p.sub, p.submitted, nil
}
