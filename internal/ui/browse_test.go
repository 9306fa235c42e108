package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
)

func newTestBrowse(t *testing.T) browseModel {
	t.Helper()
	m := newBrowseModel([]entry.Entry{
		{ID: "b0000002", Date: at(6, 21), Mood: entry.MoodExcellent, Energy: 9, Text: "Shipped it"},
		{ID: "b0000001", Date: at(5, 9), Mood: entry.MoodDown, Energy: 2, Text: "Slow start"},
	}, ResolveTheme(config.ThemeConfig{}), 80)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(browseModel)
}

func TestBrowseListsCheckins(t *testing.T) {
	m := newTestBrowse(t)
	view := stripANSI(m.View())
	for _, want := range []string{"Check-ins (2)", "2026-01-06 21:00", "😄 excellent", "Shipped it"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseOpensDetail(t *testing.T) {
	m := newTestBrowse(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(browseModel)
	if !m.showDetail {
		t.Fatal("enter should open the selected check-in")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Tuesday, January 6, 2026") {
		t.Errorf("detail view missing date:\n%s", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(browseModel)
	if m.showDetail || cmd != nil {
		t.Error("esc should go back to the list without quitting")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on the list should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestCheckinItem(t *testing.T) {
	item := checkinItem{entry: entry.Entry{Date: at(5, 9), Mood: entry.MoodGood, Energy: 6, Text: "line one\nline two"}}
	if got := item.Description(); got != "line one line two" {
		t.Errorf("Description = %q", got)
	}
	if !strings.HasPrefix(item.Title(), "2026-01-05 09:00") {
		t.Errorf("Title = %q", item.Title())
	}
}
