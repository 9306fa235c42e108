package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
)

func TestRenderMonth(t *testing.T) {
	entries := []entry.Entry{
		{ID: "a", Date: at(5, 9), Mood: entry.MoodExcellent, Energy: 10, Text: "x"},
	}
	month := calendar.BuildMonth(2026, time.January, entries)
	out := stripANSI(RenderMonth(month, ResolveTheme(config.ThemeConfig{}), at(7, 0), at(7, 0)))

	for _, want := range []string{"January 2026", "Sun", "Sat", " 5 😄", "31"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, EnergyBar(10, miniBarSize)) {
		t.Errorf("calendar should draw the energy bar for Jan 5:\n%s", out)
	}
	// title + weekday header + two lines for each of 5 weeks
	if got := countLines(out); got != 12 {
		t.Errorf("expected 12 lines, got %d", got)
	}
}

func TestRenderMonthEmpty(t *testing.T) {
	month := calendar.BuildMonth(2026, time.February, nil)
	out := stripANSI(RenderMonth(month, ResolveTheme(config.ThemeConfig{Preset: "gruvbox-light"}), time.Time{}, time.Time{}))
	if !strings.Contains(out, "February 2026") {
		t.Errorf("missing title:\n%s", out)
	}
	if strings.Contains(out, "█") {
		t.Error("empty month should not draw energy bars")
	}
}
