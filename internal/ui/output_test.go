package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/entry"
)

func at(day, hour int) time.Time {
	return time.Date(2026, time.January, day, hour, 0, 0, 0, time.Local)
}

func TestEnergyBar(t *testing.T) {
	tests := []struct {
		energy, width int
		want          string
	}{
		{0, 10, "░░░░░░░░░░"},
		{5, 10, "█████░░░░░"},
		{10, 10, "██████████"},
		{12, 10, "██████████"},
		{-3, 10, "░░░░░░░░░░"},
		{6, 5, "███░░"},
		{4, 0, "████░░░░░░"},
	}
	for _, tt := range tests {
		if got := EnergyBar(tt.energy, tt.width); got != tt.want {
			t.Errorf("EnergyBar(%d, %d) = %q, want %q", tt.energy, tt.width, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	e := entry.Entry{Date: at(5, 9)}
	if got := FormatDate(e, LongDateLayout); got != "Monday, January 5, 2026" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(entry.Entry{}, LongDateLayout); got != "undated" {
		t.Errorf("FormatDate(undated) = %q", got)
	}
}

func TestNewestFirst(t *testing.T) {
	in := []entry.Entry{
		{ID: "old", Date: at(1, 9)},
		{ID: "none"},
		{ID: "new", Date: at(9, 9)},
		{ID: "mid", Date: at(5, 9)},
	}
	got := NewestFirst(in)
	want := []string{"new", "mid", "old", "none"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
	if in[0].ID != "old" {
		t.Error("NewestFirst reordered its input")
	}
}

func TestFormatEntryList(t *testing.T) {
	var buf bytes.Buffer
	FormatEntryList(&buf, nil)
	if !strings.Contains(buf.String(), NoEntriesMessage) {
		t.Errorf("empty list output = %q", buf.String())
	}

	buf.Reset()
	FormatEntryList(&buf, []entry.Entry{
		{ID: "a", Date: at(5, 9), Mood: entry.MoodVeryGood, Energy: 8, Text: "Productive morning"},
	})
	out := buf.String()
	for _, want := range []string{"2026-01-05 09:00", "😊", "very good", "Productive morning", " 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDayDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatDayDetail(&buf, entry.Entry{Date: at(5, 20), Mood: entry.MoodDown, Energy: 3, Text: "Long day"}, 80, "notty")
	out := stripANSI(buf.String())
	for _, want := range []string{"Monday, January 5, 2026", "Mood: 😔 down", "Energy Level:", "3/10", "Reflection:", "Long day"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestInsightsMarkdownEmpty(t *testing.T) {
	md := InsightsMarkdown(analysis.Analyze(nil))
	if !strings.Contains(md, analysis.EmptyPatternsMessage) {
		t.Error("empty report should show the empty patterns message")
	}
	if !strings.Contains(md, analysis.WelcomeMessage) {
		t.Error("empty report should show the welcome message")
	}
	if strings.Contains(md, "Energy by Weekday") {
		t.Error("empty report should not show the weekday table")
	}
}

func TestInsightsMarkdownWithData(t *testing.T) {
	entries := []entry.Entry{
		{Date: at(5, 9), Mood: entry.MoodGood, Energy: 9, Text: "a"},
		{Date: at(6, 10), Mood: entry.MoodGood, Energy: 8, Text: "b"},
	}
	md := InsightsMarkdown(analysis.Analyze(entries))
	for _, want := range []string{
		InsightsHeading,
		"Your energy levels have been consistently high this week.",
		"You've most often felt good this week.",
		"Based on your recent check-ins:",
		"You tend to be most engaged during morning.",
		"| Mon | 9.0 |",
		"- morning: 2",
		"🙂 good: 2",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatCalendar(t *testing.T) {
	entries := []entry.Entry{{Date: at(5, 9), Mood: entry.MoodExcellent, Energy: 9, Text: "x"}}
	var buf bytes.Buffer
	FormatCalendar(&buf, calendar.BuildMonth(2026, time.January, entries))
	out := buf.String()
	if !strings.HasPrefix(out, "January 2026\n") {
		t.Errorf("calendar should start with the title:\n%s", out)
	}
	if !strings.Contains(out, " 5😄") {
		t.Errorf("calendar should mark Jan 5 with its mood:\n%s", out)
	}
	if !strings.Contains(out, "31") {
		t.Errorf("calendar should contain the last day:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 7 {
		t.Errorf("expected title + header + 5 weeks = 7 lines, got %d", lines)
	}
}

func TestToReportJSON(t *testing.T) {
	entries := []entry.Entry{
		{Date: at(5, 19), Mood: entry.MoodDown, Energy: 2, Text: "a"},
		{Date: at(6, 20), Mood: entry.MoodDown, Energy: 1, Text: "b"},
	}
	rj := ToReportJSON(analysis.Analyze(entries))
	if rj.MoodPatterns["down"] != 2 {
		t.Errorf("MoodPatterns = %v", rj.MoodPatterns)
	}
	if rj.EnergyTrends["Mon"] != 2 || rj.EnergyTrends["Tue"] != 1 {
		t.Errorf("EnergyTrends = %v", rj.EnergyTrends)
	}
	if rj.MostProductiveTime != "evening" {
		t.Errorf("MostProductiveTime = %q, want evening", rj.MostProductiveTime)
	}

	var buf bytes.Buffer
	if err := FormatJSON(&buf, ToReportJSON(analysis.Analyze(nil))); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ins, ok := decoded["insights"].([]any); !ok || len(ins) != 0 {
		t.Errorf("empty report insights = %v, want []", decoded["insights"])
	}
	if _, ok := decoded["most_productive_time"]; ok {
		t.Error("empty report should omit most_productive_time")
	}
}

func TestToEntryJSON(t *testing.T) {
	got := ToEntryJSON(entry.Entry{ID: "abc12345", Date: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), Mood: entry.MoodGood, Energy: 6, Text: "ok"})
	if got.Date != "2026-01-05T09:00:00Z" || got.MoodDescription != "good" || got.MoodEmoji != "🙂" {
		t.Errorf("ToEntryJSON = %+v", got)
	}
	if ToEntriesJSON(nil) == nil {
		t.Error("ToEntriesJSON(nil) should be an empty slice")
	}
}
