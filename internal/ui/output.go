package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/entry"
)

// Date layouts used in output.
const (
	LongDateLayout  = "Monday, January 2, 2006"
	ShortDateLayout = "2006-01-02 15:04"
)

const (
	CheckinSavedMessage = "Check-in saved successfully!"
	NoEntriesMessage    = "No check-ins found."
	InsightsHeading     = "This Week's Insights"
	energyBarWidth      = 10
)

// EnergyBar draws energy as a fixed-width bar, e.g. "██████░░░░".
func EnergyBar(energy, width int) string {
	if width <= 0 {
		width = energyBarWidth
	}
	filled := energy * width / entry.MaxEnergy
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatDate renders an entry date, or "undated" for entries whose date did
// not parse.
func FormatDate(e entry.Entry, layout string) string {
	if !e.HasValidDate() {
		return "undated"
	}
	return e.Date.Local().Format(layout)
}

// FormatCheckinSaved formats the confirmation shown after a successful save.
func FormatCheckinSaved(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "%s %s %s (%s)\n", CheckinSavedMessage, e.Mood.Emoji(), e.ID, FormatDate(e, ShortDateLayout))
}

// NewestFirst returns a copy of entries sorted by date, newest first.
// Undated entries go last; ties keep insertion order.
func NewestFirst(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasValidDate() != b.HasValidDate() {
			return a.HasValidDate()
		}
		return a.Date.After(b.Date)
	})
	return out
}

// FormatEntryList writes one line per check-in.
func FormatEntryList(w io.Writer, entries []entry.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, NoEntriesMessage)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %-9s  %s %2d  %s\n",
			FormatDate(e, ShortDateLayout),
			e.Mood.Emoji(),
			e.Mood.Description(),
			EnergyBar(e.Energy, energyBarWidth),
			e.Energy,
			e.Preview(50),
		)
	}
}

// FormatDayDetail writes the full view of one check-in. The reflection is
// rendered as markdown with the given glamour style.
func FormatDayDetail(w io.Writer, e entry.Entry, width int, markdownStyle string) {
	fmt.Fprintln(w, FormatDate(e, LongDateLayout))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Mood: %s %s\n", e.Mood.Emoji(), e.Mood.Description())
	fmt.Fprintf(w, "Energy Level: %s %d/10\n", EnergyBar(e.Energy, energyBarWidth), e.Energy)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reflection:")
	fmt.Fprintln(w, RenderMarkdownWithStyle(e.Text, width, markdownStyle))
}

// FormatNoDayEntry is printed when a day has no check-in.
func FormatNoDayEntry(w io.Writer, day time.Time) {
	fmt.Fprintf(w, "No check-in on %s.\n", day.Format(LongDateLayout))
}

// InsightsMarkdown renders the pattern and summary panels as markdown.
func InsightsMarkdown(r analysis.Report) string {
	var b strings.Builder
	b.WriteString("## " + InsightsHeading + "\n\n")
	if len(r.Insights) == 0 {
		b.WriteString(analysis.EmptyPatternsMessage + "\n\n")
	} else {
		for _, in := range r.Insights {
			b.WriteString("- " + in + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	lines := analysis.Summary(r)
	if len(lines) == 1 {
		b.WriteString(lines[0] + "\n")
	} else {
		b.WriteString(lines[0] + "\n\n")
		for _, l := range lines[1:] {
			b.WriteString("- " + l + "\n")
		}
	}

	if !r.Empty() {
		b.WriteString("\n## Energy by Weekday\n\n")
		b.WriteString("| Day | Average | |\n|---|---|---|\n")
		for i, avg := range r.EnergyTrends {
			fmt.Fprintf(&b, "| %s | %.1f | `%s` |\n", analysis.WeekdayName(i), avg, EnergyBar(int(avg+0.5), energyBarWidth))
		}

		b.WriteString("\n## Time of Day\n\n")
		for _, p := range analysis.Periods {
			fmt.Fprintf(&b, "- %s: %d\n", p, r.TimeOfDay.Count(p))
		}

		b.WriteString("\n## Moods\n\n")
		for _, m := range append([]entry.Mood{entry.MoodUnknown}, entry.Moods...) {
			if n := r.MoodPatterns[m]; n > 0 {
				fmt.Fprintf(&b, "- %s %s: %d\n", m.Emoji(), m.Description(), n)
			}
		}
	}
	return b.String()
}

// FormatInsights writes the report rendered through glamour.
func FormatInsights(w io.Writer, r analysis.Report, width int, markdownStyle string) {
	fmt.Fprintln(w, RenderMarkdownWithStyle(InsightsMarkdown(r), width, markdownStyle))
}

// FormatCalendar writes a plain month grid. Days with a check-in show the
// mood emoji of the first check-in that day.
func FormatCalendar(w io.Writer, m calendar.Month) {
	fmt.Fprintf(w, "%s\n", m.Title())
	for i := 0; i < 7; i++ {
		fmt.Fprintf(w, " %-4s", analysis.WeekdayName(i)[:3])
	}
	fmt.Fprintln(w)
	for _, week := range m.Weeks() {
		for _, c := range week {
			switch {
			case c == nil:
				fmt.Fprint(w, "     ")
			case c.Entry != nil:
				fmt.Fprintf(w, " %2d%s", c.Day, c.Entry.Mood.Emoji())
			default:
				fmt.Fprintf(w, " %2d  ", c.Day)
			}
		}
		fmt.Fprintln(w)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntryJSON is the JSON shape of a check-in in command and tool output.
type EntryJSON struct {
	ID              string `json:"id,omitempty"`
	Date            string `json:"date"`
	Mood            int    `json:"mood"`
	MoodDescription string `json:"mood_description"`
	MoodEmoji       string `json:"mood_emoji"`
	Energy          int    `json:"energy"`
	Text            string `json:"text"`
}

// ToEntryJSON converts an entry for JSON output.
func ToEntryJSON(e entry.Entry) EntryJSON {
	var date string
	if e.HasValidDate() {
		date = e.Date.Format(time.RFC3339)
	}
	return EntryJSON{
		ID:              e.ID,
		Date:            date,
		Mood:            int(e.Mood),
		MoodDescription: e.Mood.Description(),
		MoodEmoji:       e.Mood.Emoji(),
		Energy:          e.Energy,
		Text:            e.Text,
	}
}

// ToEntriesJSON converts a slice; the result is never nil.
func ToEntriesJSON(entries []entry.Entry) []EntryJSON {
	out := make([]EntryJSON, len(entries))
	for i, e := range entries {
		out[i] = ToEntryJSON(e)
	}
	return out
}

// ReportJSON is the JSON shape of an analysis report.
type ReportJSON struct {
	EnergyTrends       map[string]float64 `json:"energy_trends"`
	MoodPatterns       map[string]int     `json:"mood_patterns"`
	TimeOfDay          analysis.TimeOfDay `json:"time_of_day"`
	Insights           []string           `json:"insights"`
	Summary            []string           `json:"summary"`
	MostProductiveTime string             `json:"most_productive_time,omitempty"`
}

// ToReportJSON converts a report. Weekdays and moods are keyed by name.
func ToReportJSON(r analysis.Report) ReportJSON {
	out := ReportJSON{
		EnergyTrends: make(map[string]float64, 7),
		MoodPatterns: make(map[string]int, len(r.MoodPatterns)),
		TimeOfDay:    r.TimeOfDay,
		Insights:     r.Insights,
		Summary:      analysis.Summary(r),
	}
	if out.Insights == nil {
		out.Insights = []string{}
	}
	for i, avg := range r.EnergyTrends {
		out.EnergyTrends[analysis.WeekdayName(i)] = avg
	}
	for m, n := range r.MoodPatterns {
		out.MoodPatterns[m.Description()] += n
	}
	if p, ok := analysis.MostProductiveTime(r.TimeOfDay); ok {
		out.MostProductiveTime = string(p)
	}
	return out
}
