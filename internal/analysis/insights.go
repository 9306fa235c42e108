package analysis

import (
	"fmt"
	"sort"

	"github.com/chris-regnier/moodlog/internal/entry"
)

// InsightWindow is the number of most recent check-ins insights look at.
const InsightWindow = 7

// Energy thresholds, exclusive on both ends.
const (
	highEnergyAbove = 7.0
	lowEnergyBelow  = 4.0
)

const (
	highEnergyInsight = "Your energy levels have been consistently high this week."
	lowEnergyInsight  = "Your energy levels have been lower than usual. Consider taking breaks between study sessions."
	moodInsightFormat = "You've most often felt %s this week."
)

// RecentWindow returns up to InsightWindow entries, newest first. Entries
// without a valid date sort after all dated ones. The input is not modified.
func RecentWindow(entries []entry.Entry) []entry.Entry {
	window := make([]entry.Entry, len(entries))
	copy(window, entries)
	sort.SliceStable(window, func(i, j int) bool {
		a, b := window[i], window[j]
		if !a.HasValidDate() || !b.HasValidDate() {
			return a.HasValidDate() && !b.HasValidDate()
		}
		return a.Date.After(b.Date)
	})
	if len(window) > InsightWindow {
		window = window[:InsightWindow]
	}
	return window
}

// AverageEnergy returns the mean energy, or 0 for no entries.
func AverageEnergy(entries []entry.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Energy
	}
	return float64(sum) / float64(len(entries))
}

// MostFrequentMood returns the most common mood. On a tie the mood seen
// first while scanning entries in order wins. Returns false for no entries.
func MostFrequentMood(entries []entry.Entry) (entry.Mood, bool) {
	if len(entries) == 0 {
		return entry.MoodUnknown, false
	}

	counts := make(map[entry.Mood]int)
	var order []entry.Mood
	for _, e := range entries {
		m := e.Mood.Normalize()
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}

	best := order[0]
	for _, m := range order[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return best, true
}

// GenerateInsights derives the insight lines from the most recent window:
// an energy line when the average is outside [4, 7], then the mood line.
// An empty collection yields no insights.
func GenerateInsights(entries []entry.Entry) []string {
	window := RecentWindow(entries)
	if len(window) == 0 {
		return nil
	}

	var insights []string
	avg := AverageEnergy(window)
	switch {
	case avg > highEnergyAbove:
		insights = append(insights, highEnergyInsight)
	case avg < lowEnergyBelow:
		insights = append(insights, lowEnergyInsight)
	}

	mood, _ := MostFrequentMood(window)
	insights = append(insights, fmt.Sprintf(moodInsightFormat, mood.Description()))
	return insights
}
