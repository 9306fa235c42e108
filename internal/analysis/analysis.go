// Package analysis turns a journal collection into trend aggregates and
// short natural-language insights. Every function here is pure: callers hand
// in the full collection and get a fresh Report back.
package analysis

import (
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
)

// Period is a time-of-day bucket.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// Periods lists the buckets in tie-break order.
var Periods = []Period{Morning, Afternoon, Evening}

// PeriodOf returns the bucket for an hour of the day.
func PeriodOf(hour int) Period {
	switch {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// TimeOfDay counts check-ins per time-of-day bucket.
type TimeOfDay struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// Count returns the count for a bucket.
func (t TimeOfDay) Count(p Period) int {
	switch p {
	case Morning:
		return t.Morning
	case Afternoon:
		return t.Afternoon
	case Evening:
		return t.Evening
	}
	return 0
}

// Total returns the number of bucketed check-ins.
func (t TimeOfDay) Total() int {
	return t.Morning + t.Afternoon + t.Evening
}

func (t *TimeOfDay) add(p Period) {
	switch p {
	case Morning:
		t.Morning++
	case Afternoon:
		t.Afternoon++
	case Evening:
		t.Evening++
	}
}

// Report holds the derived aggregates for a collection.
type Report struct {
	EnergyTrends [7]float64         `json:"energy_trends"`
	MoodPatterns map[entry.Mood]int `json:"mood_patterns"`
	TimeOfDay    TimeOfDay          `json:"time_of_day"`
	Insights     []string           `json:"insights"`
}

// Empty reports whether the report was computed from no check-ins.
func (r Report) Empty() bool {
	for _, n := range r.MoodPatterns {
		if n > 0 {
			return false
		}
	}
	return true
}

// Analyze computes the full report. It is safe on an empty collection and
// never reorders the slice it is given.
func Analyze(entries []entry.Entry) Report {
	return Report{
		EnergyTrends: EnergyTrends(entries),
		MoodPatterns: MoodPatterns(entries),
		TimeOfDay:    TimeOfDayPatterns(entries),
		Insights:     GenerateInsights(entries),
	}
}

// EnergyTrends averages energy per weekday, indexed 0=Sunday..6=Saturday.
// Weekdays without check-ins report 0. Entries without a valid date are skipped.
func EnergyTrends(entries []entry.Entry) [7]float64 {
	var sums [7]float64
	var counts [7]int
	for _, e := range entries {
		if !e.HasValidDate() {
			continue
		}
		day := e.Date.Local().Weekday()
		sums[day] += float64(e.Energy)
		counts[day]++
	}

	var trends [7]float64
	for d := range trends {
		if counts[d] > 0 {
			trends[d] = sums[d] / float64(counts[d])
		}
	}
	return trends
}

// MoodPatterns counts every entry by mood. Codes outside 1..5 are counted
// under MoodUnknown so the counts always add up to len(entries).
func MoodPatterns(entries []entry.Entry) map[entry.Mood]int {
	counts := make(map[entry.Mood]int)
	for _, e := range entries {
		counts[e.Mood.Normalize()]++
	}
	return counts
}

// TimeOfDayPatterns buckets entries by the local hour of their timestamp.
// Entries without a valid date are skipped.
func TimeOfDayPatterns(entries []entry.Entry) TimeOfDay {
	var t TimeOfDay
	for _, e := range entries {
		if !e.HasValidDate() {
			continue
		}
		t.add(PeriodOf(e.Date.Local().Hour()))
	}
	return t
}

// WeekdayName returns the short label for an EnergyTrends index.
func WeekdayName(i int) string {
	return time.Weekday(i).String()[:3]
}
