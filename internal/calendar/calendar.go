// Package calendar lays check-ins out by calendar day: month grids, day
// lookup and streaks. Days are compared in the local timezone.
package calendar

import (
	"fmt"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
)

// Cell is one day of a month grid.
type Cell struct {
	Day   int
	Date  time.Time
	Entry *entry.Entry // first check-in of the day, nil when none
}

// Month is a calendar month ready to be painted as a 7-column grid
// starting on Sunday.
type Month struct {
	Year    int
	Month   time.Month
	Leading int // blank cells before the 1st
	Cells   []Cell
}

// Title returns e.g. "January 2026".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Weeks splits the month into rows of seven, padding blanks with nil.
func (m Month) Weeks() [][]*Cell {
	slots := make([]*Cell, m.Leading, m.Leading+len(m.Cells)+6)
	for i := range m.Cells {
		slots = append(slots, &m.Cells[i])
	}
	for len(slots)%7 != 0 {
		slots = append(slots, nil)
	}

	weeks := make([][]*Cell, 0, len(slots)/7)
	for i := 0; i < len(slots); i += 7 {
		weeks = append(weeks, slots[i:i+7])
	}
	return weeks
}

// NormalizeDate returns local midnight for t.
//
//	input:  2024-01-15 14:30:45
//	output: 2024-01-15 00:00:00
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// DayEntry returns the first check-in, in collection order, dated on day.
// Later check-ins on the same day are not returned.
func DayEntry(entries []entry.Entry, day time.Time) (entry.Entry, bool) {
	for _, e := range entries {
		if e.HasValidDate() && SameDay(e.Date, day) {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// DayEntries returns every check-in dated on day, in collection order.
func DayEntries(entries []entry.Entry, day time.Time) []entry.Entry {
	var out []entry.Entry
	for _, e := range entries {
		if e.HasValidDate() && SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out
}

// BuildMonth builds the grid for year/month with each day's first check-in.
func BuildMonth(year int, month time.Month, entries []entry.Entry) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDay := make(map[int]int, daysInMonth)
	for i, e := range entries {
		if !e.HasValidDate() {
			continue
		}
		y, m, d := e.Date.Local().Date()
		if y != year || m != month {
			continue
		}
		if _, seen := byDay[d]; !seen {
			byDay[d] = i
		}
	}

	m := Month{
		Year:    year,
		Month:   month,
		Leading: int(first.Weekday()),
		Cells:   make([]Cell, daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		cell := Cell{Day: d, Date: time.Date(year, month, d, 0, 0, 0, 0, time.Local)}
		if i, ok := byDay[d]; ok {
			e := entries[i]
			cell.Entry = &e
		}
		m.Cells[d-1] = cell
	}
	return m
}

// CheckinTime stamps a check-in recorded for day: now when day is today,
// otherwise noon of that day.
func CheckinTime(day, now time.Time) time.Time {
	if SameDay(day, now) {
		return now
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, day.Location())
}

// HasEntryOn reports whether any check-in is dated on day.
func HasEntryOn(entries []entry.Entry, day time.Time) bool {
	_, ok := DayEntry(entries, day)
	return ok
}

// Streak counts consecutive days with at least one check-in, ending today.
// A day without a check-in today means a streak of 0.
func Streak(entries []entry.Entry, today time.Time) int {
	daySet := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.HasValidDate() {
			daySet[e.Date.Local().Format("2006-01-02")] = true
		}
	}

	streak := 0
	check := NormalizeDate(today)
	for daySet[check.Format("2006-01-02")] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}
