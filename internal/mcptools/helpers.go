package mcptools

import (
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
)

const dayLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.Local)
}

func toResult(e entry.Entry) CheckinResult {
	r := CheckinResult{
		ID:        e.ID,
		Mood:      int(e.Mood),
		MoodLabel: e.Mood.Emoji() + " " + e.Mood.Description(),
		Energy:    e.Energy,
		Text:      e.Text,
	}
	if e.HasValidDate() {
		r.Date = e.Date.Format(time.RFC3339)
	}
	return r
}
