package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mood is the ordinal mood code of a check-in, from down (1) to excellent (5).
type Mood int

const (
	MoodUnknown Mood = iota
	MoodDown
	MoodNeutral
	MoodGood
	MoodVeryGood
	MoodExcellent
)

// Moods lists the selectable moods in ascending order.
var Moods = []Mood{MoodDown, MoodNeutral, MoodGood, MoodVeryGood, MoodExcellent}

var moodNames = map[Mood]string{
	MoodDown:      "down",
	MoodNeutral:   "neutral",
	MoodGood:      "good",
	MoodVeryGood:  "very good",
	MoodExcellent: "excellent",
}

var moodEmoji = map[Mood]string{
	MoodDown:      "😔",
	MoodNeutral:   "😐",
	MoodGood:      "🙂",
	MoodVeryGood:  "😊",
	MoodExcellent: "😄",
}

// Valid reports whether m is one of the five known codes.
func (m Mood) Valid() bool {
	return m >= MoodDown && m <= MoodExcellent
}

// Normalize maps any code outside the known range to MoodUnknown.
func (m Mood) Normalize() Mood {
	if !m.Valid() {
		return MoodUnknown
	}
	return m
}

// Description returns the adjective used in insights. Unknown moods read as "neutral".
func (m Mood) Description() string {
	if name, ok := moodNames[m]; ok {
		return name
	}
	return "neutral"
}

// Emoji returns the glyph shown on the calendar.
func (m Mood) Emoji() string {
	if e, ok := moodEmoji[m]; ok {
		return e
	}
	return "🤔"
}

func (m Mood) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return moodNames[m]
}

// ParseMood accepts a numeric code ("1".."5") or a mood name ("very good", "very-good").
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mood(n); m.Valid() {
			return m, nil
		}
		return MoodUnknown, fmt.Errorf("invalid mood %q: must be 1-5", s)
	}
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	for m, name := range moodNames {
		if name == s {
			return m, nil
		}
	}
	return MoodUnknown, fmt.Errorf("invalid mood %q: must be 1-5 or one of down, neutral, good, very good, excellent", s)
}

// MarshalJSON writes the numeric code.
func (m Mood) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(m.Normalize()))), nil
}

// UnmarshalJSON accepts a number or a numeric string. Anything else decodes
// to MoodUnknown instead of failing the surrounding payload.
func (m *Mood) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Mood(n).Normalize()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*m = Mood(n).Normalize()
			return nil
		}
	}
	*m = MoodUnknown
	return nil
}
