package entry

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// dateLayouts are tried in order when decoding a stored date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Entry represents a single check-in.
type Entry struct {
	ID     string    `json:"id,omitempty"`
	Date   time.Time `json:"date"`
	Mood   Mood      `json:"mood"`
	Energy int       `json:"energy"`
	Text   string    `json:"text"`
}

// NewID generates a new nanoid for an entry.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid entry ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// HasValidDate reports whether the entry carries a usable timestamp.
// Entries whose stored date could not be parsed have a zero Date.
func (e Entry) HasValidDate() bool {
	return !e.Date.IsZero()
}

// Preview returns a single-line preview of the reflection of at most maxLen
// runes, ending in "..." when cut.
func (e Entry) Preview(maxLen int) string {
	text := []rune(strings.ReplaceAll(e.Text, "\n", " "))
	if len(text) <= maxLen {
		return string(text)
	}
	if maxLen <= 3 {
		return string(text[:max(maxLen, 0)])
	}
	return string(text[:maxLen-3]) + "..."
}

// ParseDate parses a stored date string using the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

type entryJSON struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Mood   Mood   `json:"mood"`
	Energy int    `json:"energy"`
	Text   string `json:"text"`
}

// MarshalJSON writes the date as RFC3339 in UTC, or an empty string when unparseable.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{ID: e.ID, Mood: e.Mood, Energy: e.Energy, Text: e.Text}
	if e.HasValidDate() {
		out.Date = e.Date.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an entry. Bad field values (an unparseable date, an
// unknown mood, a non-numeric energy) decode to zero values instead of
// failing, so one bad entry does not discard the collection.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     string          `json:"id"`
		Date   json.RawMessage `json:"date"`
		Mood   Mood            `json:"mood"`
		Energy json.RawMessage `json:"energy"`
		Text   string          `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry{ID: raw.ID, Mood: raw.Mood, Text: raw.Text}

	var dateStr string
	if err := json.Unmarshal(raw.Date, &dateStr); err == nil {
		if t, err := ParseDate(dateStr); err == nil {
			e.Date = t
		}
	}

	e.Energy = decodeEnergy(raw.Energy)
	return nil
}

// decodeEnergy accepts a number or a numeric string and rounds it to the
// nearest level. Anything else decodes to 0.
func decodeEnergy(data json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		if n, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(math.Round(n))
}
