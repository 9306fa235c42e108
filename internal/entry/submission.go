package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Energy bounds for a check-in.
const (
	MinEnergy     = 0
	MaxEnergy     = 10
	DefaultEnergy = 5
)

// Submission errors. Their messages are shown to the user as-is.
var (
	ErrMoodRequired       = errors.New("Please select your mood before saving.")
	ErrReflectionRequired = errors.New("Please add a reflection before saving.")
	ErrEnergyRange        = errors.New("Energy must be between 0 and 10.")
	ErrFutureDate         = errors.New("Check-ins cannot be dated in the future.")
)

// Submission is the raw input of a new check-in before validation.
// Nil Date and Energy fall back to now and DefaultEnergy.
type Submission struct {
	Date   *time.Time
	Mood   Mood
	Energy *int
	Text   string
}

// Validate checks the submission against the input rules without building an entry.
func (s Submission) Validate(now time.Time) error {
	if !s.Mood.Valid() {
		return ErrMoodRequired
	}
	if strings.TrimSpace(s.Text) == "" {
		return ErrReflectionRequired
	}
	if s.Energy != nil && (*s.Energy < MinEnergy || *s.Energy > MaxEnergy) {
		return fmt.Errorf("%w (got %d)", ErrEnergyRange, *s.Energy)
	}
	if s.Date != nil && s.Date.After(endOfDay(now)) {
		return ErrFutureDate
	}
	return nil
}

// Build validates the submission and returns the entry to persist.
func (s Submission) Build(now time.Time) (Entry, error) {
	if err := s.Validate(now); err != nil {
		return Entry{}, err
	}

	id, err := NewID()
	if err != nil {
		return Entry{}, fmt.Errorf("generating ID: %w", err)
	}

	date := now
	if s.Date != nil {
		date = *s.Date
	}
	energy := DefaultEnergy
	if s.Energy != nil {
		energy = *s.Energy
	}

	return Entry{
		ID:     id,
		Date:   date,
		Mood:   s.Mood,
		Energy: energy,
		Text:   s.Text,
	}, nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ValidationMessage returns the user-facing text of the submission error
// wrapped in err, or err's own text when it wraps none.
func ValidationMessage(err error) string {
	for _, target := range []error{ErrMoodRequired, ErrReflectionRequired, ErrEnergyRange, ErrFutureDate} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
