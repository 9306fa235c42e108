package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
)

func TestGenerateSeedProfiles(t *testing.T) {
	now := at(20, 18)
	for name, p := range profiles {
		t.Run(name, func(t *testing.T) {
			got := generateSeed(p, now, rand.New(rand.NewSource(1)))
			if len(got) == 0 {
				t.Fatal("profile generated no check-ins")
			}
			earliest := now.AddDate(0, 0, -p.daysBack-1)
			seen := map[string]bool{}
			for i, e := range got {
				if !e.Mood.Valid() || e.Energy < entry.MinEnergy || e.Energy > entry.MaxEnergy || e.Text == "" {
					t.Errorf("invalid check-in %+v", e)
				}
				if e.Date.After(now) || e.Date.Before(earliest) {
					t.Errorf("date %v outside [%v, %v]", e.Date, earliest, now)
				}
				if h := e.Date.Hour(); h < p.hours[0] || h >= p.hours[1] {
					t.Errorf("hour %d outside profile hours %v", h, p.hours)
				}
				if i > 0 && e.Date.Before(got[i-1].Date) {
					t.Error("check-ins should be oldest first")
				}
				if seen[e.ID] {
					t.Errorf("duplicate id %q", e.ID)
				}
				seen[e.ID] = true
			}
		})
	}
}

func TestGenerateSeedDeterministic(t *testing.T) {
	p := profiles["weekend-recharge"]
	a := generateSeed(p, at(20, 18), rand.New(rand.NewSource(42)))
	b := generateSeed(p, at(20, 18), rand.New(rand.NewSource(42)))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Mood != b[i].Mood || a[i].Energy != b[i].Energy || a[i].Text != b[i].Text {
			t.Fatalf("check-in %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSeedRunEmptyJournal(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := seedRun(context.Background(), &buf, "", false, false, at(20, 18), rand.New(rand.NewSource(7))); err != nil {
		t.Fatalf("seedRun: %v", err)
	}
	var out struct {
		Profile string `json:"profile"`
		Created int    `json:"checkins_created"`
		Total   int    `json:"checkins_total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Profile != defaultProfile || out.Created == 0 || out.Total != out.Created {
		t.Errorf("output = %+v", out)
	}
	if got := len(loadAll(t)); got != out.Created {
		t.Errorf("store has %d check-ins, want %d", got, out.Created)
	}
}

func TestSeedRunNonEmptyJournal(t *testing.T) {
	existing := entry.Entry{ID: "keep0001", Date: at(3, 9), Mood: entry.MoodGood, Energy: 5, Text: "real"}
	rng := func() *rand.Rand { return rand.New(rand.NewSource(3)) }

	t.Run("non-interactive without yes", func(t *testing.T) {
		setupTestEnv(t, existing)
		err := seedRun(context.Background(), &bytes.Buffer{}, "burnout", false, false, at(20, 18), rng())
		if !errors.Is(err, storage.ErrValidation) {
			t.Fatalf("err = %v, want validation error", err)
		}
		if len(loadAll(t)) != 1 {
			t.Error("journal should be untouched")
		}
	})

	t.Run("declined", func(t *testing.T) {
		setupTestEnv(t, existing)
		orig := confirmer
		t.Cleanup(func() { confirmer = orig })
		confirmer = func(string) (bool, error) { return false, nil }

		var buf bytes.Buffer
		if err := seedRun(context.Background(), &buf, "burnout", false, true, at(20, 18), rng()); err != nil {
			t.Fatalf("seedRun: %v", err)
		}
		if !strings.Contains(buf.String(), "cancelled") || len(loadAll(t)) != 1 {
			t.Errorf("declined seed should not write: %q", buf.String())
		}
	})

	t.Run("yes keeps existing", func(t *testing.T) {
		setupTestEnv(t, existing)
		if err := seedRun(context.Background(), &bytes.Buffer{}, "burnout", true, false, at(20, 18), rng()); err != nil {
			t.Fatalf("seedRun: %v", err)
		}
		entries := loadAll(t)
		if len(entries) < 2 || entries[0].ID != "keep0001" {
			t.Errorf("existing check-in should be kept first, got %d entries", len(entries))
		}
	})
}

func TestSeedRunUnknownProfile(t *testing.T) {
	setupTestEnv(t)
	err := seedRun(context.Background(), &bytes.Buffer{}, "night-owl", false, false, at(20, 18), rand.New(rand.NewSource(1)))
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestWriteProfilesSorted(t *testing.T) {
	var buf bytes.Buffer
	writeProfiles(&buf)
	out := buf.String()
	if strings.Index(out, "balanced") > strings.Index(out, "burnout") ||
		strings.Index(out, "early-bird") > strings.Index(out, "weekend-recharge") {
		t.Errorf("profiles not sorted:\n%s", out)
	}
}
