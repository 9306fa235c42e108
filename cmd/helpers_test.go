package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/blob"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T, dir string) storage.Store {
	t.Helper()
	s, err := blob.New(dir, nil)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the command globals at a fresh blob store seeded with
// entries and returns the data directory.
func setupTestEnv(t *testing.T, entries ...entry.Entry) string {
	t.Helper()
	dir := t.TempDir()
	store = setupTestStore(t, dir)
	if len(entries) > 0 {
		if err := store.Save(context.Background(), entries); err != nil {
			t.Fatalf("seeding storage: %v", err)
		}
	}
	session = journal.New(store, nil)
	logger = zap.NewNop()
	appConfig = &config.Config{
		Storage: "blob",
		DataDir: dir,
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "🔥",
			ShowMood:    true,
		},
	}
	jsonOutput = false
	t.Cleanup(func() { jsonOutput = false })
	return dir
}

func loadAll(t *testing.T) []entry.Entry {
	t.Helper()
	entries, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return entries
}

// at returns a local time in January 2026. Jan 5 2026 is a Monday.
func at(day, hour int) time.Time {
	return time.Date(2026, time.January, day, hour, 0, 0, 0, time.Local)
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
