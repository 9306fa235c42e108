package storage_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/logging"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/blob"
	"github.com/chris-regnier/moodlog/internal/storage/markdown"
	"github.com/chris-regnier/moodlog/internal/storage/postgres"
	"github.com/chris-regnier/moodlog/internal/storage/sqlite"
	_ "github.com/tursodatabase/go-libsql"
)

// backend bundles a store with a way to damage its persisted data behind its
// back, the way a hand-edited file or a stray write would.
type backend struct {
	store   storage.Store
	corrupt func(t *testing.T)
}

type storageFactory func(t *testing.T) backend

func blobFactory(t *testing.T) backend {
	t.Helper()
	dir := t.TempDir()
	log, _ := logging.NewTest()
	s, err := blob.New(dir, log)
	if err != nil {
		t.Fatalf("creating blob storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return backend{
		store: s,
		corrupt: func(t *testing.T) {
			t.Helper()
			path := filepath.Join(dir, "blob", blob.Key)
			if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
				t.Fatalf("corrupting payload: %v", err)
			}
		},
	}
}

func markdownFactory(t *testing.T) backend {
	t.Helper()
	dir := t.TempDir()
	log, _ := logging.NewTest()
	s, err := markdown.New(dir, log)
	if err != nil {
		t.Fatalf("creating markdown storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return backend{
		store: s,
		corrupt: func(t *testing.T) {
			t.Helper()
			path := filepath.Join(dir, "entries", "broken.md")
			if err := os.WriteFile(path, []byte("no front matter here"), 0o644); err != nil {
				t.Fatalf("corrupting entries: %v", err)
			}
		},
	}
}

func sqliteFactory(t *testing.T) backend {
	t.Helper()
	dir := t.TempDir()
	log, _ := logging.NewTest()
	s, err := sqlite.New(dir, log)
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return backend{
		store: s,
		corrupt: func(t *testing.T) {
			t.Helper()
			db, err := sql.Open("libsql", "file:"+filepath.Join(dir, "moodlog.db"))
			if err != nil {
				t.Fatalf("opening database: %v", err)
			}
			defer db.Close()
			if _, err := db.Exec(
				"INSERT INTO checkins (seq, id, date, mood, energy, text) VALUES (999, 'junk', 'yesterday-ish', 42, 5, 'x')",
			); err != nil {
				t.Fatalf("corrupting rows: %v", err)
			}
		},
	}
}

func postgresFactory(t *testing.T) backend {
	t.Helper()
	dsn := os.Getenv("MOODLOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MOODLOG_TEST_POSTGRES_DSN not set")
	}
	log, _ := logging.NewTest()
	s, err := postgres.New(context.Background(), dsn, log)
	if err != nil {
		t.Fatalf("creating postgres storage: %v", err)
	}
	if err := s.Save(context.Background(), nil); err != nil {
		t.Fatalf("resetting table: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return backend{store: s}
}

func makeEntry(t *testing.T, at time.Time, mood entry.Mood, energy int, text string) entry.Entry {
	t.Helper()
	id, err := entry.NewID()
	if err != nil {
		t.Fatalf("generating ID: %v", err)
	}
	return entry.Entry{
		ID:     id,
		Date:   at.UTC().Truncate(time.Second),
		Mood:   mood,
		Energy: energy,
		Text:   text,
	}
}

func dateLocalAt(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func assertSameEntries(t *testing.T, got, want []entry.Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID {
			t.Errorf("entry %d: ID = %q, want %q", i, g.ID, w.ID)
		}
		if !g.Date.Equal(w.Date) {
			t.Errorf("entry %d: Date = %v, want %v", i, g.Date, w.Date)
		}
		if g.Mood != w.Mood {
			t.Errorf("entry %d: Mood = %v, want %v", i, g.Mood, w.Mood)
		}
		if g.Energy != w.Energy {
			t.Errorf("entry %d: Energy = %d, want %d", i, g.Energy, w.Energy)
		}
		if g.Text != w.Text {
			t.Errorf("entry %d: Text = %q, want %q", i, g.Text, w.Text)
		}
	}
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	t.Run(name, func(t *testing.T) {
		ctx := context.Background()

		t.Run("Load empty", func(t *testing.T) {
			b := factory(t)
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got == nil {
				t.Error("Load returned nil slice, want empty")
			}
			if len(got) != 0 {
				t.Errorf("Load returned %d entries, want 0", len(got))
			}
		})

		t.Run("Save and Load round trip", func(t *testing.T) {
			b := factory(t)
			want := []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 1, 5, 9, 0), entry.MoodGood, 8, "Morning run"),
				makeEntry(t, dateLocalAt(2026, 1, 3, 20, 30), entry.MoodDown, 2, "Rough day\n\nwith two paragraphs"),
				makeEntry(t, dateLocalAt(2026, 1, 5, 14, 0), entry.MoodExcellent, 10, "Shipped it"),
			}
			if err := b.store.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			assertSameEntries(t, got, want)
		})

		t.Run("Save overwrites collection", func(t *testing.T) {
			b := factory(t)
			first := []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 2, 1, 8, 0), entry.MoodNeutral, 5, "one"),
				makeEntry(t, dateLocalAt(2026, 2, 2, 8, 0), entry.MoodNeutral, 5, "two"),
			}
			if err := b.store.Save(ctx, first); err != nil {
				t.Fatalf("Save: %v", err)
			}
			second := []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 2, 3, 8, 0), entry.MoodVeryGood, 7, "three"),
			}
			if err := b.store.Save(ctx, second); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			assertSameEntries(t, got, second)
		})

		t.Run("Save empty clears collection", func(t *testing.T) {
			b := factory(t)
			if err := b.store.Save(ctx, []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 3, 1, 8, 0), entry.MoodGood, 6, "x"),
			}); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := b.store.Save(ctx, nil); err != nil {
				t.Fatalf("Save nil: %v", err)
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Load returned %d entries, want 0", len(got))
			}
		})

		t.Run("Append preserves insertion order", func(t *testing.T) {
			b := factory(t)
			var all []entry.Entry
			for i, text := range []string{"c", "a", "b"} {
				all = append(all, makeEntry(t, dateLocalAt(2026, 4, 10-i, 12, 0), entry.MoodGood, 6, text))
				if err := b.store.Save(ctx, all); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			assertSameEntries(t, got, all)
		})

		t.Run("Undated entry survives", func(t *testing.T) {
			b := factory(t)
			e := makeEntry(t, time.Time{}, entry.MoodNeutral, 5, "no date")
			e.Date = time.Time{}
			if err := b.store.Save(ctx, []entry.Entry{e}); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d entries, want 1", len(got))
			}
			if got[0].HasValidDate() {
				t.Errorf("Date = %v, want zero", got[0].Date)
			}
			if got[0].Text != "no date" {
				t.Errorf("Text = %q", got[0].Text)
			}
		})

		t.Run("Malformed data is not an error", func(t *testing.T) {
			b := factory(t)
			if b.corrupt == nil {
				t.Skip("backend cannot be corrupted from the test")
			}
			if err := b.store.Save(ctx, []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 5, 1, 8, 0), entry.MoodGood, 6, "before"),
			}); err != nil {
				t.Fatalf("Save: %v", err)
			}
			b.corrupt(t)
			if _, err := b.store.Load(ctx); err != nil {
				t.Fatalf("Load after corruption: %v", err)
			}

			want := []entry.Entry{makeEntry(t, dateLocalAt(2026, 5, 2, 8, 0), entry.MoodVeryGood, 7, "after")}
			if err := b.store.Save(ctx, want); err != nil {
				t.Fatalf("Save after corruption: %v", err)
			}
			got, err := b.store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			assertSameEntries(t, got, want)
		})

		t.Run("Cancelled context", func(t *testing.T) {
			b := factory(t)
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			if err := b.store.Save(cctx, []entry.Entry{
				makeEntry(t, dateLocalAt(2026, 6, 1, 8, 0), entry.MoodGood, 6, "x"),
			}); err == nil {
				t.Error("Save with cancelled context succeeded, want error")
			}
		})
	})
}

func TestBlobStorage(t *testing.T) {
	runContractTests(t, "blob", blobFactory)
}

func TestMarkdownStorage(t *testing.T) {
	runContractTests(t, "markdown", markdownFactory)
}

func TestSQLiteStorage(t *testing.T) {
	runContractTests(t, "sqlite", sqliteFactory)
}

func TestPostgresStorage(t *testing.T) {
	runContractTests(t, "postgres", postgresFactory)
}

func TestMarkdownSaveAssignsIDOnce(t *testing.T) {
	dir := t.TempDir()
	s, err := markdown.New(dir, nil)
	if err != nil {
		t.Fatalf("creating markdown storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	entries := []entry.Entry{{Date: dateLocalAt(2026, 1, 5, 9, 0), Mood: entry.MoodGood, Energy: 5, Text: "no id yet"}}
	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if entries[0].ID == "" {
		t.Fatal("Save should write the assigned ID back into the collection")
	}
	first := entries[0].ID

	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if entries[0].ID != first {
		t.Errorf("ID changed between saves: %q -> %q", first, entries[0].ID)
	}

	var files []string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if len(files) != 1 || filepath.Base(files[0]) != first+".md" {
		t.Errorf("files = %v, want only %s.md", files, first)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != first {
		t.Errorf("loaded = %+v", loaded)
	}
}
