package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// DefaultCacheTTL applies when the configured TTL does not parse.
const DefaultCacheTTL = 5 * time.Minute

// Status is what the prompt shows about the journal.
type Status struct {
	Today  bool
	Streak int
	Mood   entry.Mood // latest check-in today, MoodUnknown when none
}

// ComputeStatus loads the collection and derives the prompt status at now.
func ComputeStatus(ctx context.Context, store storage.Store, now time.Time) (Status, error) {
	entries, err := store.Load(ctx)
	if err != nil {
		return Status{}, err
	}

	var st Status
	var latest time.Time
	for _, e := range entries {
		if !e.HasValidDate() || !calendar.SameDay(e.Date, now) {
			continue
		}
		st.Today = true
		if !e.Date.Before(latest) {
			latest = e.Date
			st.Mood = e.Mood
		}
	}
	st.Streak = calendar.Streak(entries, now)
	return st, nil
}

// FromCache converts a cached status back.
func FromCache(c *PromptCache) Status {
	st := Status{Today: c.Today, Streak: c.Streak}
	if c.Mood != "" {
		if m, err := entry.ParseMood(c.Mood); err == nil {
			st.Mood = m
		}
	}
	return st
}

// Cached returns the prompt status, reading the cache when it is fresh and
// recomputing (and rewriting the cache) otherwise. A failed cache write is
// logged and does not fail the call.
func Cached(ctx context.Context, store storage.Store, dataDir, backend string, ttl time.Duration, refresh bool, now time.Time, log *zap.Logger) (Status, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if c := ReadCache(dataDir); !refresh && c.IsFresh(ttl, now) {
		return FromCache(c), nil
	}

	st, err := ComputeStatus(ctx, store, now)
	if err != nil {
		return Status{}, err
	}
	c := &PromptCache{
		Today:          st.Today,
		Streak:         st.Streak,
		TodayDate:      now.Format(dayLayout),
		StorageBackend: backend,
		UpdatedAt:      now,
	}
	if st.Mood.Valid() {
		c.Mood = st.Mood.Description()
	}
	if err := WriteCache(dataDir, c); err != nil {
		log.Warn("could not write prompt cache", zap.Error(err))
	}
	return st, nil
}

// ParseTTL parses the configured cache TTL, falling back to DefaultCacheTTL.
func ParseTTL(s string) time.Duration {
	ttl, err := time.ParseDuration(s)
	if err != nil || ttl < 0 {
		return DefaultCacheTTL
	}
	return ttl
}

// Format renders the one-line prompt segment, e.g. "✓ 🙂 3🔥".
func Format(st Status, cfg config.ShellConfig) string {
	icon := cfg.NoTodayIcon
	if st.Today {
		icon = cfg.TodayIcon
	}
	parts := []string{icon}
	if cfg.ShowMood && st.Mood.Valid() {
		parts = append(parts, st.Mood.Emoji())
	}
	parts = append(parts, fmt.Sprintf("%d%s", st.Streak, cfg.StreakIcon))
	return strings.Join(parts, " ")
}

// WriteEnv writes shell export statements for the prompt hook.
func WriteEnv(w io.Writer, st Status, cfg config.ShellConfig) {
	icon := cfg.NoTodayIcon
	if st.Today {
		icon = cfg.TodayIcon
	}
	fmt.Fprintf(w, "export MOODLOG_TODAY=%q\n", icon)
	fmt.Fprintf(w, "export MOODLOG_STREAK=%q\n", fmt.Sprint(st.Streak))
	fmt.Fprintf(w, "export MOODLOG_STREAK_ICON=%q\n", cfg.StreakIcon)
	if st.Mood.Valid() {
		fmt.Fprintf(w, "export MOODLOG_MOOD=%q\n", st.Mood.Description())
		fmt.Fprintf(w, "export MOODLOG_MOOD_EMOJI=%q\n", st.Mood.Emoji())
	} else {
		fmt.Fprintln(w, "unset MOODLOG_MOOD MOODLOG_MOOD_EMOJI")
	}
}
