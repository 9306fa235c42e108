package shell

import (
	"os"
	"testing"
	"time"
)

func TestPromptCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if ReadCache(dir) != nil {
		t.Fatal("missing cache should read as nil")
	}

	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.Local)
	in := &PromptCache{Today: true, Streak: 3, Mood: "good", TodayDate: "2026-01-07", StorageBackend: "blob", UpdatedAt: now}
	if err := WriteCache(dir, in); err != nil {
		t.Fatalf("WriteCache: %v", err)
	}
	got := ReadCache(dir)
	if got == nil || got.Streak != 3 || got.Mood != "good" || !got.Today {
		t.Fatalf("ReadCache = %+v", got)
	}

	if err := InvalidateCache(dir); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if ReadCache(dir) != nil {
		t.Error("cache should be gone after invalidation")
	}
	if err := InvalidateCache(dir); err != nil {
		t.Errorf("invalidating a missing cache: %v", err)
	}
}

func TestReadCacheCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(CachePath(dir), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if ReadCache(dir) != nil {
		t.Error("corrupt cache should read as nil")
	}
}

func TestPromptCacheIsFresh(t *testing.T) {
	ttl := 30 * time.Minute
	morning := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)
	late := time.Date(2026, 1, 7, 23, 50, 0, 0, time.Local)

	tests := []struct {
		name    string
		written time.Time
		now     time.Time
		want    bool
	}{
		{"within ttl", morning, morning.Add(5 * time.Minute), true},
		{"ttl elapsed", morning, morning.Add(31 * time.Minute), false},
		{"midnight rollover", late, late.Add(15 * time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &PromptCache{TodayDate: tt.written.Format("2006-01-02"), UpdatedAt: tt.written}
			if got := c.IsFresh(ttl, tt.now); got != tt.want {
				t.Errorf("IsFresh = %v, want %v", got, tt.want)
			}
		})
	}

	var nilCache *PromptCache
	if nilCache.IsFresh(ttl, morning) {
		t.Error("nil cache is never fresh")
	}
}
