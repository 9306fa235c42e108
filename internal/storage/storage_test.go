package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"go.uber.org/zap"
)

func TestEncodePayloadShape(t *testing.T) {
	data, err := EncodePayload(nil)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	if string(data) != `{"reflections":[]}` {
		t.Errorf("EncodePayload(nil) = %s", data)
	}

	data, err = EncodePayload([]entry.Entry{{
		Date:   time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		Mood:   entry.MoodGood,
		Energy: 7,
		Text:   "ok",
	}})
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	for _, want := range []string{`"reflections":[`, `"date":"2026-01-05T09:30:00Z"`, `"mood":3`, `"energy":7`, `"text":"ok"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("payload %s missing %s", data, want)
		}
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLen   int
		malformed bool
	}{
		{"empty input", "", 0, false},
		{"empty object", `{}`, 0, false},
		{"empty list", `{"reflections":[]}`, 0, false},
		{"string mood", `{"reflections":[{"date":"2026-01-05T09:30:00.000Z","mood":"4","energy":6,"text":"hi"}]}`, 1, false},
		{"not json", `{"reflections":`, 0, true},
		{"wrong shape", `{"reflections":"nope"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload([]byte(tt.input))
			if tt.malformed {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("err = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePayload: %v", err)
			}
			if got == nil {
				t.Fatal("DecodePayload returned nil slice")
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestDecodePayloadStringMood(t *testing.T) {
	got, err := DecodePayload([]byte(`{"reflections":[{"date":"2026-01-05T09:30:00.000Z","mood":"4","energy":6,"text":"hi"}]}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if got[0].Mood != entry.MoodVeryGood {
		t.Errorf("Mood = %v, want %v", got[0].Mood, entry.MoodVeryGood)
	}
	if got[0].Energy != 6 {
		t.Errorf("Energy = %d, want 6", got[0].Energy)
	}
}

func TestDecodePayloadKeepsEntryWithBadEnergy(t *testing.T) {
	payload := `{"reflections":[
		{"date":"2026-01-05T09:30:00.000Z","mood":4,"energy":6,"text":"good one"},
		{"date":"2026-01-01","mood":3,"energy":"abc","text":"bad energy"},
		{"date":"2026-01-06T20:00:00.000Z","mood":2,"energy":true,"text":"also bad"},
		{"date":"2026-01-07T08:00:00.000Z","mood":5,"energy":7.6,"text":"fractional"}
	]}`
	got, err := DecodePayload([]byte(payload))
	if err != nil {
		t.Fatalf("one bad field must not discard the collection: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Energy != 6 || got[1].Energy != 0 || got[2].Energy != 0 || got[3].Energy != 8 {
		t.Errorf("energies = %d %d %d %d, want 6 0 0 8", got[0].Energy, got[1].Energy, got[2].Energy, got[3].Energy)
	}
	if got[1].Text != "bad energy" || got[1].Mood != entry.MoodGood {
		t.Errorf("bad-energy entry lost its other fields: %+v", got[1])
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	var mu sync.Mutex
	var sent []Event
	th := newEventThrottle(20*time.Millisecond, func(ev Event) {
		mu.Lock()
		sent = append(sent, ev)
		mu.Unlock()
	})
	defer th.Stop()

	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventChanged, Path: filepath.Join("x", string(rune('a'+i)))})
	}
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 1 {
		t.Fatalf("sent %d events, want 1", len(sent))
	}
	if sent[0].Path != filepath.Join("x", "e") {
		t.Errorf("Path = %q, want last enqueued", sent[0].Path)
	}
}

func TestEventThrottleStopDropsPending(t *testing.T) {
	called := make(chan struct{}, 1)
	th := newEventThrottle(20*time.Millisecond, func(Event) { called <- struct{}{} })
	th.Enqueue(Event{Type: EventChanged})
	th.Stop()
	th.Enqueue(Event{Type: EventChanged})

	select {
	case <-called:
		t.Fatal("event sent after Stop")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestWatchDirReportsWrites(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := WatchDir(ctx, dir, zap.NewNop())
	if err != nil {
		t.Fatalf("WatchDir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "journal"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type != EventChanged {
			t.Errorf("Type = %v, want EventChanged", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after write")
	}

	cancel()
	for range events {
	}
}
