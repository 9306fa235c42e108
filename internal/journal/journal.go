// Package journal holds the in-memory journal state and the operations that
// move it forward: load, submit and reload. Derived analysis is always
// recomputed from the full collection.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	"go.uber.org/zap"
)

// State is a snapshot of the collection and everything derived from it.
type State struct {
	Entries  []entry.Entry
	Report   analysis.Report
	LoadedAt time.Time
}

// Session binds a store to the state transitions.
type Session struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// New returns a session over store. A nil logger discards output.
func New(store storage.Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: store, log: log.Named("journal"), now: time.Now}
}

// Store returns the underlying store.
func (s *Session) Store() storage.Store {
	return s.store
}

// Load reads the collection and computes a fresh report.
func (s *Session) Load(ctx context.Context) (State, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return State{}, err
	}
	if entries == nil {
		entries = []entry.Entry{}
	}
	s.log.Debug("loaded check-ins", zap.Int("count", len(entries)))
	return State{
		Entries:  entries,
		Report:   analysis.Analyze(entries),
		LoadedAt: s.now(),
	}, nil
}

// Reload is Load under another name; it is what change notifications call.
func (s *Session) Reload(ctx context.Context) (State, error) {
	return s.Load(ctx)
}

// Submit validates sub, appends it to the collection as currently stored,
// persists the whole collection and returns the recomputed state. The
// collection is re-read right before the append, so check-ins written by
// other processes since state was loaded are kept. On any failure state is
// returned unchanged and a rejected submission never touches the store.
func (s *Session) Submit(ctx context.Context, state State, sub entry.Submission, now time.Time) (State, entry.Entry, error) {
	e, err := sub.Build(now)
	if err != nil {
		s.log.Debug("submission rejected", zap.Error(err))
		return state, entry.Entry{}, fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return state, entry.Entry{}, err
	}
	if len(current) != len(state.Entries) {
		s.log.Debug("collection changed since load", zap.Int("held", len(state.Entries)), zap.Int("stored", len(current)))
	}

	entries := make([]entry.Entry, 0, len(current)+1)
	entries = append(entries, current...)
	entries = append(entries, e)

	if err := s.store.Save(ctx, entries); err != nil {
		return state, entry.Entry{}, err
	}
	s.log.Info("check-in saved", zap.String("id", e.ID), zap.Int("mood", int(e.Mood)), zap.Int("energy", e.Energy))

	return State{
		Entries:  entries,
		Report:   analysis.Analyze(entries),
		LoadedAt: s.now(),
	}, e, nil
}

// Follow reloads the state once per event and hands it to onState until ctx
// is done or events is closed. Reload failures are logged and skipped.
func (s *Session) Follow(ctx context.Context, events <-chan storage.Event, onState func(State)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			state, err := s.Reload(ctx)
			if err != nil {
				s.log.Warn("reload after change failed", zap.String("path", ev.Path), zap.Error(err))
				continue
			}
			onState(state)
		}
	}
}
