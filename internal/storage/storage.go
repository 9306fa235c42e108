package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chris-regnier/moodlog/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
	ErrMalformed  = errors.New("malformed payload")
)

// Store persists the whole journal collection.
//
// Load returns the stored check-ins in insertion order, or an empty slice
// when nothing was saved yet. A payload that cannot be decoded is logged and
// read as empty; only I/O failures are returned as errors.
//
// Save replaces the persisted collection with entries.
type Store interface {
	Load(ctx context.Context) ([]entry.Entry, error)
	Save(ctx context.Context, entries []entry.Entry) error
	Close() error
}

// Watcher is implemented by stores that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// EventType describes a change notification.
type EventType int

const (
	// EventChanged means the persisted collection may differ from what was
	// last loaded. Consumers reload everything.
	EventChanged EventType = iota
)

// Event is emitted by Watcher.Watch when the underlying storage changes.
type Event struct {
	Type EventType
	Path string
}

// Payload is the serialized form of a collection.
type Payload struct {
	Reflections []entry.Entry `json:"reflections"`
}

// EncodePayload serializes entries as {"reflections":[...]}.
func EncodePayload(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	data, err := json.Marshal(Payload{Reflections: entries})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrStorage, err)
	}
	return data, nil
}

// DecodePayload parses a stored payload. Empty input is an empty collection.
// Anything that does not decode returns an error wrapping ErrMalformed.
func DecodePayload(data []byte) ([]entry.Entry, error) {
	if len(data) == 0 {
		return []entry.Entry{}, nil
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Reflections == nil {
		return []entry.Entry{}, nil
	}
	return p.Reflections, nil
}
