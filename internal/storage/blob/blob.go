// Package blob stores the whole journal as one JSON document in a diskv
// key-value store, keyed like the browser localStorage slot it replaces.
package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// Key is the diskv key holding the journal payload.
const Key = "journal"

// Store implements storage.Store on top of diskv.
type Store struct {
	d    *diskv.Diskv
	base string
	log  *zap.Logger
}

// New creates a blob store under dataDir/blob.
func New(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	base := filepath.Join(dataDir, "blob")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating blob directory: %v", storage.ErrStorage, err)
	}
	d := diskv.New(diskv.Options{
		BasePath:  base,
		Transform: func(string) []string { return []string{} },
		// No cache: another process may rewrite the payload at any time.
		CacheSizeMax: 0,
	})
	return &Store{d: d, base: base, log: log.With(zap.String("backend", "blob"))}, nil
}

// Close is a no-op for the blob backend.
func (s *Store) Close() error {
	return nil
}

// Load reads the payload. A missing key is an empty journal; a payload that
// does not decode is logged and also treated as empty.
func (s *Store) Load(ctx context.Context) ([]entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.d.Read(Key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entry.Entry{}, nil
		}
		return nil, fmt.Errorf("%w: reading payload: %v", storage.ErrStorage, err)
	}

	entries, err := storage.DecodePayload(data)
	if err != nil {
		s.log.Warn("discarding malformed payload", zap.String("key", Key), zap.Error(err))
		return []entry.Entry{}, nil
	}
	return entries, nil
}

// Save overwrites the payload with entries.
func (s *Store) Save(ctx context.Context, entries []entry.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := storage.EncodePayload(entries)
	if err != nil {
		return err
	}
	if err := s.d.Write(Key, data); err != nil {
		return fmt.Errorf("%w: writing payload: %v", storage.ErrStorage, err)
	}
	return nil
}

// Watch reports changes to the payload made by any process.
func (s *Store) Watch(ctx context.Context) (<-chan storage.Event, error) {
	return storage.WatchDir(ctx, s.base, s.log)
}
