// Package postgres stores check-ins in PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkins (
	seq    INTEGER PRIMARY KEY,
	id     TEXT NOT NULL DEFAULT '',
	date   TIMESTAMPTZ,
	mood   SMALLINT NOT NULL,
	energy SMALLINT NOT NULL,
	text   TEXT NOT NULL
);
`

// Store implements storage.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// New connects to dsn and makes sure the schema exists.
func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres_dsn is not set", storage.ErrStorage)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting: %v", storage.ErrStorage, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", storage.ErrStorage, err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}

	return &Store{pool: pool, log: log.With(zap.String("backend", "postgres"))}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Load returns every check-in in insertion order.
func (s *Store) Load(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, date, mood, energy, text FROM checkins ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: listing check-ins: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		var (
			e    entry.Entry
			date *time.Time
			mood int16
			enrg int16
		)
		if err := rows.Scan(&e.ID, &date, &mood, &enrg, &e.Text); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		if date != nil {
			e.Date = *date
		}
		e.Mood = entry.Mood(mood).Normalize()
		e.Energy = int(enrg)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

// Save replaces every row with entries inside one transaction.
func (s *Store) Save(ctx context.Context, entries []entry.Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM checkins"); err != nil {
		return fmt.Errorf("%w: clearing check-ins: %v", storage.ErrStorage, err)
	}

	batch := &pgx.Batch{}
	for i, e := range entries {
		var date *time.Time
		if e.HasValidDate() {
			d := e.Date.UTC()
			date = &d
		}
		batch.Queue(
			"INSERT INTO checkins (seq, id, date, mood, energy, text) VALUES ($1, $2, $3, $4, $5, $6)",
			i, e.ID, date, int16(e.Mood.Normalize()), int16(e.Energy), e.Text,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%w: inserting check-ins: %v", storage.ErrStorage, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}
