package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
	"go.uber.org/zap"
)

// Store implements storage.Store using SQLite via Turso/libSQL.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New creates a new SQLite storage backend.
func New(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "moodlog.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, log: log.With(zap.String("backend", "sqlite"))}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS checkins (
			seq    INTEGER PRIMARY KEY,
			id     TEXT NOT NULL DEFAULT '',
			date   TEXT NOT NULL DEFAULT '',
			mood   INTEGER NOT NULL,
			energy INTEGER NOT NULL,
			text   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every check-in in insertion order. Rows whose date does not
// parse are kept with a zero date.
func (s *Store) Load(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, date, mood, energy, text FROM checkins ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: listing check-ins: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		var e entry.Entry
		var dateStr string
		var mood int
		if err := rows.Scan(&e.ID, &dateStr, &mood, &e.Energy, &e.Text); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		e.Mood = entry.Mood(mood).Normalize()
		if t, err := entry.ParseDate(dateStr); err == nil {
			e.Date = t
		} else if dateStr != "" {
			s.log.Warn("unparseable check-in date", zap.String("id", e.ID), zap.String("date", dateStr))
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Save replaces every row with entries inside one transaction.
func (s *Store) Save(ctx context.Context, entries []entry.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkins"); err != nil {
		return fmt.Errorf("%w: clearing check-ins: %v", storage.ErrStorage, err)
	}

	for i, e := range entries {
		var dateStr string
		if e.HasValidDate() {
			dateStr = e.Date.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO checkins (seq, id, date, mood, energy, text) VALUES (?, ?, ?, ?, ?, ?)",
			i, e.ID, dateStr, int(e.Mood.Normalize()), e.Energy, e.Text,
		); err != nil {
			return fmt.Errorf("%w: inserting check-in: %v", storage.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}
