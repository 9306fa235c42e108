package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/storage"
	"go.uber.org/zap"
)

// Store implements storage.Store using one Markdown file per check-in with
// YAML front-matter. The reflection is the Markdown body.
type Store struct {
	baseDir string // e.g. ~/.moodlog/entries/
	log     *zap.Logger
}

// New creates a new Markdown file storage backend.
func New(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: entriesDir, log: log.With(zap.String("backend", "markdown"))}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) entryPath(e entry.Entry) string {
	if !e.HasValidDate() {
		return filepath.Join(s.baseDir, "undated", e.ID+".md")
	}
	t := e.Date.UTC()
	return filepath.Join(s.baseDir, t.Format("2006"), t.Format("01"), t.Format("02"), e.ID+".md")
}

func marshal(e entry.Entry, seq int) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", e.ID)
	fmt.Fprintf(&b, "seq: %d\n", seq)
	if e.HasValidDate() {
		fmt.Fprintf(&b, "date: %s\n", e.Date.UTC().Format(time.RFC3339Nano))
	} else {
		b.WriteString("date: \"\"\n")
	}
	fmt.Fprintf(&b, "mood: %d\n", int(e.Mood.Normalize()))
	fmt.Fprintf(&b, "energy: %d\n", e.Energy)
	b.WriteString("---\n\n")
	b.WriteString(e.Text)
	return []byte(b.String())
}

type frontMatter struct {
	ID     string `yaml:"id"`
	Seq    int    `yaml:"seq"`
	Date   string `yaml:"date"`
	Mood   int    `yaml:"mood"`
	Energy int    `yaml:"energy"`
}

func unmarshal(data []byte) (entry.Entry, int, error) {
	var fm frontMatter
	body, err := frontmatter.MustParse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Entry{}, 0, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrMalformed, err)
	}
	if fm.ID == "" {
		return entry.Entry{}, 0, fmt.Errorf("%w: missing id", storage.ErrMalformed)
	}

	e := entry.Entry{
		ID:     fm.ID,
		Mood:   entry.Mood(fm.Mood).Normalize(),
		Energy: fm.Energy,
		Text:   strings.TrimPrefix(string(body), "\n"),
	}
	// An unparseable date keeps the check-in but leaves it undated.
	if t, err := entry.ParseDate(fm.Date); err == nil {
		e.Date = t
	}
	return e, fm.Seq, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// entryFiles returns the path of every .md file under the base directory.
func (s *Store) entryFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	return paths, nil
}

// Load reads every check-in file in insertion order. Files that fail to
// parse are logged and skipped.
func (s *Store) Load(ctx context.Context) ([]entry.Entry, error) {
	paths, err := s.entryFiles()
	if err != nil {
		return nil, err
	}

	type loaded struct {
		e   entry.Entry
		seq int
	}
	var all []loaded
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
		}
		e, seq, err := unmarshal(data)
		if err != nil {
			s.log.Warn("skipping malformed check-in file", zap.String("path", path), zap.Error(err))
			continue
		}
		all = append(all, loaded{e: e, seq: seq})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].seq < all[j].seq
	})

	entries := make([]entry.Entry, len(all))
	for i, l := range all {
		entries[i] = l.e
	}
	return entries, nil
}

// Save rewrites one file per check-in and removes files of check-ins that are
// no longer in the collection. Check-ins without an ID get one assigned, and
// the ID is written back into entries so later saves reuse the same file.
func (s *Store) Save(ctx context.Context, entries []entry.Entry) error {
	keep := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.ID == "" {
			id, err := entry.NewID()
			if err != nil {
				return fmt.Errorf("%w: generating ID: %v", storage.ErrStorage, err)
			}
			e.ID = id
			entries[i].ID = id
		}
		path := s.entryPath(e)
		if err := atomicWrite(path, marshal(e, i)); err != nil {
			return err
		}
		keep[path] = struct{}{}
	}

	existing, err := s.entryFiles()
	if err != nil {
		return err
	}
	for _, path := range existing {
		if _, ok := keep[path]; ok {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: removing stale file: %v", storage.ErrStorage, err)
		}
	}
	return nil
}

// Watch reports changes to any check-in file.
func (s *Store) Watch(ctx context.Context) (<-chan storage.Event, error) {
	return storage.WatchDir(ctx, s.baseDir, s.log)
}
