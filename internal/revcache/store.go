package revcache

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallywatch/tallywatch/internal/tally"
)

// SchemaVersion tags every cache entry. Bump it after any change to
// the serialized row shape; entries carrying another version are
// treated as absent and rewritten on the next run.
const SchemaVersion = 2

// Store is a per-revision cache of normalized records, one JSON file
// per revision, sharded by the first two characters of the revision
// identifier to bound directory fan-out. Entries are written whole and
// replaced whole; there is no in-place update.
type Store struct {
	root    string
	version int
}

// NewStore creates a cache store rooted at dir, accepting only entries
// tagged with the given schema version.
func NewStore(dir string, version int) *Store {
	return &Store{root: dir, version: version}
}

type entry struct {
	Version int            `json:"version"`
	Rows    []tally.Record `json:"rows"`
}

// Get loads the cached records for a revision. The second return is
// false when no entry exists, the entry does not decode, or its schema
// version differs from the store's; all three cases look identical to
// the caller, which re-derives and overwrites.
func (s *Store) Get(rev string) ([]tally.Record, bool) {
	data, err := os.ReadFile(s.entryPath(rev))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Version != s.version {
		return nil, false
	}
	return e.Rows, true
}

// Put writes the records for a revision, replacing any existing entry.
// The entry is written to a temporary file in the destination
// directory and renamed into place, so readers never observe a
// partial entry.
func (s *Store) Put(rev string, rows []tally.Record) error {
	path := s.entryPath(rev)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(entry{Version: s.version, Rows: rows})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache entry: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Count returns the number of entries on disk, regardless of version.
func (s *Store) Count() (int, error) {
	count := 0
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			count++
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Clear removes the whole cache directory.
func (s *Store) Clear() error {
	return os.RemoveAll(s.root)
}

// entryPath derives the on-disk location for a revision's entry:
// <root>/<rev[:2]>/<rev[2:]>.json for ordinary 40-char identifiers.
func (s *Store) entryPath(rev string) string {
	if len(rev) <= 2 {
		return filepath.Join(s.root, rev+".json")
	}
	return filepath.Join(s.root, rev[:2], rev[2:]+".json")
}
