// Package session remembers the cursor position of recently edited files.
//
// The session file is a small JSON document:
//
//	{
//	  "version": 1,
//	  "saved_at": "2026-01-02T15:04:05Z",
//	  "files": [
//	    {"path": "/notes/todo.md", "line": 12, "column": 4}
//	  ]
//	}
//
// Entries are ordered oldest first and capped at a maximum count.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/mdedit/internal/engine/buffer"
)

const currentVersion = 1

// DefaultMaxEntries is the default number of remembered files.
const DefaultMaxEntries = 200

// Errors returned when reading a session file.
var (
	ErrCorrupt            = errors.New("session file is not valid JSON")
	ErrUnsupportedVersion = errors.New("unsupported session file version")
)

const emptyDocument = `{"version":1,"files":[]}`

// Entry is one remembered file.
type Entry struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Position returns the remembered cursor.
func (e Entry) Position() buffer.Position {
	return buffer.Position{Line: e.Line, Column: e.Column}
}

// Store holds the session document in memory.
// It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
	doc        string
	dirty      bool
}

// New returns an empty store that saves to path.
func New(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries, doc: emptyDocument}
}

// Load reads the store from path. A missing file yields an empty store.
func Load(path string, maxEntries int) (*Store, error) {
	s := New(path, maxEntries)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, path)
	}
	doc := string(data)
	if v := gjson.Get(doc, "version").Int(); v > currentVersion {
		return nil, fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, v, currentVersion)
	}
	if !gjson.Get(doc, "files").IsArray() {
		if doc, err = sjson.SetRaw(doc, "files", "[]"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	s.doc = doc
	s.trim()
	return s, nil
}

// Path returns the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of remembered files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(gjson.Get(s.doc, "files.#").Int())
}

// Lookup returns the entry remembered for path.
func (s *Store) Lookup(path string) (Entry, bool) {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(path)
	if i < 0 {
		return Entry{}, false
	}
	return entryFrom(gjson.Get(s.doc, "files."+strconv.Itoa(i))), true
}

// Entries returns every entry, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	gjson.Get(s.doc, "files").ForEach(func(_, v gjson.Result) bool {
		if e := entryFrom(v); e.Path != "" {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Record remembers pos for path, making it the most recent entry.
func (s *Store) Record(path string, pos buffer.Position) error {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc
	var err error
	if i := s.indexOf(path); i >= 0 {
		if doc, err = sjson.Delete(doc, "files."+strconv.Itoa(i)); err != nil {
			return fmt.Errorf("session record: %w", err)
		}
	}
	entry := Entry{Path: path, Line: pos.Line, Column: pos.Column}
	if doc, err = sjson.Set(doc, "files.-1", entry); err != nil {
		return fmt.Errorf("session record: %w", err)
	}

	s.doc = doc
	s.dirty = true
	s.trim()
	return nil
}

// Forget removes the entry for path.
func (s *Store) Forget(path string) {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(path); i >= 0 {
		if doc, err := sjson.Delete(s.doc, "files."+strconv.Itoa(i)); err == nil {
			s.doc = doc
			s.dirty = true
		}
	}
}

// Dirty reports whether the store changed since it was loaded or saved.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Save writes the store atomically using a temporary file and rename.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := sjson.Set(s.doc, "version", currentVersion)
	if err == nil {
		doc, err = sjson.Set(doc, "saved_at", time.Now().UTC().Format(time.RFC3339))
	}
	if err != nil {
		return fmt.Errorf("failed to stamp session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.doc = doc
	s.dirty = false
	return nil
}

// indexOf returns the array index of path, or -1.
func (s *Store) indexOf(path string) int {
	found := -1
	i := 0
	gjson.Get(s.doc, "files").ForEach(func(_, v gjson.Result) bool {
		if v.Get("path").String() == path {
			found = i
			return false
		}
		i++
		return true
	})
	return found
}

// trim drops the oldest entries beyond the cap.
func (s *Store) trim() {
	for gjson.Get(s.doc, "files.#").Int() > int64(s.maxEntries) {
		doc, err := sjson.Delete(s.doc, "files.0")
		if err != nil {
			return
		}
		s.doc = doc
		s.dirty = true
	}
}

func entryFrom(v gjson.Result) Entry {
	return Entry{
		Path:   v.Get("path").String(),
		Line:   max(0, int(v.Get("line").Int())),
		Column: max(0, int(v.Get("column").Int())),
	}
}
