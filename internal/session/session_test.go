package session

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/mdedit/internal/engine/buffer"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Column: col}
}

func TestRecordAndLookup(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.json"), 10)

	if err := s.Record("/notes/a.md", pos(3, 4)); err != nil {
		t.Fatal(err)
	}
	if err := s.Record("/notes/b.md", pos(0, 1)); err != nil {
		t.Fatal(err)
	}

	e, ok := s.Lookup("/notes/a.md")
	if !ok || e.Position() != pos(3, 4) {
		t.Errorf("Lookup(a) = %+v, %v", e, ok)
	}
	if _, ok := s.Lookup("/notes/c.md"); ok {
		t.Error("Lookup(c) should miss")
	}
	if !s.Dirty() {
		t.Error("store should be dirty after Record")
	}
}

func TestRecordMovesToNewest(t *testing.T) {
	s := New("unused", 10)
	s.Record("/a.md", pos(1, 1))
	s.Record("/b.md", pos(2, 2))
	s.Record("/a.md", pos(5, 0))

	want := []Entry{
		{Path: "/b.md", Line: 2, Column: 2},
		{Path: "/a.md", Line: 5, Column: 0},
	}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %+v, want %+v", got, want)
	}
}

func TestRecordCleansPath(t *testing.T) {
	s := New("unused", 10)
	s.Record("/notes/../notes/a.md", pos(1, 2))

	if _, ok := s.Lookup("/notes/a.md"); !ok {
		t.Error("path should be cleaned")
	}
}

func TestMaxEntriesDropsOldest(t *testing.T) {
	s := New("unused", 3)
	for _, p := range []string{"/1.md", "/2.md", "/3.md", "/4.md", "/5.md"} {
		s.Record(p, pos(0, 0))
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	var paths []string
	for _, e := range s.Entries() {
		paths = append(paths, e.Path)
	}
	if want := []string{"/3.md", "/4.md", "/5.md"}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestForget(t *testing.T) {
	s := New("unused", 10)
	s.Record("/a.md", pos(1, 1))
	s.Forget("/a.md")
	s.Forget("/missing.md")

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Forget", s.Len())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := New(path, 10)
	s.Record("/a.md", pos(7, 3))

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Error("store should be clean after Save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if v := gjson.GetBytes(data, "version").Int(); v != currentVersion {
		t.Errorf("version = %d", v)
	}
	if !gjson.GetBytes(data, "saved_at").Exists() {
		t.Error("saved_at missing")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	loaded, err := Load(path, 10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e, ok := loaded.Lookup("/a.md")
	if !ok || e.Position() != pos(7, 3) {
		t.Errorf("Lookup after load = %+v, %v", e, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"), 5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"not json", "{files: nope", ErrCorrupt},
		{"future version", `{"version": 9, "files": []}`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			os.WriteFile(path, []byte(tt.content), 0o644)

			if _, err := Load(path, 5); !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadToleratesMissingFilesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	os.WriteFile(path, []byte(`{"version": 1}`), 0o644)

	s, err := Load(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record("/x.md", pos(1, 0)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestLoadTrimsToMax(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"version":1,"files":[`)
	for i, p := range []string{"/a.md", "/b.md", "/c.md"} {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"path":"` + p + `","line":1,"column":2}`)
	}
	b.WriteString("]}")

	path := filepath.Join(t.TempDir(), "session.json")
	os.WriteFile(path, []byte(b.String()), 0o644)

	s, err := Load(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Lookup("/a.md"); ok {
		t.Error("oldest entry should be trimmed")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}
}
