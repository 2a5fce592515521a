package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/mdedit/internal/engine"
	"github.com/dshills/mdedit/internal/session"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestOpenExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	writeFile(t, path, "# Notes\n\nbody\n")

	w := New()
	doc, err := w.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Name() != "notes.md" {
		t.Errorf("Name() = %q", doc.Name())
	}
	if doc.Engine.Text() != "# Notes\n\nbody\n" {
		t.Errorf("Text() = %q", doc.Engine.Text())
	}
	if doc.Modified() {
		t.Error("freshly opened document should not be modified")
	}
	if w.Active() != doc {
		t.Error("opened document should be active")
	}
}

func TestOpenSamePathActivatesExisting(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	w := New()
	docA, _ := w.Open(a)
	w.Open(b)

	again, err := w.Open(a)
	if err != nil {
		t.Fatal(err)
	}
	if again != docA {
		t.Error("reopening should return the existing document")
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
	if w.Active() != docA {
		t.Error("reopened document should be active")
	}
}

func TestOpenMissingFileCreatesOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")

	w := New()
	doc, err := w.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Engine.Text() != "" {
		t.Errorf("Text() = %q", doc.Engine.Text())
	}

	doc.Engine.InsertText("hello")
	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "hello" {
		t.Errorf("file = %q", got)
	}
}

func TestOpenDirectoryFails(t *testing.T) {
	w := New()
	_, err := w.Open(t.TempDir())
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("err = %v, want ErrIsDirectory", err)
	}
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "b")
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	writeFile(t, filepath.Join(dir, "c.txt"), "c")
	os.Mkdir(filepath.Join(dir, "sub.md"), 0o755)

	w := New(WithPatterns("*.md"))
	docs, err := w.OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, d := range docs {
		names = append(names, d.Name())
	}
	if strings.Join(names, ",") != "a.md,b.md" {
		t.Errorf("opened %v", names)
	}
	if w.Active().Name() != "a.md" {
		t.Errorf("active = %s, want a.md", w.Active().Name())
	}
}

func TestNextPrevWrap(t *testing.T) {
	w := New()
	d1 := w.NewDocument()
	d2 := w.NewDocument()
	d3 := w.NewDocument()

	if w.Active() != d3 {
		t.Fatal("last new document should be active")
	}
	if w.Next() != d1 {
		t.Error("Next should wrap to the first pane")
	}
	if w.Next() != d2 {
		t.Error("Next should advance")
	}
	if w.Prev() != d1 {
		t.Error("Prev should go back")
	}
	if w.Prev() != d3 {
		t.Error("Prev should wrap to the last pane")
	}
}

func TestNextOnEmptyWorkspace(t *testing.T) {
	w := New()
	if w.Next() != nil || w.Active() != nil {
		t.Error("empty workspace has no active document")
	}
}

func TestCloseActivatesNeighbour(t *testing.T) {
	w := New()
	d1 := w.NewDocument()
	d2 := w.NewDocument()
	d3 := w.NewDocument()

	w.Activate(d2.ID)
	if err := w.Close(d2.ID); err != nil {
		t.Fatal(err)
	}
	if w.Active() != d3 {
		t.Error("closing should activate the pane that took its place")
	}

	w.Close(d3.ID)
	if w.Active() != d1 {
		t.Error("closing the last pane should activate the previous one")
	}

	w.Close(d1.ID)
	if w.Active() != nil || w.Len() != 0 {
		t.Error("workspace should be empty")
	}

	if err := w.Close(d1.ID); !errors.Is(err, ErrPaneNotFound) {
		t.Errorf("Close twice = %v, want ErrPaneNotFound", err)
	}
}

func TestActivateUnknownPane(t *testing.T) {
	w := New()
	if err := w.Activate("nope"); !errors.Is(err, ErrPaneNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestSaveUntitled(t *testing.T) {
	w := New()
	doc := w.NewDocument()
	doc.Engine.InsertText("x")

	if err := w.Save(doc.ID); !errors.Is(err, ErrNoPath) {
		t.Errorf("err = %v, want ErrNoPath", err)
	}
}

func TestSaveClearsModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "one\n")

	w := New()
	doc, _ := w.Open(path)
	doc.Engine.MoveTo(engine.Position{Line: 0, Column: 3})
	doc.Engine.InsertText(" two")

	if m, _ := w.Modified(doc.ID); !m {
		t.Fatal("document should be modified")
	}
	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}
	if m, _ := w.Modified(doc.ID); m {
		t.Error("document should be clean after save")
	}
	if got := readFile(t, path); got != "one two\n" {
		t.Errorf("file = %q", got)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left: %v", leftovers)
	}
}

func TestSaveKeepsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.md")
	writeFile(t, path, "a\r\nb\r\n")

	w := New()
	doc, _ := w.Open(path)
	doc.Engine.MoveTo(engine.Position{Line: 1, Column: 1})
	doc.Engine.InsertText("c")
	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "a\r\nbc\r\n" {
		t.Errorf("file = %q", got)
	}
}

func TestSaveKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.md")
	writeFile(t, path, "x")
	os.Chmod(path, 0o600)

	w := New()
	doc, _ := w.Open(path)
	doc.Engine.InsertText("y")
	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	w := New()
	doc := w.NewDocument()
	doc.Engine.InsertText("draft")

	target := filepath.Join(dir, "draft.md")
	if err := w.SaveAs(doc.ID, target); err != nil {
		t.Fatal(err)
	}
	if doc.Path() != target || doc.Name() != "draft.md" {
		t.Errorf("path = %q name = %q", doc.Path(), doc.Name())
	}
	if readFile(t, target) != "draft" {
		t.Error("content not written")
	}
}

func TestSaveAsPathOpenElsewhere(t *testing.T) {
	dir := t.TempDir()
	taken := filepath.Join(dir, "taken.md")
	writeFile(t, taken, "mine")

	w := New()
	w.Open(taken)
	doc := w.NewDocument()

	if err := w.SaveAs(doc.ID, taken); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("err = %v, want ErrAlreadyOpen", err)
	}
	if readFile(t, taken) != "mine" {
		t.Error("file should not be overwritten")
	}
}

func TestSaveAllAndFocusLost(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	w := New()
	docA, _ := w.Open(a)
	w.Open(b)
	untitled := w.NewDocument()
	untitled.Engine.InsertText("scratch")
	docA.Engine.InsertText("!")

	n, err := w.FocusLost()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("saved %d, want 1", n)
	}
	if readFile(t, a) != "!a" {
		t.Errorf("a = %q", readFile(t, a))
	}
	if !untitled.Modified() {
		t.Error("untitled document should stay modified")
	}
	if w.AnyModified() != true {
		t.Error("AnyModified should see the untitled document")
	}

	if n, _ := w.SaveAll(); n != 0 {
		t.Errorf("second SaveAll saved %d", n)
	}
}

func TestFocusLostKeepsExternalEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	other := filepath.Join(dir, "other.md")
	writeFile(t, path, "original")
	writeFile(t, other, "other")

	w := New()
	doc, _ := w.Open(path)
	otherDoc, _ := w.Open(other)
	doc.Engine.InsertText("X")
	otherDoc.Engine.InsertText("Y")

	writeFile(t, path, "external edit")
	if _, outcome, err := w.ApplyExternal(Event{Path: path, Op: OpWrite}); err != nil || outcome != OutcomeConflict {
		t.Fatalf("ApplyExternal = %v, %v", outcome, err)
	}

	n, err := w.FocusLost()
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
	if n != 1 {
		t.Errorf("saved %d, want 1", n)
	}
	if got := readFile(t, path); got != "external edit" {
		t.Errorf("disk = %q, external edit overwritten", got)
	}
	if got := readFile(t, other); got != "Yother" {
		t.Errorf("other = %q", got)
	}
	if !doc.Modified() || !doc.Conflict() {
		t.Error("conflicting document should stay modified and flagged")
	}

	// An explicit save still overwrites.
	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "Xoriginal" {
		t.Errorf("after Save disk = %q", got)
	}
}

func TestSessionRestoresCursor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "line one\nline two\n")
	store := session.New(filepath.Join(dir, "session.json"), 10)

	w := New(WithSession(store))
	doc, _ := w.Open(path)
	doc.Engine.MoveTo(engine.Position{Line: 1, Column: 5})
	w.Close(doc.ID)

	w2 := New(WithSession(store))
	doc2, err := w2.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc2.Engine.Cursor(); got != (engine.Position{Line: 1, Column: 5}) {
		t.Errorf("Cursor() = %v, want 1:5", got)
	}
}

func TestShutdownSavesSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "abc\n")
	sessionPath := filepath.Join(dir, "session.json")
	store := session.New(sessionPath, 10)

	w := New(WithSession(store))
	doc, _ := w.Open(path)
	doc.Engine.MoveTo(engine.Position{Line: 0, Column: 2})

	if err := w.Shutdown(); err != nil {
		t.Fatal(err)
	}

	loaded, err := session.Load(sessionPath, 10)
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := loaded.Lookup(path); !ok || e.Column != 2 {
		t.Errorf("entry = %+v, %v", e, ok)
	}
}

func TestApplyExternal(t *testing.T) {
	tests := []struct {
		name     string
		edit     bool
		external func(path string)
		want     Outcome
		text     string
		conflict bool
	}{
		{
			name:     "unmodified reloads",
			external: func(p string) { os.WriteFile(p, []byte("changed\n"), 0o644) },
			want:     OutcomeReloaded,
			text:     "changed\n",
		},
		{
			name:     "modified conflicts",
			edit:     true,
			external: func(p string) { os.WriteFile(p, []byte("changed\n"), 0o644) },
			want:     OutcomeConflict,
			text:     "Xoriginal\n",
			conflict: true,
		},
		{
			name:     "same content ignored",
			external: func(p string) { os.WriteFile(p, []byte("original\n"), 0o644) },
			want:     OutcomeIgnored,
			text:     "original\n",
		},
		{
			name:     "removed with edits conflicts",
			edit:     true,
			external: func(p string) { os.Remove(p) },
			want:     OutcomeConflict,
			text:     "Xoriginal\n",
			conflict: true,
		},
		{
			name:     "removed clean is ignored",
			external: func(p string) { os.Remove(p) },
			want:     OutcomeIgnored,
			text:     "original\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.md")
			writeFile(t, path, "original\n")

			w := New()
			doc, _ := w.Open(path)
			if tt.edit {
				doc.Engine.InsertText("X")
			}
			tt.external(path)

			got, outcome, err := w.ApplyExternal(Event{Path: path, Op: OpWrite})
			if err != nil {
				t.Fatal(err)
			}
			if got != doc || outcome != tt.want {
				t.Errorf("outcome = %v, want %v", outcome, tt.want)
			}
			if doc.Engine.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", doc.Engine.Text(), tt.text)
			}
			if doc.Conflict() != tt.conflict {
				t.Errorf("Conflict() = %v", doc.Conflict())
			}
			if tt.want == OutcomeReloaded && doc.Modified() {
				t.Error("reloaded document should be clean")
			}
		})
	}
}

func TestApplyExternalUnknownPath(t *testing.T) {
	w := New()
	doc, outcome, err := w.ApplyExternal(Event{Path: "/not/open.md", Op: OpWrite})
	if doc != nil || outcome != OutcomeIgnored || err != nil {
		t.Errorf("got %v, %v, %v", doc, outcome, err)
	}
}

func TestSaveClearsConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "a")

	w := New()
	doc, _ := w.Open(path)
	doc.Engine.InsertText("b")
	writeFile(t, path, "theirs")
	w.ApplyExternal(Event{Path: path, Op: OpWrite})
	if !doc.Conflict() {
		t.Fatal("expected conflict")
	}

	if err := w.Save(doc.ID); err != nil {
		t.Fatal(err)
	}
	if doc.Conflict() {
		t.Error("save should clear the conflict")
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "disk")

	w := New()
	doc, _ := w.Open(path)
	doc.Engine.InsertText("local ")

	if err := w.Reload(doc.ID); err != nil {
		t.Fatal(err)
	}
	if doc.Engine.Text() != "disk" || doc.Modified() {
		t.Errorf("Text() = %q, Modified() = %v", doc.Engine.Text(), doc.Modified())
	}
}

func TestWatcherReportsExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.md")
	writeFile(t, path, "v1\n")

	watcher, err := NewWatcher(16)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	w := New(WithWatcher(watcher))
	defer w.Shutdown()

	doc, _ := w.Open(path)
	if !watcher.IsWatching(path) {
		t.Fatal("opened file should be watched")
	}

	writeFile(t, filepath.Join(dir, "other.md"), "ignored")
	writeFile(t, path, "v2\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-watcher.Events():
			if ev.Path != path {
				t.Fatalf("event for untracked path %s", ev.Path)
			}
			// A truncate may be observed before the write completes.
			if _, outcome, _ := w.ApplyExternal(ev); outcome == OutcomeReloaded && doc.Engine.Text() == "v2\n" {
				return
			}
		case <-deadline:
			t.Fatal("no reload within deadline")
		}
	}
}

func TestWatcherRemoveAndClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "a")

	watcher, err := NewWatcher(4)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	if err := watcher.Add(path); err != nil {
		t.Fatal(err)
	}
	if err := watcher.Add(path); err != nil {
		t.Errorf("second Add = %v", err)
	}
	if err := watcher.Remove(path); err != nil {
		t.Fatal(err)
	}
	if watcher.IsWatching(path) {
		t.Error("path should no longer be watched")
	}

	if err := watcher.Close(); err != nil {
		t.Fatal(err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := watcher.Add(path); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Add after close = %v", err)
	}
}

func TestOpString(t *testing.T) {
	if got := (OpCreate | OpWrite).String(); got != "write|create" {
		t.Errorf("String() = %q", got)
	}
	if got := Op(0).String(); got != "none" {
		t.Errorf("String() = %q", got)
	}
}
