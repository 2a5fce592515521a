package workspace

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mdedit/internal/engine"
)

// UntitledName names documents without a path.
const UntitledName = "untitled"

// PaneID identifies a pane for the lifetime of the workspace.
type PaneID string

func newPaneID() PaneID {
	return PaneID(uuid.New().String())
}

// Short returns the first eight characters of the ID.
func (id PaneID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Document is a file open in a pane.
type Document struct {
	ID     PaneID
	Engine *engine.Engine

	mu            sync.RWMutex
	path          string
	savedRevision engine.RevisionID
	diskModTime   time.Time
	conflict      bool
}

func newDocument(path string, e *engine.Engine, modTime time.Time) *Document {
	return &Document{
		ID:            newPaneID(),
		Engine:        e,
		path:          path,
		savedRevision: e.RevisionID(),
		diskModTime:   modTime,
	}
}

// Path returns the absolute file path, empty for untitled documents.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Name returns the base name shown in the status line.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// Modified reports whether the document changed since it was loaded or saved.
func (d *Document) Modified() bool {
	d.mu.RLock()
	saved := d.savedRevision
	d.mu.RUnlock()
	return d.Engine.RevisionID() != saved
}

// Conflict reports whether the file changed on disk while the document
// held unsaved edits.
func (d *Document) Conflict() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.conflict
}

func (d *Document) markSaved(path string, rev engine.RevisionID, modTime time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.path = path
	d.savedRevision = rev
	d.diskModTime = modTime
	d.conflict = false
}

func (d *Document) setConflict(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conflict = v
}

func (d *Document) modTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.diskModTime
}
