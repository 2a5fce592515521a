package workspace

import (
	"errors"
	"os"
	"path/filepath"
)

// Outcome is the result of applying an external change.
type Outcome int

const (
	// OutcomeIgnored means the event did not affect any document.
	OutcomeIgnored Outcome = iota
	// OutcomeReloaded means an unmodified document took the disk content.
	OutcomeReloaded
	// OutcomeConflict means the document has unsaved edits and the file
	// changed or disappeared underneath it.
	OutcomeConflict
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeReloaded:
		return "reloaded"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// ApplyExternal reacts to a watcher event for an open file.
//
// Unmodified documents reload from disk keeping their cursor clamped.
// Modified documents are marked as conflicting and keep their content.
// Events that match what the editor last wrote are ignored.
func (w *Workspace) ApplyExternal(ev Event) (*Document, Outcome, error) {
	doc := w.findByPath(filepath.Clean(ev.Path))
	if doc == nil {
		return nil, OutcomeIgnored, nil
	}

	data, err := os.ReadFile(doc.Path())
	if errors.Is(err, os.ErrNotExist) {
		if doc.Modified() {
			doc.setConflict(true)
			w.logger.Warn("%s removed on disk with unsaved edits", doc.Path())
			return doc, OutcomeConflict, nil
		}
		// The file may come back through a rename; keep the content.
		return doc, OutcomeIgnored, nil
	}
	if err != nil {
		return doc, OutcomeIgnored, &PathError{Op: "reload", Path: doc.Path(), Err: err}
	}

	if string(data) == doc.Engine.Export() {
		return doc, OutcomeIgnored, nil
	}

	modTime := doc.modTime()
	if info, err := os.Stat(doc.Path()); err == nil {
		modTime = info.ModTime()
	}

	if doc.Modified() {
		doc.setConflict(true)
		w.logger.Warn("%s changed on disk with unsaved edits", doc.Path())
		return doc, OutcomeConflict, nil
	}

	doc.Engine.SetText(string(data))
	doc.markSaved(doc.Path(), doc.Engine.RevisionID(), modTime)
	w.logger.Info("reloaded %s", doc.Path())
	return doc, OutcomeReloaded, nil
}

// Reload replaces pane id with the disk content, discarding edits.
func (w *Workspace) Reload(id PaneID) error {
	doc, ok := w.Get(id)
	if !ok {
		return ErrPaneNotFound
	}
	path := doc.Path()
	if path == "" {
		return &PathError{Op: "reload", Path: doc.Name(), Err: ErrNoPath}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &PathError{Op: "reload", Path: path, Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &PathError{Op: "reload", Path: path, Err: err}
	}

	doc.Engine.SetText(string(data))
	doc.markSaved(path, doc.Engine.RevisionID(), info.ModTime())
	return nil
}
