// Package workspace manages the documents open in mdedit's panes.
//
// Each pane holds one Document backed by its own engine. The workspace
// loads and saves files, restores cursors from the session store and
// reacts to external changes reported by the Watcher.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dshills/mdedit/internal/engine"
	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/session"
)

// Workspace maps pane IDs to documents and tracks the active pane.
// It is safe for concurrent use.
type Workspace struct {
	mu     sync.RWMutex
	panes  map[PaneID]*Document
	order  []PaneID
	active PaneID

	engineOpts []engine.Option
	patterns   []string
	session    *session.Store
	watcher    *Watcher
	logger     *logging.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithEngineOptions sets the options every new engine is created with.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(w *Workspace) {
		w.engineOpts = append(w.engineOpts, opts...)
	}
}

// WithPatterns sets the file patterns OpenDir accepts.
func WithPatterns(patterns ...string) Option {
	return func(w *Workspace) {
		w.patterns = patterns
	}
}

// WithSession restores and records cursors in store.
func WithSession(store *session.Store) Option {
	return func(w *Workspace) {
		w.session = store
	}
}

// WithWatcher registers every opened file with watcher.
func WithWatcher(watcher *Watcher) Option {
	return func(w *Workspace) {
		w.watcher = watcher
	}
}

// WithLogger sets the workspace logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		panes:    make(map[PaneID]*Document),
		patterns: []string{"*.md"},
		logger:   logging.Null(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("workspace")
	return w
}

// ============================================================================
// Pane management
// ============================================================================

// NewDocument opens an untitled pane and makes it active.
func (w *Workspace) NewDocument() *Document {
	doc := newDocument("", engine.New(w.engineOpts...), time.Time{})

	w.mu.Lock()
	defer w.mu.Unlock()
	w.addLocked(doc)
	return doc
}

// Open opens path in a new pane and makes it active. A path already
// open is activated instead. A missing file opens as an empty document
// that is created on first save.
func (w *Workspace) Open(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	if doc := w.findByPath(abs); doc != nil {
		w.Activate(doc.ID)
		return doc, nil
	}

	e, modTime, err := w.load(abs)
	if err != nil {
		return nil, &PathError{Op: "open", Path: abs, Err: err}
	}
	doc := newDocument(abs, e, modTime)

	if w.session != nil {
		if entry, ok := w.session.Lookup(abs); ok {
			e.MoveTo(entry.Position())
		}
	}

	w.mu.Lock()
	if existing := w.findByPathLocked(abs); existing != nil {
		w.active = existing.ID
		w.mu.Unlock()
		return existing, nil
	}
	w.addLocked(doc)
	w.mu.Unlock()

	w.watch(abs)
	w.logger.Debug("opened %s as pane %s", abs, doc.ID.Short())
	return doc, nil
}

// OpenDir opens every file in dir matching the workspace patterns, in
// name order. The first opened document becomes active.
func (w *Workspace) OpenDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PathError{Op: "opendir", Path: dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !w.matches(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var docs []*Document
	var errs []error
	for _, name := range names {
		doc, err := w.Open(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) > 0 {
		w.Activate(docs[0].ID)
	}
	return docs, errors.Join(errs...)
}

// Close removes a pane, recording its cursor in the session. Unsaved
// edits are discarded; callers check Modified first.
func (w *Workspace) Close(id PaneID) error {
	w.mu.Lock()
	doc, ok := w.panes[id]
	if !ok {
		w.mu.Unlock()
		return ErrPaneNotFound
	}

	i := slices.Index(w.order, id)
	w.order = slices.Delete(w.order, i, i+1)
	delete(w.panes, id)
	if w.active == id {
		w.active = ""
		if len(w.order) > 0 {
			w.active = w.order[min(i, len(w.order)-1)]
		}
	}
	w.mu.Unlock()

	w.remember(doc)
	if path := doc.Path(); path != "" {
		w.unwatch(path)
	}
	w.logger.Debug("closed pane %s", id.Short())
	return nil
}

// Activate makes id the active pane.
func (w *Workspace) Activate(id PaneID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.panes[id]; !ok {
		return ErrPaneNotFound
	}
	w.active = id
	return nil
}

// Next activates the pane after the active one, wrapping around.
func (w *Workspace) Next() *Document {
	return w.cycle(1)
}

// Prev activates the pane before the active one, wrapping around.
func (w *Workspace) Prev() *Document {
	return w.cycle(-1)
}

func (w *Workspace) cycle(step int) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) == 0 {
		return nil
	}
	i := slices.Index(w.order, w.active)
	i = (i + step + len(w.order)) % len(w.order)
	w.active = w.order[i]
	return w.panes[w.active]
}

// Active returns the active document, nil when no pane is open.
func (w *Workspace) Active() *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.panes[w.active]
}

// Get returns the document in pane id.
func (w *Workspace) Get(id PaneID) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.panes[id]
	return doc, ok
}

// Documents returns the documents in pane order.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	docs := make([]*Document, 0, len(w.order))
	for _, id := range w.order {
		docs = append(docs, w.panes[id])
	}
	return docs
}

// Len returns the number of open panes.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

// Modified reports whether pane id holds unsaved edits.
func (w *Workspace) Modified(id PaneID) (bool, error) {
	doc, ok := w.Get(id)
	if !ok {
		return false, ErrPaneNotFound
	}
	return doc.Modified(), nil
}

// AnyModified reports whether any pane holds unsaved edits.
func (w *Workspace) AnyModified() bool {
	for _, doc := range w.Documents() {
		if doc.Modified() {
			return true
		}
	}
	return false
}

// ============================================================================
// Saving
// ============================================================================

// Save writes pane id to its path.
func (w *Workspace) Save(id PaneID) error {
	doc, ok := w.Get(id)
	if !ok {
		return ErrPaneNotFound
	}
	path := doc.Path()
	if path == "" {
		return &PathError{Op: "save", Path: doc.Name(), Err: ErrNoPath}
	}
	return w.saveTo(doc, path)
}

// SaveAs writes pane id to path and retargets the pane.
func (w *Workspace) SaveAs(id PaneID, path string) error {
	doc, ok := w.Get(id)
	if !ok {
		return ErrPaneNotFound
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &PathError{Op: "saveas", Path: path, Err: err}
	}
	if other := w.findByPath(abs); other != nil && other.ID != id {
		return &PathError{Op: "saveas", Path: abs, Err: ErrAlreadyOpen}
	}

	old := doc.Path()
	if err := w.saveTo(doc, abs); err != nil {
		return err
	}
	if old != abs {
		if old != "" {
			w.unwatch(old)
		}
		w.watch(abs)
	}
	return nil
}

// SaveAll saves every modified document that has a path, overwriting
// files that changed on disk. It returns the number saved and every
// failure joined.
func (w *Workspace) SaveAll() (int, error) {
	return w.saveModified(false)
}

// FocusLost is called when the terminal loses focus. Modified documents
// with a path are saved; untitled ones are left alone. A document whose
// file changed on disk is not overwritten and is reported as ErrConflict.
func (w *Workspace) FocusLost() (int, error) {
	n, err := w.saveModified(true)
	if n > 0 {
		w.logger.Info("focus lost: saved %d document(s)", n)
	}
	if err != nil {
		w.logger.Warn("focus lost: %v", err)
	}
	return n, err
}

func (w *Workspace) saveModified(skipConflicts bool) (int, error) {
	saved := 0
	var errs []error
	for _, doc := range w.Documents() {
		path := doc.Path()
		if path == "" || !doc.Modified() {
			continue
		}
		if skipConflicts && doc.Conflict() {
			errs = append(errs, &PathError{Op: "autosave", Path: path, Err: ErrConflict})
			continue
		}
		if err := w.saveTo(doc, path); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

func (w *Workspace) saveTo(doc *Document, path string) error {
	rev := doc.Engine.RevisionID()
	if err := writeFileAtomic(path, []byte(doc.Engine.Export())); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	modTime := time.Now()
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime()
	}
	doc.markSaved(path, rev, modTime)
	w.remember(doc)
	w.logger.Debug("saved %s", path)
	return nil
}

// Shutdown records every cursor, saves the session and stops the watcher.
func (w *Workspace) Shutdown() error {
	for _, doc := range w.Documents() {
		w.remember(doc)
	}

	var errs []error
	if w.session != nil {
		if err := w.session.Save(); err != nil {
			errs = append(errs, fmt.Errorf("saving session: %w", err))
		}
	}
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing watcher: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ============================================================================
// Helpers
// ============================================================================

func (w *Workspace) addLocked(doc *Document) {
	w.panes[doc.ID] = doc
	w.order = append(w.order, doc.ID)
	w.active = doc.ID
}

func (w *Workspace) load(path string) (*engine.Engine, time.Time, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return engine.New(w.engineOpts...), time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		return nil, time.Time{}, ErrIsDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	e, err := engine.NewFromReader(f, w.engineOpts...)
	if err != nil {
		return nil, time.Time{}, err
	}
	return e, info.ModTime(), nil
}

func (w *Workspace) findByPath(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.findByPathLocked(path)
}

func (w *Workspace) findByPathLocked(path string) *Document {
	for _, id := range w.order {
		if doc := w.panes[id]; doc.Path() == path {
			return doc
		}
	}
	return nil
}

func (w *Workspace) matches(name string) bool {
	for _, p := range w.patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (w *Workspace) remember(doc *Document) {
	path := doc.Path()
	if w.session == nil || path == "" {
		return
	}
	if err := w.session.Record(path, doc.Engine.Cursor()); err != nil {
		w.logger.Warn("session: %v", err)
	}
}

func (w *Workspace) watch(path string) {
	if w.watcher == nil {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("watch %s: %v", path, err)
	}
}

func (w *Workspace) unwatch(path string) {
	if w.watcher == nil {
		return
	}
	if err := w.watcher.Remove(path); err != nil {
		w.logger.Debug("unwatch %s: %v", path, err)
	}
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path, keeping the existing file mode.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
