package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/engine/history"
	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/markdown/markup"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column position in rune columns.
	Position = buffer.Position

	// Range is a span between two positions.
	Range = buffer.Range

	// Selection represents the cursor and its anchor.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the editing core of one document.
// It combines the line buffer, the selection, undo/redo and the Markdown
// aware commands behind a thread-safe API.
//
// Mutations are expected from a single goroutine (the UI loop); the lock
// lets other goroutines read text and state concurrently.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	sel     cursor.Selection
	history *history.History
	markup  *markup.Registry
	logger  *logging.Logger

	// Configuration
	tabWidth       int
	lineEnding     *buffer.LineEnding
	maxUndoEntries int

	// Initialization
	initContent string
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.Null()
	}
	if e.markup == nil {
		e.markup = markup.NewRegistry()
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	if e.lineEnding == nil {
		return nil
	}
	return []buffer.Option{buffer.WithLineEnding(*e.lineEnding)}
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	var err error
	e.buf, err = buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full content with "\n" line separators.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Export returns the content with the document's line ending, for saving.
func (e *Engine) Export() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Export()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a line, or "" if i is out of range.
func (e *Engine) LineText(i int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(i)
}

// Line returns the text of a line.
// It returns buffer.ErrInvalidPosition if i is out of range.
func (e *Engine) Line(i int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Line(i)
}

// TextOf returns lines start through end inclusive joined with "\n".
func (e *Engine) TextOf(start, end int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextOf(start, end)
}

// TextRange returns the text between two positions.
func (e *Engine) TextRange(start, end Position) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Snapshot returns an immutable copy of the lines.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// SetText replaces the whole document, for example after the file changed
// on disk. History is cleared and the selection is clamped.
func (e *Engine) SetText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf.SetText(s)
	if e.lineEnding != nil {
		e.buf.SetLineEnding(*e.lineEnding)
	}
	e.history.Clear()
	e.sel = e.sel.Clamp(e.buf.Clamp)
}

// ============================================================================
// Selection
// ============================================================================

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// Cursor returns the cursor position (the selection head).
func (e *Engine) Cursor() Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Head
}

// SelectedText returns the selected text, "" for an empty selection.
func (e *Engine) SelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r := e.sel.Range()
	return e.buf.TextRange(r.Start, r.End)
}

// SelectionLength returns the number of runes selected, counting line
// breaks as one.
func (e *Engine) SelectionLength() int {
	text := e.SelectedText()
	n := 0
	for range text {
		n++
	}
	return n
}

// SetSelection replaces the selection, clamped to the document.
func (e *Engine) SetSelection(s Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(s)
}

// MoveTo moves the cursor to p, dropping any selection.
func (e *Engine) MoveTo(p Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(e.sel.MoveTo(p))
}

// ExtendTo moves the selection head to p, keeping the anchor.
func (e *Engine) ExtendTo(p Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(e.sel.Extend(p))
}

// Collapse drops the selection, keeping the cursor at the head.
func (e *Engine) Collapse() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(e.sel.Collapse())
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(cursor.NewSelection(Position{}, e.buf.End()))
}

// Move applies a motion to the cursor and drops the selection.
// Horizontal motions over a selection collapse it to the matching edge.
func (e *Engine) Move(m cursor.Motion) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sel.IsEmpty() {
		switch m {
		case cursor.MotionCharLeft:
			e.setSelectionLocked(e.sel.CollapseToStart())
			return
		case cursor.MotionCharRight:
			e.setSelectionLocked(e.sel.CollapseToEnd())
			return
		}
	}
	e.setSelectionLocked(e.sel.MoveTo(m.Apply(e.buf, e.sel.Head)))
}

// Extend applies a motion to the selection head, keeping the anchor.
func (e *Engine) Extend(m cursor.Motion) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(e.sel.Extend(m.Apply(e.buf, e.sel.Head)))
}

// setSelectionLocked clamps and stores s. Any explicit cursor movement ends
// the current typing run.
func (e *Engine) setSelectionLocked(s Selection) {
	e.sel = s.Clamp(e.buf.Clamp)
	e.history.Close()
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last undo unit and restores the selection it started
// with. It returns false when there is nothing to undo.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Undo(e.buf)
	if err != nil {
		e.logUndoError("undo", err)
		return false
	}
	e.sel = sel.Clamp(e.buf.Clamp)
	e.history.Close()
	return true
}

// Redo reapplies the last undone unit and restores the selection it ended
// with. It returns false when there is nothing to redo.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Redo(e.buf)
	if err != nil {
		e.logUndoError("redo", err)
		return false
	}
	e.sel = sel.Clamp(e.buf.Clamp)
	return true
}

func (e *Engine) logUndoError(op string, err error) {
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		e.logger.Debug("%s: %v", op, err)
		return
	}
	e.logger.Error("%s: %v", op, err)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo units available.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redo units available.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// PeekUndo describes the unit the next Undo would revert.
func (e *Engine) PeekUndo() (history.Info, bool) {
	return e.history.PeekUndo()
}

// ============================================================================
// Configuration
// ============================================================================

// TabWidth returns the indent width.
func (e *Engine) TabWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tabWidth
}

// SetTabWidth sets the indent width.
func (e *Engine) SetTabWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width > 0 {
		e.tabWidth = width
	}
}

// LineEnding returns the line ending used on export.
func (e *Engine) LineEnding() LineEnding {
	return e.buf.LineEnding()
}

// SetLineEnding sets the line ending used on export.
func (e *Engine) SetLineEnding(ending LineEnding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lineEnding = &ending
	e.buf.SetLineEnding(ending)
}

// RevisionID returns the current buffer revision.
// It changes on every edit, including undo and redo.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// Markup returns the template and delimiter registry.
func (e *Engine) Markup() *markup.Registry {
	return e.markup
}
