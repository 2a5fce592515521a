package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// Info describes an entry on one of the stacks.
type Info struct {
	Kind        Kind
	Description string
	Timestamp   time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Unit
	redoStack []*Unit

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds a performed unit to the undo stack and clears the redo stack.
// A single-rune edit continuing the top unit is merged into it.
// Empty units are ignored.
func (h *History) Record(u *Unit) {
	if u == nil || u.IsEmpty() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	if n := len(h.undoStack); n > 0 && h.undoStack[n-1].canMerge(u) {
		h.undoStack[n-1].merge(u)
		return
	}

	h.undoStack = append(h.undoStack, u)

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Close prevents the top unit from absorbing further edits.
// It is called on cursor jumps and command boundaries.
func (h *History) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.undoStack); n > 0 {
		h.undoStack[n-1].closed = true
	}
}

// Undo reverts the most recent unit and returns the selection to restore.
// The lock is released while the buffer is edited.
func (h *History) Undo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return cursor.Selection{}, ErrNothingToUndo
	}

	u := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	for i := len(u.Changes) - 1; i >= 0; i-- {
		if _, err := buf.ApplyChange(u.Changes[i].Invert()); err != nil {
			h.mu.Lock()
			h.undoStack = append(h.undoStack, u)
			h.mu.Unlock()
			return cursor.Selection{}, fmt.Errorf("undo %s: %w", u.Description, err)
		}
	}

	h.mu.Lock()
	u.closed = true
	h.redoStack = append(h.redoStack, u)
	h.mu.Unlock()
	return u.Before, nil
}

// Redo reapplies the most recently undone unit and returns the selection to
// restore.
func (h *History) Redo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return cursor.Selection{}, ErrNothingToRedo
	}

	u := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	for _, c := range u.Changes {
		if _, err := buf.ApplyChange(c); err != nil {
			h.mu.Lock()
			h.redoStack = append(h.redoStack, u)
			h.mu.Unlock()
			return cursor.Selection{}, fmt.Errorf("redo %s: %w", u.Description, err)
		}
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, u)
	h.mu.Unlock()
	return u.After, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	return infoOf(h.undoStack[len(h.undoStack)-1]), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Info{}, false
	}
	return infoOf(h.redoStack[len(h.redoStack)-1]), true
}

func infoOf(u *Unit) Info {
	return Info{Kind: u.Kind, Description: u.Description, Timestamp: u.Timestamp}
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
