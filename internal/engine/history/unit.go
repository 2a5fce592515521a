package history

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
)

// Kind classifies an undo unit for coalescing.
type Kind uint8

const (
	KindOther          Kind = iota // Never merges
	KindInsert                     // Typed characters
	KindDeleteBackward             // Backspace
	KindDeleteForward              // Delete
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDeleteBackward:
		return "delete-backward"
	case KindDeleteForward:
		return "delete-forward"
	default:
		return "other"
	}
}

// Unit is an ordered sequence of changes applied atomically, together with
// the selection before and after the edit.
type Unit struct {
	Kind        Kind
	Description string
	Changes     []buffer.Change
	Before      cursor.Selection
	After       cursor.Selection
	Timestamp   time.Time

	closed bool
}

// NewUnit creates an empty unit starting from the given selection.
func NewUnit(kind Kind, description string, before cursor.Selection) *Unit {
	return &Unit{
		Kind:        kind,
		Description: description,
		Before:      before,
		After:       before,
		Timestamp:   time.Now(),
	}
}

// Add appends a performed change. No-op changes are ignored.
func (u *Unit) Add(c buffer.Change) {
	if c.IsNoOp() {
		return
	}
	u.Changes = append(u.Changes, c)
}

// IsEmpty returns true if the unit holds no changes.
func (u *Unit) IsEmpty() bool {
	return len(u.Changes) == 0
}

// canMerge reports whether next continues the edit recorded in u.
// Both units must be single-rune edits of the same kind, the cursor must
// not have moved in between, and the edits must touch.
func (u *Unit) canMerge(next *Unit) bool {
	if u.closed || u.Kind == KindOther || u.Kind != next.Kind {
		return false
	}
	if len(u.Changes) == 0 || len(next.Changes) != 1 {
		return false
	}
	if u.After != next.Before {
		return false
	}

	last := u.Changes[len(u.Changes)-1]
	c := next.Changes[0]

	switch u.Kind {
	case KindInsert:
		r, ok := singleRune(c.NewText)
		if !ok || c.OldText != "" {
			return false
		}
		prev, _ := utf8.DecodeLastRuneInString(last.NewText)
		if unicode.IsSpace(r) && !unicode.IsSpace(prev) {
			return false
		}
		return c.Range.Start == last.NewRange.End

	case KindDeleteBackward:
		if _, ok := singleRune(c.OldText); !ok || c.NewText != "" {
			return false
		}
		return c.Range.End == last.Range.Start

	case KindDeleteForward:
		if _, ok := singleRune(c.OldText); !ok || c.NewText != "" {
			return false
		}
		return c.Range.Start == last.Range.Start
	}
	return false
}

// merge folds next into u.
func (u *Unit) merge(next *Unit) {
	u.Changes = append(u.Changes, next.Changes...)
	u.After = next.After
	u.Timestamp = next.Timestamp
}

// singleRune returns the only rune of s if s is exactly one non-newline rune.
func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == '\n' {
		return 0, false
	}
	return r, true
}
