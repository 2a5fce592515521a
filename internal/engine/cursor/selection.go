package cursor

import (
	"fmt"

	"github.com/dshills/mdedit/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position // Where selection started
	Head   Position // Current cursor position (where typing occurs)
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	if s.IsForward() {
		return Range{Start: s.Anchor, End: s.Head}
	}
	return Range{Start: s.Head, End: s.Anchor}
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	return s.Range().Start
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	return s.Range().End
}

// Cursor returns the head position (where typing would occur).
func (s Selection) Cursor() Position {
	return s.Head
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return s.Head.Compare(s.Anchor) >= 0
}

// IsBackward returns true if the selection extends backward (head < anchor).
func (s Selection) IsBackward() bool {
	return !s.IsForward()
}

// Extend returns a new selection extended to p.
// The anchor remains fixed; only the head moves.
func (s Selection) Extend(p Position) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// MoveTo returns a new collapsed selection (cursor) at p.
func (s Selection) MoveTo(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// CollapseToStart collapses the selection to its start position.
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Anchor: start, Head: start}
}

// CollapseToEnd collapses the selection to its end position.
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Anchor: end, Head: end}
}

// WithRange returns a selection covering r that keeps the direction of s.
func (s Selection) WithRange(r Range) Selection {
	if s.IsBackward() {
		return Selection{Anchor: r.End, Head: r.Start}
	}
	return Selection{Anchor: r.Start, Head: r.End}
}

// Contains returns true if p is within the selection.
// For empty selections (cursors), this always returns false.
func (s Selection) Contains(p Position) bool {
	return s.Range().Contains(p)
}

// IsMultiLine returns true if the selection spans more than one line.
func (s Selection) IsMultiLine() bool {
	return s.Anchor.Line != s.Head.Line
}

// Clamp returns a selection whose endpoints are clamped by clamp.
func (s Selection) Clamp(clamp func(Position) Position) Selection {
	return Selection{Anchor: clamp(s.Anchor), Head: clamp(s.Head)}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection%s%s%s", s.Anchor, dir, s.Head)
}
