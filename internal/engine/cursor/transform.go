package cursor

import "github.com/dshills/mdedit/internal/engine/buffer"

// TransformPosition updates a position after a change was applied.
//
// Transformation rules:
//   - If the change is entirely after p: p is unchanged
//   - If the change is an insertion exactly at p: p stays when sticky,
//     otherwise it moves to the end of the inserted text
//   - If the change ends at or before p: p shifts by the change's delta
//   - If the change spans p: p moves to the end of the new text
func TransformPosition(p Position, c buffer.Change, sticky bool) Position {
	start, end := c.Range.Start, c.Range.End

	if p.Before(start) {
		return p
	}

	if p == start && c.Range.IsEmpty() {
		if sticky {
			return p
		}
		return c.NewRange.End
	}

	if p == start {
		return p
	}

	if !p.Before(end) {
		newEnd := c.NewRange.End
		if p.Line == end.Line {
			return Position{Line: newEnd.Line, Column: newEnd.Column + p.Column - end.Column}
		}
		return Position{Line: p.Line + newEnd.Line - end.Line, Column: p.Column}
	}

	return c.NewRange.End
}

// TransformSelection updates both ends of a selection after a change.
// Insertions at a cursor move the cursor; insertions at the edges of a
// selection stay outside of it.
func TransformSelection(s Selection, c buffer.Change) Selection {
	if s.IsEmpty() {
		p := TransformPosition(s.Head, c, false)
		return Selection{Anchor: p, Head: p}
	}

	r := s.Range()
	start := TransformPosition(r.Start, c, false)
	end := TransformPosition(r.End, c, true)
	return s.WithRange(Range{Start: start, End: end})
}
