package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/engine/history"
	"github.com/dshills/mdedit/internal/markdown/markup"
)

// ============================================================================
// Markup
// ============================================================================

// WrapSelection surrounds the selection with open and its closing
// delimiter and keeps the original text selected. With an empty selection
// the pair is inserted and the cursor placed between the delimiters.
// Unknown delimiters close with themselves.
func (e *Engine) WrapSelection(open string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wrapLocked(open)
}

func (e *Engine) wrapLocked(open string) bool {
	if open == "" {
		return false
	}
	pair, known := e.markup.Pair(open)
	if !known {
		e.logger.Debug("wrap: unrecognized delimiter %q, closing with itself", open)
	}
	return e.surroundLocked("wrap "+pair.String(), pair.Open, pair.Close, "")
}

// InsertTemplate inserts the named template. A non-empty selection takes
// the place of the template's placeholder and stays selected; otherwise
// the placeholder is inserted and selected for overtyping.
func (e *Engine) InsertTemplate(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tmpl, ok := e.markup.Template(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	e.surroundLocked("insert "+tmpl.Name, tmpl.Prefix, tmpl.Suffix, tmpl.Placeholder)
	return nil
}

// surroundLocked inserts prefix and suffix around the selection, or around
// placeholder at the cursor. The text between them ends up selected, or
// for an empty placeholder the cursor sits between them.
func (e *Engine) surroundLocked(description, prefix, suffix, placeholder string) bool {
	u := e.beginLocked(history.KindOther, description)
	sel := e.sel

	if sel.IsEmpty() {
		head := sel.Head
		c1, ok := e.replaceLocked(u, head, head, prefix)
		if !ok {
			return false
		}
		c2, ok := e.replaceLocked(u, c1.NewRange.End, c1.NewRange.End, placeholder)
		if !ok {
			return false
		}
		if _, ok := e.replaceLocked(u, c2.NewRange.End, c2.NewRange.End, suffix); !ok {
			return false
		}
		return e.commitLocked(u, cursor.NewSelection(c2.NewRange.Start, c2.NewRange.End))
	}

	r := sel.Range()
	closing, ok := e.replaceLocked(u, r.End, r.End, suffix)
	if !ok {
		return false
	}
	sel = cursor.TransformSelection(sel, closing)
	opening, ok := e.replaceLocked(u, r.Start, r.Start, prefix)
	if !ok {
		return false
	}
	sel = cursor.TransformSelection(sel, opening)
	return e.commitLocked(u, sel)
}

// ToggleHeading sets the heading level of line, or removes the heading if
// the line already has that level. The selection keeps its place in the
// line text.
func (e *Engine) ToggleHeading(line, level int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleHeadingLocked(line, level)
}

func (e *Engine) toggleHeadingLocked(line, level int) error {
	old, err := e.buf.Line(line)
	if err != nil {
		return fmt.Errorf("toggle heading: %w", err)
	}
	updated, ok := markup.ToggleHeading(old, level)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHeadingLevel, level)
	}
	if updated == old {
		return nil
	}

	u := e.beginLocked(history.KindOther, fmt.Sprintf("heading %d", level))
	oldLen := utf8.RuneCountInString(old)
	if _, ok := e.replaceLocked(u, Position{Line: line}, Position{Line: line, Column: oldLen}, updated); !ok {
		return nil
	}

	delta := utf8.RuneCountInString(updated) - oldLen
	shift := func(p Position) Position {
		if p.Line != line {
			return p
		}
		return Position{Line: line, Column: max(p.Column+delta, 0)}
	}
	e.commitLocked(u, cursor.NewSelection(shift(e.sel.Anchor), shift(e.sel.Head)))
	return nil
}
