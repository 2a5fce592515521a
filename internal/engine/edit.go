package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/engine/history"
)

// ============================================================================
// Unit Helpers
// ============================================================================

// beginLocked starts an undo unit from the current selection.
func (e *Engine) beginLocked(kind history.Kind, description string) *history.Unit {
	return history.NewUnit(kind, description, e.sel)
}

// replaceLocked performs one buffer replacement inside u.
// Positions are clamped first, so it only fails on an invalid line, which
// is logged and reported as false.
func (e *Engine) replaceLocked(u *history.Unit, start, end Position, text string) (buffer.Change, bool) {
	c, err := e.buf.Replace(e.buf.Clamp(start), e.buf.Clamp(end), text)
	if err != nil {
		e.logger.Error("%s: %v", u.Description, err)
		return buffer.Change{}, false
	}
	u.Add(c)
	return c, true
}

// commitLocked stores the final selection and records u.
// It returns true if the unit changed the document.
func (e *Engine) commitLocked(u *history.Unit, sel Selection) bool {
	e.sel = sel.Clamp(e.buf.Clamp)
	u.After = e.sel
	if u.IsEmpty() {
		return false
	}
	e.history.Record(u)
	return true
}

// ============================================================================
// Text Editing
// ============================================================================

// InsertText inserts text at the cursor, replacing a non-empty selection.
// Single typed runes coalesce into one undo unit.
func (e *Engine) InsertText(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertTextLocked(text)
}

func (e *Engine) insertTextLocked(text string) bool {
	if text == "" && e.sel.IsEmpty() {
		return false
	}

	kind := history.KindOther
	if e.sel.IsEmpty() && utf8.RuneCountInString(text) == 1 {
		kind = history.KindInsert
	}

	u := e.beginLocked(kind, "typing")
	r := e.sel.Range()
	c, ok := e.replaceLocked(u, r.Start, r.End, text)
	if !ok {
		return false
	}
	return e.commitLocked(u, cursor.NewCursorSelection(c.NewRange.End))
}

// DeleteRange deletes the text between start and end and leaves the cursor
// at the lower position.
func (e *Engine) DeleteRange(start, end Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	u := e.beginLocked(history.KindOther, "delete")
	c, ok := e.replaceLocked(u, start, end, "")
	if !ok {
		return false
	}
	return e.commitLocked(u, cursor.NewCursorSelection(c.Range.Start))
}

// DeleteChar deletes the selection or, for an empty selection, one
// character before (Backspace) or after (Delete) the cursor. Deleting at
// a line boundary joins the lines.
func (e *Engine) DeleteChar(forward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sel.IsEmpty() {
		return e.deleteSelectionLocked()
	}

	head := e.sel.Head
	kind := history.KindDeleteBackward
	start, end := cursor.MotionCharLeft.Apply(e.buf, head), head
	if forward {
		kind = history.KindDeleteForward
		start, end = head, cursor.MotionCharRight.Apply(e.buf, head)
	}
	if start == end {
		return false
	}

	u := e.beginLocked(kind, "delete")
	c, ok := e.replaceLocked(u, start, end, "")
	if !ok {
		return false
	}
	return e.commitLocked(u, cursor.NewCursorSelection(c.Range.Start))
}

// DeleteWord deletes the selection or, for an empty selection, up to the
// word boundary before or after the cursor. A run of whitespace next to the
// cursor is deleted together with the word beyond it.
func (e *Engine) DeleteWord(forward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sel.IsEmpty() {
		return e.deleteSelectionLocked()
	}

	head := e.sel.Head
	start, end := cursor.WordLeft(e.buf, head), head
	if forward {
		start, end = head, cursor.WordRight(e.buf, head)
	}
	if start == end {
		return false
	}

	u := e.beginLocked(history.KindOther, "delete word")
	c, ok := e.replaceLocked(u, start, end, "")
	if !ok {
		return false
	}
	return e.commitLocked(u, cursor.NewCursorSelection(c.Range.Start))
}

func (e *Engine) deleteSelectionLocked() bool {
	r := e.sel.Range()
	u := e.beginLocked(history.KindOther, "delete selection")
	if _, ok := e.replaceLocked(u, r.Start, r.End, ""); !ok {
		return false
	}
	return e.commitLocked(u, cursor.NewCursorSelection(r.Start))
}

// ============================================================================
// Indentation
// ============================================================================

// selectedLinesLocked returns the first and last line touched by the selection.
// A multi-line selection ending at column 0 does not touch its last line.
func (e *Engine) selectedLinesLocked() (int, int) {
	r := e.sel.Range()
	first, last := r.Start.Line, r.End.Line
	if last > first && r.End.Column == 0 {
		last--
	}
	return first, last
}

// IndentSelection inserts TabWidth spaces at the start of every line
// touched by the selection.
func (e *Engine) IndentSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indentLocked()
}

func (e *Engine) indentLocked() bool {
	first, last := e.selectedLinesLocked()
	indent := strings.Repeat(" ", e.tabWidth)

	u := e.beginLocked(history.KindOther, "indent")
	sel := e.sel
	for line := first; line <= last; line++ {
		c, ok := e.replaceLocked(u, Position{Line: line}, Position{Line: line}, indent)
		if !ok {
			break
		}
		sel = cursor.TransformSelection(sel, c)
	}
	return e.commitLocked(u, sel)
}

// DedentSelection removes up to TabWidth leading spaces, or one leading
// tab, from every line touched by the selection.
func (e *Engine) DedentSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dedentLocked()
}

func (e *Engine) dedentLocked() bool {
	first, last := e.selectedLinesLocked()

	u := e.beginLocked(history.KindOther, "dedent")
	sel := e.sel
	for line := first; line <= last; line++ {
		n := leadingIndent([]rune(e.buf.LineText(line)), e.tabWidth)
		if n == 0 {
			continue
		}
		c, ok := e.replaceLocked(u, Position{Line: line}, Position{Line: line, Column: n}, "")
		if !ok {
			break
		}
		sel = cursor.TransformSelection(sel, c)
	}
	return e.commitLocked(u, sel)
}

// leadingIndent returns how many leading runes a dedent removes.
func leadingIndent(line []rune, width int) int {
	if len(line) > 0 && line[0] == '\t' {
		return 1
	}
	n := 0
	for n < len(line) && n < width && line[n] == ' ' {
		n++
	}
	return n
}
