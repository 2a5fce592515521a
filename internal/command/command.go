// Package command defines the closed set of editing commands the terminal
// front end dispatches to an engine.
//
// Every command is a small value type. The set is sealed: only types in this
// package implement Command, so a type switch over it is exhaustive.
package command

import (
	"fmt"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/markdown/table"
)

// Command is an editing request.
type Command interface {
	// Name returns a stable identifier used in logs and key maps.
	Name() string

	sealed()
}

// Direction selects backward or forward for directional commands.
type Direction uint8

const (
	Backward Direction = iota
	Forward
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// InsertText inserts text at the cursor, replacing the selection.
type InsertText struct {
	Text string
}

// DeleteRange deletes the text between two positions.
type DeleteRange struct {
	Start buffer.Position
	End   buffer.Position
}

// DeleteChar deletes the selection, or one character in Direction.
type DeleteChar struct {
	Direction Direction
}

// DeleteWord deletes the selection, or up to the word boundary in Direction.
type DeleteWord struct {
	Direction Direction
}

// MoveCursor moves the cursor and drops the selection.
// When To is set the cursor moves there and Motion is ignored.
type MoveCursor struct {
	Motion cursor.Motion
	To     *buffer.Position
}

// ExtendSelection moves the head of the selection, keeping the anchor.
// When To is set the head moves there and Motion is ignored.
type ExtendSelection struct {
	Motion cursor.Motion
	To     *buffer.Position
}

// SelectAll selects the whole document.
type SelectAll struct{}

// WrapSelection surrounds the selection with a delimiter pair.
type WrapSelection struct {
	Open string
}

// InsertTemplate inserts a named markup template.
type InsertTemplate struct {
	Template string
}

// IndentSelection indents every line touched by the selection.
type IndentSelection struct{}

// DedentSelection dedents every line touched by the selection.
type DedentSelection struct{}

// ToggleHeading toggles the heading level of the cursor line.
type ToggleHeading struct {
	Level int
}

// LineBreak splits the line, adding table rows where appropriate.
type LineBreak struct{}

// NavigateCell moves to the next or previous table cell.
type NavigateCell struct {
	Direction Direction
}

// FormatTable reformats the table at the cursor or in the selection.
type FormatTable struct {
	Mode table.Mode
}

// Undo reverts the last undo unit.
type Undo struct{}

// Redo reapplies the last undone unit.
type Redo struct{}

func (InsertText) Name() string      { return "insert-text" }
func (DeleteRange) Name() string     { return "delete-range" }
func (DeleteChar) Name() string      { return "delete-char" }
func (DeleteWord) Name() string      { return "delete-word" }
func (MoveCursor) Name() string      { return "move-cursor" }
func (ExtendSelection) Name() string { return "extend-selection" }
func (SelectAll) Name() string       { return "select-all" }
func (WrapSelection) Name() string   { return "wrap-selection" }
func (InsertTemplate) Name() string  { return "insert-template" }
func (IndentSelection) Name() string { return "indent-selection" }
func (DedentSelection) Name() string { return "dedent-selection" }
func (ToggleHeading) Name() string   { return "toggle-heading" }
func (LineBreak) Name() string       { return "line-break" }
func (NavigateCell) Name() string    { return "navigate-cell" }
func (FormatTable) Name() string     { return "format-table" }
func (Undo) Name() string            { return "undo" }
func (Redo) Name() string            { return "redo" }

func (InsertText) sealed()      {}
func (DeleteRange) sealed()     {}
func (DeleteChar) sealed()      {}
func (DeleteWord) sealed()      {}
func (MoveCursor) sealed()      {}
func (ExtendSelection) sealed() {}
func (SelectAll) sealed()       {}
func (WrapSelection) sealed()   {}
func (InsertTemplate) sealed()  {}
func (IndentSelection) sealed() {}
func (DedentSelection) sealed() {}
func (ToggleHeading) sealed()   {}
func (LineBreak) sealed()       {}
func (NavigateCell) sealed()    {}
func (FormatTable) sealed()     {}
func (Undo) sealed()            {}
func (Redo) sealed()            {}

// Describe returns a short human-readable form of c for status messages
// and logs.
func Describe(c Command) string {
	switch c := c.(type) {
	case InsertText:
		return fmt.Sprintf("%s %q", c.Name(), c.Text)
	case DeleteRange:
		return fmt.Sprintf("%s %s-%s", c.Name(), c.Start, c.End)
	case DeleteChar:
		return fmt.Sprintf("%s %s", c.Name(), c.Direction)
	case DeleteWord:
		return fmt.Sprintf("%s %s", c.Name(), c.Direction)
	case MoveCursor:
		if c.To != nil {
			return fmt.Sprintf("%s to %s", c.Name(), *c.To)
		}
		return fmt.Sprintf("%s %s", c.Name(), c.Motion)
	case ExtendSelection:
		if c.To != nil {
			return fmt.Sprintf("%s to %s", c.Name(), *c.To)
		}
		return fmt.Sprintf("%s %s", c.Name(), c.Motion)
	case WrapSelection:
		return fmt.Sprintf("%s %q", c.Name(), c.Open)
	case InsertTemplate:
		return fmt.Sprintf("%s %s", c.Name(), c.Template)
	case ToggleHeading:
		return fmt.Sprintf("%s %d", c.Name(), c.Level)
	case NavigateCell:
		return fmt.Sprintf("%s %s", c.Name(), c.Direction)
	case FormatTable:
		return fmt.Sprintf("%s %s", c.Name(), c.Mode)
	case nil:
		return "<nil>"
	default:
		return c.Name()
	}
}
