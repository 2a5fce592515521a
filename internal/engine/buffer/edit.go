package buffer

import (
	"fmt"
	"unicode/utf8"
)

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single edit applied to the buffer.
// It carries enough information to produce its inverse.
type Change struct {
	Type     ChangeType // Type of change
	Range    Range      // Range that was replaced, in pre-edit coordinates
	NewRange Range      // Range of the inserted text, in post-edit coordinates
	OldText  string     // Text that was removed (for delete/replace)
	NewText  string     // Text that was added (for insert/replace)

	// Line breaks removed and added, one per "\n" in OldText and NewText.
	OldEnds []LineEnding
	NewEnds []LineEnding
}

func newChange(r, nr Range, oldText, newText string) Change {
	c := Change{Range: r, NewRange: nr, OldText: oldText, NewText: newText}
	c.Type = changeType(oldText, newText)
	return c
}

func changeType(oldText, newText string) ChangeType {
	switch {
	case oldText == "":
		return ChangeInsert
	case newText == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// Invert returns the change that would undo this change.
func (c Change) Invert() Change {
	return Change{
		Type:     changeType(c.NewText, c.OldText),
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
		OldEnds:  c.NewEnds,
		NewEnds:  c.OldEnds,
	}
}

// IsNoOp returns true if this change does nothing.
func (c Change) IsNoOp() bool {
	return c.OldText == "" && c.NewText == ""
}

// RuneCount returns the number of runes inserted plus the number removed.
func (c Change) RuneCount() int {
	return utf8.RuneCountInString(c.OldText) + utf8.RuneCountInString(c.NewText)
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%s, %q)", c.Range.Start, c.NewText)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", c.Range, c.NewText)
	}
}
