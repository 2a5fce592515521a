// Package cursor provides selection management and cursor movement for the
// editing engine.
//
// The cursor package handles:
//
//   - Text selections with the anchor/head model via Selection
//   - Word and line boundary queries
//   - Cursor motions (character, word, line, document)
//   - Selection transformation after buffer changes
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
// Operations read the normalized Range.
//
// Word Boundaries:
//
// Runes are classified as word characters (letters, digits, underscore),
// whitespace, or punctuation. A boundary is the nearest class change, with
// a leading run of whitespace skipped as one unit.
//
// Basic usage:
//
//	sel := cursor.NewCursorSelection(buffer.Position{Line: 0, Column: 4})
//	sel = sel.Extend(cursor.MotionWordRight.Apply(buf, sel.Head))
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
