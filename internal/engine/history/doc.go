// Package history provides undo/redo for the editing engine.
//
// # Units
//
// A Unit is an ordered list of buffer changes applied as one step, plus
// the selection before and after. Undo applies the inverse of each change
// in reverse order and restores Before; Redo replays the changes and
// restores After.
//
// # Coalescing
//
// Consecutive single-rune edits of the same Kind merge into the top unit
// when the cursor has not moved in between:
//
//   - KindInsert: typed runes that continue at the end of the last insert.
//     Typing whitespace after a non-whitespace rune starts a new unit, so
//     undo removes one word at a time.
//   - KindDeleteBackward: backspaces that end where the last one started.
//   - KindDeleteForward: deletes at the same position.
//
// Close marks the top unit so nothing merges into it.
//
//	h := history.NewHistory(1000)
//	h.Record(unit)
//	sel, err := h.Undo(buf)
//
// Recording a unit always clears the redo stack.
package history
