// Package engine provides the editing core for one Markdown document.
//
// The engine package serves as the facade over the line buffer, the
// selection, undo/redo and the Markdown commands: markup wrapping and
// templates, heading toggles, and table-aware line breaks, cell navigation
// and formatting.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line buffer of rune slices with primitive replace edits
//   - cursor: anchor/head selections, word boundaries and motions
//   - history: undo units with coalescing of typed runes
//
// Markdown knowledge lives in internal/markdown/table and
// internal/markdown/markup; the engine turns their results into buffer
// edits.
//
// # Commands
//
// Front ends dispatch the closed set of commands in internal/command
// through Apply, or call the methods directly:
//
//	e := engine.New(engine.WithContent("| A | B |"))
//	e.MoveTo(engine.Position{Line: 0, Column: 2})
//	e.LineBreak() // adds |---|---| and an empty row
//
// Every edit is one undo unit. Typed characters coalesce until the cursor
// moves or whitespace follows a word, so Undo removes a word at a time.
//
// # Degrading
//
// Nothing in the engine aborts an edit: positions are clamped, a region
// that is not a valid table is edited as plain text, unknown delimiters
// close with themselves and an empty undo stack is a no-op.
//
// # Thread Safety
//
// All Engine operations are guarded by a read-write mutex, so readers such
// as the renderer or a save running on another goroutine see a consistent
// document.
package engine
