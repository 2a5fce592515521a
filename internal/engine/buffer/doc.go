// Package buffer provides the line-oriented text buffer used by the editor
// engine.
//
// The buffer stores a document as an ordered list of lines, each a slice of
// runes. A document always has at least one line; an empty document is a
// single empty line.
//
// The buffer package provides:
//
//   - Insert, Delete and Replace that accept multi-line text and return the
//     Change they performed, ready to be recorded for undo
//   - Line/column addressing with columns counted in runes
//   - Position validation: line indices outside the document return
//     ErrInvalidPosition, columns are clamped to the line length
//   - Line ending detection on load and restoration on Export
//   - Read-only snapshots for concurrent readers
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello\nWorld")
//
//	// Insert text
//	buf.Insert(buffer.Position{Line: 0, Column: 5}, ",") // "Hello,\nWorld"
//
//	// Join the two lines
//	buf.Delete(buffer.Position{Line: 0, Column: 6}, buffer.Position{Line: 1})
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
