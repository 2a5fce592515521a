// Package table detects, parses and formats pipe-delimited Markdown tables.
//
// A table region is a header row, a separator row whose cells match
// ^:?-+:?$, and zero or more data rows, all with the same cell count.
// Detect returns ok == false for anything else; callers then treat the
// text as plain lines.
//
// Format re-renders a region in one of two modes:
//
//   - HeaderWidth sizes each column to its header cell (minimum 3).
//   - MaxWidth sizes every column to the widest cell of the table.
//
// Cells are padded, never truncated, and widths are display widths so
// East Asian wide characters line up in a terminal.
package table
