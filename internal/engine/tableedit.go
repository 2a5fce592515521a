package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/engine/history"
	"github.com/dshills/mdedit/internal/markdown/table"
)

// SoftBreak is inserted by LineBreak inside a table row that is not the
// last one, keeping the row on a single line.
const SoftBreak = "<br>"

// ============================================================================
// Line Break
// ============================================================================

// LineBreak handles Enter.
//
//   - With a selection, or outside a table, a plain newline replaces the
//     selection.
//   - On the last row of a table an empty row is appended and the cursor
//     moves to its first cell.
//   - On the separator row the cursor moves to the first cell of the row
//     below.
//   - On other rows a soft break is inserted in the cell.
//   - On a lone header line (starts with a pipe, no rows around it) a
//     separator and an empty row are generated.
func (e *Engine) LineBreak() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sel.IsEmpty() {
		return e.insertTextLocked("\n")
	}

	head := e.sel.Head
	if region, ok := table.Detect(e.buf, head.Line); ok {
		switch {
		case region.IsLastRow(head.Line):
			return e.appendRowLocked(region)
		case head.Line == region.Separator():
			col, _ := region.CellStart(head.Line+1, 0)
			e.setSelectionLocked(cursor.NewCursorSelection(Position{Line: head.Line + 1, Column: col}))
			return true
		default:
			return e.insertTextLocked(SoftBreak)
		}
	}

	if table.IsHeaderCandidate(e.buf, head.Line) {
		return e.completeHeaderLocked(head.Line)
	}

	e.logger.Debug("line break: line %d is not a table row", head.Line)
	return e.insertTextLocked("\n")
}

// appendRowLocked adds an empty row below the region whose cell widths
// mirror the separator.
func (e *Engine) appendRowLocked(region *table.Region) bool {
	widths := region.SegmentWidths(region.Separator())
	row := table.EmptyRow(region.Indent(), widths)
	return e.appendLinesLocked("new table row", region.End, row)
}

// completeHeaderLocked turns a lone header line into a table by adding a
// separator sized to the header cells and one empty row.
func (e *Engine) completeHeaderLocked(line int) bool {
	header, ok := table.ParseRow(e.buf.LineText(line))
	if !ok {
		return false
	}

	widths := make([]int, header.Len())
	for i, c := range header.Cells {
		widths[i] = max(c.Width(), table.MinColumnWidth)
	}
	sep := table.SeparatorFor(header.Indent, widths)
	row := table.EmptyRow(header.Indent, widths)
	return e.appendLinesLocked("new table", line, sep, row)
}

// appendLinesLocked inserts lines after line after and moves the cursor to
// the first cell of the last inserted line.
func (e *Engine) appendLinesLocked(description string, after int, lines ...string) bool {
	end := Position{Line: after, Column: e.buf.LineLen(after)}

	u := e.beginLocked(history.KindOther, description)
	c, ok := e.replaceLocked(u, end, end, "\n"+strings.Join(lines, "\n"))
	if !ok {
		return false
	}

	target := c.NewRange.End.Line
	col := 0
	if region, ok := table.Detect(e.buf, target); ok {
		col, _ = region.CellStart(target, 0)
	} else if row, ok := table.ParseRow(e.buf.LineText(target)); ok {
		col = row.Cells[0].Start
	}
	return e.commitLocked(u, cursor.NewCursorSelection(Position{Line: target, Column: col}))
}

// ============================================================================
// Cell Navigation
// ============================================================================

// NavigateCell moves the cursor to the first character of the next or
// previous cell in reading order, skipping the separator row. At the first
// or last cell nothing moves. Outside a table it indents (forward) or
// dedents (backward) the selected lines instead.
func (e *Engine) NavigateCell(forward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	head := e.sel.Head
	region, ok := table.Detect(e.buf, head.Line)
	if !ok {
		if forward {
			return e.indentLocked()
		}
		return e.dedentLocked()
	}

	line, idx, ok := nextCell(region, head, forward)
	if !ok {
		return true
	}
	col, _ := region.CellStart(line, idx)
	e.setSelectionLocked(cursor.NewCursorSelection(Position{Line: line, Column: col}))
	return true
}

// nextCell returns the cell after (or before) the one containing p.
func nextCell(region *table.Region, p Position, forward bool) (int, int, bool) {
	cols := region.Columns()
	line := p.Line

	if line == region.Separator() {
		if forward {
			if line+1 > region.End {
				return 0, 0, false
			}
			return line + 1, 0, true
		}
		return region.Header(), cols - 1, true
	}

	idx := region.CellAt(line, p.Column)
	if forward {
		if idx+1 < cols {
			return line, idx + 1, true
		}
		next := line + 1
		if next == region.Separator() {
			next++
		}
		if next > region.End {
			return 0, 0, false
		}
		return next, 0, true
	}

	if idx > 0 {
		return line, idx - 1, true
	}
	prev := line - 1
	if prev == region.Separator() {
		prev--
	}
	if prev < region.Start {
		return 0, 0, false
	}
	return prev, cols - 1, true
}

// ============================================================================
// Table Formatting
// ============================================================================

// FormatTable reformats the table containing the cursor, or every table
// fully contained in a multi-line selection, as one undo unit. Tables that
// are already formatted are left untouched. The cursor stays in the same
// cell at the same offset within the cell text.
// It returns ErrNotInTable if there is nothing to format.
func (e *Engine) FormatTable(mode table.Mode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var regions []*table.Region
	if e.sel.IsMultiLine() {
		first, last := e.selectedLinesLocked()
		regions = table.FindAll(e.buf, first, last)
	}
	if len(regions) == 0 {
		if region, ok := table.Detect(e.buf, e.sel.Head.Line); ok {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		e.logger.Debug("format table: line %d is not in a table", e.sel.Head.Line)
		return fmt.Errorf("%w: line %d", ErrNotInTable, e.sel.Head.Line)
	}

	anchor := e.cellAnchorLocked(regions, e.sel.Anchor)
	head := e.cellAnchorLocked(regions, e.sel.Head)

	u := e.beginLocked(history.KindOther, "format table "+mode.String())
	for _, region := range regions {
		e.formatRegionLocked(u, region, mode)
	}

	sel := cursor.NewSelection(anchor.resolve(e.buf, e.sel.Anchor), head.resolve(e.buf, e.sel.Head))
	if u.IsEmpty() {
		return nil
	}
	e.commitLocked(u, sel)
	return nil
}

func (e *Engine) formatRegionLocked(u *history.Unit, region *table.Region, mode table.Mode) {
	formatted := table.Format(region, mode)

	changed := false
	for i, line := range formatted {
		if e.buf.LineText(region.Start+i) != line {
			changed = true
			break
		}
	}
	if !changed {
		return
	}

	start := Position{Line: region.Start}
	end := Position{Line: region.End, Column: e.buf.LineLen(region.End)}
	e.replaceLocked(u, start, end, strings.Join(formatted, "\n"))
}

// cellAnchor remembers a position as a cell and an offset in the cell text,
// so it can be found again after the table is re-rendered.
type cellAnchor struct {
	inTable bool
	line    int
	cell    int
	offset  int
}

func (e *Engine) cellAnchorLocked(regions []*table.Region, p Position) cellAnchor {
	for _, region := range regions {
		if !region.Contains(p.Line) {
			continue
		}
		idx := region.CellAt(p.Line, p.Column)
		start, _ := region.CellStart(p.Line, idx)
		return cellAnchor{inTable: true, line: p.Line, cell: idx, offset: max(p.Column-start, 0)}
	}
	return cellAnchor{}
}

func (a cellAnchor) resolve(buf *buffer.Buffer, fallback Position) Position {
	if !a.inTable {
		return buf.Clamp(fallback)
	}
	region, ok := table.Detect(buf, a.line)
	if !ok {
		return buf.Clamp(fallback)
	}
	row, _ := region.Row(a.line)
	start, ok := region.CellStart(a.line, a.cell)
	if !ok {
		return buf.Clamp(fallback)
	}
	offset := min(a.offset, utf8.RuneCountInString(row.Cells[a.cell].Text))
	return Position{Line: a.line, Column: start + offset}
}
