package table

import "strings"

// Lines is the read-only view of a document used for detection.
type Lines interface {
	LineCount() int
	LineText(i int) string
}

// Alignment is the column alignment declared by the separator row.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns a string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// ParseAlignment reads the alignment of a separator cell.
func ParseAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := len(cell) > 1 && strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case left:
		return AlignLeft
	case right:
		return AlignRight
	default:
		return AlignNone
	}
}

// Region is a detected table.
// Rows[0] is the header and Rows[1] the separator.
type Region struct {
	Start int // Header line
	End   int // Last line, inclusive
	Rows  []Row
	Align []Alignment

	raw [][]rune
}

// Columns returns the number of columns.
func (r *Region) Columns() int {
	return r.Rows[0].Len()
}

// Header returns the header line index.
func (r *Region) Header() int {
	return r.Start
}

// Separator returns the separator line index.
func (r *Region) Separator() int {
	return r.Start + 1
}

// DataRows returns the number of rows below the separator.
func (r *Region) DataRows() int {
	return len(r.Rows) - 2
}

// Indent returns the leading whitespace of the header line.
func (r *Region) Indent() string {
	return r.Rows[0].Indent
}

// Contains returns true if line lies within the region.
func (r *Region) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Row returns the parsed row at the given document line.
func (r *Region) Row(line int) (Row, bool) {
	if !r.Contains(line) {
		return Row{}, false
	}
	return r.Rows[line-r.Start], true
}

// IsLastRow returns true if line is the final line of the region.
func (r *Region) IsLastRow(line int) bool {
	return line == r.End
}

// CellAt returns the index of the cell containing column col on line.
// Columns left of the first cell map to 0 and right of the last cell map
// to the last index. It returns -1 if line is outside the region.
func (r *Region) CellAt(line, col int) int {
	row, ok := r.Row(line)
	if !ok {
		return -1
	}
	for i, c := range row.Cells {
		if col <= c.End {
			return i
		}
	}
	return len(row.Cells) - 1
}

// CellStart returns the column of the first character of cell idx on line.
// For an empty cell that is one column past the left pipe, so that the
// cursor sits after the conventional padding space.
func (r *Region) CellStart(line, idx int) (int, bool) {
	row, ok := r.Row(line)
	if !ok || idx < 0 || idx >= row.Len() {
		return 0, false
	}
	return r.cellStart(line, row.Cells[idx]), true
}

func (r *Region) cellStart(line int, c Cell) int {
	if c.Text == "" {
		if c.Width() > 0 {
			return c.Start + 1
		}
		return c.Start
	}
	for i, ch := range r.raw[line-r.Start][c.Start:c.End] {
		if ch != ' ' && ch != '\t' {
			return c.Start + i
		}
	}
	return c.Start
}

// SegmentWidths returns the raw segment widths of the given line.
func (r *Region) SegmentWidths(line int) []int {
	row, ok := r.Row(line)
	if !ok {
		return nil
	}
	widths := make([]int, row.Len())
	for i, c := range row.Cells {
		widths[i] = c.Width()
	}
	return widths
}

// Detect finds the table region containing line.
//
// Starting from line it collects the maximal run of adjacent rows with the
// same cell count. The first separator row below the top of the run fixes
// the header (the row above it). The region spans the header through the
// end of the run. Detect returns false if line is not a row, no separator
// is found, or line lies above the header.
func Detect(src Lines, line int) (*Region, bool) {
	if line < 0 || line >= src.LineCount() {
		return nil, false
	}
	seed, ok := ParseRow(src.LineText(line))
	if !ok {
		return nil, false
	}
	n := seed.Len()

	sameCount := func(i int) (Row, bool) {
		row, ok := ParseRow(src.LineText(i))
		if !ok || row.Len() != n {
			return Row{}, false
		}
		return row, true
	}

	top := line
	for top > 0 {
		if _, ok := sameCount(top - 1); !ok {
			break
		}
		top--
	}
	bottom := line
	for bottom < src.LineCount()-1 {
		if _, ok := sameCount(bottom + 1); !ok {
			break
		}
		bottom++
	}

	header := -1
	for i := top + 1; i <= bottom; i++ {
		if IsSeparatorRow(src.LineText(i)) {
			header = i - 1
			break
		}
	}
	if header < 0 || line < header {
		return nil, false
	}

	region := &Region{Start: header, End: bottom}
	for i := header; i <= bottom; i++ {
		text := src.LineText(i)
		row, _ := ParseRow(text)
		region.Rows = append(region.Rows, row)
		region.raw = append(region.raw, []rune(text))
	}
	for _, c := range region.Rows[1].Cells {
		region.Align = append(region.Align, ParseAlignment(c.Text))
	}
	return region, true
}

// FindAll returns every region lying entirely within lines [start, end].
func FindAll(src Lines, start, end int) []*Region {
	if start < 0 {
		start = 0
	}
	if end >= src.LineCount() {
		end = src.LineCount() - 1
	}

	var regions []*Region
	for line := start; line <= end; {
		region, ok := Detect(src, line)
		if !ok || region.Start < start {
			line++
			continue
		}
		if region.End <= end {
			regions = append(regions, region)
		}
		line = region.End + 1
	}
	return regions
}

// IsHeaderCandidate reports whether line looks like a table header that has
// no separator yet: it starts with a pipe, parses as a row, and neither
// neighbouring line is a row.
func IsHeaderCandidate(src Lines, line int) bool {
	if line < 0 || line >= src.LineCount() {
		return false
	}
	text := src.LineText(line)
	if !strings.HasPrefix(strings.TrimLeft(text, " \t"), "|") {
		return false
	}
	if _, ok := ParseRow(text); !ok {
		return false
	}
	if line > 0 {
		if _, ok := ParseRow(src.LineText(line - 1)); ok {
			return false
		}
	}
	if line < src.LineCount()-1 {
		if _, ok := ParseRow(src.LineText(line + 1)); ok {
			return false
		}
	}
	return true
}
