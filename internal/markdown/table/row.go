package table

import (
	"regexp"
	"strings"
	"unicode"
)

var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// Cell is one parsed cell of a row.
// Start and End are rune columns of the raw segment between two pipes:
// Start is the column after the left pipe, End the column of the right
// pipe (or the line length when the row has no trailing pipe).
type Cell struct {
	Text  string
	Start int
	End   int
}

// Width returns the rune width of the raw segment.
func (c Cell) Width() int {
	return c.End - c.Start
}

// Row is a parsed candidate table line.
type Row struct {
	Indent       string
	Cells        []Cell
	LeadingPipe  bool
	TrailingPipe bool
}

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r.Cells)
}

// Texts returns the trimmed text of every cell.
func (r Row) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// IsSeparator returns true if every cell is a dash run with optional
// alignment colons.
func (r Row) IsSeparator() bool {
	if len(r.Cells) == 0 {
		return false
	}
	for _, c := range r.Cells {
		if !separatorCell.MatchString(c.Text) {
			return false
		}
	}
	return true
}

// ParseRow splits line on unescaped pipes.
// It returns false if the line has no unescaped pipe, is blank, or has no
// cells once the optional outer pipes are dropped. Escaped pipes stay in
// the cell text as `\|`.
func ParseRow(line string) (Row, bool) {
	if strings.TrimSpace(line) == "" {
		return Row{}, false
	}

	runes := []rune(line)
	pipes := pipeColumns(runes)
	if len(pipes) == 0 {
		return Row{}, false
	}

	first := firstNonSpace(runes)
	last := lastNonSpace(runes)

	row := Row{Indent: string(runes[:first])}
	row.LeadingPipe = pipes[0] == first
	row.TrailingPipe = pipes[len(pipes)-1] == last

	// Segment boundaries: -1 stands for "before the line".
	bounds := make([]int, 0, len(pipes)+2)
	if !row.LeadingPipe {
		bounds = append(bounds, first-1)
	}
	bounds = append(bounds, pipes...)
	if !row.TrailingPipe {
		bounds = append(bounds, len(runes))
	}
	if row.LeadingPipe && row.TrailingPipe && len(pipes) == 1 {
		return Row{}, false
	}

	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i]+1, bounds[i+1]
		row.Cells = append(row.Cells, Cell{
			Text:  strings.TrimSpace(string(runes[start:end])),
			Start: start,
			End:   end,
		})
	}

	if len(row.Cells) == 0 {
		return Row{}, false
	}
	return row, true
}

// IsSeparatorRow reports whether line parses as a separator row.
func IsSeparatorRow(line string) bool {
	row, ok := ParseRow(line)
	return ok && row.IsSeparator()
}

// pipeColumns returns the columns of all unescaped pipes.
// A pipe is escaped when preceded by an odd number of backslashes.
func pipeColumns(runes []rune) []int {
	var cols []int
	backslashes := 0
	for i, r := range runes {
		switch r {
		case '\\':
			backslashes++
			continue
		case '|':
			if backslashes%2 == 0 {
				cols = append(cols, i)
			}
		}
		backslashes = 0
	}
	return cols
}

func firstNonSpace(runes []rune) int {
	for i, r := range runes {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(runes)
}

func lastNonSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
