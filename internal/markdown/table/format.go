package table

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MinColumnWidth is the narrowest column a formatted table produces, the
// shortest valid separator cell being three characters wide.
const MinColumnWidth = 3

// Mode selects the column width algorithm.
type Mode uint8

const (
	// HeaderWidth sizes each column to its header cell.
	HeaderWidth Mode = iota
	// MaxWidth sizes every column to the widest cell in the table.
	MaxWidth
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case HeaderWidth:
		return "header-width"
	case MaxWidth:
		return "max-width"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header-width", "header":
		return HeaderWidth, true
	case "max-width", "max":
		return MaxWidth, true
	default:
		return HeaderWidth, false
	}
}

// Width returns the display width of s.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// ColumnWidths computes the target width of every column for mode.
func ColumnWidths(r *Region, mode Mode) []int {
	cols := r.Columns()
	widths := make([]int, cols)

	switch mode {
	case MaxWidth:
		widest := MinColumnWidth
		for i, row := range r.Rows {
			if i == 1 {
				continue
			}
			for _, c := range row.Cells {
				widest = max(widest, Width(c.Text))
			}
		}
		for i := range widths {
			widths[i] = widest
		}
	default:
		for i, c := range r.Rows[0].Cells {
			widths[i] = max(Width(c.Text), MinColumnWidth)
		}
	}
	return widths
}

// Format renders every row of the region with the widths chosen by mode.
// The returned slice has one line per region row. Cells are padded on the
// right and never truncated; the indentation of the header is kept.
func Format(r *Region, mode Mode) []string {
	widths := ColumnWidths(r, mode)
	indent := r.Indent()

	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		if i == 1 {
			lines[i] = indent + separatorLine(widths, r.Align)
			continue
		}
		lines[i] = indent + rowLine(row.Texts(), widths)
	}
	return lines
}

// rowLine renders cells as `| a | b |`.
func rowLine(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, text := range cells {
		b.WriteByte(' ')
		b.WriteString(text)
		if pad := widths[i] - Width(text); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(" |")
	}
	return b.String()
}

// separatorLine renders `| --- | :-: |` keeping alignment markers.
func separatorLine(widths []int, align []Alignment) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		b.WriteByte(' ')
		a := AlignNone
		if i < len(align) {
			a = align[i]
		}
		b.WriteString(separatorCellText(w, a))
		b.WriteString(" |")
	}
	return b.String()
}

func separatorCellText(width int, a Alignment) string {
	width = max(width, MinColumnWidth)
	switch a {
	case AlignLeft:
		return ":" + strings.Repeat("-", width-1)
	case AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

// EmptyRow returns a row of empty cells whose raw segments have the given
// widths, e.g. `|     |   |`.
func EmptyRow(indent string, widths []int) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteByte('|')
	for _, w := range widths {
		b.WriteString(strings.Repeat(" ", max(w, 1)))
		b.WriteByte('|')
	}
	return b.String()
}

// SeparatorFor returns a plain separator row sized to the raw segment widths
// of a header row, at least MinColumnWidth dashes per column, e.g. `|---|---|`.
func SeparatorFor(indent string, widths []int) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteByte('|')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", max(w, MinColumnWidth)))
		b.WriteByte('|')
	}
	return b.String()
}
