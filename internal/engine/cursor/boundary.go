package cursor

import "unicode"

// CharClass categorizes runes for word boundary detection.
type CharClass uint8

const (
	ClassWhitespace  CharClass = iota // Spaces, tabs
	ClassWord                         // Letters, digits, underscore
	ClassPunctuation                  // Everything else
)

// String returns a string representation of the class.
func (c CharClass) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassWord:
		return "word"
	default:
		return "punctuation"
	}
}

// Classify returns the character class of r.
func Classify(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
		return ClassWord
	default:
		return ClassPunctuation
	}
}

// Lines is the read-only view of a document used by boundary and motion queries.
type Lines interface {
	LineCount() int
	LineText(i int) string
}

// WordBoundaryLeft returns the column of the nearest word boundary to the left
// of col within line. A run of whitespace directly left of col is skipped as a
// single unit before the next class run is consumed.
func WordBoundaryLeft(line []rune, col int) int {
	col = clampCol(col, len(line))
	for col > 0 && Classify(line[col-1]) == ClassWhitespace {
		col--
	}
	if col == 0 {
		return 0
	}
	class := Classify(line[col-1])
	for col > 0 && Classify(line[col-1]) == class {
		col--
	}
	return col
}

// WordBoundaryRight returns the column of the nearest word boundary to the
// right of col within line. A run of whitespace directly right of col is
// skipped as a single unit before the next class run is consumed.
func WordBoundaryRight(line []rune, col int) int {
	col = clampCol(col, len(line))
	for col < len(line) && Classify(line[col]) == ClassWhitespace {
		col++
	}
	if col == len(line) {
		return col
	}
	class := Classify(line[col])
	for col < len(line) && Classify(line[col]) == class {
		col++
	}
	return col
}

// WordLeft returns the position of the word boundary left of p.
// At the start of a line the boundary is the end of the previous line.
func WordLeft(lines Lines, p Position) Position {
	p = ClampPosition(lines, p)
	if p.Column == 0 {
		if p.Line == 0 {
			return p
		}
		prev := p.Line - 1
		return Position{Line: prev, Column: runeLen(lines.LineText(prev))}
	}
	return Position{Line: p.Line, Column: WordBoundaryLeft([]rune(lines.LineText(p.Line)), p.Column)}
}

// WordRight returns the position of the word boundary right of p.
// At the end of a line the boundary is the start of the next line.
func WordRight(lines Lines, p Position) Position {
	p = ClampPosition(lines, p)
	line := []rune(lines.LineText(p.Line))
	if p.Column >= len(line) {
		if p.Line >= lines.LineCount()-1 {
			return p
		}
		return Position{Line: p.Line + 1, Column: 0}
	}
	return Position{Line: p.Line, Column: WordBoundaryRight(line, p.Column)}
}

// WordAt returns the range of the word-class run containing or touching p.
// If p is not adjacent to a word character, an empty range at p is returned.
func WordAt(lines Lines, p Position) Range {
	p = ClampPosition(lines, p)
	line := []rune(lines.LineText(p.Line))

	start, end := p.Column, p.Column
	for start > 0 && Classify(line[start-1]) == ClassWord {
		start--
	}
	for end < len(line) && Classify(line[end]) == ClassWord {
		end++
	}
	return Range{
		Start: Position{Line: p.Line, Column: start},
		End:   Position{Line: p.Line, Column: end},
	}
}

// LineBoundaries returns the start and end positions of the line containing p.
func LineBoundaries(lines Lines, p Position) (Position, Position) {
	p = ClampPosition(lines, p)
	return Position{Line: p.Line, Column: 0},
		Position{Line: p.Line, Column: runeLen(lines.LineText(p.Line))}
}

// FirstNonBlank returns the column of the first non-whitespace rune in line,
// or len(line) if the line is blank.
func FirstNonBlank(line []rune) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}

// ClampPosition clamps p to the bounds of lines.
func ClampPosition(lines Lines, p Position) Position {
	count := lines.LineCount()
	if count == 0 {
		return Position{}
	}
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= count {
		last := count - 1
		return Position{Line: last, Column: runeLen(lines.LineText(last))}
	}
	return Position{Line: p.Line, Column: clampCol(p.Column, runeLen(lines.LineText(p.Line)))}
}

func clampCol(col, max int) int {
	if col < 0 {
		return 0
	}
	if col > max {
		return max
	}
	return col
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
