package cursor

// Motion identifies a cursor movement relative to the current head.
type Motion uint8

const (
	MotionCharLeft Motion = iota
	MotionCharRight
	MotionWordLeft
	MotionWordRight
	MotionLineUp
	MotionLineDown
	MotionLineStart
	MotionLineEnd
	MotionDocStart
	MotionDocEnd
)

var motionNames = map[Motion]string{
	MotionCharLeft:  "char-left",
	MotionCharRight: "char-right",
	MotionWordLeft:  "word-left",
	MotionWordRight: "word-right",
	MotionLineUp:    "line-up",
	MotionLineDown:  "line-down",
	MotionLineStart: "line-start",
	MotionLineEnd:   "line-end",
	MotionDocStart:  "doc-start",
	MotionDocEnd:    "doc-end",
}

// String returns a string representation of the motion.
func (m Motion) String() string {
	if name, ok := motionNames[m]; ok {
		return name
	}
	return "unknown"
}

// Apply returns the position reached by moving from p with motion m.
// Vertical motions keep the column, clamped to the target line.
func (m Motion) Apply(lines Lines, p Position) Position {
	p = ClampPosition(lines, p)

	switch m {
	case MotionCharLeft:
		if p.Column > 0 {
			return Position{Line: p.Line, Column: p.Column - 1}
		}
		if p.Line > 0 {
			return Position{Line: p.Line - 1, Column: runeLen(lines.LineText(p.Line - 1))}
		}
		return p

	case MotionCharRight:
		if p.Column < runeLen(lines.LineText(p.Line)) {
			return Position{Line: p.Line, Column: p.Column + 1}
		}
		if p.Line < lines.LineCount()-1 {
			return Position{Line: p.Line + 1, Column: 0}
		}
		return p

	case MotionWordLeft:
		return WordLeft(lines, p)

	case MotionWordRight:
		return WordRight(lines, p)

	case MotionLineUp:
		if p.Line == 0 {
			return Position{}
		}
		return ClampPosition(lines, Position{Line: p.Line - 1, Column: p.Column})

	case MotionLineDown:
		if p.Line >= lines.LineCount()-1 {
			return Position{Line: p.Line, Column: runeLen(lines.LineText(p.Line))}
		}
		return ClampPosition(lines, Position{Line: p.Line + 1, Column: p.Column})

	case MotionLineStart:
		first := FirstNonBlank([]rune(lines.LineText(p.Line)))
		if p.Column != first {
			return Position{Line: p.Line, Column: first}
		}
		return Position{Line: p.Line, Column: 0}

	case MotionLineEnd:
		_, end := LineBoundaries(lines, p)
		return end

	case MotionDocStart:
		return Position{}

	case MotionDocEnd:
		last := lines.LineCount() - 1
		return Position{Line: last, Column: runeLen(lines.LineText(last))}
	}

	return p
}
