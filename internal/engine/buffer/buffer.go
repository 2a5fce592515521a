package buffer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	// ErrInvalidPosition indicates a line index outside the document.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrRangeInvalid indicates a range whose endpoints cannot be resolved.
	ErrRangeInvalid = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is an ordered collection of text lines.
// It provides the primary interface for text manipulation.
// All methods are thread-safe.
//
// Lines are held without their terminators. ends[i] records the break
// after line i as it was read, so Export reproduces untouched content
// byte for byte. Breaks created by edits use lineEnding.
type Buffer struct {
	mu         sync.RWMutex
	lines      [][]rune
	ends       []LineEnding
	revisionID RevisionID
	lineEnding LineEnding
	forced     bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      [][]rune{{}},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The export line ending is detected from the content unless an option
// overrides it.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: DetectLineEnding(s),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.lines, b.ends = splitText(s, LineEndingLF)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF pair may straddle a read boundary.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading buffer content: %w", err)
	}
	return NewBufferFromString(string(data), opts...), nil
}

// splitText splits s on "\n". A "\r\n" pair is a CRLF break and a bare
// "\n" is recorded as lf. A lone "\r" is line content.
func splitText(s string, lf LineEnding) ([][]rune, []LineEnding) {
	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	ends := make([]LineEnding, len(parts)-1)
	for i, p := range parts {
		if i < len(parts)-1 {
			ends[i] = lf
			if trimmed, ok := strings.CutSuffix(p, "\r"); ok {
				p = trimmed
				ends[i] = LineEndingCRLF
			}
		}
		lines[i] = []rune(p)
	}
	return lines, ends
}

// joinText is the in-memory form of lines: every break is "\n".
func joinText(lines [][]rune) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Read Operations

// Text returns the full buffer content joined with "\n".
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.joinLocked(0, len(b.lines)-1, "\n")
}

// Export returns the text that should be persisted. Each line break is
// written as it was read, or as the forced line ending when one is set.
func (b *Buffer) Export() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			end := b.ends[i-1]
			if b.forced {
				end = b.lineEnding
			}
			sb.WriteString(end.Sequence())
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// joinLocked joins lines [start, end] with sep.
func (b *Buffer) joinLocked(start, end int, sep string) string {
	var sb strings.Builder
	for i := start; i <= end; i++ {
		if i > start {
			sb.WriteString(sep)
		}
		sb.WriteString(string(b.lines[i]))
	}
	return sb.String()
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of line i (without newline).
func (b *Buffer) Line(i int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.lines) {
		return "", fmt.Errorf("line %d: %w", i, ErrInvalidPosition)
	}
	return string(b.lines[i]), nil
}

// LineText returns the text of line i, or "" when i is out of range.
func (b *Buffer) LineText(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineLen returns the length of line i in runes, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// TextOf returns lines startLine through endLine (inclusive) joined with "\n".
func (b *Buffer) TextOf(startLine, endLine int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if startLine < 0 || startLine >= len(b.lines) {
		return "", fmt.Errorf("start line %d: %w", startLine, ErrInvalidPosition)
	}
	if endLine < startLine || endLine >= len(b.lines) {
		return "", fmt.Errorf("end line %d: %w", endLine, ErrInvalidPosition)
	}
	return b.joinLocked(startLine, endLine, "\n"), nil
}

// TextRange returns the text between two positions.
// Positions are clamped to the document; the range is normalized.
func (b *Buffer) TextRange(start, end Position) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r := Range{Start: b.clampLocked(start), End: b.clampLocked(end)}.Normalize()
	return b.textRangeLocked(r.Start, r.End)
}

// textRangeLocked returns text in [start, end). Both must be valid and ordered.
func (b *Buffer) textRangeLocked(start, end Position) string {
	if start.Line == end.Line {
		return string(b.lines[start.Line][start.Column:end.Column])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Column:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Column]))
	return sb.String()
}

// RuneAt returns the rune at p and true, or false when p is at or past the
// end of its line.
func (b *Buffer) RuneAt(p Position) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line < 0 || p.Line >= len(b.lines) {
		return 0, false
	}
	line := b.lines[p.Line]
	if p.Column < 0 || p.Column >= len(line) {
		return 0, false
	}
	return line[p.Column], true
}

// Coordinate Handling

// Clamp returns p clamped into the document bounds.
func (b *Buffer) Clamp(p Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampLocked(p)
}

func (b *Buffer) clampLocked(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Position{Line: last, Column: len(b.lines[last])}
	}
	return Position{Line: p.Line, Column: clampColumn(p.Column, len(b.lines[p.Line]))}
}

// Validate checks that p addresses an existing line and clamps its column.
func (b *Buffer) Validate(p Position) (Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.validateLocked(p)
}

func (b *Buffer) validateLocked(p Position) (Position, error) {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return p, fmt.Errorf("position %s: %w", p, ErrInvalidPosition)
	}
	return Position{Line: p.Line, Column: clampColumn(p.Column, len(b.lines[p.Line]))}, nil
}

func clampColumn(col, max int) int {
	if col < 0 {
		return 0
	}
	if col > max {
		return max
	}
	return col
}

// End returns the position after the last rune of the document.
func (b *Buffer) End() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines) - 1
	return Position{Line: last, Column: len(b.lines[last])}
}

// Write Operations

// Insert inserts text at pos and returns the performed change.
func (b *Buffer) Insert(pos Position, text string) (Change, error) {
	return b.Replace(pos, pos, text)
}

// Delete removes the text between start and end and returns the performed change.
func (b *Buffer) Delete(start, end Position) (Change, error) {
	return b.Replace(start, end, "")
}

// Replace replaces the text between start and end with text and returns the
// performed change. Start and end may be given in either order. A "\r\n"
// in text inserts a CRLF break; a bare "\n" uses the buffer's line ending.
func (b *Buffer) Replace(start, end Position, text string) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, err := b.rangeLocked(start, end)
	if err != nil {
		return Change{}, err
	}
	parts, ends := splitText(text, b.lineEnding)
	return b.spliceLocked(r, parts, ends), nil
}

// ApplyChange replaces c.Range with c.NewText, restoring the recorded
// line breaks of c. It is used to replay changes and their inverses.
func (b *Buffer) ApplyChange(c Change) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, err := b.rangeLocked(c.Range.Start, c.Range.End)
	if err != nil {
		return Change{}, err
	}
	parts := strings.Split(c.NewText, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	ends := c.NewEnds
	if len(ends) != len(parts)-1 {
		ends = make([]LineEnding, len(parts)-1)
		for i := range ends {
			ends[i] = b.lineEnding
		}
	}
	return b.spliceLocked(r, lines, ends), nil
}

func (b *Buffer) rangeLocked(start, end Position) (Range, error) {
	s, err := b.validateLocked(start)
	if err != nil {
		return Range{}, err
	}
	e, err := b.validateLocked(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}.Normalize(), nil
}

// spliceLocked replaces the valid, normalized range r with parts, joined
// by the breaks in ends.
func (b *Buffer) spliceLocked(r Range, parts [][]rune, ends []LineEnding) Change {
	oldText := b.textRangeLocked(r.Start, r.End)
	oldEnds := slices.Clone(b.ends[r.Start.Line:r.End.Line])

	prefix := b.lines[r.Start.Line][:r.Start.Column]
	suffix := b.lines[r.End.Line][r.End.Column:]

	repl := make([][]rune, len(parts))
	var newEnd Position

	if len(parts) == 1 {
		ins := parts[0]
		line := make([]rune, 0, len(prefix)+len(ins)+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins...)
		line = append(line, suffix...)
		repl[0] = line
		newEnd = Position{Line: r.Start.Line, Column: len(prefix) + len(ins)}
	} else {
		first := parts[0]
		line := make([]rune, 0, len(prefix)+len(first))
		line = append(line, prefix...)
		line = append(line, first...)
		repl[0] = line

		for i := 1; i < len(parts)-1; i++ {
			repl[i] = slices.Clone(parts[i])
		}

		lastPart := parts[len(parts)-1]
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl[len(parts)-1] = last
		newEnd = Position{Line: r.Start.Line + len(parts) - 1, Column: len(lastPart)}
	}

	out := make([][]rune, 0, len(b.lines)-(r.End.Line-r.Start.Line+1)+len(repl))
	out = append(out, b.lines[:r.Start.Line]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Line+1:]...)
	b.lines = out

	outEnds := make([]LineEnding, 0, len(b.ends)-len(oldEnds)+len(ends))
	outEnds = append(outEnds, b.ends[:r.Start.Line]...)
	outEnds = append(outEnds, ends...)
	outEnds = append(outEnds, b.ends[r.End.Line:]...)
	b.ends = outEnds

	c := newChange(r, Range{Start: r.Start, End: newEnd}, oldText, joinText(parts))
	c.OldEnds = oldEnds
	c.NewEnds = slices.Clone(ends)
	if !c.IsNoOp() {
		b.revisionID = NewRevisionID()
	}
	return c
}

// SetText replaces the whole document. Unless a line ending is forced,
// the one used for new breaks is re-detected.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.forced {
		b.lineEnding = DetectLineEnding(s)
	}
	b.lines, b.ends = splitText(s, LineEndingLF)
	b.revisionID = NewRevisionID()
}

// Metadata

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the line ending used for new breaks, and for every
// break on export when it is forced.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding forces le for every line break on export.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
	b.forced = true
}

// Snapshot returns a read-only copy of the current buffer lines.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	for i, l := range b.lines {
		lines[i] = string(l)
	}
	return &Snapshot{lines: lines, revisionID: b.revisionID}
}

// Snapshot provides a read-only view of a buffer at a specific point in time.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of line i, or "" when i is out of range.
func (s *Snapshot) LineText(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}
