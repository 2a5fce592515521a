package buffer

import "strings"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding forces le for every line break on export. Without it
// each break is written back as it was read.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
		b.forced = true
	}
}

// DetectLineEnding returns the line ending used by most breaks in text:
// CRLF when "\r\n" pairs are at least as common as bare "\n", LF
// otherwise. A lone "\r" is not a break.
func DetectLineEnding(text string) LineEnding {
	lf := strings.Count(text, "\n")
	crlf := strings.Count(text, "\r\n")
	if crlf > 0 && crlf >= lf-crlf {
		return LineEndingCRLF
	}
	return LineEndingLF
}
