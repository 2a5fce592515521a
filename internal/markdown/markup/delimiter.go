package markup

import "strings"

var brackets = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// Emphasis markers that close with themselves.
var symmetric = map[string]bool{
	"*":  true,
	"**": true,
	"_":  true,
	"__": true,
	"~~": true,
	"`":  true,
	"==": true,
	"$":  true,
}

// Closing returns the closing delimiter for open.
// The second result is false when open is not a known delimiter; the
// returned closing delimiter then falls back to open itself.
func Closing(open string) (string, bool) {
	if open == "" {
		return "", false
	}
	if symmetric[open] {
		return open, true
	}

	runes := []rune(open)
	allBrackets := true
	closing := make([]rune, len(runes))
	for i, r := range runes {
		c, ok := brackets[r]
		if !ok {
			allBrackets = false
			c = r
		}
		closing[len(runes)-1-i] = c
	}
	if allBrackets {
		return string(closing), true
	}
	return open, false
}

// IsDelimiter returns true if r can start a wrap when typed over a selection.
func IsDelimiter(r rune) bool {
	if _, ok := brackets[r]; ok {
		return true
	}
	return symmetric[string(r)]
}

// Pair is an opening and closing delimiter.
type Pair struct {
	Open  string
	Close string
}

// String returns the pair around an ellipsis, e.g. "**…**".
func (p Pair) String() string {
	var b strings.Builder
	b.WriteString(p.Open)
	b.WriteString("…")
	b.WriteString(p.Close)
	return b.String()
}
