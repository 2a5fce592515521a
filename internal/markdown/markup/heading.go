package markup

import "strings"

// MaxHeadingLevel is the deepest ATX heading.
const MaxHeadingLevel = 6

// Heading is a line split into its ATX heading parts.
// Level is 0 for a line that is not a heading. Sep is the space or tab
// consumed after the marker, empty when the marker ends the line.
type Heading struct {
	Indent string
	Level  int
	Sep    string
	Text   string
}

// ParseHeading splits line into indentation, heading level, separator and
// text. Up to three spaces of indentation are recognised. The marker must
// be followed by a space, a tab or the end of the line; exactly one such
// separator is consumed.
func ParseHeading(line string) Heading {
	indent := 0
	for indent < len(line) && indent < 3 && line[indent] == ' ' {
		indent++
	}
	h := Heading{Indent: line[:indent], Text: line[indent:]}

	rest := line[indent:]
	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel {
		return h
	}

	body := rest[level:]
	sep := ""
	switch {
	case body == "":
	case body[0] == ' ' || body[0] == '\t':
		sep, body = body[:1], body[1:]
	default:
		return h
	}

	h.Level = level
	h.Sep = sep
	h.Text = body
	return h
}

// String renders the heading.
func (h Heading) String() string {
	if h.Level == 0 {
		return h.Indent + h.Text
	}
	return h.Indent + strings.Repeat("#", h.Level) + h.Sep + h.Text
}

// HeadingLevel returns the heading level of line, 0 if it is not a heading.
func HeadingLevel(line string) int {
	return ParseHeading(line).Level
}

// ToggleHeading returns line with its heading set to level, or with the
// heading removed if it already has that level. It returns false for a
// level outside 1..6.
//
// Adding a heading inserts "# " after the indentation, or only the marker
// when the text starts with a tab. A blank line gets the marker in front.
// Removing drops the marker and a space separator; a tab separator, or
// the separator of a blank heading, stays. Toggling twice restores the
// line except for indented blank headings and headings whose text starts
// with more whitespace after the separator.
func ToggleHeading(line string, level int) (string, bool) {
	if level < 1 || level > MaxHeadingLevel {
		return line, false
	}

	h := ParseHeading(line)
	switch {
	case h.Level == level:
		if h.Sep == " " && !isBlank(h.Text) {
			return h.Indent + h.Text, true
		}
		return h.Indent + h.Sep + h.Text, true

	case h.Level != 0:
		h.Level = level
		return h.String(), true

	case isBlank(line):
		return strings.Repeat("#", level) + line, true
	}

	h.Level = level
	if !strings.HasPrefix(h.Text, "\t") {
		h.Sep = " "
	}
	return h.String(), true
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}
