package markup

import (
	"errors"
	"reflect"
	"testing"
)

func TestClosing(t *testing.T) {
	tests := []struct {
		open  string
		close string
		known bool
	}{
		{"*", "*", true},
		{"**", "**", true},
		{"_", "_", true},
		{"~~", "~~", true},
		{"`", "`", true},
		{"==", "==", true},
		{"$", "$", true},
		{"(", ")", true},
		{"[", "]", true},
		{"{", "}", true},
		{"<", ">", true},
		{"[[", "]]", true},
		{"([", "])", true},
		{"%", "%", false},
		{"+-", "+-", false},
		{"(x", "(x", false},
		{"", "", false},
	}
	for _, tt := range tests {
		close, known := Closing(tt.open)
		if close != tt.close || known != tt.known {
			t.Errorf("Closing(%q) = %q, %v, want %q, %v", tt.open, close, known, tt.close, tt.known)
		}
	}
}

func TestIsDelimiter(t *testing.T) {
	for _, r := range "*_`$([{<" {
		if !IsDelimiter(r) {
			t.Errorf("%q should be a delimiter", r)
		}
	}
	for _, r := range "a1 #|" {
		if IsDelimiter(r) {
			t.Errorf("%q should not be a delimiter", r)
		}
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	want := []string{"code", "footnote", "footnote-def", "image", "link", "reference"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{TemplateLink, "text", "[text](url)"},
		{TemplateImage, "logo", "![logo](url)"},
		{TemplateReference, "text", "[text][ref]"},
		{TemplateFootnote, "1", "[^1]"},
		{TemplateFootnoteDef, "note", "[^1]: note"},
		{TemplateCode, "x := 1", "```\nx := 1\n```"},
	}
	for _, tt := range tests {
		tmpl, ok := r.Template(tt.name)
		if !ok {
			t.Fatalf("template %q missing", tt.name)
		}
		if got := tmpl.Render(tt.body); got != tt.want {
			t.Errorf("%s.Render(%q) = %q, want %q", tt.name, tt.body, got, tt.want)
		}
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Template{Name: "kbd", Prefix: "<kbd>", Placeholder: "key", Suffix: "</kbd>"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if tmpl, ok := r.Template("kbd"); !ok || tmpl.Render("Ctrl") != "<kbd>Ctrl</kbd>" {
		t.Errorf("unexpected template %+v", tmpl)
	}

	if err := r.Register(Template{Name: " "}); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate, got %v", err)
	}
	if err := r.Register(Template{Name: "empty"}); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestRegistryPair(t *testing.T) {
	r := NewRegistry()

	if p, ok := r.Pair("**"); !ok || p.Close != "**" {
		t.Errorf("Pair(**) = %+v, %v", p, ok)
	}
	if p, ok := r.Pair("%"); ok || p.Close != "%" {
		t.Errorf("Pair(%%) = %+v, %v", p, ok)
	}

	if err := r.RegisterDelimiter("<!--", "-->"); err != nil {
		t.Fatalf("RegisterDelimiter: %v", err)
	}
	if p, ok := r.Pair("<!--"); !ok || p.Close != "-->" {
		t.Errorf("Pair(<!--) = %+v, %v", p, ok)
	}
	if p := (Pair{Open: "<!--", Close: "-->"}); p.String() != "<!--…-->" {
		t.Errorf("String() = %q", p.String())
	}

	if err := r.RegisterDelimiter("", "x"); !errors.Is(err, ErrInvalidDelimiter) {
		t.Errorf("expected ErrInvalidDelimiter, got %v", err)
	}
	if err := r.RegisterDelimiter("a\n", "b"); !errors.Is(err, ErrInvalidDelimiter) {
		t.Errorf("expected ErrInvalidDelimiter, got %v", err)
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		line string
		want Heading
	}{
		{"# Title", Heading{Level: 1, Sep: " ", Text: "Title"}},
		{"###### Deep", Heading{Level: 6, Sep: " ", Text: "Deep"}},
		{"####### Seven", Heading{Text: "####### Seven"}},
		{"#hashtag", Heading{Text: "#hashtag"}},
		{"##", Heading{Level: 2}},
		{"   ## Indented", Heading{Indent: "   ", Level: 2, Sep: " ", Text: "Indented"}},
		{"#\tTabbed", Heading{Level: 1, Sep: "\t", Text: "Tabbed"}},
		{"# ", Heading{Level: 1, Sep: " "}},
		{"    # Code", Heading{Indent: "   ", Text: " # Code"}},
		{"plain", Heading{Text: "plain"}},
		{"", Heading{}},
	}
	for _, tt := range tests {
		if got := ParseHeading(tt.line); got != tt.want {
			t.Errorf("ParseHeading(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestToggleHeading(t *testing.T) {
	tests := []struct {
		line  string
		level int
		want  string
	}{
		{"Title", 2, "## Title"},
		{"## Title", 2, "Title"},
		{"# Title", 3, "### Title"},
		{"  Title", 1, "  # Title"},
		{"", 1, "#"},
		{"#", 1, ""},
		{"#hashtag", 1, "# #hashtag"},
		{"#\tfoo", 1, "\tfoo"},
		{"#\tfoo", 2, "##\tfoo"},
		{"\tfoo", 1, "#\tfoo"},
		{"# ", 1, " "},
		{" ", 1, "# "},
	}
	for _, tt := range tests {
		got, ok := ToggleHeading(tt.line, tt.level)
		if !ok || got != tt.want {
			t.Errorf("ToggleHeading(%q, %d) = %q, %v, want %q", tt.line, tt.level, got, ok, tt.want)
		}
	}

	if got, ok := ToggleHeading("x", 7); ok || got != "x" {
		t.Error("invalid level must be rejected")
	}
	if _, ok := ToggleHeading("x", 0); ok {
		t.Error("level 0 must be rejected")
	}
}

func TestToggleHeadingTwiceRestores(t *testing.T) {
	lines := []string{
		"", "Title", "  spaced", "    code block", "#hashtag", "## Two",
		"###### six", "####### seven", "text with # inside",
		"# ", "#", "#\tfoo", "\tfoo", " ", "#   ", "#\t", "   ## Indented",
	}
	for _, line := range lines {
		for level := 1; level <= MaxHeadingLevel; level++ {
			h := ParseHeading(line)
			if h.Level != 0 && h.Level != level {
				continue
			}
			once, _ := ToggleHeading(line, level)
			twice, _ := ToggleHeading(once, level)
			if twice != line {
				t.Errorf("toggle(%q, %d) twice = %q", line, level, twice)
			}
		}
	}
	if HeadingLevel("### x") != 3 {
		t.Error("HeadingLevel")
	}
}
