package markup

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Errors returned by the registry.
var (
	ErrInvalidTemplate  = errors.New("invalid template")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// Template is named markup inserted at the cursor.
// The selection, if any, replaces Placeholder; otherwise Placeholder is
// inserted and selected for overtyping.
type Template struct {
	Name        string
	Prefix      string
	Placeholder string
	Suffix      string
}

// Render returns the template text with body in place of the placeholder.
func (t Template) Render(body string) string {
	return t.Prefix + body + t.Suffix
}

// Builtin template names.
const (
	TemplateLink        = "link"
	TemplateImage       = "image"
	TemplateReference   = "reference"
	TemplateFootnote    = "footnote"
	TemplateFootnoteDef = "footnote-def"
	TemplateCode        = "code"
)

func builtinTemplates() []Template {
	return []Template{
		{Name: TemplateLink, Prefix: "[", Placeholder: "text", Suffix: "](url)"},
		{Name: TemplateImage, Prefix: "![", Placeholder: "alt", Suffix: "](url)"},
		{Name: TemplateReference, Prefix: "[", Placeholder: "text", Suffix: "][ref]"},
		{Name: TemplateFootnote, Prefix: "[^", Placeholder: "1", Suffix: "]"},
		{Name: TemplateFootnoteDef, Prefix: "[^1]: ", Placeholder: "note", Suffix: ""},
		{Name: TemplateCode, Prefix: "```\n", Placeholder: "code", Suffix: "\n```"},
	}
}

// Registry holds the templates and extra delimiter pairs available to the
// editor.
type Registry struct {
	mu         sync.RWMutex
	templates  map[string]Template
	delimiters map[string]string
}

// NewRegistry creates a registry with the builtin templates.
func NewRegistry() *Registry {
	r := &Registry{
		templates:  make(map[string]Template),
		delimiters: make(map[string]string),
	}
	for _, t := range builtinTemplates() {
		r.templates[t.Name] = t
	}
	return r
}

// Register adds or replaces a template.
func (r *Registry) Register(t Template) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTemplate)
	}
	if t.Prefix == "" && t.Placeholder == "" && t.Suffix == "" {
		return fmt.Errorf("%w: %q has no text", ErrInvalidTemplate, t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
	return nil
}

// RegisterDelimiter adds a delimiter pair, overriding the builtin closing rule.
func (r *Registry) RegisterDelimiter(open, close string) error {
	if open == "" || close == "" {
		return fmt.Errorf("%w: %q/%q", ErrInvalidDelimiter, open, close)
	}
	if strings.ContainsAny(open+close, "\n\r") {
		return fmt.Errorf("%w: line break in %q/%q", ErrInvalidDelimiter, open, close)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.delimiters[open] = close
	return nil
}

// Template returns the template registered under name.
func (r *Registry) Template(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// Names returns the sorted template names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pair returns the delimiter pair for open. Registered pairs win over the
// builtin rules. The second result reports whether open was recognised.
func (r *Registry) Pair(open string) (Pair, bool) {
	r.mu.RLock()
	close, ok := r.delimiters[open]
	r.mu.RUnlock()
	if ok {
		return Pair{Open: open, Close: close}, true
	}

	close, ok = Closing(open)
	return Pair{Open: open, Close: close}, ok
}
