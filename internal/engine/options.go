package engine

import (
	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/markdown/markup"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the number of spaces used by indent and dedent.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding forces the line ending used on export.
// Without it the ending is detected from the loaded content.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = &ending
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger used for degrade decisions.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMarkup sets the template and delimiter registry.
func WithMarkup(r *markup.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.markup = r
		}
	}
}
