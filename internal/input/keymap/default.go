package keymap

// DefaultBindings returns the built-in key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Movement
		{Keys: "Left", Action: "cursor.left", Description: "Move left", Category: "Movement"},
		{Keys: "Right", Action: "cursor.right", Description: "Move right", Category: "Movement"},
		{Keys: "Up", Action: "cursor.up", Description: "Move up", Category: "Movement"},
		{Keys: "Down", Action: "cursor.down", Description: "Move down", Category: "Movement"},
		{Keys: "Ctrl+Left", Action: "cursor.wordLeft", Description: "Previous word", Category: "Movement"},
		{Keys: "Ctrl+Right", Action: "cursor.wordRight", Description: "Next word", Category: "Movement"},
		{Keys: "Alt+Left", Action: "cursor.wordLeft", Description: "Previous word", Category: "Movement"},
		{Keys: "Alt+Right", Action: "cursor.wordRight", Description: "Next word", Category: "Movement"},
		{Keys: "Home", Action: "cursor.lineStart", Description: "Line start", Category: "Movement"},
		{Keys: "End", Action: "cursor.lineEnd", Description: "Line end", Category: "Movement"},
		{Keys: "Ctrl+Home", Action: "cursor.docStart", Description: "Document start", Category: "Movement"},
		{Keys: "Ctrl+End", Action: "cursor.docEnd", Description: "Document end", Category: "Movement"},

		// Selection
		{Keys: "Shift+Left", Action: "select.left", Description: "Extend left", Category: "Selection"},
		{Keys: "Shift+Right", Action: "select.right", Description: "Extend right", Category: "Selection"},
		{Keys: "Shift+Up", Action: "select.up", Description: "Extend up", Category: "Selection"},
		{Keys: "Shift+Down", Action: "select.down", Description: "Extend down", Category: "Selection"},
		{Keys: "Ctrl+Shift+Left", Action: "select.wordLeft", Description: "Extend to previous word", Category: "Selection"},
		{Keys: "Ctrl+Shift+Right", Action: "select.wordRight", Description: "Extend to next word", Category: "Selection"},
		{Keys: "Shift+Home", Action: "select.lineStart", Description: "Extend to line start", Category: "Selection"},
		{Keys: "Shift+End", Action: "select.lineEnd", Description: "Extend to line end", Category: "Selection"},
		{Keys: "Ctrl+Shift+Home", Action: "select.docStart", Description: "Extend to document start", Category: "Selection"},
		{Keys: "Ctrl+Shift+End", Action: "select.docEnd", Description: "Extend to document end", Category: "Selection"},
		{Keys: "Ctrl+A", Action: "select.all", Description: "Select all", Category: "Selection"},

		// Editing
		{Keys: "Backspace", Action: "edit.backspace", Description: "Delete backward", Category: "Editing"},
		{Keys: "Delete", Action: "edit.delete", Description: "Delete forward", Category: "Editing"},
		{Keys: "Alt+Backspace", Action: "edit.deleteWordLeft", Description: "Delete previous word", Category: "Editing"},
		{Keys: "Alt+Delete", Action: "edit.deleteWordRight", Description: "Delete next word", Category: "Editing"},
		{Keys: "Enter", Action: "edit.lineBreak", Description: "Line break or new table row", Category: "Editing"},
		{Keys: "Tab", Action: "edit.nextCell", Description: "Next cell or indent", Category: "Editing"},
		{Keys: "Backtab", Action: "edit.prevCell", Description: "Previous cell or dedent", Category: "Editing"},
		{Keys: "Alt+]", Action: "edit.indent", Description: "Indent lines", Category: "Editing"},
		{Keys: "Alt+[", Action: "edit.dedent", Description: "Dedent lines", Category: "Editing"},
		{Keys: "Ctrl+Z", Action: "edit.undo", Description: "Undo", Category: "Editing"},
		{Keys: "Ctrl+Y", Action: "edit.redo", Description: "Redo", Category: "Editing"},

		// Tables
		{Keys: "F7", Action: "table.formatHeaderWidth", Description: "Format table to header widths", Category: "Tables"},
		{Keys: "Ctrl+F", Action: "table.formatHeaderWidth", Description: "Format table to header widths", Category: "Tables"},
		{Keys: "F8", Action: "table.formatMaxWidth", Description: "Format table to widest cell", Category: "Tables"},
		{Keys: "Ctrl+G", Action: "table.formatMaxWidth", Description: "Format table to widest cell", Category: "Tables"},

		// Markup
		{Keys: "Alt+0", Action: "heading.clear", Description: "Plain paragraph", Category: "Markup"},
		{Keys: "Alt+1", Action: "heading.1", Description: "Heading 1", Category: "Markup"},
		{Keys: "Alt+2", Action: "heading.2", Description: "Heading 2", Category: "Markup"},
		{Keys: "Alt+3", Action: "heading.3", Description: "Heading 3", Category: "Markup"},
		{Keys: "Alt+4", Action: "heading.4", Description: "Heading 4", Category: "Markup"},
		{Keys: "Alt+5", Action: "heading.5", Description: "Heading 5", Category: "Markup"},
		{Keys: "Alt+6", Action: "heading.6", Description: "Heading 6", Category: "Markup"},
		{Keys: "Ctrl+B", Action: "wrap.bold", Description: "Bold", Category: "Markup"},
		{Keys: "Ctrl+T", Action: "wrap.italic", Description: "Italic", Category: "Markup"},
		{Keys: "Alt+s", Action: "wrap.strikethrough", Description: "Strikethrough", Category: "Markup"},
		{Keys: "Alt+h", Action: "wrap.highlight", Description: "Highlight", Category: "Markup"},
		{Keys: "Ctrl+K", Action: "insert.link", Description: "Insert link", Category: "Markup"},
		{Keys: "Alt+i", Action: "insert.image", Description: "Insert image", Category: "Markup"},
		{Keys: "Alt+r", Action: "insert.reference", Description: "Insert reference link", Category: "Markup"},
		{Keys: "Alt+f", Action: "insert.footnote", Description: "Insert footnote", Category: "Markup"},
		{Keys: "Alt+c", Action: "insert.codeBlock", Description: "Insert code block", Category: "Markup"},

		// Application
		{Keys: "Ctrl+S", Action: "app.save", Description: "Save", Category: "File"},
		{Keys: "F2", Action: "app.saveAll", Description: "Save all", Category: "File"},
		{Keys: "Ctrl+Q", Action: "app.quit", Description: "Quit", Category: "File"},
		{Keys: "Ctrl+N", Action: "app.new", Description: "New pane", Category: "File"},
		{Keys: "Ctrl+W", Action: "app.close", Description: "Close pane", Category: "File"},
		{Keys: "Ctrl+R", Action: "app.reload", Description: "Reload from disk", Category: "File"},
		{Keys: "Ctrl+PgDn", Action: "app.next", Description: "Next pane", Category: "Panes"},
		{Keys: "Ctrl+PgUp", Action: "app.prev", Description: "Previous pane", Category: "Panes"},
		{Keys: "F6", Action: "app.next", Description: "Next pane", Category: "Panes"},
		{Keys: "Shift+F6", Action: "app.prev", Description: "Previous pane", Category: "Panes"},
		{Keys: "Ctrl+C", Action: "app.copy", Description: "Copy", Category: "Clipboard"},
		{Keys: "Ctrl+X", Action: "app.cut", Description: "Cut", Category: "Clipboard"},
		{Keys: "Ctrl+V", Action: "app.paste", Description: "Paste", Category: "Clipboard"},
	}
}
