package engine

import (
	"github.com/dshills/mdedit/internal/command"
)

// Apply dispatches a command against the current selection.
// It returns true if the command was handled: the document or the
// selection changed, or (for cell navigation) the key was consumed by a
// table. Failures degrade to false and are logged; they never leave the
// buffer half edited.
func (e *Engine) Apply(cmd command.Command) bool {
	switch c := cmd.(type) {
	case command.InsertText:
		return e.InsertText(c.Text)

	case command.DeleteRange:
		return e.DeleteRange(c.Start, c.End)

	case command.DeleteChar:
		return e.DeleteChar(c.Direction == command.Forward)

	case command.DeleteWord:
		return e.DeleteWord(c.Direction == command.Forward)

	case command.MoveCursor:
		before := e.Selection()
		if c.To != nil {
			e.MoveTo(*c.To)
		} else {
			e.Move(c.Motion)
		}
		return e.Selection() != before

	case command.ExtendSelection:
		before := e.Selection()
		if c.To != nil {
			e.ExtendTo(*c.To)
		} else {
			e.Extend(c.Motion)
		}
		return e.Selection() != before

	case command.SelectAll:
		e.SelectAll()
		return true

	case command.WrapSelection:
		return e.WrapSelection(c.Open)

	case command.InsertTemplate:
		return e.handled(cmd, e.InsertTemplate(c.Template))

	case command.IndentSelection:
		return e.IndentSelection()

	case command.DedentSelection:
		return e.DedentSelection()

	case command.ToggleHeading:
		before := e.RevisionID()
		if !e.handled(cmd, e.ToggleHeading(e.Cursor().Line, c.Level)) {
			return false
		}
		return e.RevisionID() != before

	case command.LineBreak:
		return e.LineBreak()

	case command.NavigateCell:
		return e.NavigateCell(c.Direction == command.Forward)

	case command.FormatTable:
		return e.handled(cmd, e.FormatTable(c.Mode))

	case command.Undo:
		return e.Undo()

	case command.Redo:
		return e.Redo()
	}

	e.logger.Warn("apply: unsupported command %s", command.Describe(cmd))
	return false
}

func (e *Engine) handled(cmd command.Command, err error) bool {
	if err != nil {
		e.logger.Debug("%s: %v", command.Describe(cmd), err)
		return false
	}
	return true
}
