package app

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdedit/internal/command"
	"github.com/dshills/mdedit/internal/input/keymap"
	"github.com/dshills/mdedit/internal/workspace"
)

// HandleEvent processes one screen event. It returns false when the
// application should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventPaste:
		a.handlePaste(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.focusLost()
		}
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

// handleKey routes a key press to the prompt, the paste collector or the
// keymap.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.pasting {
		a.collectPasted(ev)
		return true
	}
	if a.status.promptActive {
		a.handlePromptKey(ev)
		return true
	}

	doc := a.ws.Active()
	if doc == nil {
		return true
	}

	target, ok := a.keys.Resolve(ev, !doc.Engine.Selection().IsEmpty())
	pending := a.pending
	a.pending = keymap.ActionNone
	if !ok {
		return true
	}
	a.status.ClearMessage()

	if target.Command != nil {
		a.apply(doc, target.Command)
		return true
	}
	return a.runAction(doc, target.Action, pending)
}

// apply runs an editing command on doc and reports commands that did
// nothing for a visible reason.
func (a *App) apply(doc *workspace.Document, cmd command.Command) {
	cmd = a.customWrap(doc, cmd)
	if doc.Engine.Apply(cmd) {
		return
	}
	switch c := cmd.(type) {
	case command.FormatTable:
		a.status.SetMessage("cursor is not in a table", MessageWarning)
	case command.InsertTemplate:
		if _, ok := doc.Engine.Markup().Template(c.Template); !ok {
			a.status.SetMessage("unknown template "+c.Template, MessageWarning)
		}
	case command.Undo:
		a.status.SetMessage("nothing to undo", MessageInfo)
	case command.Redo:
		a.status.SetMessage("nothing to redo", MessageInfo)
	}
}

// customWrap turns typing a delimiter registered at runtime over a
// selection into a wrap, matching the built-in delimiters.
func (a *App) customWrap(doc *workspace.Document, cmd command.Command) command.Command {
	c, ok := cmd.(command.InsertText)
	if !ok || utf8.RuneCountInString(c.Text) != 1 || doc.Engine.Selection().IsEmpty() {
		return cmd
	}
	if _, ok := doc.Engine.Markup().Pair(c.Text); ok {
		return command.WrapSelection{Open: c.Text}
	}
	return cmd
}

// ============================================================================
// Bracketed paste
// ============================================================================

func (a *App) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.pasted = a.pasted[:0]
		return
	}
	a.pasting = false
	if len(a.pasted) == 0 {
		return
	}
	if doc := a.ws.Active(); doc != nil {
		doc.Engine.Apply(command.InsertText{Text: string(a.pasted)})
	}
	a.pasted = a.pasted[:0]
}

func (a *App) collectPasted(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.pasted = append(a.pasted, ev.Rune())
	case tcell.KeyEnter:
		a.pasted = append(a.pasted, '\n')
	case tcell.KeyTab:
		a.pasted = append(a.pasted, '\t')
	}
}

// ============================================================================
// Prompt
// ============================================================================

// prompt asks for a line of input and passes it to submit on Enter.
// Escape cancels.
func (a *App) prompt(label, initial string, submit func(string)) {
	a.status.startPrompt(label, initial)
	a.onSubmit = submit
}

func (a *App) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.status.stopPrompt()
		a.onSubmit = nil
		a.status.SetMessage("cancelled", MessageInfo)
	case tcell.KeyEnter:
		text := strings.TrimSpace(a.status.stopPrompt())
		submit := a.onSubmit
		a.onSubmit = nil
		if text == "" {
			a.status.SetMessage("cancelled", MessageInfo)
			return
		}
		if submit != nil {
			submit(text)
		}
	default:
		a.status.editPrompt(ev)
	}
}

// ============================================================================
// Focus and file events
// ============================================================================

func (a *App) focusLost() {
	n, err := a.ws.FocusLost()
	switch {
	case errors.Is(err, workspace.ErrConflict):
		a.status.SetMessage(pluralize(n, "file")+" saved; not overwritten: "+err.Error(), MessageWarning)
	case err != nil:
		a.status.SetMessage(err.Error(), MessageError)
	case n > 0:
		a.status.SetMessage(pluralize(n, "file")+" saved", MessageInfo)
	}
}

func (a *App) handleFileEvent(ev workspace.Event) {
	doc, outcome, err := a.ws.ApplyExternal(ev)
	if err != nil {
		a.logger.Warn("%v", err)
		a.status.SetMessage(err.Error(), MessageError)
		return
	}
	switch outcome {
	case workspace.OutcomeReloaded:
		a.status.SetMessage("reloaded "+doc.Name(), MessageInfo)
	case workspace.OutcomeConflict:
		a.status.SetMessage(doc.Name()+" changed on disk; Ctrl+R reloads, Ctrl+S overwrites", MessageWarning)
	}
}
