package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/mdedit/internal/command"
	"github.com/dshills/mdedit/internal/input/keymap"
	"github.com/dshills/mdedit/internal/workspace"
)

// runAction performs an application action on doc. Destructive actions
// on unsaved documents need the same key twice in a row; pending is the
// action confirmed by the previous key, if any. It returns false to quit.
func (a *App) runAction(doc *workspace.Document, action keymap.Action, pending keymap.Action) bool {
	switch action {
	case keymap.ActionSave:
		a.save(doc)

	case keymap.ActionSaveAll:
		n, err := a.ws.SaveAll()
		if err != nil {
			a.fail("save all", "", err)
			return true
		}
		a.status.SetMessage(pluralize(n, "file")+" saved", MessageInfo)

	case keymap.ActionQuit:
		if a.ws.AnyModified() && pending != keymap.ActionQuit {
			a.confirm(keymap.ActionQuit, "unsaved changes: press again to quit without saving")
			return true
		}
		return false

	case keymap.ActionNewPane:
		a.ws.NewDocument()

	case keymap.ActionClosePane:
		if doc.Modified() && pending != keymap.ActionClosePane {
			a.confirm(keymap.ActionClosePane, doc.Name()+" has unsaved changes: press again to close")
			return true
		}
		a.closePane(doc)

	case keymap.ActionNextPane:
		a.ws.Next()

	case keymap.ActionPrevPane:
		a.ws.Prev()

	case keymap.ActionCopy:
		a.copySelection(doc, false)

	case keymap.ActionCut:
		a.copySelection(doc, true)

	case keymap.ActionPaste:
		a.paste(doc)

	case keymap.ActionReload:
		if doc.Modified() && pending != keymap.ActionReload {
			a.confirm(keymap.ActionReload, doc.Name()+" has unsaved changes: press again to discard them")
			return true
		}
		if err := a.ws.Reload(doc.ID); err != nil {
			a.fail("reload", doc.Name(), err)
			return true
		}
		a.status.SetMessage("reloaded "+doc.Name(), MessageInfo)
	}
	return true
}

func (a *App) confirm(action keymap.Action, msg string) {
	a.pending = action
	a.status.SetMessage(msg, MessageWarning)
}

func (a *App) fail(op, target string, err error) {
	err = &OperationError{Op: op, Target: target, Err: err}
	a.logger.Error("%v", err)
	a.status.SetMessage(err.Error(), MessageError)
}

// save writes doc, asking for a file name when it has none.
func (a *App) save(doc *workspace.Document) {
	err := a.ws.Save(doc.ID)
	if errors.Is(err, workspace.ErrNoPath) {
		a.prompt("Save as: ", "", func(path string) {
			a.saveAs(doc, path)
		})
		return
	}
	if err != nil {
		a.fail("save", doc.Name(), err)
		return
	}
	a.status.SetMessage("saved "+doc.Name(), MessageInfo)
}

func (a *App) saveAs(doc *workspace.Document, path string) {
	if err := a.ws.SaveAs(doc.ID, path); err != nil {
		a.fail("save", path, err)
		return
	}
	a.status.SetMessage("saved "+doc.Name(), MessageInfo)
}

// closePane closes doc, keeping at least one pane open.
func (a *App) closePane(doc *workspace.Document) {
	if err := a.ws.Close(doc.ID); err != nil {
		a.fail("close", doc.Name(), err)
		return
	}
	delete(a.views, doc.ID)
	if a.ws.Len() == 0 {
		a.ws.NewDocument()
	}
}

// ============================================================================
// Clipboard
// ============================================================================

func (a *App) copySelection(doc *workspace.Document, cut bool) {
	op, verb := "copy", "copied"
	if cut {
		op, verb = "cut", "cut"
	}

	text := doc.Engine.SelectedText()
	if text == "" {
		a.status.SetMessage(ErrEmptySelection.Error(), MessageInfo)
		return
	}
	if err := a.clip.WriteAll(text); err != nil {
		a.fail(op, "", err)
		return
	}
	if cut {
		doc.Engine.Apply(command.DeleteChar{Direction: command.Backward})
	}
	a.status.SetMessage(fmt.Sprintf("%s %s", verb, pluralize(len([]rune(text)), "character")), MessageInfo)
}

func (a *App) paste(doc *workspace.Document) {
	text, err := a.clip.ReadAll()
	if err != nil {
		a.fail("paste", "", err)
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		a.status.SetMessage(ErrEmptyClipboard.Error(), MessageInfo)
		return
	}
	doc.Engine.Apply(command.InsertText{Text: text})
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
