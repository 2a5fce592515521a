package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/mdedit/internal/command"
	"github.com/dshills/mdedit/internal/engine/cursor"
	"github.com/dshills/mdedit/internal/markdown/table"
)

// Action is an application-level operation outside the editing core.
type Action uint8

// Application actions.
const (
	ActionNone Action = iota
	ActionSave
	ActionSaveAll
	ActionQuit
	ActionNewPane
	ActionClosePane
	ActionNextPane
	ActionPrevPane
	ActionCopy
	ActionCut
	ActionPaste
	ActionReload
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionSave:      "save",
	ActionSaveAll:   "save-all",
	ActionQuit:      "quit",
	ActionNewPane:   "new-pane",
	ActionClosePane: "close-pane",
	ActionNextPane:  "next-pane",
	ActionPrevPane:  "prev-pane",
	ActionCopy:      "copy",
	ActionCut:       "cut",
	ActionPaste:     "paste",
	ActionReload:    "reload",
}

// String returns the action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Target is what a binding resolves to: either an editing command for
// the engine or an application action.
type Target struct {
	Command command.Command
	Action  Action
}

// IsZero reports whether the target does nothing.
func (t Target) IsZero() bool {
	return t.Command == nil && t.Action == ActionNone
}

func cmd(c command.Command) Target { return Target{Command: c} }
func app(a Action) Target          { return Target{Action: a} }

func move(m cursor.Motion) Target   { return cmd(command.MoveCursor{Motion: m}) }
func extend(m cursor.Motion) Target { return cmd(command.ExtendSelection{Motion: m}) }

// targets maps action names used in bindings to their targets.
var targets = map[string]Target{
	"cursor.left":      move(cursor.MotionCharLeft),
	"cursor.right":     move(cursor.MotionCharRight),
	"cursor.up":        move(cursor.MotionLineUp),
	"cursor.down":      move(cursor.MotionLineDown),
	"cursor.wordLeft":  move(cursor.MotionWordLeft),
	"cursor.wordRight": move(cursor.MotionWordRight),
	"cursor.lineStart": move(cursor.MotionLineStart),
	"cursor.lineEnd":   move(cursor.MotionLineEnd),
	"cursor.docStart":  move(cursor.MotionDocStart),
	"cursor.docEnd":    move(cursor.MotionDocEnd),

	"select.left":      extend(cursor.MotionCharLeft),
	"select.right":     extend(cursor.MotionCharRight),
	"select.up":        extend(cursor.MotionLineUp),
	"select.down":      extend(cursor.MotionLineDown),
	"select.wordLeft":  extend(cursor.MotionWordLeft),
	"select.wordRight": extend(cursor.MotionWordRight),
	"select.lineStart": extend(cursor.MotionLineStart),
	"select.lineEnd":   extend(cursor.MotionLineEnd),
	"select.docStart":  extend(cursor.MotionDocStart),
	"select.docEnd":    extend(cursor.MotionDocEnd),
	"select.all":       cmd(command.SelectAll{}),

	"edit.backspace":       cmd(command.DeleteChar{Direction: command.Backward}),
	"edit.delete":          cmd(command.DeleteChar{Direction: command.Forward}),
	"edit.deleteWordLeft":  cmd(command.DeleteWord{Direction: command.Backward}),
	"edit.deleteWordRight": cmd(command.DeleteWord{Direction: command.Forward}),
	"edit.lineBreak":       cmd(command.LineBreak{}),
	"edit.nextCell":        cmd(command.NavigateCell{Direction: command.Forward}),
	"edit.prevCell":        cmd(command.NavigateCell{Direction: command.Backward}),
	"edit.indent":          cmd(command.IndentSelection{}),
	"edit.dedent":          cmd(command.DedentSelection{}),
	"edit.undo":            cmd(command.Undo{}),
	"edit.redo":            cmd(command.Redo{}),

	"table.formatHeaderWidth": cmd(command.FormatTable{Mode: table.HeaderWidth}),
	"table.formatMaxWidth":    cmd(command.FormatTable{Mode: table.MaxWidth}),

	"heading.clear": cmd(command.ToggleHeading{Level: 0}),
	"heading.1":     cmd(command.ToggleHeading{Level: 1}),
	"heading.2":     cmd(command.ToggleHeading{Level: 2}),
	"heading.3":     cmd(command.ToggleHeading{Level: 3}),
	"heading.4":     cmd(command.ToggleHeading{Level: 4}),
	"heading.5":     cmd(command.ToggleHeading{Level: 5}),
	"heading.6":     cmd(command.ToggleHeading{Level: 6}),

	"wrap.bold":          cmd(command.WrapSelection{Open: "**"}),
	"wrap.italic":        cmd(command.WrapSelection{Open: "_"}),
	"wrap.strikethrough": cmd(command.WrapSelection{Open: "~~"}),
	"wrap.code":          cmd(command.WrapSelection{Open: "`"}),
	"wrap.highlight":     cmd(command.WrapSelection{Open: "=="}),

	"insert.link":      cmd(command.InsertTemplate{Template: "link"}),
	"insert.image":     cmd(command.InsertTemplate{Template: "image"}),
	"insert.reference": cmd(command.InsertTemplate{Template: "reference"}),
	"insert.footnote":  cmd(command.InsertTemplate{Template: "footnote"}),
	"insert.codeBlock": cmd(command.InsertTemplate{Template: "code"}),

	"app.save":    app(ActionSave),
	"app.saveAll": app(ActionSaveAll),
	"app.quit":    app(ActionQuit),
	"app.new":     app(ActionNewPane),
	"app.close":   app(ActionClosePane),
	"app.next":    app(ActionNextPane),
	"app.prev":    app(ActionPrevPane),
	"app.copy":    app(ActionCopy),
	"app.cut":     app(ActionCut),
	"app.paste":   app(ActionPaste),
	"app.reload":  app(ActionReload),
}

// LookupAction returns the target for an action name.
// Names of the form "template:<name>" insert that template.
func LookupAction(name string) (Target, bool) {
	if t, ok := targets[name]; ok {
		return t, true
	}
	if tmpl, ok := strings.CutPrefix(name, "template:"); ok && tmpl != "" {
		return cmd(command.InsertTemplate{Template: tmpl}), true
	}
	return Target{}, false
}

// ActionNames returns every built-in action name, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
