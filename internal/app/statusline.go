package app

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mdedit/internal/engine"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// statusHeight is the number of rows below the text: the status bar and
// the message line.
const statusHeight = 2

var (
	styleBar     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// statusLine renders the status bar and the message/prompt line.
type statusLine struct {
	// Document state
	name      string
	modified  bool
	conflict  bool
	line      int // 1-indexed
	col       int // 1-indexed
	selection int
	pane      int // 1-indexed
	panes     int

	// Message display
	message     string
	messageType MessageType

	// Prompt state
	promptActive bool
	prompt       string
	input        []rune
	inputCursor  int
}

// update copies the document state shown in the bar.
func (s *statusLine) update(name string, modified, conflict bool, sel engine.Selection, pane, panes int) {
	s.name = name
	s.modified = modified
	s.conflict = conflict
	s.line = sel.Head.Line + 1
	s.col = sel.Head.Column + 1
	s.selection = selectionLength(sel)
	s.pane = pane
	s.panes = panes
}

// selectionLength is the column span of a single-line selection or the
// number of lines a multi-line selection touches.
func selectionLength(sel engine.Selection) int {
	r := sel.Range()
	if r.Start.Line == r.End.Line {
		return r.End.Column - r.Start.Column
	}
	return r.End.Line - r.Start.Line + 1
}

// SetMessage displays a message until the next key press.
func (s *statusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the message.
func (s *statusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *statusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

func (s *statusLine) startPrompt(prompt, initial string) {
	s.promptActive = true
	s.prompt = prompt
	s.input = []rune(initial)
	s.inputCursor = len(s.input)
}

func (s *statusLine) stopPrompt() string {
	text := string(s.input)
	s.promptActive = false
	s.prompt = ""
	s.input = nil
	s.inputCursor = 0
	return text
}

// editPrompt applies a key to the prompt input.
func (s *statusLine) editPrompt(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		s.input = slices.Insert(s.input, s.inputCursor, ev.Rune())
		s.inputCursor++
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.inputCursor > 0 {
			s.input = slices.Delete(s.input, s.inputCursor-1, s.inputCursor)
			s.inputCursor--
		}
	case tcell.KeyDelete:
		if s.inputCursor < len(s.input) {
			s.input = slices.Delete(s.input, s.inputCursor, s.inputCursor+1)
		}
	case tcell.KeyLeft:
		s.inputCursor = max(s.inputCursor-1, 0)
	case tcell.KeyRight:
		s.inputCursor = min(s.inputCursor+1, len(s.input))
	case tcell.KeyHome:
		s.inputCursor = 0
	case tcell.KeyEnd:
		s.inputCursor = len(s.input)
	}
}

// Render draws the status bar at row and the message line below it.
func (s *statusLine) Render(screen tcell.Screen, width, row int) {
	s.renderBar(screen, width, row)
	if s.promptActive {
		s.renderPrompt(screen, width, row+1)
		return
	}
	s.renderMessage(screen, width, row+1)
}

func (s *statusLine) renderBar(screen tcell.Screen, width, row int) {
	clearRow(screen, row, width, styleBar)

	pos := s.formatPosition()
	posStart := width - runewidth.StringWidth(pos) - 1

	name := " " + s.name
	if s.modified {
		name += "[+]"
	}
	if s.conflict {
		name += " [changed on disk]"
	}
	drawText(screen, 0, row, max(posStart-1, 0), name, styleBar)
	if posStart > 0 {
		drawText(screen, posStart, row, width, pos, styleBar)
	}
}

func (s *statusLine) renderPrompt(screen tcell.Screen, width, row int) {
	clearRow(screen, row, width, styleText)
	x := drawText(screen, 0, row, width, s.prompt, styleText)
	start := x
	drawText(screen, x, row, width, string(s.input), styleText)
	screen.ShowCursor(start+runewidth.StringWidth(string(s.input[:s.inputCursor])), row)
}

func (s *statusLine) renderMessage(screen tcell.Screen, width, row int) {
	style := styleText
	switch s.messageType {
	case MessageError:
		style = styleError
	case MessageWarning:
		style = styleWarning
	}
	clearRow(screen, row, width, styleText)
	drawText(screen, 0, row, width, s.message, style)
}

// formatPosition formats the right side: "2/3 12:5|0".
func (s *statusLine) formatPosition() string {
	pos := fmt.Sprintf("%d:%d|%d", s.line, s.col, s.selection)
	if s.panes > 1 {
		pos = fmt.Sprintf("%d/%d %s", s.pane, s.panes, pos)
	}
	return pos
}
