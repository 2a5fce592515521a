package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mdedit/internal/engine"
	"github.com/dshills/mdedit/internal/workspace"
)

// Styles used when drawing.
var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleFiller    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// viewport is the scroll offset of one pane in screen cells.
type viewport struct {
	top  int // first visible line
	left int // first visible display column
}

// follow scrolls so that display column x of line is inside a
// width x height area.
func (v *viewport) follow(line, x, width, height int) {
	switch {
	case line < v.top:
		v.top = line
	case line >= v.top+height:
		v.top = line - height + 1
	}
	switch {
	case x < v.left:
		v.left = x
	case x >= v.left+width:
		v.left = x - width + 1
	}
	v.top = max(v.top, 0)
	v.left = max(v.left, 0)
}

// cellWidth returns how many screen cells r occupies when it starts at
// display column x. Tabs advance to the next tab stop and control
// characters are drawn as a single '?'.
func cellWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	if r < ' ' || r == 0x7f {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// displayColumn converts a rune column to a display column.
func displayColumn(line []rune, col, tabWidth int) int {
	x := 0
	for i, r := range line {
		if i >= col {
			break
		}
		x += cellWidth(r, x, tabWidth)
	}
	return x
}

func (a *App) view(id workspace.PaneID) *viewport {
	v, ok := a.views[id]
	if !ok {
		v = &viewport{}
		a.views[id] = v
	}
	return v
}

// drawDocument draws doc into the top height rows and places the cursor.
func (a *App) drawDocument(doc *workspace.Document, width, height int) {
	e := doc.Engine
	sel := e.Selection()
	selected := sel.Range()
	tabWidth := max(e.TabWidth(), 1)

	head := sel.Head
	headX := displayColumn([]rune(e.LineText(head.Line)), head.Column, tabWidth)
	v := a.view(doc.ID)
	v.follow(head.Line, headX, width, height)

	lines := e.LineCount()
	for y := 0; y < height; y++ {
		clearRow(a.screen, y, width, styleText)
		n := v.top + y
		if n >= lines {
			a.screen.SetContent(0, y, '~', nil, styleFiller)
			continue
		}

		x := 0
		for col, r := range []rune(e.LineText(n)) {
			w := cellWidth(r, x, tabWidth)
			style := styleText
			if selected.Contains(engine.Position{Line: n, Column: col}) {
				style = styleSelection
			}
			a.drawRune(x-v.left, y, width, r, w, style)
			x += w
		}
		// A selected line break shows as one highlighted cell.
		if !selected.IsEmpty() && n >= selected.Start.Line && n < selected.End.Line {
			a.drawRune(x-v.left, y, width, ' ', 1, styleSelection)
		}
	}

	a.screen.ShowCursor(headX-v.left, head.Line-v.top)
}

// drawRune draws r occupying w cells at screen column sx, skipping cells
// outside [0, width).
func (a *App) drawRune(sx, y, width int, r rune, w int, style tcell.Style) {
	if w <= 0 || sx < 0 || sx+w > width {
		return
	}
	switch {
	case r == '\t':
		for i := 0; i < w; i++ {
			a.screen.SetContent(sx+i, y, ' ', nil, style)
		}
	case r < ' ' || r == 0x7f:
		a.screen.SetContent(sx, y, '?', nil, style)
	default:
		a.screen.SetContent(sx, y, r, nil, style)
	}
}

// drawText draws text from column x, clipped at maxX, and returns the
// column after the last cell drawn.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func clearRow(s tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
