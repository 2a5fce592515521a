// Package app runs mdedit in the terminal.
//
// The App owns a tcell screen and a workspace. Key events are resolved by
// the keymap into editing commands, which the active document's engine
// applies, or into application actions such as save, quit and clipboard
// transfers. External file changes arrive from the workspace watcher and
// are applied on the same loop, so documents are only mutated from one
// goroutine.
package app

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdedit/internal/input/keymap"
	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/workspace"
)

// App is the terminal front end.
type App struct {
	screen  tcell.Screen
	ws      *workspace.Workspace
	keys    *keymap.Keymap
	clip    Clipboard
	watcher *workspace.Watcher
	logger  *logging.Logger

	status *statusLine
	views  map[workspace.PaneID]*viewport

	// pending is an action waiting for a second key press to confirm it.
	pending keymap.Action
	// onSubmit receives the prompt input when Enter is pressed.
	onSubmit func(string)

	// Bracketed paste collects runes between the start and end markers.
	pasting bool
	pasted  []rune

	running atomic.Bool
}

// Option configures an App.
type Option func(*App)

// WithKeymap replaces the default key bindings.
func WithKeymap(k *keymap.Keymap) Option {
	return func(a *App) {
		a.keys = k
	}
}

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(c Clipboard) Option {
	return func(a *App) {
		a.clip = c
	}
}

// WithWatcher delivers external file changes from w to the loop.
func WithWatcher(w *workspace.Watcher) Option {
	return func(a *App) {
		a.watcher = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New creates an App drawing to screen. The screen is initialized by Run.
// An empty workspace gets an untitled document.
func New(screen tcell.Screen, ws *workspace.Workspace, opts ...Option) *App {
	a := &App{
		screen: screen,
		ws:     ws,
		status: &statusLine{},
		views:  make(map[workspace.PaneID]*viewport),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.keys == nil {
		a.keys = keymap.Default()
	}
	if a.clip == nil {
		a.clip = DefaultClipboard()
	}
	if a.logger == nil {
		a.logger = logging.Null()
	}
	a.logger = a.logger.WithComponent("app")

	if ws.Len() == 0 {
		ws.NewDocument()
	}
	return a
}

// Run initializes the screen and processes events until the user quits
// or ctx is done. It returns nil on quit and ctx.Err() on cancellation.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer a.screen.Fini()
	a.screen.EnablePaste()
	a.screen.EnableFocus()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(events, done)

	var fileEvents <-chan workspace.Event
	var fileErrors <-chan error
	if a.watcher != nil {
		fileEvents = a.watcher.Events()
		fileErrors = a.watcher.Errors()
	}

	a.logger.Info("started with %d pane(s)", a.ws.Len())
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !a.HandleEvent(ev) {
				a.logger.Info("quit")
				return nil
			}

		case ev, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			a.handleFileEvent(ev)

		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			a.logger.Warn("watcher: %v", err)
		}
		a.Draw()
	}
}

// pollEvents forwards screen events until the screen is finalized.
func (a *App) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// IsRunning reports whether Run is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// Workspace returns the workspace.
func (a *App) Workspace() *workspace.Workspace {
	return a.ws
}

// Message returns the message shown below the status bar.
func (a *App) Message() (string, MessageType) {
	return a.status.Message()
}

// Draw renders the active document and the status rows.
func (a *App) Draw() {
	width, height := a.screen.Size()
	textHeight := max(height-statusHeight, 0)

	doc := a.ws.Active()
	if doc != nil {
		if textHeight > 0 {
			a.drawDocument(doc, width, textHeight)
		}
		pane, panes := a.paneIndex(doc.ID)
		a.status.update(doc.Name(), doc.Modified(), doc.Conflict(), doc.Engine.Selection(), pane, panes)
	}
	if height > textHeight {
		a.status.Render(a.screen, width, textHeight)
	}
	a.screen.Show()
}

func (a *App) paneIndex(id workspace.PaneID) (int, int) {
	docs := a.ws.Documents()
	for i, d := range docs {
		if d.ID == id {
			return i + 1, len(docs)
		}
	}
	return 0, len(docs)
}
