package app

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/tui"
)

// redrawInterval lets fading and expired messages update without input.
const redrawInterval = 100 * time.Millisecond

// toastLines is how many rows toasts may use at the top of the screen.
const toastLines = 3

// chatWriter turns command output into chat messages.
type chatWriter struct {
	center *message.Center
}

func (w chatWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.center.Send(message.OutputChat, "%s", line)
	}
	return len(p), nil
}

// watchState is the state of one Watch session.
type watchState struct {
	ui            *tui.TUI
	quit          chan struct{}
	redrawRequest chan struct{}

	// command line after ':'; commandMode is false when not typing one
	commandMode bool
	commandLine []rune
}

// Watch shows messages on ui and runs hotkeys until Escape or Ctrl+C.
// ":" starts a command line whose output goes to chat.
func (a *App) Watch(ui *tui.TUI) error {
	defer ui.Close()

	a.mu.Lock()
	prevOut := a.env.Out
	a.env.Out = chatWriter{center: a.messages}
	a.env.KeepMessages = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.env.Out = prevOut
		a.env.KeepMessages = false
		a.mu.Unlock()
	}()

	w := &watchState{
		ui:            ui,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	go a.eventLoop(w)

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	w.requestRedraw()
	for {
		select {
		case <-w.quit:
			logger.Infof("Leaving watch mode.")
			return nil
		case <-w.redrawRequest:
			a.draw(w)
		case <-ticker.C:
			a.draw(w)
		}
	}
}

// eventLoop reads terminal events until the user quits.
func (a *App) eventLoop(w *watchState) {
	defer close(w.quit)
	for {
		ev := w.ui.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			w.ui.GetScreen().Sync()
		case *tcell.EventKey:
			if !a.handleKey(w, ev) {
				return
			}
		}
		w.requestRedraw()
	}
}

// handleKey processes one key and reports whether to keep watching.
func (a *App) handleKey(w *watchState, ev *tcell.EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if w.commandMode {
		switch ev.Key() {
		case tcell.KeyEscape:
			w.commandMode, w.commandLine = false, nil
		case tcell.KeyEnter:
			line := string(w.commandLine)
			w.commandMode, w.commandLine = false, nil
			if err := a.commands.ExecuteLine(line); err != nil {
				a.messages.SendTimed(message.OutputChat, message.LevelError, message.DefaultDisplayTime, "%v", err)
			}
			if err := a.env.Save(); err != nil {
				a.messages.SendTimed(message.OutputChat, message.LevelError, message.DefaultDisplayTime, "%v", err)
			}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if n := len(w.commandLine); n > 0 {
				w.commandLine = w.commandLine[:n-1]
			}
		case tcell.KeyRune:
			w.commandLine = append(w.commandLine, ev.Rune())
		}
		return true
	}

	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == ':' && ev.Modifiers() == tcell.ModNone:
		w.commandMode = true
		return true
	}
	if a.hotkeys.Handle(ev) {
		a.env.MarkOptionsChanged()
		if err := a.env.Save(); err != nil {
			logger.Warnf("Watch: %v", err)
		}
	}
	return true
}

// draw renders the message outputs and the command line.
func (a *App) draw(w *watchState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	screen := w.ui.GetScreen()
	width, height := w.ui.Size()
	w.ui.Clear()

	bottom := height - 1 // last row is the command line
	if w.commandMode {
		w.ui.DrawText(0, height-1, width, ":"+string(w.commandLine), tcell.StyleDefault)
	}

	if a.builtin.showMessages.BooleanValue() {
		toasts := message.NewRenderer(a.messages, message.OutputToast, a.builtin.toastRenderer)
		top := toasts.Draw(screen, width, min(toastLines, bottom))

		hotbar := message.NewRenderer(a.messages, message.OutputHotbar, a.builtin.hotbarRenderer)
		bottom -= hotbar.Draw(screen, width, bottom)
		actionbar := message.NewRenderer(a.messages, message.OutputActionbar, a.builtin.hotbarRenderer)
		bottom -= actionbar.Draw(screen, width, bottom)

		// chat fills the rows between the toasts and the bars
		if bottom > top {
			chat := message.NewRenderer(a.messages, message.OutputChat, a.builtin.toastRenderer)
			chat.Draw(screen, width, bottom)
		}
	}
	w.ui.Show()
}

// requestRedraw sends a redraw signal non-blockingly.
func (w *watchState) requestRedraw() {
	select {
	case w.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
