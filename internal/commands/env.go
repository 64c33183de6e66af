package commands

import (
	"errors"
	"io"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/hotkey"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// Env is what the built-in commands work on.
type Env struct {
	Actions   *action.Registry
	Hotkeys   *hotkey.Manager
	Options   *option.Set
	Messages  *message.Center
	Events    *event.Manager
	Clipboard plugin.Clipboard
	Out       io.Writer
	In        io.Reader
	// KeepMessages leaves messages queued for display instead of printing
	// them after each command.
	KeepMessages bool
	// HoverWidth caps the width of info lines; nil leaves them whole.
	HoverWidth *option.Integer
	// SaveOptions persists the option values; nil skips it.
	SaveOptions func() error

	actionsChanged bool
	hotkeysChanged bool
	optionsChanged bool
}

// Save writes whatever the commands run so far have changed. Commands never
// save on their own; the caller saves once when it is done.
func (e *Env) Save() error {
	var errs []error
	if e.actionsChanged {
		errs = append(errs, e.Actions.SaveToFile())
	}
	if e.hotkeysChanged && e.Hotkeys != nil {
		errs = append(errs, e.Hotkeys.SaveToFile())
	}
	if e.optionsChanged && e.SaveOptions != nil {
		errs = append(errs, e.SaveOptions())
	}
	e.actionsChanged, e.hotkeysChanged, e.optionsChanged = false, false, false
	return errors.Join(errs...)
}

// Changed reports whether anything is waiting to be saved.
func (e *Env) Changed() bool {
	return e.actionsChanged || e.hotkeysChanged || e.optionsChanged
}

// MarkOptionsChanged records an option change made outside the commands,
// e.g. by a hotkey.
func (e *Env) MarkOptionsChanged() {
	e.optionsChanged = true
}
