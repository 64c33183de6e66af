package configaction

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
)

// MessageFactory builds the toggle message for a cell's new value. An empty
// result sends nothing.
type MessageFactory func(name string, value bool) string

// DefaultMessage is the message used without a factory.
func DefaultMessage(name string, value bool) string {
	state := "OFF"
	if value {
		state = "ON"
	}
	return fmt.Sprintf("Toggled %s %s", name, state)
}

// Feedback describes how the generated actions report a change.
type Feedback struct {
	Sender  message.Sender
	Factory MessageFactory
	// Output picks the message output; nil falls back to DefaultOutput.
	Output func() message.Output
	// DefaultOutput is the defaultToggleMessageOutput option.
	DefaultOutput *option.List[message.Output]
}

func (f Feedback) send(format string, args ...any) {
	if f.Sender == nil {
		return
	}
	output := message.OutputNone
	switch {
	case f.Output != nil:
		output = f.Output()
	case f.DefaultOutput != nil:
		output = f.DefaultOutput.ListValue()
	}
	f.Sender.Send(output, format, args...)
}

func (f Feedback) sendToggle(cell BooleanCell) {
	factory := f.Factory
	if factory == nil {
		factory = DefaultMessage
	}
	if msg := factory(cell.Name(), cell.BooleanValue()); msg != "" {
		f.send("%s", msg)
	}
}

// toggler is a cell providing its own toggle action, e.g. a hotkeyed
// boolean whose key press runs the same code.
type toggler interface {
	ToggleAction() action.Action
}

// outputter is a cell with its own message output setting.
type outputter interface {
	MessageOutput() message.Output
}

// ToggleAction flips the cell.
func ToggleAction(cell BooleanCell, fb Feedback) action.Action {
	return func(action.Context) action.Result {
		cell.SetBooleanValue(!cell.BooleanValue())
		fb.sendToggle(cell)
		return action.ResultSuccess
	}
}

// SetAction switches the cell to value. A cell already at value is left
// alone and the action passes.
func SetAction(cell BooleanCell, value bool, fb Feedback) action.Action {
	return func(action.Context) action.Result {
		if cell.BooleanValue() == value {
			state := "OFF"
			if value {
				state = "ON"
			}
			fb.send("%s is already %s", cell.Name(), state)
			return action.ResultPass
		}
		cell.SetBooleanValue(value)
		fb.sendToggle(cell)
		return action.ResultSuccess
	}
}

// RegisterBooleanActions registers toggle<Name>, enable<Name> and
// disable<Name> for cell. A cell with its own toggle action uses it.
func RegisterBooleanActions(reg *action.Registry, mod action.ModInfo, cell BooleanCell, fb Feedback) error {
	name := Capitalize(cell.Name())

	toggle := ToggleAction(cell, fb)
	if t, ok := cell.(toggler); ok {
		toggle = t.ToggleAction()
	}

	actions := []*action.Simple{
		action.NewSimple(mod, "toggle"+name, toggle),
		action.NewSimple(mod, "enable"+name, SetAction(cell, true, fb)),
		action.NewSimple(mod, "disable"+name, SetAction(cell, false, fb)),
	}
	var errs []error
	for _, a := range actions {
		if err := reg.Register(a.WithComment(cell.Comment())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegisterAllBooleanActions registers the boolean actions of every boolean
// cell in cells. Cells with their own message output report there.
func RegisterAllBooleanActions(reg *action.Registry, mod action.ModInfo, cells []option.Option, fb Feedback) error {
	var errs []error
	for _, o := range cells {
		cell, ok := o.(BooleanCell)
		if !ok {
			continue
		}
		cellFeedback := fb
		if out, ok := o.(outputter); ok && fb.Output == nil {
			cellFeedback.Output = out.MessageOutput
		}
		if err := RegisterBooleanActions(reg, mod, cell, cellFeedback); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
