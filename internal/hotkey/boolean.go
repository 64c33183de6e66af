package hotkey

import (
	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
)

// HotkeyedBoolean is a boolean option with its own key bind. Pressing the
// key and running the generated toggle action both go through ToggleAction.
type HotkeyedBoolean struct {
	*option.Boolean
	KeyBind  KeyBind
	Settings KeyBindSettings
	sender   message.Sender
}

// NewHotkeyedBoolean creates the option; keys may be empty for no binding.
func NewHotkeyedBoolean(name string, defaultValue bool, keys, comment string) (*HotkeyedBoolean, error) {
	var kb KeyBind
	if keys != "" {
		var err error
		if kb, err = ParseKeyBind(keys); err != nil {
			return nil, err
		}
	}
	return &HotkeyedBoolean{
		Boolean:  option.NewBoolean(name, defaultValue, comment),
		KeyBind:  kb,
		Settings: DefaultSettings,
	}, nil
}

// SetSender sets where toggle feedback goes; nil keeps toggles silent.
func (h *HotkeyedBoolean) SetSender(s message.Sender) {
	h.sender = s
}

// ToggleAction returns the action run for both the key press and the
// registered toggle action.
func (h *HotkeyedBoolean) ToggleAction() action.Action {
	return func(ctx action.Context) action.Result {
		if h.Settings.Toggle {
			h.Toggle()
		} else {
			h.SetBooleanValue(true)
		}
		if h.sender != nil {
			h.sender.Send(h.Settings.MessageOutput, "Toggled %s %s", h.Name(), OnOff(h.BooleanValue()))
		}
		return action.ResultSuccess
	}
}

// OnOff renders a boolean state for toggle messages.
func OnOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// MessageOutput is where this option's toggle feedback is shown.
func (h *HotkeyedBoolean) MessageOutput() message.Output {
	return h.Settings.MessageOutput
}
