// Package message queues user-facing feedback from actions and draws it.
package message

import (
	"github.com/bethropolis/tide-actions/internal/option"
)

// Output selects where a message is shown.
type Output int

const (
	OutputNone Output = iota
	OutputChat
	OutputActionbar
	OutputToast
	OutputHotbar
)

// Outputs lists every output in display order.
var Outputs = []Output{OutputNone, OutputChat, OutputActionbar, OutputToast, OutputHotbar}

func (o Output) ID() string {
	switch o {
	case OutputChat:
		return "chat"
	case OutputActionbar:
		return "actionbar"
	case OutputToast:
		return "toast"
	case OutputHotbar:
		return "hotbar"
	}
	return "none"
}

func (o Output) DisplayName() string {
	switch o {
	case OutputChat:
		return "Chat"
	case OutputActionbar:
		return "Action bar"
	case OutputToast:
		return "Toast"
	case OutputHotbar:
		return "Custom hotbar"
	}
	return "None"
}

func (o Output) String() string { return o.ID() }

// ParseOutput matches an output by id or display name.
func ParseOutput(name string) (Output, bool) {
	return option.MatchName(Outputs, name)
}

// NewOutputOption creates a list cell choosing a message output.
func NewOutputOption(name string, defaultValue Output, comment string) *option.List[Output] {
	return option.NewList(name, defaultValue, Outputs, comment)
}

// Level colours a message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)
