package hotkey

import (
	"fmt"
	"slices"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/message"
)

// CustomHotkey runs a user-defined list of actions when its key is pressed.
// A hotkey is not itself an action, so its list can never form a loop.
type CustomHotkey struct {
	Name     string
	KeyBind  KeyBind
	Settings KeyBindSettings
	actions  []action.NamedAction
}

func NewCustomHotkey(name string, kb KeyBind, actions ...action.NamedAction) *CustomHotkey {
	return &CustomHotkey{
		Name:     name,
		KeyBind:  kb,
		Settings: DefaultSettings,
		actions:  slices.Clone(actions),
	}
}

// Actions returns a copy of the action list.
func (h *CustomHotkey) Actions() []action.NamedAction {
	return slices.Clone(h.actions)
}

func (h *CustomHotkey) SetActions(actions []action.NamedAction) {
	h.actions = slices.Clone(actions)
}

func (h *CustomHotkey) AddActions(actions ...action.NamedAction) {
	h.actions = append(slices.Clone(h.actions), actions...)
}

// Execute runs every action in order and reports SUCCESS once all ran.
func (h *CustomHotkey) Execute(ctx action.Context) action.Result {
	for _, a := range h.actions {
		a.Execute(ctx)
	}
	return action.ResultSuccess
}

func (h *CustomHotkey) ToJSON() action.JSONObject {
	return action.JSONObject{
		"name":   h.Name,
		"hotkey": h.KeyBind.String(),
		"settings": map[string]any{
			"toggle":         h.Settings.Toggle,
			"message_output": h.Settings.MessageOutput.ID(),
		},
		"actions": action.ActionsToJSON(h.actions),
	}
}

// CustomHotkeyFromJSON reads a hotkey; actions resolve through loader and
// those that fail to load are dropped.
func CustomHotkeyFromJSON(obj action.JSONObject, loader *action.Loader) (*CustomHotkey, error) {
	name, _ := obj["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("hotkey without a name")
	}

	var kb KeyBind
	if keys, _ := obj["hotkey"].(string); keys != "" {
		var err error
		if kb, err = ParseKeyBind(keys); err != nil {
			return nil, fmt.Errorf("hotkey '%s': %w", name, err)
		}
	}

	h := NewCustomHotkey(name, kb)
	if settings, ok := obj["settings"].(map[string]any); ok {
		if toggle, ok := settings["toggle"].(bool); ok {
			h.Settings.Toggle = toggle
		}
		if id, ok := settings["message_output"].(string); ok {
			if output, ok := message.ParseOutput(id); ok {
				h.Settings.MessageOutput = output
			}
		}
	}

	if list, ok := obj["actions"].([]any); ok {
		objects := make([]action.JSONObject, 0, len(list))
		for _, el := range list {
			if o, ok := el.(map[string]any); ok {
				objects = append(objects, o)
			}
		}
		h.actions = loader.LoadActions(objects)
	}
	return h, nil
}
