package app

import (
	"github.com/bethropolis/tide-actions/internal/hotkey"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
)

// builtinOptions are the options the application itself defines.
type builtinOptions struct {
	defaultOutput  *option.List[message.Output]
	hotbarLimit    *option.Integer
	hoverWidth     *option.Integer
	hotbarRenderer *message.RendererSettings
	toastRenderer  *message.RendererSettings
	showMessages   *hotkey.HotkeyedBoolean
}

func newBuiltinOptions() *builtinOptions {
	showMessages, err := hotkey.NewHotkeyedBoolean("showMessages", true, "F9", "Draw messages in watch mode")
	if err != nil {
		panic(err) // constant key bind
	}
	return &builtinOptions{
		defaultOutput: message.NewOutputOption("defaultToggleMessageOutput", message.OutputHotbar,
			"Where option toggle messages go unless the option has its own output"),
		hotbarLimit: option.NewInteger("customHotbarMessageLimit", 3, 1, 16,
			"How many custom hotbar messages are shown at once"),
		hoverWidth: option.NewInteger("hoverTextMaxWidth", 310, 16, 4096,
			"Maximum width of action info lines"),
		hotbarRenderer: message.NewRendererSettings("hotbarRenderer"),
		toastRenderer:  message.NewRendererSettings("toastRenderer"),
		showMessages:   showMessages,
	}
}

func (b *builtinOptions) all() []option.Option {
	opts := []option.Option{b.defaultOutput, b.hotbarLimit, b.hoverWidth, b.showMessages}
	opts = append(opts, b.hotbarRenderer.Options()...)
	return append(opts, b.toastRenderer.Options()...)
}
