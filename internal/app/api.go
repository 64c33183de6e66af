package app

import (
	"errors"
	"time"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// Ensure appAPI implements the plugin.API interface.
var _ plugin.API = (*appAPI)(nil)

// appAPI is what plugins see of the App.
type appAPI struct {
	app *App
}

func newAPI(app *App) *appAPI {
	return &appAPI{app: app}
}

func (api *appAPI) RegisterAction(a action.NamedAction) error {
	return api.app.registry.Register(a)
}

func (api *appAPI) GetAction(registryName string) action.NamedAction {
	return api.app.registry.Get(registryName)
}

func (api *appAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.events.Dispatch(eventType, data)
}

func (api *appAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.events.Subscribe(eventType, handler)
}

func (api *appAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.RegisterCommand(name, cmdFunc)
}

func (api *appAPI) SendMessage(output message.Output, format string, args ...interface{}) {
	api.app.messages.Send(output, format, args...)
}

func (api *appAPI) SendTimedMessage(output message.Output, level message.Level, displayTime time.Duration, text string) {
	api.app.messages.SendTimed(output, level, displayTime, "%s", text)
}

func (api *appAPI) ClearMessages() {
	api.app.messages.Clear()
}

func (api *appAPI) Clipboard() plugin.Clipboard {
	return api.app.clipboard
}

// SaveActions may be called from plugin goroutines; it waits for the
// command or key being handled.
func (api *appAPI) SaveActions() error {
	api.app.mu.Lock()
	defer api.app.mu.Unlock()
	return errors.Join(
		api.app.registry.SaveToFile(),
		api.app.hotkeys.SaveToFile(),
		api.app.saveOptions(),
	)
}

func (api *appAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
