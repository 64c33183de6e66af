// internal/plugin/plugin.go
package plugin

import (
	"time"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/message"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the command's arguments and returns an error.
type CommandFunc func(args []string) error

// Clipboard is the text clipboard plugins may read and write.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// API defines what plugins can do with the application.
// This acts as a controlled interface, preventing plugins from accessing everything.
type API interface {
	// --- Actions ---
	// RegisterAction adds a built-in action owned by the plugin.
	RegisterAction(a action.NamedAction) error
	GetAction(registryName string) action.NamedAction

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Messages ---
	SendMessage(output message.Output, format string, args ...interface{})
	SendTimedMessage(output message.Output, level message.Level, displayTime time.Duration, text string)
	ClearMessages()

	// --- Clipboard ---
	Clipboard() Clipboard

	// --- Storage ---
	// SaveActions writes the user actions and custom hotkeys to disk.
	SaveActions() error

	// --- Configuration ---
	// GetPluginConfigValue reads a key from the plugin's [plugins.<name>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// ModInfo identifies the plugin as the owner of its actions.
	ModInfo() action.ModInfo

	// Initialize is called once when the plugin is loaded.
	// Used for setup, registering actions and commands, subscribing to events.
	Initialize(api API) error

	// Shutdown is called once when the application is closing.
	Shutdown() error
}
