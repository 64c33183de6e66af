// Package plugintest provides an in-memory plugin.API for plugin tests.
package plugintest

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

var _ plugin.API = (*API)(nil)

// Sent is one message passed to SendMessage or SendTimedMessage.
type Sent struct {
	Output      message.Output
	Level       message.Level
	DisplayTime time.Duration
	Text        string
}

// Clipboard is an in-memory clipboard.
type Clipboard struct {
	mu   sync.Mutex
	Text string
	Err  error
}

func (c *Clipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Text, c.Err
}

func (c *Clipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}

// API records what a plugin does with it.
type API struct {
	Registry *action.Registry
	Events   *event.Manager
	Config   map[string]map[string]any
	Clip     *Clipboard
	// SaveErr is returned by SaveActions.
	SaveErr error

	mu       sync.Mutex
	commands map[string]plugin.CommandFunc
	sent     []Sent
	cleared  int
	saves    int
}

// New returns an API over a fresh registry and event bus.
func New() *API {
	a := &API{
		Registry: action.NewRegistry(""),
		Events:   event.NewManager(),
		Config:   make(map[string]map[string]any),
		Clip:     &Clipboard{},
		commands: make(map[string]plugin.CommandFunc),
	}
	a.Registry.SetEventManager(a.Events)
	return a
}

func (a *API) RegisterAction(na action.NamedAction) error { return a.Registry.Register(na) }

func (a *API) GetAction(registryName string) action.NamedAction {
	return a.Registry.Get(registryName)
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.commands[name] = cmdFunc
	return nil
}

// Command returns a registered command.
func (a *API) Command(name string) (plugin.CommandFunc, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cmd, ok := a.commands[name]
	return cmd, ok
}

func (a *API) SendMessage(output message.Output, format string, args ...interface{}) {
	a.record(Sent{Output: output, Level: message.LevelInfo, DisplayTime: message.DefaultDisplayTime, Text: fmt.Sprintf(format, args...)})
}

func (a *API) SendTimedMessage(output message.Output, level message.Level, displayTime time.Duration, text string) {
	a.record(Sent{Output: output, Level: level, DisplayTime: displayTime, Text: text})
}

func (a *API) record(s Sent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sent = append(a.sent, s)
}

// Sent returns the messages sent so far.
func (a *API) Sent() []Sent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Sent(nil), a.sent...)
}

func (a *API) ClearMessages() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cleared++
	a.sent = nil
}

// Cleared counts ClearMessages calls.
func (a *API) Cleared() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cleared
}

func (a *API) Clipboard() plugin.Clipboard { return a.Clip }

func (a *API) SaveActions() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saves++
	return a.SaveErr
}

// Saves counts SaveActions calls.
func (a *API) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := a.Config[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
