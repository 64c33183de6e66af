// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/commands"
	"github.com/bethropolis/tide-actions/internal/config"
	"github.com/bethropolis/tide-actions/internal/configaction"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/hotkey"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// ModInfo owns the actions the application itself registers.
var ModInfo = action.ModInfo{ID: "tide", Name: "Tide Actions"}

// App wires the action registry to options, messages, hotkeys, plugins and
// commands.
type App struct {
	// mu serializes commands, key handling and saves; plugins may save from
	// their own goroutines.
	mu sync.Mutex

	cfg       *config.Config
	events    *event.Manager
	registry  *action.Registry
	builtin   *builtinOptions
	options   *option.Set
	messages  *message.Center
	hotkeys   *hotkey.Manager
	plugins   *plugin.Manager
	commands  *commands.Registry
	env       *commands.Env
	clipboard plugin.Clipboard
	out       io.Writer
}

// New creates the application from cfg. Command output goes to out and
// "import -" reads from in.
func New(cfg *config.Config, out io.Writer, in io.Reader) (*App, error) {
	a := &App{
		cfg:       cfg,
		events:    event.NewManager(),
		registry:  action.NewRegistry(cfg.Actions.StorageFile),
		builtin:   newBuiltinOptions(),
		plugins:   plugin.NewManager(),
		commands:  commands.NewRegistry(),
		clipboard: newClipboard(cfg.Actions.SystemClipboard),
		out:       out,
	}
	a.registry.SetEventManager(a.events)

	// --- Options ---
	a.options = option.NewSet(a.builtin.all()...)
	if err := a.options.ApplyValues(cfg.Options); err != nil {
		logger.Warnf("Config: ignoring option values: %v", err)
	}

	// --- Messages & Hotkeys ---
	a.messages = message.NewCenter(message.Config{
		Width:       cfg.Actions.HotbarWidth,
		HotbarLimit: a.builtin.hotbarLimit,
	})
	a.hotkeys = hotkey.NewManager(a.registry, cfg.Actions.HotkeysFile)
	a.hotkeys.SetEventManager(a.events)
	a.builtin.showMessages.SetSender(a.messages)
	a.hotkeys.AddBoolean(a.builtin.showMessages)

	// --- Built-in Actions ---
	feedback := configaction.Feedback{Sender: a.messages, DefaultOutput: a.builtin.defaultOutput}
	if err := errors.Join(
		configaction.RegisterAllBooleanActions(a.registry, ModInfo, a.options.All(), feedback),
		configaction.RegisterValueActions(a.registry, ModInfo, a.options.All()),
	); err != nil {
		return nil, fmt.Errorf("registering option actions: %w", err)
	}

	// --- Commands ---
	a.env = &commands.Env{
		Actions:     a.registry,
		Hotkeys:     a.hotkeys,
		Options:     a.options,
		Messages:    a.messages,
		Events:      a.events,
		Clipboard:   a.clipboard,
		Out:         out,
		In:          in,
		HoverWidth:  a.builtin.hoverWidth,
		SaveOptions: a.saveOptions,
	}
	if err := commands.RegisterBuiltins(a.commands, a.env); err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}

	// --- Plugins (register actions and commands via the API) ---
	if err := registerPlugins(a.plugins); err != nil {
		logger.Warnf("App: %v", err)
	}
	if failed := a.plugins.InitializePlugins(newAPI(a)); len(failed) > 0 {
		logger.Warnf("App: plugins failed to initialize: %v", failed)
	}

	// --- User Data ---
	// Loaded last so references to built-in and plugin actions resolve.
	if err := a.registry.LoadFromFile(); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.hotkeys.LoadFromFile(); err != nil {
		logger.Warnf("App: %v", err)
	}
	return a, nil
}

// ApplyOptionOverrides sets options from name=value strings.
func (a *App) ApplyOptionOverrides(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		o := a.options.Get(name)
		if o == nil {
			errs = append(errs, fmt.Errorf("unknown option '%s'", name))
			continue
		}
		if !o.SetValueFromString(values[name]) {
			errs = append(errs, fmt.Errorf("invalid value '%s' for %s", values[name], name))
		}
	}
	return errors.Join(errs...)
}

// Execute runs one command line given as arguments, saves what it changed
// and prints the messages it produced.
func (a *App) Execute(args []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(args) == 0 {
		args = []string{"help"}
	}
	err := a.commands.Execute(args[0], args[1:])
	saveErr := a.env.Save()
	for _, m := range a.messages.Drain() {
		fmt.Fprintf(a.out, "[%s] %s\n", m.Output, m.Text)
	}
	return errors.Join(err, saveErr)
}

// Close shuts the plugins down.
func (a *App) Close() {
	a.plugins.ShutdownPlugins()
}

func (a *App) saveOptions() error {
	return a.cfg.SaveOptions(a.options.Values())
}

// Registry exposes the action registry.
func (a *App) Registry() *action.Registry {
	return a.registry
}

// Options exposes the option set.
func (a *App) Options() *option.Set {
	return a.options
}

// Messages exposes the message center.
func (a *App) Messages() *message.Center {
	return a.messages
}
