package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// ErrUnknownCommand is returned when no command has the requested name.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a registered command with its help text.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   plugin.CommandFunc
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// RegisterCommand adds a command without help text; plugins register
// through this.
func (r *Registry) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return r.Register(Command{Name: name, Usage: name, Run: cmdFunc})
}

// Register adds cmd. Names must be non-empty and unique.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("command '%s' already registered", cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	logger.DebugTagf("command", "Registered command '%s'", cmd.Name)
	return nil
}

// Get returns the named command.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns all commands sorted by name.
func (r *Registry) Commands() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Execute runs the named command with args.
func (r *Registry) Execute(name string, args []string) error {
	cmd, exists := r.commands[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.DebugTagf("command", "Executing command '%s' with args %v", name, args)
	if err := cmd.Run(args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ExecuteLine splits a command line on whitespace and runs it.
func (r *Registry) ExecuteLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	return r.Execute(parts[0], parts[1:])
}
