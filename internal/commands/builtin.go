package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/spf13/pflag"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/configaction"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/hotkey"
	"github.com/bethropolis/tide-actions/internal/storage"
)

// CLIContext is the execution context of actions run from the command line.
var CLIContext = action.Context{Source: "cli"}

var errUsage = errors.New("wrong number of arguments")

type builtins struct {
	env *Env
}

// RegisterBuiltins registers the built-in commands operating on env.
func RegisterBuiltins(r *Registry, env *Env) error {
	b := &builtins{env: env}
	cmds := []Command{
		{"list", "list [all|base|user]", "List registered actions", b.list},
		{"info", "info <action>", "Show details of an action", b.info},
		{"run", "run <action> [argument]", "Execute an action", b.run},
		{"alias", "alias <action> <name>", "Create an alias", b.alias},
		{"macro", "macro <name> <action[=arg]>...", "Create or replace a macro", b.macro},
		{"macro-add", "macro-add <macro> <action[=arg]>...", "Append actions to a macro", b.macroAdd},
		{"remove", "remove <action>", "Remove an alias or macro", b.remove},
		{"export", "export [--clipboard]", "Print user actions as JSON", b.export},
		{"import", "import <file|-|clipboard> [append|overwrite] [macro]", "Import actions from JSON", b.importActions},
		{"hotkeys", "hotkeys", "List hotkeys", b.hotkeys},
		{"hotkey", "hotkey <name> <keys> <action[=arg]>...", "Create or replace a custom hotkey", b.hotkey},
		{"press", "press <keys>", "Simulate a key press", b.press},
		{"options", "options", "List options and their values", b.options},
		{"set", "set <option> <value>", "Set an option", b.set},
		{"toggle", "toggle <option>", "Toggle a boolean option", b.toggle},
	}
	var errs []error
	for _, cmd := range cmds {
		errs = append(errs, r.Register(cmd))
	}
	errs = append(errs, r.Register(Command{"help", "help", "List commands", func([]string) error {
		for _, cmd := range r.Commands() {
			fmt.Fprintf(env.Out, "%s  %s\n", pad(cmd.Usage, 56), cmd.Help)
		}
		return nil
	}}))
	return errors.Join(errs...)
}

// resolve finds an action by registry name, falling back to the alias and
// macro namespaces for bare names.
func (b *builtins) resolve(name string) (action.NamedAction, error) {
	for _, candidate := range []string{
		name,
		action.RegistryNameFor(action.MacroModInfo, name),
		action.RegistryNameFor(action.AliasModInfo, name),
	} {
		if a := b.env.Actions.Get(candidate); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("'%s': %w", name, action.ErrNotFound)
}

// resolveMember resolves "name" or "name=arg"; an argument parameterizes a
// parameterizable action.
func (b *builtins) resolveMember(member string) (action.NamedAction, error) {
	name, arg, hasArg := strings.Cut(member, "=")
	a, err := b.resolve(name)
	if err != nil || !hasArg {
		return a, err
	}
	p, ok := a.(*action.Parameterizable)
	if !ok {
		return nil, fmt.Errorf("'%s' takes no argument", name)
	}
	return p.Parameterize("", arg), nil
}

func (b *builtins) resolveMembers(names []string) ([]action.NamedAction, error) {
	members := make([]action.NamedAction, 0, len(names))
	for _, name := range names {
		a, err := b.resolveMember(name)
		if err != nil {
			return nil, err
		}
		members = append(members, a)
	}
	return members, nil
}

func (b *builtins) resolveMacro(name string) (*action.Macro, error) {
	a, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	m, ok := a.(*action.Macro)
	if !ok {
		return nil, fmt.Errorf("'%s' is not a macro", name)
	}
	return m, nil
}

func (b *builtins) list(args []string) error {
	which := "all"
	if len(args) > 0 {
		which = args[0]
	}
	var actions []action.NamedAction
	switch which {
	case "all":
		actions = b.env.Actions.All()
	case "base":
		actions = b.env.Actions.BaseActions()
	case "user":
		actions = b.env.Actions.UserAdded()
	default:
		return fmt.Errorf("unknown listing '%s'", which)
	}

	width := 0
	for _, a := range actions {
		width = max(width, uniseg.StringWidth(a.RegistryName()))
	}
	for _, a := range actions {
		fmt.Fprintf(b.env.Out, "%s  %s\n", pad(a.RegistryName(), width), action.WidgetDisplayName(a))
	}
	return nil
}

func (b *builtins) info(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a, err := b.resolve(args[0])
	if err != nil {
		return err
	}
	width := 0
	if b.env.HoverWidth != nil {
		width = b.env.HoverWidth.IntegerValue()
	}
	for _, line := range action.HoverInfo(a) {
		fmt.Fprintln(b.env.Out, truncate(line, width))
	}
	return nil
}

func (b *builtins) run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	a, err := b.resolve(args[0])
	if err != nil {
		return err
	}

	var result action.Result
	if p, ok := a.(*action.Parameterizable); ok && len(args) > 1 {
		result = p.ExecuteWithArgument(CLIContext, strings.Join(args[1:], " "))
	} else {
		result = a.Execute(CLIContext)
	}
	b.env.Events.Dispatch(event.TypeActionExecuted, event.ExecutedData{
		RegistryName: a.RegistryName(),
		Source:       CLIContext.Source,
		Result:       result.String(),
	})
	fmt.Fprintf(b.env.Out, "%s: %s\n", a.RegistryName(), result)
	b.printMessages()
	return nil
}

func (b *builtins) printMessages() {
	if b.env.Messages == nil || b.env.KeepMessages {
		return
	}
	for _, m := range b.env.Messages.Drain() {
		fmt.Fprintf(b.env.Out, "[%s] %s\n", m.Output, m.Text)
	}
}

func (b *builtins) alias(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	a, err := b.resolve(args[0])
	if err != nil {
		return err
	}
	alias := action.CreateAlias(args[1], a)
	if err := b.env.Actions.Register(alias); err != nil {
		return err
	}
	b.env.actionsChanged = true
	fmt.Fprintf(b.env.Out, "Created %s -> %s\n", alias.RegistryName(), alias.Base().RegistryName())
	return nil
}

func (b *builtins) macro(args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	members, err := b.resolveMembers(args[1:])
	if err != nil {
		return err
	}
	m := action.NewMacro(args[0])
	if err := m.SetActions(members); err != nil {
		return err
	}
	if err := b.env.Actions.Register(m); err != nil {
		return err
	}
	b.env.actionsChanged = true
	fmt.Fprintf(b.env.Out, "Created %s with %d actions\n", m.RegistryName(), m.Len())
	return nil
}

func (b *builtins) macroAdd(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	m, err := b.resolveMacro(args[0])
	if err != nil {
		return err
	}
	members, err := b.resolveMembers(args[1:])
	if err != nil {
		return err
	}
	if err := m.AddActions(members...); err != nil {
		return err
	}
	b.env.actionsChanged = true
	fmt.Fprintf(b.env.Out, "%s now has %d actions\n", m.RegistryName(), m.Len())
	return nil
}

func (b *builtins) remove(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a, err := b.resolve(args[0])
	if err != nil {
		return err
	}
	if err := b.env.Actions.Remove(a.RegistryName()); err != nil {
		return err
	}
	b.env.actionsChanged = true
	fmt.Fprintf(b.env.Out, "Removed %s\n", a.RegistryName())
	return nil
}

func (b *builtins) export(args []string) error {
	flags := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	toClipboard := flags.BoolP("clipboard", "c", false, "copy to the clipboard")
	if err := flags.Parse(args); err != nil {
		return err
	}

	data, err := storage.Marshal(action.ActionsToJSON(b.env.Actions.UserAdded()))
	if err != nil {
		return err
	}
	if *toClipboard {
		if b.env.Clipboard == nil {
			return fmt.Errorf("no clipboard available")
		}
		if err := b.env.Clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
		fmt.Fprintf(b.env.Out, "Copied %d user actions to the clipboard\n", len(b.env.Actions.UserAdded()))
		return nil
	}
	_, err = b.env.Out.Write(data)
	return err
}

func (b *builtins) readSource(source string) ([]byte, error) {
	switch source {
	case "-":
		return io.ReadAll(b.env.In)
	case "clipboard":
		if b.env.Clipboard == nil {
			return nil, fmt.Errorf("no clipboard available")
		}
		text, err := b.env.Clipboard.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reading clipboard: %w", err)
		}
		return []byte(text), nil
	}
	return os.ReadFile(source)
}

func (b *builtins) importActions(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errUsage
	}
	mode := action.ImportAppend
	if len(args) > 1 {
		switch args[1] {
		case "append":
		case "overwrite":
			mode = action.ImportOverwrite
		default:
			return fmt.Errorf("unknown import mode '%s'", args[1])
		}
	}

	data, err := b.readSource(args[0])
	if err != nil {
		return err
	}
	objects, err := storage.ParseArray(data)
	if err != nil {
		return fmt.Errorf("reading actions: %w", err)
	}

	if len(args) == 3 {
		m, err := b.resolveMacro(args[2])
		if err != nil {
			return err
		}
		actions := action.NewLoader(b.env.Actions).LoadActions(objects)
		n, err := m.Import(actions, mode)
		if err != nil {
			return err
		}
		b.env.actionsChanged = true
		fmt.Fprintf(b.env.Out, "Imported %d actions into %s\n", n, m.RegistryName())
		return nil
	}

	if mode == action.ImportOverwrite {
		for _, a := range b.env.Actions.UserAdded() {
			if err := b.env.Actions.Remove(a.RegistryName()); err != nil {
				return err
			}
		}
	}
	count := b.env.Actions.RegisterFromJSON(objects)
	b.env.actionsChanged = true
	fmt.Fprintf(b.env.Out, "Imported %d user actions\n", count)
	return nil
}

func (b *builtins) hotkeys([]string) error {
	if b.env.Hotkeys == nil {
		return nil
	}
	for _, h := range b.env.Hotkeys.Hotkeys() {
		fmt.Fprintf(b.env.Out, "%s  %s  %d actions\n", pad(h.Name, 20), pad(h.KeyBind.String(), 12), len(h.Actions()))
	}
	for _, o := range b.env.Hotkeys.Booleans() {
		fmt.Fprintf(b.env.Out, "%s  %s  %s\n", pad(o.Name(), 20), pad(o.KeyBind.String(), 12), hotkey.OnOff(o.BooleanValue()))
	}
	return nil
}

func (b *builtins) hotkey(args []string) error {
	if len(args) < 2 || b.env.Hotkeys == nil {
		return errUsage
	}
	kb, err := hotkey.ParseKeyBind(args[1])
	if err != nil {
		return err
	}
	members, err := b.resolveMembers(args[2:])
	if err != nil {
		return err
	}
	b.env.Hotkeys.Add(hotkey.NewCustomHotkey(args[0], kb, members...))
	b.env.hotkeysChanged = true
	fmt.Fprintf(b.env.Out, "Bound %s to %s\n", kb, args[0])
	return nil
}

func (b *builtins) press(args []string) error {
	if len(args) != 1 || b.env.Hotkeys == nil {
		return errUsage
	}
	kb, err := hotkey.ParseKeyBind(args[0])
	if err != nil {
		return err
	}
	ev := tcell.NewEventKey(kb.Key, kb.Rune, kb.Mod)
	if !b.env.Hotkeys.Handle(ev) {
		fmt.Fprintf(b.env.Out, "Nothing bound to %s\n", kb)
	}
	b.printMessages()
	return nil
}

func (b *builtins) options([]string) error {
	width := 0
	for _, name := range b.env.Options.Names() {
		width = max(width, uniseg.StringWidth(name))
	}
	for _, name := range b.env.Options.Names() {
		fmt.Fprintf(b.env.Out, "%s  %s\n", pad(name, width), b.env.Options.Get(name).StringValue())
	}
	return nil
}

func (b *builtins) set(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	o := b.env.Options.Get(args[0])
	if o == nil {
		return fmt.Errorf("unknown option '%s'", args[0])
	}
	value := strings.Join(args[1:], " ")
	if !o.SetValueFromString(value) {
		return fmt.Errorf("invalid value '%s' for %s", value, o.Name())
	}
	b.env.optionsChanged = true
	fmt.Fprintf(b.env.Out, "%s = %s\n", o.Name(), o.StringValue())
	return nil
}

// toggle runs the option's generated toggle action, so the command behaves
// exactly like the action and the hotkey.
func (b *builtins) toggle(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o := b.env.Options.Get(args[0])
	if _, ok := o.(configaction.BooleanCell); !ok {
		return fmt.Errorf("'%s' is not a boolean option", args[0])
	}
	name := "toggle" + configaction.Capitalize(o.Name())
	for _, a := range b.env.Actions.BaseActions() {
		if a.Name() != name {
			continue
		}
		a.Execute(CLIContext)
		b.env.optionsChanged = true
		fmt.Fprintf(b.env.Out, "%s = %s\n", o.Name(), o.StringValue())
		b.printMessages()
		return nil
	}
	return fmt.Errorf("'%s': %w", name, action.ErrNotFound)
}

// truncate cuts s to width terminal cells; zero keeps it whole.
func truncate(s string, width int) string {
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if w+gr.Width() > width {
			break
		}
		w += gr.Width()
		sb.WriteString(gr.Str())
	}
	return sb.String()
}

// pad right-pads s to width terminal cells.
func pad(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
