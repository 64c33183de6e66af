// plugins/messages/messages.go
package messages

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// Ensure Messages implements plugin.Plugin
var _ plugin.Plugin = (*Messages)(nil)

// ModInfo owns the actions of this plugin.
var ModInfo = action.ModInfo{ID: "messages", Name: "Messages"}

// Messages provides actions that show messages and use the clipboard.
type Messages struct {
	api    plugin.API
	prefix string
}

// New creates a new instance of the Messages plugin.
func New() plugin.Plugin {
	return &Messages{}
}

func (p *Messages) Name() string {
	return "messages"
}

func (p *Messages) ModInfo() action.ModInfo {
	return ModInfo
}

// Initialize reads the plugin config and registers the actions and the
// :say command.
func (p *Messages) Initialize(api plugin.API) error {
	p.api = api

	if v, ok := api.GetPluginConfigValue(p.Name(), "prefix"); ok {
		if s, isStr := v.(string); isStr {
			p.prefix = s
		} else {
			logger.Warnf("%s: Invalid type for 'prefix' config (%T), ignoring", p.Name(), v)
		}
	}

	actions := []action.NamedAction{
		action.NewParameterizable(ModInfo, "addMessage", p.addMessage(message.OutputChat)).
			WithComment("Show a chat message; \"time=<ms>;\" sets the display time"),
		action.NewParameterizable(ModInfo, "addToast", p.addMessage(message.OutputToast)).
			WithComment("Show a toast; \"time=<ms>;\" sets the display time"),
		action.NewParameterizable(ModInfo, "addActionbar", p.addMessage(message.OutputActionbar)).
			WithComment("Show an action bar message"),
		action.NewParameterizable(ModInfo, "addHotbar", p.addMessage(message.OutputHotbar)).
			WithComment("Show a custom hotbar message"),
		action.NewParameterizable(ModInfo, "copyToClipboard", p.copyToClipboard).
			WithComment("Copy the argument to the clipboard"),
		action.NewSimple(ModInfo, "clearMessages", p.clearMessages).
			WithComment("Remove every visible message"),
	}
	for _, a := range actions {
		if err := api.RegisterAction(a); err != nil {
			return fmt.Errorf("failed to register '%s': %w", a.Name(), err)
		}
	}

	if err := api.RegisterCommand("say", p.executeSay); err != nil {
		return fmt.Errorf("failed to register 'say' command: %w", err)
	}
	return nil
}

func (p *Messages) Shutdown() error {
	return nil
}

func (p *Messages) addMessage(output message.Output) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		text, displayTime := message.ParseTimed(arg)
		p.api.SendTimedMessage(output, message.LevelInfo, displayTime, p.prefix+text)
		return action.ResultSuccess
	}
}

func (p *Messages) copyToClipboard(_ action.Context, arg string) action.Result {
	clip := p.api.Clipboard()
	if clip == nil {
		return action.ResultFail
	}
	if err := clip.WriteAll(arg); err != nil {
		logger.Warnf("%s: Copy to clipboard failed: %v", p.Name(), err)
		p.api.SendTimedMessage(message.OutputChat, message.LevelError, message.DefaultDisplayTime, "Copy to clipboard failed")
		return action.ResultFail
	}
	return action.ResultSuccess
}

func (p *Messages) clearMessages(action.Context) action.Result {
	p.api.ClearMessages()
	return action.ResultSuccess
}

// executeSay runs ":say <output> <text>".
func (p *Messages) executeSay(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: say <output> <text>")
	}
	output, ok := message.ParseOutput(args[0])
	if !ok {
		return fmt.Errorf("unknown message output '%s'", args[0])
	}
	text, displayTime := message.ParseTimed(strings.Join(args[1:], " "))
	p.api.SendTimedMessage(output, message.LevelInfo, displayTime, p.prefix+text)
	return nil
}
