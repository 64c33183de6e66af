package hotkey

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/message"
)

type recordingSender struct {
	outputs []message.Output
	texts   []string
}

func (s *recordingSender) Send(output message.Output, format string, args ...any) {
	s.outputs = append(s.outputs, output)
	s.texts = append(s.texts, fmt.Sprintf(format, args...))
}

func TestParseKeyBind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want KeyBind
		str  string
	}{
		{"Ctrl+S", KeyBind{Key: tcell.KeyCtrlS, Mod: tcell.ModCtrl}, "Ctrl+S"},
		{"ctrl + shift + x", KeyBind{Key: tcell.KeyCtrlX, Mod: tcell.ModCtrl | tcell.ModShift}, "Ctrl+Shift+X"},
		{"Alt+F5", KeyBind{Key: tcell.KeyF5, Mod: tcell.ModAlt}, "Alt+F5"},
		{"g", KeyBind{Key: tcell.KeyRune, Rune: 'g'}, "g"},
		{"Alt+Space", KeyBind{Key: tcell.KeyRune, Rune: ' ', Mod: tcell.ModAlt}, "Alt+Space"},
		{"Tab", KeyBind{Key: tcell.KeyTab}, "Tab"},
		{"Ctrl++", KeyBind{Key: tcell.KeyRune, Rune: '+', Mod: tcell.ModCtrl}, "Ctrl++"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			kb, err := ParseKeyBind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kb)
			assert.Equal(t, tt.str, kb.String())
		})
	}

	for _, bad := range []string{"", "Hyper+S", "Ctrl+NoSuchKey", "Ctrl+"} {
		_, err := ParseKeyBind(bad)
		assert.ErrorIs(t, err, ErrInvalidKeyBind, bad)
	}
}

func TestKeyBindMatches(t *testing.T) {
	t.Parallel()

	ctrlS := MustParseKeyBind("Ctrl+S")
	assert.True(t, ctrlS.Matches(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)))
	assert.False(t, ctrlS.Matches(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)))

	g := MustParseKeyBind("g")
	assert.True(t, g.Matches(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
	assert.True(t, g.Matches(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift)))
	assert.False(t, g.Matches(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModAlt)))

	tab := MustParseKeyBind("Tab")
	assert.True(t, tab.Matches(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))

	assert.False(t, KeyBind{}.Matches(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
}

func TestHotkeyedBooleanToggle(t *testing.T) {
	t.Parallel()

	b, err := NewHotkeyedBoolean("showHud", false, "F3", "")
	require.NoError(t, err)
	sender := &recordingSender{}
	b.SetSender(sender)
	b.Settings.MessageOutput = message.OutputToast

	toggle := b.ToggleAction()
	assert.Equal(t, action.ResultSuccess, toggle(action.CommonContext))
	assert.True(t, b.BooleanValue())
	toggle(action.CommonContext)
	assert.False(t, b.BooleanValue())

	b.Settings.Toggle = false
	toggle(action.CommonContext)
	toggle(action.CommonContext)
	assert.True(t, b.BooleanValue())

	assert.Equal(t, []string{"Toggled showHud ON", "Toggled showHud OFF", "Toggled showHud ON", "Toggled showHud ON"}, sender.texts)
	assert.Equal(t, message.OutputToast, sender.outputs[0])

	_, err = NewHotkeyedBoolean("bad", false, "Super+Q", "")
	assert.ErrorIs(t, err, ErrInvalidKeyBind)
}

func TestManagerHandle(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry("")
	var log []string
	mod := action.ModInfo{ID: "test", Name: "Test"}
	a := action.NewSimple(mod, "a", func(action.Context) action.Result {
		log = append(log, "a")
		return action.ResultFail
	})
	b := action.NewSimple(mod, "b", func(ctx action.Context) action.Result {
		log = append(log, "b:"+ctx.Source)
		return action.ResultSuccess
	})

	m := NewManager(reg, "")
	bus := event.NewManager()
	m.SetEventManager(bus)
	var executed []event.ExecutedData
	bus.Subscribe(event.TypeActionExecuted, func(e event.Event) bool {
		executed = append(executed, e.Data.(event.ExecutedData))
		return false
	})

	m.Add(NewCustomHotkey("both", MustParseKeyBind("Ctrl+B"), a, b))
	hud, err := NewHotkeyedBoolean("hud", false, "F3", "")
	require.NoError(t, err)
	m.AddBoolean(hud)

	assert.True(t, m.Handle(tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl)))
	assert.Equal(t, []string{"a", "b:hotkey"}, log)

	assert.True(t, m.Handle(tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone)))
	assert.True(t, hud.BooleanValue())

	assert.False(t, m.Handle(tcell.NewEventKey(tcell.KeyF4, 0, tcell.ModNone)))

	require.Len(t, executed, 2)
	assert.Equal(t, event.ExecutedData{RegistryName: "both", Source: "hotkey", Result: "SUCCESS"}, executed[0])
	assert.Equal(t, "hud", executed[1].RegistryName)
}

func TestManagerSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hotkeys.json")
	reg := action.NewRegistry("")
	mod := action.ModInfo{ID: "test", Name: "Test"}
	jump := action.NewSimple(mod, "jump", func(action.Context) action.Result { return action.ResultSuccess })
	require.NoError(t, reg.Register(jump))
	macro := action.NewMacro("m", jump)
	require.NoError(t, reg.Register(macro))

	saved := NewManager(reg, path)
	h := NewCustomHotkey("run", MustParseKeyBind("Alt+R"), jump, macro)
	h.Settings = KeyBindSettings{Toggle: false, MessageOutput: message.OutputChat}
	saved.Add(h)
	saved.Add(NewCustomHotkey("empty", KeyBind{}))
	require.NoError(t, saved.SaveToFile())

	loaded := NewManager(reg, path)
	require.NoError(t, loaded.LoadFromFile())

	require.Len(t, loaded.Hotkeys(), 2)
	got := loaded.Get("run")
	require.NotNil(t, got)
	assert.Equal(t, h.ToJSON(), got.ToJSON())
	assert.Same(t, macro, got.Actions()[1])
	assert.True(t, loaded.Get("empty").KeyBind.IsZero())

	assert.True(t, loaded.Remove("empty"))
	assert.False(t, loaded.Remove("empty"))
}

func TestCustomHotkeyFromJSONErrors(t *testing.T) {
	t.Parallel()

	loader := action.NewLoader(action.NewRegistry(""))
	_, err := CustomHotkeyFromJSON(action.JSONObject{"hotkey": "g"}, loader)
	require.Error(t, err)

	_, err = CustomHotkeyFromJSON(action.JSONObject{"name": "x", "hotkey": "Ctrl+Nope"}, loader)
	require.ErrorIs(t, err, ErrInvalidKeyBind)

	h, err := CustomHotkeyFromJSON(action.JSONObject{
		"name":    "x",
		"actions": []any{map[string]any{"type": "simple", "name": "gone:a"}},
	}, loader)
	require.NoError(t, err)
	assert.Empty(t, h.Actions())
}
