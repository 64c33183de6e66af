package configaction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/hotkey"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/option"
)

var testMod = action.ModInfo{ID: "test", Name: "Test"}

type sent struct {
	output message.Output
	text   string
}

type recordingSender struct{ messages []sent }

func (s *recordingSender) Send(output message.Output, format string, args ...any) {
	s.messages = append(s.messages, sent{output, fmt.Sprintf(format, args...)})
}

func TestSetBooleanValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg    string
		result action.Result
		value  bool
	}{
		{"TRUE", action.ResultSuccess, true},
		{" yes ", action.ResultSuccess, true},
		{"off", action.ResultSuccess, false},
		{"banana", action.ResultFail, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			// start from the opposite of the expected value so a change is visible
			cell := option.NewBoolean("flag", !tt.value, "")
			if tt.result == action.ResultFail {
				cell.SetBooleanValue(tt.value)
			}
			set := SetBooleanValue(cell)

			assert.Equal(t, tt.result, set(action.CommonContext, tt.arg))
			assert.Equal(t, tt.value, cell.BooleanValue())
		})
	}
}

func TestSetIntegerValue(t *testing.T) {
	t.Parallel()

	cell := option.NewInteger("count", 7, -1000, 1000, "")
	set := SetIntegerValue(cell)

	assert.Equal(t, action.ResultSuccess, set(action.CommonContext, "42"))
	assert.Equal(t, 42, cell.IntegerValue())

	assert.Equal(t, action.ResultFail, set(action.CommonContext, "4.2"))
	assert.Equal(t, 42, cell.IntegerValue())

	assert.Equal(t, action.ResultSuccess, set(action.CommonContext, " -3 "))
	assert.Equal(t, -3, cell.IntegerValue())
}

func TestSetOtherValues(t *testing.T) {
	t.Parallel()

	d := option.NewDouble("scale", 1, 0, 100, "")
	assert.Equal(t, action.ResultSuccess, SetDoubleValue(d)(action.CommonContext, "2.5"))
	assert.InDelta(t, 2.5, d.DoubleValue(), 1e-9)
	assert.Equal(t, action.ResultFail, SetDoubleValue(d)(action.CommonContext, "two"))
	assert.InDelta(t, 2.5, d.DoubleValue(), 1e-9)

	s := option.NewString("title", "", "")
	assert.Equal(t, action.ResultSuccess, SetStringValue(s)(action.CommonContext, "  spaced  "))
	assert.Equal(t, "  spaced  ", s.StringValue())

	out := message.NewOutputOption("output", message.OutputChat, "")
	assert.Equal(t, action.ResultSuccess, SetListValue(out)(action.CommonContext, " toast"))
	assert.Equal(t, message.OutputToast, out.ListValue())
	assert.Equal(t, action.ResultFail, SetListValue(out)(action.CommonContext, "screen"))
	assert.Equal(t, message.OutputToast, out.ListValue())
}

func TestRegisterValueActions(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry("")
	flag := option.NewBoolean("flag", false, "")
	out := message.NewOutputOption("messageOutput", message.OutputNone, "")
	require.NoError(t, RegisterValueActions(reg, testMod, []option.Option{flag, out}))

	setFlag, ok := reg.Get("test:setFlag").(*action.Parameterizable)
	require.True(t, ok)
	assert.Equal(t, action.ResultSuccess, setFlag.ExecuteWithArgument(action.CommonContext, "on"))
	assert.True(t, flag.BooleanValue())

	setOut, ok := reg.Get("test:setMessageOutput").(*action.Parameterizable)
	require.True(t, ok)
	assert.Equal(t, action.ResultSuccess, setOut.Parameterize("", "hotbar").Execute(action.CommonContext))
	assert.Equal(t, message.OutputHotbar, out.ListValue())
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ShowHud", Capitalize("showHud"))
	assert.Equal(t, "ÉtéMode", Capitalize("étéMode"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "X", Capitalize("x"))
}

func TestRegisterBooleanActions(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry("")
	sender := &recordingSender{}
	defaultOutput := message.NewOutputOption("defaultToggleMessageOutput", message.OutputHotbar, "")
	cell := option.NewBoolean("showHud", false, "Show the HUD")

	require.NoError(t, RegisterBooleanActions(reg, testMod, cell, Feedback{Sender: sender, DefaultOutput: defaultOutput}))

	toggle := reg.Get("test:toggleShowHud")
	enable := reg.Get("test:enableShowHud")
	disable := reg.Get("test:disableShowHud")
	require.NotNil(t, toggle)
	require.NotNil(t, enable)
	require.NotNil(t, disable)
	assert.Equal(t, "Show the HUD", toggle.Comment())

	assert.Equal(t, action.ResultSuccess, toggle.Execute(action.CommonContext))
	assert.True(t, cell.BooleanValue())
	assert.Equal(t, action.ResultPass, enable.Execute(action.CommonContext))
	assert.Equal(t, action.ResultSuccess, disable.Execute(action.CommonContext))
	assert.False(t, cell.BooleanValue())

	defaultOutput.SetListValue(message.OutputToast)
	toggle.Execute(action.CommonContext)

	assert.Equal(t, []sent{
		{message.OutputHotbar, "Toggled showHud ON"},
		{message.OutputHotbar, "showHud is already ON"},
		{message.OutputHotbar, "Toggled showHud OFF"},
		{message.OutputToast, "Toggled showHud ON"},
	}, sender.messages)
}

func TestRegisterBooleanActionsCustomFeedback(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry("")
	sender := &recordingSender{}
	cell := option.NewBoolean("quiet", false, "")
	fb := Feedback{
		Sender: sender,
		Output: func() message.Output { return message.OutputChat },
		Factory: func(name string, value bool) string {
			if value {
				return ""
			}
			return name + " is off now"
		},
	}
	require.NoError(t, RegisterBooleanActions(reg, testMod, cell, fb))

	reg.Get("test:toggleQuiet").Execute(action.CommonContext)
	reg.Get("test:toggleQuiet").Execute(action.CommonContext)
	assert.Equal(t, []sent{{message.OutputChat, "quiet is off now"}}, sender.messages)
}

func TestHotkeyedBooleanSharesToggle(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry("")
	sender := &recordingSender{}
	hb, err := hotkey.NewHotkeyedBoolean("zoom", false, "F6", "")
	require.NoError(t, err)
	hb.SetSender(sender)
	hb.Settings.MessageOutput = message.OutputActionbar
	hb.Settings.Toggle = false

	plain := option.NewBoolean("plain", false, "")
	cells := []option.Option{hb, plain, option.NewInteger("n", 0, 0, 1, "")}
	require.NoError(t, RegisterAllBooleanActions(reg, testMod, cells, Feedback{Sender: sender}))

	assert.Equal(t, 6, reg.Len())

	// Toggle=false means the shared toggle only switches on
	reg.Get("test:toggleZoom").Execute(action.CommonContext)
	reg.Get("test:toggleZoom").Execute(action.CommonContext)
	assert.True(t, hb.BooleanValue())

	reg.Get("test:disableZoom").Execute(action.CommonContext)
	assert.False(t, hb.BooleanValue())

	for _, m := range sender.messages {
		assert.Equal(t, message.OutputActionbar, m.output)
	}
	assert.Len(t, sender.messages, 3)
}
