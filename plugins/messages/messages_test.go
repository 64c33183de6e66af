package messages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/message"
	"github.com/bethropolis/tide-actions/internal/plugin/plugintest"
)

func setup(t *testing.T) *plugintest.API {
	t.Helper()
	api := plugintest.New()
	api.Config["messages"] = map[string]any{"prefix": "> "}
	require.NoError(t, New().Initialize(api))
	return api
}

func run(t *testing.T, api *plugintest.API, name, arg string) action.Result {
	t.Helper()
	p, ok := api.GetAction("messages:" + name).(*action.Parameterizable)
	require.True(t, ok, name)
	return p.ExecuteWithArgument(action.CommonContext, arg)
}

func TestAddMessageActions(t *testing.T) {
	t.Parallel()
	api := setup(t)

	assert.Equal(t, action.ResultSuccess, run(t, api, "addMessage", "hello"))
	assert.Equal(t, action.ResultSuccess, run(t, api, "addToast", "time=1500;done"))
	assert.Equal(t, action.ResultSuccess, run(t, api, "addActionbar", "time=x;raw"))
	assert.Equal(t, action.ResultSuccess, run(t, api, "addHotbar", "hot"))

	assert.Equal(t, []plugintest.Sent{
		{Output: message.OutputChat, DisplayTime: message.DefaultDisplayTime, Text: "> hello"},
		{Output: message.OutputToast, DisplayTime: 1500 * time.Millisecond, Text: "> done"},
		{Output: message.OutputActionbar, DisplayTime: message.DefaultDisplayTime, Text: "> time=x;raw"},
		{Output: message.OutputHotbar, DisplayTime: message.DefaultDisplayTime, Text: "> hot"},
	}, api.Sent())
}

func TestClipboardAndClear(t *testing.T) {
	t.Parallel()
	api := setup(t)

	assert.Equal(t, action.ResultSuccess, run(t, api, "copyToClipboard", "some text"))
	assert.Equal(t, "some text", api.Clip.Text)

	api.Clip.Err = errors.New("no display")
	assert.Equal(t, action.ResultFail, run(t, api, "copyToClipboard", "more"))
	require.Len(t, api.Sent(), 1)
	assert.Equal(t, message.LevelError, api.Sent()[0].Level)

	assert.Equal(t, action.ResultSuccess, api.GetAction("messages:clearMessages").Execute(action.CommonContext))
	assert.Equal(t, 1, api.Cleared())
	assert.Empty(t, api.Sent())
}

func TestSayCommand(t *testing.T) {
	t.Parallel()
	api := setup(t)

	say, ok := api.Command("say")
	require.True(t, ok)
	require.NoError(t, say([]string{"toast", "time=200;hi", "there"}))
	assert.Error(t, say([]string{"screen", "hi"}))
	assert.Error(t, say([]string{"chat"}))

	assert.Equal(t, []plugintest.Sent{
		{Output: message.OutputToast, DisplayTime: 200 * time.Millisecond, Text: "> hi there"},
	}, api.Sent())
}

func TestInitializeTwiceFailsOnCommand(t *testing.T) {
	t.Parallel()
	api := setup(t)
	assert.Error(t, New().Initialize(api))
}
