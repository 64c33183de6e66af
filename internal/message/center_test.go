package message

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tide-actions/internal/option"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCenter(width int) (*Center, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCenter(Config{Width: width, HotbarLimit: option.NewInteger("limit", 2, 1, 16, "")})
	c.SetClock(clock.now)
	return c, clock
}

func TestParseTimed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		text string
		d    time.Duration
	}{
		{"time=1500;Saved", "Saved", 1500 * time.Millisecond},
		{"plain", "plain", DefaultDisplayTime},
		{"time=abc;x", "time=abc;x", DefaultDisplayTime},
		{"time=0;", "", 0},
	}
	for _, tt := range tests {
		text, d := ParseTimed(tt.in)
		assert.Equal(t, tt.text, text, tt.in)
		assert.Equal(t, tt.d, d, tt.in)
	}
}

func TestCenterExpiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestCenter(0)
	c.SendTimed(OutputToast, LevelSuccess, time.Second, "short")
	c.Send(OutputToast, "long %d", 1)
	c.Send(OutputNone, "dropped")
	c.Send(OutputChat, "   ")

	require.Len(t, c.Active(OutputToast), 2)
	assert.Equal(t, "long 1", c.Active(OutputToast)[1].Text)

	clock.advance(time.Second)
	active := c.Active(OutputToast)
	require.Len(t, active, 1)
	assert.Equal(t, "long 1", active[0].Text)
	assert.False(t, active[0].Fading(clock.t))

	clock.advance(DefaultDisplayTime - time.Second - defaultFadeTime)
	assert.True(t, c.Active(OutputToast)[0].Fading(clock.t))

	assert.Len(t, c.Drain(), 1)
	assert.Empty(t, c.Drain())
}

func TestCenterHotbarLimitAndClamp(t *testing.T) {
	t.Parallel()

	c, _ := newTestCenter(5)
	c.Send(OutputHotbar, "one")
	c.Send(OutputHotbar, "two")
	c.Send(OutputHotbar, "three-long")
	c.Send(OutputActionbar, "日本語テキスト")
	c.Send(OutputActionbar, "ab")
	c.Send(OutputChat, "chat is not clamped")

	var texts []string
	for _, m := range c.Active(OutputHotbar) {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"two", "three"}, texts)

	bar := c.Active(OutputActionbar)
	require.Len(t, bar, 1)
	assert.Equal(t, "ab", bar[0].Text)

	assert.Equal(t, "日本", clampWidth("日本語", 5))
	assert.Equal(t, "chat is not clamped", c.Active(OutputChat)[0].Text)
}

func TestParseOutput(t *testing.T) {
	t.Parallel()

	o, ok := ParseOutput("Custom hotbar")
	assert.True(t, ok)
	assert.Equal(t, OutputHotbar, o)

	o, ok = ParseOutput("TOAST")
	assert.True(t, ok)
	assert.Equal(t, OutputToast, o)

	_, ok = ParseOutput("screen")
	assert.False(t, ok)
}

func TestRendererSettingsAreDistinct(t *testing.T) {
	t.Parallel()

	s := NewRendererSettings("hotbar")
	s.BorderEnabled.SetBooleanValue(true)
	s.BackgroundEnabled.SetBooleanValue(false)

	assert.True(t, s.BorderEnabled.BooleanValue())
	assert.False(t, s.BackgroundEnabled.BooleanValue())
	assert.Equal(t, "hotbarBorderEnabled", s.BorderEnabled.Name())
	assert.Equal(t, "hotbarBackgroundEnabled", s.BackgroundEnabled.Name())
}

func TestRendererDraw(t *testing.T) {
	t.Parallel()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 3)

	c := NewCenter(Config{})
	c.Send(OutputHotbar, "hello")
	settings := NewRendererSettings("hotbar")
	settings.BorderEnabled.SetBooleanValue(true)

	lines := NewRenderer(c, OutputHotbar, settings).Draw(screen, 10, 3)
	assert.Equal(t, 1, lines)

	mainc, _, style, _ := screen.GetContent(0, 2)
	assert.Equal(t, tcell.RuneVLine, mainc)
	_, bg, _ := style.Decompose()
	assert.Equal(t, background, bg)

	mainc, _, _, _ = screen.GetContent(1, 2)
	assert.Equal(t, 'h', mainc)
	mainc, _, _, _ = screen.GetContent(9, 2)
	assert.Equal(t, tcell.RuneVLine, mainc)
}
