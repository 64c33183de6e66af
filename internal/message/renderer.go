package message

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tide-actions/internal/option"
)

// RendererSettings are the appearance options of a message renderer.
// Background and border are separate cells with separate values.
type RendererSettings struct {
	BackgroundEnabled *option.Boolean
	BorderEnabled     *option.Boolean
}

// NewRendererSettings creates the cells for one renderer; prefix keeps the
// names unique per renderer, e.g. "hotbar" gives "hotbarBackgroundEnabled".
func NewRendererSettings(prefix string) *RendererSettings {
	return &RendererSettings{
		BackgroundEnabled: option.NewBoolean(prefix+"BackgroundEnabled", true, "Fill the message area background"),
		BorderEnabled:     option.NewBoolean(prefix+"BorderEnabled", false, "Draw a border around messages"),
	}
}

// Options returns the cells for registration in an option set.
func (s *RendererSettings) Options() []option.Option {
	return []option.Option{s.BackgroundEnabled, s.BorderEnabled}
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFaded  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	background  = tcell.ColorNavy
)

func levelColor(l Level) tcell.Color {
	switch l {
	case LevelSuccess:
		return tcell.ColorGreen
	case LevelWarning:
		return tcell.ColorOrange
	case LevelError:
		return tcell.ColorRed
	}
	return tcell.ColorWhite
}

// Renderer draws one output's messages as lines at the bottom of a screen.
type Renderer struct {
	center   *Center
	output   Output
	settings *RendererSettings
}

func NewRenderer(center *Center, output Output, settings *RendererSettings) *Renderer {
	return &Renderer{center: center, output: output, settings: settings}
}

// Draw renders the active messages, newest on the last line, and returns how
// many lines it used.
func (r *Renderer) Draw(screen tcell.Screen, width, height int) int {
	if height <= 0 || width <= 0 {
		return 0
	}
	messages := r.center.Active(r.output)
	if len(messages) > height {
		messages = messages[len(messages)-height:]
	}

	now := time.Now()
	y := height - len(messages)
	for _, m := range messages {
		r.drawLine(screen, y, width, m, now)
		y++
	}
	return len(messages)
}

func (r *Renderer) drawLine(screen tcell.Screen, y, width int, m Message, now time.Time) {
	style := styleText.Foreground(levelColor(m.Level))
	if m.Fading(now) {
		style = styleFaded
	}
	if r.settings.BackgroundEnabled.BooleanValue() {
		style = style.Background(background)
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}

	x, limit := 0, width
	border := r.settings.BorderEnabled.BooleanValue() && width > 2
	if border {
		borderStyle := styleBorder
		if r.settings.BackgroundEnabled.BooleanValue() {
			borderStyle = borderStyle.Background(background)
		}
		screen.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		screen.SetContent(width-1, y, tcell.RuneVLine, nil, borderStyle)
		x, limit = 1, width-1
	}

	gr := uniseg.NewGraphemes(m.Text)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}
