package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/option"
)

// DefaultDisplayTime is how long a message stays without an explicit time.
const DefaultDisplayTime = 5 * time.Second

const defaultFadeTime = 500 * time.Millisecond

var timedMessagePattern = regexp.MustCompile(`^time=([0-9]+);(.*)$`)

// ParseTimed splits an optional "time=<ms>;" prefix off s.
func ParseTimed(s string) (string, time.Duration) {
	m := timedMessagePattern.FindStringSubmatch(s)
	if m == nil {
		return s, DefaultDisplayTime
	}
	ms, err := strconv.Atoi(m[1])
	if err != nil {
		return m[2], DefaultDisplayTime
	}
	return m[2], time.Duration(ms) * time.Millisecond
}

// Sender accepts fire-and-forget messages.
type Sender interface {
	Send(output Output, format string, args ...any)
}

// Message is one queued message.
type Message struct {
	Text    string
	Output  Output
	Level   Level
	Created time.Time
	Expires time.Time
	// FadeFrom is when the message starts fading out.
	FadeFrom time.Time
}

// Fading reports whether the message is in its fade-out period at now.
func (m Message) Fading(now time.Time) bool {
	return !now.Before(m.FadeFrom)
}

// Expired reports whether the message is gone at now.
func (m Message) Expired(now time.Time) bool {
	return !now.Before(m.Expires)
}

// Config holds the Center's limits.
type Config struct {
	// Width clamps action bar and hotbar messages; zero disables clamping.
	Width int
	// HotbarLimit caps how many hotbar messages are kept.
	HotbarLimit *option.Integer
}

// Center keeps the messages of every output until they expire.
type Center struct {
	config Config
	mu     sync.Mutex
	queues map[Output][]Message
	now    func() time.Time
}

// NewCenter creates an empty message center.
func NewCenter(config Config) *Center {
	return &Center{
		config: config,
		queues: make(map[Output][]Message),
		now:    time.Now,
	}
}

// SetClock replaces the time source.
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Send queues an info message shown for the default display time.
func (c *Center) Send(output Output, format string, args ...any) {
	c.SendTimed(output, LevelInfo, DefaultDisplayTime, format, args...)
}

// SendTimed queues a message shown for displayTime.
func (c *Center) SendTimed(output Output, level Level, displayTime time.Duration, format string, args ...any) {
	if output == OutputNone {
		return
	}
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if output == OutputActionbar || output == OutputHotbar {
		text = clampWidth(text, c.config.Width)
	}
	now := c.now()
	fade := min(defaultFadeTime, displayTime/2)
	msg := Message{
		Text:     text,
		Output:   output,
		Level:    level,
		Created:  now,
		Expires:  now.Add(displayTime),
		FadeFrom: now.Add(displayTime - fade),
	}

	switch output {
	case OutputActionbar:
		// the action bar shows one message at a time
		c.queues[output] = []Message{msg}
	case OutputHotbar:
		queue := append(c.queues[output], msg)
		if limit := c.hotbarLimit(); len(queue) > limit {
			queue = queue[len(queue)-limit:]
		}
		c.queues[output] = queue
	default:
		c.queues[output] = append(c.queues[output], msg)
	}
	logger.DebugTagf("message", "Message [%s]: %s", output, text)
}

func (c *Center) hotbarLimit() int {
	if c.config.HotbarLimit == nil {
		return 3
	}
	return c.config.HotbarLimit.IntegerValue()
}

// Active returns the unexpired messages of one output, oldest first.
func (c *Center) Active(output Output) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return append([]Message(nil), c.queues[output]...)
}

// Drain returns every unexpired message and empties the center.
func (c *Center) Drain() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()

	var all []Message
	for _, output := range Outputs {
		all = append(all, c.queues[output]...)
	}
	c.queues = make(map[Output][]Message)
	return all
}

// Clear drops every message.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queues = make(map[Output][]Message)
}

func (c *Center) pruneLocked() {
	now := c.now()
	for output, queue := range c.queues {
		kept := queue[:0]
		for _, m := range queue {
			if !m.Expired(now) {
				kept = append(kept, m)
			}
		}
		c.queues[output] = kept
	}
}

// clampWidth cuts s to at most width terminal cells, keeping whole grapheme
// clusters.
func clampWidth(s string, width int) string {
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			break
		}
		b.WriteString(gr.Str())
		used += w
	}
	return b.String()
}
