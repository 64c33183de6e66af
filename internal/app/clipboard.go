package app

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tide-actions/internal/plugin"
)

// systemClipboard uses the operating system clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// memoryClipboard is the internal clipboard used when the system one is
// disabled or missing.
type memoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *memoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *memoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func newClipboard(system bool) plugin.Clipboard {
	if system && !clipboard.Unsupported {
		return systemClipboard{}
	}
	return &memoryClipboard{}
}
