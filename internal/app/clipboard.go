package app

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes the text clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the clipboard inside the process. It is used when
// the system has no clipboard utility and in tests.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadAll returns the stored text.
func (c *MemoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteAll stores text.
func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// DefaultClipboard returns the system clipboard when one is available and
// an in-process clipboard otherwise.
func DefaultClipboard() Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}
