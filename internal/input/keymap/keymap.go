package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdedit/internal/command"
	"github.com/dshills/mdedit/internal/markdown/markup"
)

// ErrUnknownAction indicates a binding names an action that does not exist.
var ErrUnknownAction = errors.New("unknown action")

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification, e.g. "Ctrl+S".
	Keys string

	// Action is the action name, e.g. "app.save" or "template:link".
	Action string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// Keymap holds key bindings. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[Key]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Key]Binding)}
}

// Default creates a keymap holding DefaultBindings.
func Default() *Keymap {
	k := New()
	for _, b := range DefaultBindings() {
		if err := k.Bind(b); err != nil {
			panic(fmt.Sprintf("default binding %s: %v", b.Keys, err))
		}
	}
	return k
}

// Bind adds or replaces a binding.
func (k *Keymap) Bind(b Binding) error {
	key, err := ParseKey(b.Keys)
	if err != nil {
		return err
	}
	if _, ok := LookupAction(b.Action); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, b.Action)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[key] = b
	return nil
}

// Unbind removes the binding for spec. It reports whether one existed.
func (k *Keymap) Unbind(spec string) (bool, error) {
	key, err := ParseKey(spec)
	if err != nil {
		return false, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.bindings[key]
	delete(k.bindings, key)
	return ok, nil
}

// Lookup returns the binding for key.
func (k *Keymap) Lookup(key Key) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[key]
	return b, ok
}

// Bindings returns every binding sorted by category, then keys.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	k.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Resolve maps a key event to a target.
//
// A delimiter rune typed over a selection wraps it. Bound keys resolve
// through their action. Remaining printable runes insert themselves.
func (k *Keymap) Resolve(ev *tcell.EventKey, hasSelection bool) (Target, bool) {
	key := FromEvent(ev)
	plainRune := key.Code == tcell.KeyRune && key.Mods&tcell.ModAlt == 0

	if plainRune && hasSelection && markup.IsDelimiter(key.Rune) {
		return cmd(command.WrapSelection{Open: string(key.Rune)}), true
	}

	if b, ok := k.Lookup(key); ok {
		return LookupAction(b.Action)
	}

	if plainRune && unicode.IsPrint(key.Rune) {
		return cmd(command.InsertText{Text: string(key.Rune)}), true
	}
	return Target{}, false
}
