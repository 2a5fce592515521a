package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Key is a normalized key press used for binding lookup.
//
// Control characters are folded into tcell's KeyCtrlA..KeyCtrlZ codes
// with no modifier, both backspace codes become KeyBackspace2, and rune
// keys drop the Shift modifier since it is part of the rune.
type Key struct {
	Code tcell.Key
	Rune rune
	Mods tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"bs":        tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ParseKey parses a key specification such as "Ctrl+S", "Alt+1",
// "Shift+Right", "F7" or "*".
func ParseKey(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	var mods tcell.ModMask
	name := spec
	// A trailing "+" is the plus key itself.
	for {
		i := strings.Index(name, "+")
		if i <= 0 || i == len(name)-1 {
			break
		}
		switch strings.ToLower(name[:i]) {
		case "ctrl", "c":
			mods |= tcell.ModCtrl
		case "alt", "a", "meta", "m":
			mods |= tcell.ModAlt
		case "shift", "s":
			mods |= tcell.ModShift
		default:
			return Key{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, name[:i], spec)
		}
		name = name[i+1:]
	}

	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return normalize(code, 0, mods), nil
	}
	if strings.EqualFold(name, "space") {
		return normalize(tcell.KeyRune, ' ', mods), nil
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if mods&tcell.ModCtrl != 0 && !isCtrlLetter(r) {
		return Key{}, fmt.Errorf("%w: Ctrl only combines with letters in %q", ErrInvalidSpec, spec)
	}
	return normalize(tcell.KeyRune, r, mods), nil
}

// MustParseKey is like ParseKey but panics on error.
func MustParseKey(spec string) Key {
	k, err := ParseKey(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// FromEvent normalizes a tcell key event.
func FromEvent(ev *tcell.EventKey) Key {
	return normalize(ev.Key(), ev.Rune(), ev.Modifiers())
}

func normalize(code tcell.Key, r rune, mods tcell.ModMask) Key {
	mods &= tcell.ModCtrl | tcell.ModAlt | tcell.ModShift

	if code == tcell.KeyRune && mods&tcell.ModCtrl != 0 && isCtrlLetter(r) {
		code = tcell.KeyCtrlA + tcell.Key(unicode.ToLower(r)-'a')
		r = 0
	}
	if code == tcell.KeyBackspace {
		code = tcell.KeyBackspace2
	}

	switch {
	case code == tcell.KeyRune:
		mods &^= tcell.ModShift | tcell.ModCtrl
	case code >= tcell.KeyCtrlA && code <= tcell.KeyCtrlZ && code != tcell.KeyTab && code != tcell.KeyEnter && code != tcell.KeyBackspace:
		// The control character already carries Ctrl.
		mods &^= tcell.ModCtrl | tcell.ModShift
		r = 0
	case code == tcell.KeyTab || code == tcell.KeyEnter || code == tcell.KeyBackspace2 || code == tcell.KeyEscape:
		mods &^= tcell.ModCtrl | tcell.ModShift
		r = 0
	default:
		r = 0
	}
	return Key{Code: code, Rune: r, Mods: mods}
}

func isCtrlLetter(r rune) bool {
	r = unicode.ToLower(r)
	return r >= 'a' && r <= 'z'
}

// String returns the canonical specification of the key.
func (k Key) String() string {
	var b strings.Builder
	if k.Mods&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if k.Mods&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if k.Mods&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}

	switch {
	case k.Code == tcell.KeyRune && k.Rune == ' ':
		b.WriteString("Space")
	case k.Code == tcell.KeyRune:
		b.WriteRune(k.Rune)
	case k.Code >= tcell.KeyCtrlA && k.Code <= tcell.KeyCtrlZ && k.Code != tcell.KeyTab && k.Code != tcell.KeyEnter && k.Code != tcell.KeyBackspace:
		b.WriteString("Ctrl+")
		b.WriteRune('A' + rune(k.Code-tcell.KeyCtrlA))
	default:
		b.WriteString(keyName(k.Code))
	}
	return b.String()
}

func keyName(code tcell.Key) string {
	switch code {
	case tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyPgUp:
		return "PgUp"
	case tcell.KeyPgDn:
		return "PgDn"
	}
	if name, ok := tcell.KeyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", code)
}
