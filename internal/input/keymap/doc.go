// Package keymap resolves terminal key events into editor operations.
//
// A Keymap binds normalized keys to action names. Each action name maps
// to a Target: an editing command applied by the engine, or an
// application action such as save or paste handled by the app.
//
// Key specifications use the "Mod+Key" form:
//
//	Ctrl+S  Alt+1  Shift+Right  Ctrl+Shift+Left  F7  Enter  *
//
// Unbound printable runes insert themselves. A delimiter rune typed
// while text is selected wraps the selection instead.
package keymap
