// Package plugin runs the user's Lua init script.
//
// The script runs in a sandboxed gopher-lua state with only the base,
// table, string and math libraries. It extends the editor through the
// global mdedit module:
//
//	mdedit.template("kbd", "<kbd>", "key", "</kbd>")
//	mdedit.delimiter("<<", ">>")
//	mdedit.log("templates loaded")
//	local names = mdedit.templates()
//
// Registrations go to a markup.Registry shared with every engine.
package plugin
