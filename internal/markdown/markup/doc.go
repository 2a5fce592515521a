// Package markup holds the Markdown markup the editor can insert: delimiter
// pairs used to wrap a selection, named templates such as links and
// footnotes, and the heading marker toggle.
//
// The Registry is built once at startup, optionally extended by the Lua
// init script, and only read afterwards.
package markup
