package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/markdown/markup"
)

// ModuleName is the global table exposed to scripts.
const ModuleName = "mdedit"

// Host owns the Lua state and the registry scripts extend.
type Host struct {
	state    *state
	registry *markup.Registry
	logger   *logging.Logger
	timeout  time.Duration
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithExecutionTimeout bounds each script run. Zero disables the bound.
func WithExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		if d >= 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger used by mdedit.log and load reporting.
func WithLogger(l *logging.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates a sandboxed host registering into registry.
func NewHost(registry *markup.Registry, opts ...HostOption) *Host {
	h := &Host{
		registry: registry,
		logger:   logging.Null(),
		timeout:  DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("plugin")
	h.state = newState(h.timeout)
	h.installModule()
	return h
}

// Registry returns the registry scripts register into.
func (h *Host) Registry() *markup.Registry {
	return h.registry
}

// LoadFile runs the script at path. A missing file is not an error and
// reports false.
func (h *Host) LoadFile(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.logger.Debug("no init script at %s", path)
			return false, nil
		}
		return false, fmt.Errorf("stat init script: %w", err)
	}

	err := h.state.run(ctx, path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
	if err != nil {
		return true, err
	}
	h.logger.Info("loaded %s, %d templates", path, len(h.registry.Names()))
	return true, nil
}

// LoadString runs a chunk of Lua code.
func (h *Host) LoadString(ctx context.Context, name, code string) error {
	return h.state.run(ctx, name, func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.close()
}

// ============================================================================
// mdedit module
// ============================================================================

func (h *Host) installModule() {
	L := h.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"template":  h.luaTemplate,
		"delimiter": h.luaDelimiter,
		"templates": h.luaTemplates,
		"log":       h.luaLog,
	})
	L.SetGlobal(ModuleName, mod)
}

// mdedit.template(name, prefix, placeholder, suffix)
func (h *Host) luaTemplate(L *lua.LState) int {
	t := markup.Template{
		Name:        L.CheckString(1),
		Prefix:      L.CheckString(2),
		Placeholder: L.OptString(3, ""),
		Suffix:      L.OptString(4, ""),
	}
	if err := h.registry.Register(t); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	h.logger.Debug("template %q registered", t.Name)
	return 0
}

// mdedit.delimiter(open, close)
func (h *Host) luaDelimiter(L *lua.LState) int {
	open := L.CheckString(1)
	close := L.CheckString(2)
	if err := h.registry.RegisterDelimiter(open, close); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	h.logger.Debug("delimiter %s registered", markup.Pair{Open: open, Close: close})
	return 0
}

// mdedit.templates() returns the sorted template names.
func (h *Host) luaTemplates(L *lua.LState) int {
	tbl := L.NewTable()
	for _, name := range h.registry.Names() {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// mdedit.log(message)
func (h *Host) luaLog(L *lua.LState) int {
	h.logger.Info("%s", L.CheckString(1))
	return 0
}
