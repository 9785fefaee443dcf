package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/veldin/keyweave/internal/exec"
	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/input/mode"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

var (
	// ErrHostClosed means the Lua state has been shut down.
	ErrHostClosed = errors.New("script host closed")

	// ErrNoActiveCommand means a surface function was called outside a
	// running user action, e.g. at script load time.
	ErrNoActiveCommand = errors.New("no command is executing")
)

// Namespace prefixes every scripted action name.
const Namespace = "user."

// Host owns one Lua state and the bridge between scripts and the
// engine. gopher-lua is not goroutine safe; the mutex serializes every
// entry into the state, including handler invocations coming back from
// the executor.
type Host struct {
	mu       sync.Mutex
	l        *lua.LState
	actions  *action.Set
	handlers *exec.Registry

	// ctx and cmd are set only while a user handler runs. Surface
	// functions refuse to operate without them.
	ctx *exec.Context
	cmd *command.Command

	closed bool
}

// NewHost builds a host that registers scripted actions into the given
// action set and handler registry. The Lua state opens only the base,
// table, string, and math libraries; io, os, and debug stay out.
func NewHost(actions *action.Set, handlers *exec.Registry) *Host {
	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)

	h := &Host{l: l, actions: actions, handlers: handlers}
	mod := l.SetFuncs(l.NewTable(), map[string]lua.LGFunction{
		"action":       h.luaAction,
		"bind":         h.luaBind,
		"count":        h.luaCount,
		"text":         h.luaText,
		"line":         h.luaLine,
		"line_count":   h.luaLineCount,
		"cursor":       h.luaCursor,
		"set_cursor":   h.luaSetCursor,
		"insert":       h.luaInsert,
		"delete_line":  h.luaDeleteLine,
		"register":     h.luaRegister,
		"set_register": h.luaSetRegister,
	})
	l.SetGlobal("keyweave", mod)
	return h
}

// DoString runs a chunk of Lua, typically an init script.
func (h *Host) DoString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	return h.recovered(func() error { return h.l.DoString(code) })
}

// DoFile runs a Lua file.
func (h *Host) DoFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	return h.recovered(func() error { return h.l.DoFile(path) })
}

// LoadDir runs every .lua file in dir in name order. A missing dir is
// not an error; a failing script is, and stops the load.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	for _, name := range files {
		if err := h.DoFile(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("script %s: %w", name, err)
		}
	}
	return nil
}

// Close shuts the Lua state down. Registered handlers remain in the
// registry but fail with ErrHostClosed when invoked.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.l.Close()
	h.closed = true
}

func (h *Host) recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// invoke runs a Lua handler for one command. It is called from the
// executor, so the surface is already locked to this command.
func (h *Host) invoke(fn *lua.LFunction, ctx *exec.Context, cmd *command.Command) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}

	h.ctx, h.cmd = ctx, cmd
	defer func() { h.ctx, h.cmd = nil, nil }()

	return h.recovered(func() error {
		h.l.Push(fn)
		h.l.Push(lua.LNumber(cmd.Count))
		if err := h.l.PCall(1, 0, nil); err != nil {
			return fmt.Errorf("%s: %w", cmd.Action.Name, err)
		}
		return nil
	})
}

// current returns the running command's context or raises a Lua error.
func (h *Host) current(l *lua.LState) *exec.Context {
	if h.ctx == nil {
		l.RaiseError("%s", ErrNoActiveCommand.Error())
	}
	return h.ctx
}

// luaAction implements keyweave.action(name, [opts,] fn). opts is a
// table; "mutating" marks the action as modifying the surface.
func (h *Host) luaAction(l *lua.LState) int {
	name := l.CheckString(1)
	var opts *lua.LTable
	var fn *lua.LFunction
	switch v := l.Get(2).(type) {
	case *lua.LTable:
		opts = v
		fn = l.CheckFunction(3)
	case *lua.LFunction:
		fn = v
	default:
		l.ArgError(2, "table or function expected")
		return 0
	}

	def := &action.Def{Name: Namespace + name}
	if opts != nil {
		if m, ok := opts.RawGetString("mutating").(lua.LBool); ok {
			def.Mutating = bool(m)
		}
	}
	if err := h.actions.Registry().Register(def); err != nil {
		l.RaiseError("action %q: %s", name, err.Error())
		return 0
	}
	h.handlers.Register(def.Name, func(ctx *exec.Context, cmd *command.Command) error {
		return h.invoke(fn, ctx, cmd)
	})
	return 0
}

var modeNames = map[string]mode.Kind{
	"normal":   mode.Normal,
	"insert":   mode.Insert,
	"visual":   mode.Visual,
	"operator": mode.OperatorPending,
}

// luaBind implements keyweave.bind(mode, spec, name): attach an action,
// scripted or built-in, to a key sequence like "gx" or "<C-t>".
func (h *Host) luaBind(l *lua.LState) int {
	modeName := l.CheckString(1)
	spec := l.CheckString(2)
	name := l.CheckString(3)

	kind, ok := modeNames[modeName]
	if !ok {
		l.ArgError(1, fmt.Sprintf("unknown mode %q", modeName))
		return 0
	}
	def, ok := h.actions.Registry().Resolve(name)
	if !ok {
		def, ok = h.actions.Registry().Resolve(Namespace + name)
	}
	if !ok {
		l.RaiseError("unknown action %q", name)
		return 0
	}
	h.actions.Tree(kind).BindSpec(spec, def)
	return 0
}

func (h *Host) luaCount(l *lua.LState) int {
	h.current(l)
	l.Push(lua.LNumber(h.cmd.Count))
	return 1
}

func (h *Host) luaText(l *lua.LState) int {
	s := h.current(l).Surface
	lines := make([]string, s.LineCount())
	for i := range lines {
		line, err := s.Line(i)
		if err != nil {
			l.RaiseError("%s", err.Error())
			return 0
		}
		lines[i] = line
	}
	l.Push(lua.LString(strings.Join(lines, "\n")))
	return 1
}

// Lines and columns are 1-based on the Lua side.
func (h *Host) luaLine(l *lua.LState) int {
	s := h.current(l).Surface
	line, err := s.Line(l.CheckInt(1) - 1)
	if err != nil {
		l.RaiseError("%s", err.Error())
		return 0
	}
	l.Push(lua.LString(line))
	return 1
}

func (h *Host) luaLineCount(l *lua.LState) int {
	l.Push(lua.LNumber(h.current(l).Surface.LineCount()))
	return 1
}

func (h *Host) luaCursor(l *lua.LState) int {
	cur := h.current(l).Surface.Cursor()
	l.Push(lua.LNumber(cur.Line + 1))
	l.Push(lua.LNumber(cur.Col + 1))
	return 2
}

func (h *Host) luaSetCursor(l *lua.LState) int {
	s := h.current(l).Surface
	s.SetCursor(surface.Position{Line: l.CheckInt(1) - 1, Col: l.CheckInt(2) - 1})
	return 0
}

// luaInsert places text at the cursor and leaves the cursor after it.
func (h *Host) luaInsert(l *lua.LState) int {
	s := h.current(l).Surface
	end, err := s.Insert(s.Cursor(), l.CheckString(1))
	if err != nil {
		l.RaiseError("%s", err.Error())
		return 0
	}
	s.SetCursor(end)
	return 0
}

func (h *Host) luaDeleteLine(l *lua.LState) int {
	s := h.current(l).Surface
	n := l.CheckInt(1) - 1
	if n < 0 || n >= s.LineCount() {
		l.RaiseError("line %d out of range", n+1)
		return 0
	}
	end := surface.Position{Line: n + 1, Col: 0}
	if n == s.LineCount()-1 {
		line, _ := s.Line(n)
		end = surface.Position{Line: n, Col: len([]rune(line))}
	}
	if _, err := s.Delete(surface.Range{Start: surface.Position{Line: n, Col: 0}, End: end}); err != nil {
		l.RaiseError("%s", err.Error())
		return 0
	}
	return 0
}

func (h *Host) luaRegister(l *lua.LState) int {
	ctx := h.current(l)
	name := []rune(l.CheckString(1))
	if len(name) != 1 {
		l.ArgError(1, "register name must be one character")
		return 0
	}
	text, _, err := ctx.Registers.Get(name[0])
	if err != nil {
		l.RaiseError("%s", err.Error())
		return 0
	}
	l.Push(lua.LString(text))
	return 1
}

func (h *Host) luaSetRegister(l *lua.LState) int {
	ctx := h.current(l)
	name := []rune(l.CheckString(1))
	if len(name) != 1 {
		l.ArgError(1, "register name must be one character")
		return 0
	}
	if err := ctx.Registers.Set(name[0], l.CheckString(2), register.CharWise); err != nil {
		l.RaiseError("%s", err.Error())
		return 0
	}
	return 0
}
