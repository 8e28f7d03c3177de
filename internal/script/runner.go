package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vgacon/internal/console"
	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// Target is the console a script drives.
type Target interface {
	HandleKey(ev key.Event)
	IdleTick()
	Mode() console.Mode
	Text() string
	Search() string
	CapsLock() bool
	Frame() *core.Frame
}

// Runner runs Lua scripts against a Target.
//
// gopher-lua states are not goroutine-safe; the mutex serialises runs,
// and every key a script sends reaches the Target from the goroutine
// calling Run.
type Runner struct {
	mu     sync.Mutex
	L      *lua.LState
	target Target
	out    io.Writer
	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sends print output to w. The default discards it.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// NewRunner creates a sandboxed Lua state bound to t.
func NewRunner(t Target, opts ...Option) *Runner {
	r := &Runner{
		target: t,
		out:    io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.register()
	return r
}

// openSafeLibraries opens the base, table, string and math libraries
// and removes the functions that load code from files or strings.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (r *Runner) register() {
	funcs := map[string]lua.LGFunction{
		"type":   r.luaType,
		"key":    r.luaKey,
		"raw":    r.luaRaw,
		"idle":   r.luaIdle,
		"mode":   r.luaMode,
		"text":   r.luaText,
		"search": r.luaSearch,
		"caps":   r.luaCaps,
		"line":   r.luaLine,
		"cursor": r.luaCursor,
		"print":  r.luaPrint,
	}
	for name, fn := range funcs {
		r.L.SetGlobal(name, r.L.NewFunction(fn))
	}
}

// RunFile runs the script at path. Cancelling ctx stops the script.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// RunString runs inline Lua code.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.run(ctx, "<string>", func(L *lua.LState) error {
		return L.DoString(code)
	})
}

func (r *Runner) run(ctx context.Context, name string, fn func(*lua.LState) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return &ScriptError{Path: name, Err: ErrRunnerClosed}
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = &ScriptError{Path: name, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	if err := fn(r.L); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &ScriptError{Path: name, Err: ctxErr}
		}
		return &ScriptError{Path: name, Err: err}
	}
	return nil
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.L.Close()
	r.closed = true
}

// charEvent maps one character of a type() string to a key event.
// Control characters stand for the keys that produce them.
func charEvent(c rune) (key.Event, bool) {
	switch c {
	case '\n', '\r':
		return key.NewSpecialEvent(key.KeyEnter), true
	case '\t':
		return key.NewSpecialEvent(key.KeyTab), true
	case '\b':
		return key.NewSpecialEvent(key.KeyBackspace), true
	case 0x1B:
		return key.NewSpecialEvent(key.KeyEscape), true
	}
	return key.FromRune(c)
}

func (r *Runner) luaType(L *lua.LState) int {
	s := L.CheckString(1)
	for _, c := range s {
		ev, ok := charEvent(c)
		if !ok {
			L.ArgError(1, fmt.Sprintf("cannot type %q", c))
			return 0
		}
		r.target.HandleKey(ev)
	}
	return 0
}

func (r *Runner) luaKey(L *lua.LState) int {
	ev, err := key.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	r.target.HandleKey(ev)
	return 0
}

func (r *Runner) luaRaw(L *lua.LState) int {
	code := L.CheckInt64(1)
	if code < 0 || code > 0xFFFF {
		L.ArgError(1, "raw code out of range")
		return 0
	}
	r.target.HandleKey(key.Decode(uint32(code)))
	return 0
}

func (r *Runner) luaIdle(L *lua.LState) int {
	r.target.IdleTick()
	return 0
}

func (r *Runner) luaMode(L *lua.LState) int {
	L.Push(lua.LString(r.target.Mode().String()))
	return 1
}

func (r *Runner) luaText(L *lua.LState) int {
	L.Push(lua.LString(r.target.Text()))
	return 1
}

func (r *Runner) luaSearch(L *lua.LState) int {
	L.Push(lua.LString(r.target.Search()))
	return 1
}

func (r *Runner) luaCaps(L *lua.LState) int {
	L.Push(lua.LBool(r.target.CapsLock()))
	return 1
}

func (r *Runner) luaLine(L *lua.LState) int {
	row := L.CheckInt(1)
	f := r.target.Frame()
	if row < 0 || row >= f.Height {
		L.ArgError(1, fmt.Sprintf("row %d outside 0..%d", row, f.Height-1))
		return 0
	}
	L.Push(lua.LString(f.Line(row)))
	return 1
}

func (r *Runner) luaCursor(L *lua.LState) int {
	pos := r.target.Frame().CursorPosition()
	L.Push(lua.LNumber(pos.Row))
	L.Push(lua.LNumber(pos.Col))
	return 2
}

func (r *Runner) luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
