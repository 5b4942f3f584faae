package script

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kestrel-go/kestrel"
)

// Engine owns a Lua state and hands out dispatcher callbacks backed by
// global Lua functions. All state access is serialized behind a mutex;
// gopher-lua states are not goroutine-safe.
type Engine struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// NewEngine creates an engine with a fresh Lua state.
func NewEngine() *Engine {
	return &Engine{
		state: lua.NewState(),
	}
}

// LoadString executes a chunk of Lua source, typically to define the
// global functions later wrapped by Callback.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.state.DoString(src)
}

// LoadFile executes the Lua file at path.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.state.DoFile(path)
}

// Callback wraps the named global Lua function as a dispatcher callback.
// Fails with ErrFunctionNotFound if no such function is defined yet.
func (e *Engine) Callback(fn string) (kestrel.Callback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}
	if _, ok := e.state.GetGlobal(fn).(*lua.LFunction); !ok {
		return nil, ErrFunctionNotFound
	}
	return &luaCallback{engine: e, fn: fn}, nil
}

// Close releases the Lua state. Safe to call more than once; callbacks
// invoked after Close panic with ErrEngineClosed wrapped in a CallError.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}
