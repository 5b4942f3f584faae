package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/kestrel-go/kestrel/event"
)

// luaCallback is a kestrel.Callback backed by a global Lua function.
// Callbacks are compared by pointer, so the value returned by
// Engine.Callback can be stored and later passed to Dispatcher.Off.
type luaCallback struct {
	engine *Engine
	fn     string
}

// Invoke calls the Lua function with the event view and argument table.
// Lua runtime errors panic with *CallError per the dispatcher fault model.
func (c *luaCallback) Invoke(ctx context.Context, evt event.Ref, args []any) any {
	e := c.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		panic(&CallError{Function: c.fn, Err: ErrEngineClosed})
	}

	L := e.state
	L.Push(L.GetGlobal(c.fn))
	L.Push(eventTable(L, evt))
	L.Push(argsTable(L, args))

	if err := L.PCall(2, 1, nil); err != nil {
		panic(&CallError{Function: c.fn, Err: err})
	}

	ret := L.Get(-1)
	L.Pop(1)
	return toGo(ret)
}

// eventTable builds the Lua view of the event: the id plus closures over
// the real event's flag methods, so scripted stop_propagation calls are
// observed by the dispatch loop exactly like native ones.
func eventTable(L *lua.LState, evt event.Ref) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(evt.EventID()))
	L.SetField(t, "stop_propagation", L.NewFunction(func(L *lua.LState) int {
		evt.StopPropagation()
		return 0
	}))
	L.SetField(t, "prevent_default", L.NewFunction(func(L *lua.LState) int {
		evt.PreventDefault()
		return 0
	}))
	L.SetField(t, "propagation_stopped", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(evt.PropagationStopped()))
		return 1
	}))
	L.SetField(t, "default_prevented", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(evt.DefaultPrevented()))
		return 1
	}))
	return t
}

// argsTable converts the trigger arguments into a 1-indexed Lua table.
func argsTable(L *lua.LState, args []any) *lua.LTable {
	t := L.NewTable()
	for i, arg := range args {
		L.RawSetInt(t, i+1, toLua(L, arg))
	}
	return t
}

// toLua converts a Go value to a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	if v == nil {
		return lua.LNil
	}

	switch val := v.(type) {
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int8:
		return lua.LNumber(val)
	case int16:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case uint16:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for i, item := range val {
			L.RawSetInt(t, i+1, toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			L.SetField(t, k, toLua(L, item))
		}
		return t
	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}

// toGo converts a Lua value to a Go value. Integral numbers come back as
// int64, everything else as float64.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		// Break circular references.
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

// tableToGo converts a Lua table to a []any when it is a contiguous
// 1-indexed array, otherwise to a map[string]any.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	if n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})
	return m
}
