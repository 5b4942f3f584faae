package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kestrel-go/kestrel"
	"github.com/kestrel-go/kestrel/event"
)

func newTestEngine(t *testing.T, src string) *Engine {
	t.Helper()
	eng := NewEngine()
	t.Cleanup(eng.Close)
	if err := eng.LoadString(src); err != nil {
		t.Fatalf("loading chunk: %v", err)
	}
	return eng
}

func mustCallback(t *testing.T, eng *Engine, fn string) kestrel.Callback {
	t.Helper()
	cb, err := eng.Callback(fn)
	if err != nil {
		t.Fatalf("wrapping %s: %v", fn, err)
	}
	return cb
}

func TestEngine_Callback_ReturnValue(t *testing.T) {
	eng := newTestEngine(t, `
		function greet(evt, args)
			return "hello " .. args[1]
		end
	`)

	cb := mustCallback(t, eng, "greet")
	got := cb.Invoke(context.Background(), event.New("greet"), []any{"world"})

	if got != "hello world" {
		t.Errorf("expected %q, got %v", "hello world", got)
	}
}

func TestEngine_Callback_EventID(t *testing.T) {
	eng := newTestEngine(t, `
		function ident(evt, args)
			return evt.id
		end
	`)

	cb := mustCallback(t, eng, "ident")
	got := cb.Invoke(context.Background(), event.New("file.save"), nil)

	if got != "file.save" {
		t.Errorf("expected the event id, got %v", got)
	}
}

func TestEngine_Callback_NumberBridging(t *testing.T) {
	eng := newTestEngine(t, `
		function sum(evt, args)
			return args[1] + args[2]
		end
		function half(evt, args)
			return args[1] / 2
		end
	`)

	sum := mustCallback(t, eng, "sum")
	if got := sum.Invoke(context.Background(), event.New("calc"), []any{2, 3}); got != int64(5) {
		t.Errorf("expected int64 5, got %v (%T)", got, got)
	}

	half := mustCallback(t, eng, "half")
	if got := half.Invoke(context.Background(), event.New("calc"), []any{5}); got != 2.5 {
		t.Errorf("expected 2.5, got %v (%T)", got, got)
	}
}

func TestEngine_Callback_TableBridging(t *testing.T) {
	eng := newTestEngine(t, `
		function arr(evt, args)
			return {1, 2, 3}
		end
		function hash(evt, args)
			return {name = "kestrel", count = 2}
		end
	`)

	arr := mustCallback(t, eng, "arr")
	if got := arr.Invoke(context.Background(), event.New("x"), nil); !reflect.DeepEqual(got, []any{int64(1), int64(2), int64(3)}) {
		t.Errorf("expected array bridged to slice, got %#v", got)
	}

	hash := mustCallback(t, eng, "hash")
	want := map[string]any{"name": "kestrel", "count": int64(2)}
	if got := hash.Invoke(context.Background(), event.New("x"), nil); !reflect.DeepEqual(got, want) {
		t.Errorf("expected map %#v, got %#v", want, got)
	}
}

func TestEngine_Callback_NoReturnIsNil(t *testing.T) {
	eng := newTestEngine(t, `
		function quiet(evt, args)
		end
	`)

	cb := mustCallback(t, eng, "quiet")
	if got := cb.Invoke(context.Background(), event.New("x"), nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestEngine_Callback_StopPropagation(t *testing.T) {
	d := kestrel.New()
	eng := newTestEngine(t, `
		function stopper(evt, args)
			evt.stop_propagation()
			return "stopped"
		end
	`)

	var after bool
	d.On("close", mustCallback(t, eng, "stopper"), kestrel.WithPriority(1))
	d.OnFunc("close", func(ctx context.Context, evt event.Ref, args []any) any {
		after = true
		return nil
	}, kestrel.WithPriority(2))

	results, err := d.Trigger(context.Background(), "close")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after {
		t.Error("expected the scripted stop to halt later listeners")
	}
	if !reflect.DeepEqual(results, []any{"stopped"}) {
		t.Errorf("expected the stopper's return collected, got %v", results)
	}
}

func TestEngine_Callback_PreventDefault(t *testing.T) {
	eng := newTestEngine(t, `
		function preventer(evt, args)
			evt.prevent_default()
			return evt.default_prevented()
		end
	`)

	evt := event.New("submit")
	cb := mustCallback(t, eng, "preventer")
	got := cb.Invoke(context.Background(), evt, nil)

	if got != true {
		t.Errorf("expected the flag readable from Lua, got %v", got)
	}
	if !evt.DefaultPrevented() {
		t.Error("expected the flag set on the Go event")
	}
}

func TestEngine_Callback_FalseJoinsStopOnFalse(t *testing.T) {
	d := kestrel.New().SetStopOnFalse(true)
	eng := newTestEngine(t, `
		function veto(evt, args)
			return false
		end
	`)

	var after bool
	d.On("validate", mustCallback(t, eng, "veto"), kestrel.WithPriority(1))
	d.OnFunc("validate", func(ctx context.Context, evt event.Ref, args []any) any {
		after = true
		return nil
	}, kestrel.WithPriority(2))

	results, err := d.Trigger(context.Background(), "validate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after {
		t.Error("expected the Lua false to stop propagation")
	}
	if len(results) != 0 {
		t.Errorf("expected the false excluded from results, got %v", results)
	}
}

func TestEngine_Callback_NotFound(t *testing.T) {
	eng := newTestEngine(t, `x = 1`)

	if _, err := eng.Callback("missing"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("expected ErrFunctionNotFound, got %v", err)
	}
	// A non-function global must not qualify either.
	if _, err := eng.Callback("x"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("expected ErrFunctionNotFound for a non-function, got %v", err)
	}
}

func TestEngine_Callback_RuntimeErrorPanics(t *testing.T) {
	d := kestrel.New()
	eng := newTestEngine(t, `
		function boom(evt, args)
			error("scripted fault")
		end
	`)
	d.On("boom", mustCallback(t, eng, "boom"))

	defer func() {
		r := recover()
		ce, ok := r.(*CallError)
		if !ok {
			t.Fatalf("expected *CallError panic, got %v", r)
		}
		if ce.Function != "boom" {
			t.Errorf("expected function name in error, got %q", ce.Function)
		}
		// The fault must leave no completion behind.
		if d.Did("boom") {
			t.Error("expected no completion after a scripted fault")
		}
	}()

	_, _ = d.Trigger(context.Background(), "boom")
	t.Fatal("expected panic")
}

func TestEngine_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listeners.lua")
	src := `
		function from_file(evt, args)
			return "loaded"
		end
	`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing chunk: %v", err)
	}

	eng := NewEngine()
	defer eng.Close()
	if err := eng.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cb := mustCallback(t, eng, "from_file")
	if got := cb.Invoke(context.Background(), event.New("x"), nil); got != "loaded" {
		t.Errorf("expected %q, got %v", "loaded", got)
	}
}

func TestEngine_LoadString_SyntaxError(t *testing.T) {
	eng := NewEngine()
	defer eng.Close()

	if err := eng.LoadString(`function broken(`); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestEngine_Closed(t *testing.T) {
	eng := NewEngine()
	eng.Close()
	eng.Close() // idempotent

	if err := eng.LoadString(`x = 1`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("expected ErrEngineClosed, got %v", err)
	}
	if _, err := eng.Callback("x"); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("expected ErrEngineClosed, got %v", err)
	}
}
