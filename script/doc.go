// Package script exposes Lua functions as dispatcher callbacks.
//
// An Engine owns a single Lua state. Chunks loaded into it define global
// functions; Callback wraps one of those functions as a kestrel.Callback:
//
//	eng := script.NewEngine()
//	defer eng.Close()
//
//	err := eng.LoadString(`
//	    function on_save(evt, args)
//	        if args[1] == "" then
//	            return false
//	        end
//	        return "saved " .. args[1]
//	    end
//	`)
//
//	cb, err := eng.Callback("on_save")
//	d.On("file.save", cb)
//
// The listener receives the event as a table with an `id` field and
// stop_propagation / prevent_default / propagation_stopped /
// default_prevented functions, plus the trigger arguments as a table.
// Return values are bridged back to Go, so a Lua `false` participates in
// the dispatcher's stop-on-false rule like any other callback.
//
// A Lua runtime error inside the function is a listener fault: Invoke
// panics with *CallError and the panic propagates to the Trigger caller,
// matching the dispatcher's fault model for native callbacks.
//
// The Lua state is not goroutine-safe; the engine serializes all access
// behind a mutex, which is sufficient for the dispatcher's synchronous
// invocation model.
package script
