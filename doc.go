// Package kestrel is a synchronous, in-process publish/subscribe
// dispatcher with DOM-style cancellation semantics.
//
// Callers register named-event listeners with priorities, then trigger
// events by name or by a pre-built event object. Listeners run in
// deterministic priority order on the caller's goroutine, their return
// values are collected in execution order, and the most recent completion
// per name is cached for later lookup.
//
// # Registration and triggering
//
//	d := kestrel.New()
//
//	d.OnFunc("file.save", func(ctx context.Context, evt event.Ref, args []any) any {
//	    return "written"
//	}, kestrel.WithPriority(5))
//
//	results, err := d.Trigger(ctx, "file.save", "/tmp/x")
//
// Listeners with lower priority values run first under the default
// LowToHigh order; SetSortOrder(HighToLow) reverses that for all
// subsequent triggers without re-registration. Equal priorities always
// keep registration order.
//
// # Cancellation
//
// After every listener call the dispatcher consults the event. A listener
// that calls StopPropagation keeps its own return value in the results
// but prevents all later listeners from running. With SetStopOnFalse(true)
// a listener returning exactly boolean false stops propagation too, and
// that false is excluded from the results.
//
// # One-shot listeners
//
// One installs a single binding that supersedes every normal listener for
// its name. The next trigger of the name runs it alone and consumes it;
// after that, normal listeners are reachable again.
//
// # Completed-event cache
//
// Did, Event and Result expose the most recent completion per name.
// Triggers that resolve zero listeners short-circuit: they return an empty
// result, construct nothing, and leave no cache entry.
//
// Re-triggering an event object obtained from Event preserves its stale
// cancellation flags: if propagation was stopped in the prior run, the
// re-trigger invokes one listener and stops again. This mirrors the
// behavior of the cache contract and is locked in by a regression test.
//
// # Faults
//
// The dispatcher never recovers listener panics. A panicking listener
// aborts the remaining sequence, skips the completion store, and
// propagates to the Trigger caller.
package kestrel
