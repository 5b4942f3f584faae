package kestrel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kestrel-go/kestrel/event"
)

// Dispatcher is a synchronous, in-process publish/subscribe dispatcher.
// Listeners are registered per event name with a priority and invoked in
// deterministic order when the name is triggered. Return values are
// collected into a result sequence, and the event's cancellation flags
// are honored after every invocation.
//
// A Dispatcher is safe for concurrent use: the registry and the
// completed-event cache are guarded, while each trigger runs on per-call
// state so callbacks may re-enter the dispatcher freely. A listener added
// while a trigger is in flight only affects subsequent triggers.
type Dispatcher struct {
	registry  *registry
	completed *completedCache

	// mu guards the configurable knobs below.
	mu              sync.RWMutex
	order           SortOrder
	stopOnFalse     bool
	defaultPriority int

	// Stats counters.
	triggers         atomic.Uint64
	emptyTriggers    atomic.Uint64
	listenersInvoked atomic.Uint64
	propagationStops atomic.Uint64
	falseStops       atomic.Uint64
	oneShotsConsumed atomic.Uint64
}

// New creates a dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:        newRegistry(),
		completed:       newCompletedCache(),
		order:           LowToHigh,
		defaultPriority: DefaultPriority,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// On registers a listener for the event name. Registration always
// succeeds; multiple listeners may share a name and a priority, and
// equal-priority listeners execute in registration order. Returns the
// dispatcher for chaining.
func (d *Dispatcher) On(name string, cb Callback, opts ...BindOption) *Dispatcher {
	if cb == nil {
		return d
	}

	d.mu.RLock()
	config := bindConfig{priority: d.defaultPriority}
	d.mu.RUnlock()
	for _, opt := range opts {
		opt(&config)
	}

	d.registry.add(name, cb, config.priority)
	return d
}

// OnFunc is a convenience method for registering a function callback.
func (d *Dispatcher) OnFunc(name string, fn CallbackFunc, opts ...BindOption) *Dispatcher {
	return d.On(name, fn, opts...)
}

// One installs the one-shot listener for the event name. While present it
// supersedes every normal listener registered for that name; the next
// trigger of the name runs it alone and consumes it. Calling One again
// for the same name replaces the previous one-shot listener.
func (d *Dispatcher) One(name string, cb Callback) *Dispatcher {
	if cb == nil {
		return d
	}
	d.registry.setOneShot(name, cb)
	return d
}

// OneFunc is a convenience method for installing a function one-shot.
func (d *Dispatcher) OneFunc(name string, fn CallbackFunc) *Dispatcher {
	return d.One(name, fn)
}

// Off removes listeners for the event identified by target, which must be
// a string name or an event.Ref. A nil callback removes every binding for
// the name, one-shot included; a non-nil callback removes only bindings
// whose callback compares equal to it (see sameCallback). Removing from
// an unknown name or with a non-matching callback is a no-op.
func (d *Dispatcher) Off(target any, cb Callback) error {
	name, _, err := resolveTarget(target)
	if err != nil {
		return err
	}
	d.registry.remove(name, cb)
	return nil
}

// Trigger dispatches the event identified by target with the given
// positional arguments and returns the collected listener return values
// in execution order.
//
// A string target constructs a fresh event; an event.Ref target is
// dispatched as-is, stale cancellation flags included, which makes
// re-triggering a previously completed event observable (see package
// doc). Any other target type fails with ErrInvalidEventReference.
func (d *Dispatcher) Trigger(ctx context.Context, target any, args ...any) ([]any, error) {
	return d.TriggerSlice(ctx, target, args)
}

// TriggerSlice is Trigger with the arguments pre-packed as a slice.
func (d *Dispatcher) TriggerSlice(ctx context.Context, target any, args []any) ([]any, error) {
	name, ref, err := resolveTarget(target)
	if err != nil {
		return nil, err
	}

	listeners, oneShot := d.registry.resolve(name)
	if len(listeners) == 0 {
		// No listeners: no event construction, no cache entry.
		d.emptyTriggers.Add(1)
		return []any{}, nil
	}
	if oneShot {
		d.oneShotsConsumed.Add(1)
	}

	if ref == nil {
		ref = event.New(name)
	}

	d.mu.RLock()
	order := d.order
	stopOnFalse := d.stopOnFalse
	d.mu.RUnlock()

	sortListeners(listeners, order)

	results := make([]any, 0, len(listeners))
	for _, l := range listeners {
		select {
		case <-ctx.Done():
			// Aborted triggers never reach the completion store.
			return results, ctx.Err()
		default:
		}

		ret := l.callback.Invoke(ctx, ref, args)
		d.listenersInvoked.Add(1)

		if b, ok := ret.(bool); stopOnFalse && ok && !b {
			// The loop itself stops propagation; the false is discarded.
			ref.StopPropagation()
			d.falseStops.Add(1)
		} else {
			results = append(results, ret)
		}

		if ref.PropagationStopped() {
			d.propagationStops.Add(1)
			break
		}
	}

	d.completed.store(name, ref, results)
	d.triggers.Add(1)
	return results, nil
}

// Did reports whether the name has completed at least one non-empty
// trigger.
func (d *Dispatcher) Did(name string) bool {
	return d.completed.did(name)
}

// Event returns the event used by the most recent completed trigger of
// the name.
func (d *Dispatcher) Event(name string) (event.Ref, bool) {
	entry, ok := d.completed.get(name)
	if !ok {
		return nil, false
	}
	return entry.event, true
}

// Result returns the result sequence of the most recent completed trigger
// of the name. The returned slice is the one the trigger returned.
func (d *Dispatcher) Result(name string) ([]any, bool) {
	entry, ok := d.completed.get(name)
	if !ok {
		return nil, false
	}
	return entry.result, true
}

// Has reports whether any listener is registered for the name.
func (d *Dispatcher) Has(name string) bool {
	return d.registry.has(name)
}

// Count returns the number of bindings registered for the name, the
// one-shot slot included.
func (d *Dispatcher) Count(name string) int {
	return d.registry.count(name)
}

// SetSortOrder switches the process-wide listener ordering for this
// dispatcher. Already-registered listeners are re-ordered on the next
// trigger without re-registration.
func (d *Dispatcher) SetSortOrder(order SortOrder) error {
	if !order.valid() {
		return ErrInvalidSortOrder
	}

	d.mu.Lock()
	d.order = order
	d.mu.Unlock()
	return nil
}

// SortOrder returns the current sort order.
func (d *Dispatcher) SortOrder() SortOrder {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.order
}

// SetStopOnFalse toggles the stop-on-false rule and returns the
// dispatcher for chaining.
func (d *Dispatcher) SetStopOnFalse(enabled bool) *Dispatcher {
	d.mu.Lock()
	d.stopOnFalse = enabled
	d.mu.Unlock()
	return d
}

// StopOnFalse reports whether the stop-on-false rule is enabled.
func (d *Dispatcher) StopOnFalse() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stopOnFalse
}

// SetDefaultPriority changes the priority assigned to subsequent
// registrations made without WithPriority. Existing bindings keep the
// priority they were registered with.
func (d *Dispatcher) SetDefaultPriority(priority int) *Dispatcher {
	d.mu.Lock()
	d.defaultPriority = priority
	d.mu.Unlock()
	return d
}

// DefaultPriority returns the priority assigned to registrations made
// without WithPriority.
func (d *Dispatcher) DefaultPriority() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.defaultPriority
}

// Clear removes every listener binding and every cached completion.
func (d *Dispatcher) Clear() {
	d.registry.clear()
	d.completed.clear()
}

// Stats returns a snapshot of dispatcher statistics.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Triggers:            d.triggers.Load(),
		EmptyTriggers:       d.emptyTriggers.Load(),
		ListenersInvoked:    d.listenersInvoked.Load(),
		PropagationStops:    d.propagationStops.Load(),
		FalseStops:          d.falseStops.Load(),
		OneShotsConsumed:    d.oneShotsConsumed.Load(),
		RegisteredListeners: d.registry.size(),
		CompletedEvents:     d.completed.size(),
	}
}

// resolveTarget maps an event identifier to its name and, when the caller
// supplied a concrete event, the event itself. The identifier is a
// two-armed union: a string name or an event.Ref.
func resolveTarget(target any) (string, event.Ref, error) {
	switch t := target.(type) {
	case string:
		return t, nil, nil
	case event.Ref:
		return t.EventID(), t, nil
	default:
		return "", nil, ErrInvalidEventReference
	}
}
