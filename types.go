package kestrel

import (
	"context"

	"github.com/kestrel-go/kestrel/event"
)

// DefaultPriority is assigned to listeners registered without WithPriority.
const DefaultPriority = 10

// oneShotPriority is the nominal priority of a one-shot binding. It is
// irrelevant in practice since a one-shot binding is always the only
// listener resolved for its name.
const oneShotPriority = 1

// Callback is the interface for listener callbacks. The dispatcher never
// inspects a callback beyond invoking it; the return value is collected
// into the trigger result sequence.
type Callback interface {
	// Invoke runs the callback with the event being dispatched and the
	// trigger's positional arguments.
	Invoke(ctx context.Context, evt event.Ref, args []any) any
}

// CallbackFunc is a function adapter for Callback.
type CallbackFunc func(ctx context.Context, evt event.Ref, args []any) any

// Invoke implements the Callback interface.
func (f CallbackFunc) Invoke(ctx context.Context, evt event.Ref, args []any) any {
	return f(ctx, evt, args)
}

// SortOrder selects how listener priorities map to execution order.
type SortOrder int

const (
	// LowToHigh runs listeners in ascending priority order: lower numeric
	// priorities execute first. This is the default.
	LowToHigh SortOrder = iota

	// HighToLow runs listeners in descending priority order: higher numeric
	// priorities execute first.
	HighToLow
)

// String returns a human-readable sort order name.
func (o SortOrder) String() string {
	switch o {
	case LowToHigh:
		return "low-to-high"
	case HighToLow:
		return "high-to-low"
	default:
		return "unknown"
	}
}

func (o SortOrder) valid() bool {
	return o == LowToHigh || o == HighToLow
}

// Stats contains dispatcher statistics.
type Stats struct {
	// Triggers is the number of trigger calls that completed with at least
	// one listener.
	Triggers uint64

	// EmptyTriggers is the number of trigger calls that resolved no
	// listeners and short-circuited.
	EmptyTriggers uint64

	// ListenersInvoked is the total number of listener invocations.
	ListenersInvoked uint64

	// PropagationStops is the number of triggers terminated early by a
	// stopped event.
	PropagationStops uint64

	// FalseStops is the number of propagation stops caused by the
	// stop-on-false rule rather than an explicit StopPropagation call.
	FalseStops uint64

	// OneShotsConsumed is the number of one-shot bindings consumed by
	// triggers.
	OneShotsConsumed uint64

	// RegisteredListeners is the current number of registered bindings,
	// one-shot slots included.
	RegisteredListeners int

	// CompletedEvents is the current number of completed-event cache
	// entries.
	CompletedEvents int
}
