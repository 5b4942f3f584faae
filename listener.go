package kestrel

import (
	"reflect"
	"sort"
)

// binding is the raw pair the registry stores at registration time.
// It is wrapped into a Listener only when a trigger resolves it, so
// listeners that are never triggered cost nothing beyond the pair itself.
type binding struct {
	callback Callback
	priority int
}

// Listener is a materialized listener binding. Immutable once constructed.
type Listener struct {
	name     string
	callback Callback
	priority int
}

// Name returns the event name the listener is bound to.
func (l Listener) Name() string {
	return l.name
}

// Priority returns the listener's execution priority.
func (l Listener) Priority() int {
	return l.priority
}

// materialize wraps raw bindings into Listener values for one trigger.
func materialize(name string, bindings []binding) []Listener {
	listeners := make([]Listener, len(bindings))
	for i, b := range bindings {
		listeners[i] = Listener{
			name:     name,
			callback: b.callback,
			priority: b.priority,
		}
	}
	return listeners
}

// sortListeners orders listeners by priority for the given order.
// The sort is stable: equal priorities keep their registration order
// under either direction.
func sortListeners(listeners []Listener, order SortOrder) {
	if order == HighToLow {
		sort.SliceStable(listeners, func(i, j int) bool {
			return listeners[i].priority > listeners[j].priority
		})
		return
	}
	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].priority < listeners[j].priority
	})
}

// sameCallback reports whether two callbacks compare equal for removal.
//
// Function values (CallbackFunc included) compare by code pointer, so a
// named function or stored closure removes itself, while two closures
// built from the same literal are indistinguishable. Pointer callbacks
// compare by address; other comparable callback types compare by value.
func sameCallback(a, b Callback) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func, reflect.Pointer:
		return va.Pointer() == vb.Pointer()
	default:
		if !va.Type().Comparable() {
			return false
		}
		return a == b
	}
}
