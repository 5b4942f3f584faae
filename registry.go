package kestrel

import "sync"

// registry stores raw callback/priority pairs keyed by event name, plus the
// distinguished single-slot one-shot bindings. It is safe for concurrent
// use; resolution returns snapshots so triggers never hold its lock while
// invoking callbacks.
type registry struct {
	mu       sync.RWMutex
	bindings map[string][]binding
	oneShots map[string]Callback
}

func newRegistry() *registry {
	return &registry{
		bindings: make(map[string][]binding),
		oneShots: make(map[string]Callback),
	}
}

// add appends a binding for the name, preserving insertion order.
func (r *registry) add(name string, cb Callback, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[name] = append(r.bindings[name], binding{callback: cb, priority: priority})
}

// setOneShot installs the one-shot binding for the name, replacing any
// previous one.
func (r *registry) setOneShot(name string, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.oneShots[name] = cb
}

// remove deletes bindings for the name. A nil callback removes everything,
// normal and one-shot. A non-nil callback removes only bindings whose
// callback compares equal to it. Unknown names and non-matching callbacks
// are a no-op.
func (r *registry) remove(name string, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb == nil {
		delete(r.bindings, name)
		delete(r.oneShots, name)
		return
	}

	if bs, ok := r.bindings[name]; ok {
		kept := bs[:0]
		for _, b := range bs {
			if !sameCallback(b.callback, cb) {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(r.bindings, name)
		} else {
			r.bindings[name] = kept
		}
	}

	if os, ok := r.oneShots[name]; ok && sameCallback(os, cb) {
		delete(r.oneShots, name)
	}
}

// resolve returns the materialized listeners a trigger of name must run.
// A one-shot binding supersedes the normal sequence entirely and is
// consumed here, so it fires at most once even under re-entrant triggers.
// Returns nil when the name has no bindings at all.
func (r *registry) resolve(name string) (listeners []Listener, oneShot bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.oneShots[name]; ok {
		delete(r.oneShots, name)
		return []Listener{{name: name, callback: cb, priority: oneShotPriority}}, true
	}

	bs := r.bindings[name]
	if len(bs) == 0 {
		return nil, false
	}
	return materialize(name, bs), false
}

// has reports whether any binding exists for the name.
func (r *registry) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.oneShots[name]; ok {
		return true
	}
	return len(r.bindings[name]) > 0
}

// count returns the number of bindings for the name, one-shot included.
func (r *registry) count(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.bindings[name])
	if _, ok := r.oneShots[name]; ok {
		n++
	}
	return n
}

// size returns the total number of bindings across all names.
func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.oneShots)
	for _, bs := range r.bindings {
		n += len(bs)
	}
	return n
}

// clear removes every binding.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[string][]binding)
	r.oneShots = make(map[string]Callback)
}
