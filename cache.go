package kestrel

import (
	"sync"

	"github.com/kestrel-go/kestrel/event"
)

// completion is one completed-event cache entry: the event a trigger ran
// with and the result sequence it returned.
type completion struct {
	event  event.Ref
	result []any
}

// completedCache retains the most recent completion per event name.
// Triggers that resolve zero listeners never reach it.
type completedCache struct {
	mu      sync.RWMutex
	entries map[string]completion
}

func newCompletedCache() *completedCache {
	return &completedCache{
		entries: make(map[string]completion),
	}
}

// store records the completion for the name, overwriting any prior entry.
func (c *completedCache) store(name string, evt event.Ref, result []any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = completion{event: evt, result: result}
}

// get returns the most recent completion for the name.
func (c *completedCache) get(name string) (completion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	return entry, ok
}

// did reports whether the name has ever completed a trigger.
func (c *completedCache) did(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[name]
	return ok
}

// size returns the number of cached completions.
func (c *completedCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// clear removes every cached completion.
func (c *completedCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]completion)
}
