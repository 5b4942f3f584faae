// Package event provides the event object passed through dispatcher
// listeners.
//
// An Event identifies itself by name and carries two irreversible
// cancellation flags modeled after browser DOM events: propagation-stopped
// and default-prevented. Once either flag is set it can never be cleared.
//
// Custom event types embed *Event to add their own payload while remaining
// dispatchable:
//
//	type SaveEvent struct {
//	    *event.Event
//	    Path string
//	}
//
//	evt := &SaveEvent{Event: event.New("file.save"), Path: "/tmp/x"}
//
// The dispatcher passes the same event reference to every listener of a
// trigger, so later listeners observe mutations made by earlier ones.
package event
