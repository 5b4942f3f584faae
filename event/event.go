package event

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Ref is the capability set the dispatcher requires of an event object.
// *Event implements it; custom event types satisfy it by embedding *Event.
type Ref interface {
	// EventID returns the event name the dispatcher keys listeners by.
	EventID() string

	// StopPropagation halts invocation of any remaining listeners in the
	// current trigger. Irreversible.
	StopPropagation()

	// PropagationStopped reports whether propagation has been stopped.
	PropagationStopped() bool

	// PreventDefault signals listeners that the default action should be
	// skipped. The dispatcher carries the flag but does not act on it.
	// Irreversible.
	PreventDefault()

	// DefaultPrevented reports whether the default action was prevented.
	DefaultPrevented() bool
}

// Metadata contains standard information attached to every event instance.
type Metadata struct {
	// UID uniquely identifies this event instance, as opposed to the event
	// name which is shared by every instance of the same event.
	UID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that created the event.
	Source string
}

// Event is the base event object. The id is immutable after construction;
// the two cancellation flags start false and can only ever be set, never
// cleared.
type Event struct {
	id   string
	meta Metadata

	propagationStopped atomic.Bool
	defaultPrevented   atomic.Bool
}

// Option configures an Event at construction time.
type Option func(*Event)

// WithSource sets the metadata source of the event.
func WithSource(source string) Option {
	return func(e *Event) {
		e.meta.Source = source
	}
}

// WithUID overrides the generated instance UID.
func WithUID(uid string) Option {
	return func(e *Event) {
		e.meta.UID = uid
	}
}

// New creates an event with the given id.
func New(id string, opts ...Option) *Event {
	e := &Event{
		id: id,
		meta: Metadata{
			UID:       uuid.NewString(),
			Timestamp: time.Now(),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventID returns the event name.
func (e *Event) EventID() string {
	return e.id
}

// Metadata returns the event instance metadata.
func (e *Event) Metadata() Metadata {
	return e.meta
}

// StopPropagation marks the event as propagation-stopped.
func (e *Event) StopPropagation() {
	e.propagationStopped.Store(true)
}

// PropagationStopped reports whether StopPropagation has been called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped.Load()
}

// PreventDefault marks the event as default-prevented.
func (e *Event) PreventDefault() {
	e.defaultPrevented.Store(true)
}

// DefaultPrevented reports whether PreventDefault has been called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented.Load()
}

// String returns a short description of the event.
func (e *Event) String() string {
	return fmt.Sprintf("[Event id=%s uid=%s]", e.id, e.meta.UID)
}
