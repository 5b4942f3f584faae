package kestrel

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithSortOrder sets the initial sort order. Unrecognized values are
// ignored and the default (LowToHigh) is kept.
func WithSortOrder(order SortOrder) Option {
	return func(d *Dispatcher) {
		if order.valid() {
			d.order = order
		}
	}
}

// WithStopOnFalse enables or disables the stop-on-false rule: a listener
// returning exactly boolean false stops propagation and its return value
// is excluded from the results.
func WithStopOnFalse(enabled bool) Option {
	return func(d *Dispatcher) {
		d.stopOnFalse = enabled
	}
}

// WithDefaultPriority sets the priority assigned to listeners registered
// without an explicit WithPriority option.
func WithDefaultPriority(priority int) Option {
	return func(d *Dispatcher) {
		d.defaultPriority = priority
	}
}

// bindConfig contains configuration for a single registration.
type bindConfig struct {
	priority int
}

// BindOption configures a single On registration.
type BindOption func(*bindConfig)

// WithPriority sets the listener's execution priority. Lower values run
// first under the default LowToHigh order.
func WithPriority(priority int) BindOption {
	return func(c *bindConfig) {
		c.priority = priority
	}
}
