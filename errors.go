package kestrel

import "errors"

// Sentinel errors for the dispatcher.
var (
	// ErrInvalidEventReference is returned when a trigger or removal target
	// is neither a string name nor an event.Ref.
	ErrInvalidEventReference = errors.New("event reference must be a string name or event.Ref")

	// ErrInvalidSortOrder is returned by SetSortOrder for an unrecognized
	// order value.
	ErrInvalidSortOrder = errors.New("sort order must be LowToHigh or HighToLow")
)
