package sim

import "log"

// A ValueEvent is an Event that carries a payload once triggered. The
// payload is set at trigger time and can be read as soon as the event is
// triggered or processed.
type ValueEvent[V any, T Time] struct {
	*Event[T]

	value    V
	hasValue bool
}

// NewValueEvent allocates a fresh pending value-carrying event owned by the
// given simulation.
func NewValueEvent[V any, T Time](s *Simulation[T]) *ValueEvent[V, T] {
	return &ValueEvent[V, T]{Event: s.Event()}
}

// Trigger stores the payload and triggers the underlying event. It returns
// false without any effect if the event is not pending.
func (e *ValueEvent[V, T]) Trigger(v V) bool {
	if e.Event.state != EventPending {
		return false
	}

	e.value = v
	e.hasValue = true

	return e.Event.Trigger()
}

// Value returns the payload of the event. It panics if the event has not
// triggered, or if the event was triggered without a payload.
func (e *ValueEvent[V, T]) Value() V {
	if !e.Triggered() {
		log.Panic("reading the value of an event that has not triggered")
	}

	if !e.hasValue {
		log.Panic("reading the value of an event that carries no payload")
	}

	return e.value
}
