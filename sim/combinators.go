package sim

// AnyOf returns an event that triggers the first time any of the given
// events triggers. The firing of the remaining events has no further effect
// on the returned event. If no constituent ever triggers, the returned event
// stays pending forever.
func (s *Simulation[T]) AnyOf(events ...*Event[T]) *Event[T] {
	combined := s.Event()

	for _, ev := range events {
		ev.AddListener(func(*Event[T]) {
			combined.Trigger()
		})
	}

	return combined
}

// AllOf returns an event that triggers once every one of the given events
// has triggered, at the time the last one triggers. If any constituent never
// triggers, the returned event stays pending forever. With no events at all,
// the returned event triggers right away.
func (s *Simulation[T]) AllOf(events ...*Event[T]) *Event[T] {
	combined := s.Event()

	remaining := len(events)
	if remaining == 0 {
		combined.Trigger()
		return combined
	}

	for _, ev := range events {
		ev.AddListener(func(*Event[T]) {
			remaining--
			if remaining == 0 {
				combined.Trigger()
			}
		})
	}

	return combined
}

// AnyOf is the binary form of Simulation.AnyOf.
func (e *Event[T]) AnyOf(other *Event[T]) *Event[T] {
	return e.sim.AnyOf(e, other)
}

// AllOf is the binary form of Simulation.AllOf.
func (e *Event[T]) AllOf(other *Event[T]) *Event[T] {
	return e.sim.AllOf(e, other)
}
