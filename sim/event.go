package sim

// EventState is the lifecycle state of an Event.
type EventState int

// The four states an event can be in. An event starts Pending, becomes
// Triggered exactly once, and becomes Processed when the scheduler has run
// its listeners. An event that is aborted while pending stays Aborted
// forever and never resumes its waiters.
const (
	EventPending EventState = iota
	EventTriggered
	EventProcessed
	EventAborted
)

// String returns a human-readable name of the state.
func (s EventState) String() string {
	switch s {
	case EventPending:
		return "pending"
	case EventTriggered:
		return "triggered"
	case EventProcessed:
		return "processed"
	case EventAborted:
		return "aborted"
	}

	return "unknown"
}

// A Listener is a callback that the scheduler runs after the event it is
// registered on has triggered. Listeners never run in the stack of the code
// that triggered the event; they always run in a later scheduler step.
type Listener[T Time] func(e *Event[T])

// An Event is a handle to a one-shot occurrence in a simulation. All copies
// of the handle observe the same state transitions.
type Event[T Time] struct {
	id        string
	sim       *Simulation[T]
	state     EventState
	listeners []Listener[T]
}

// ID returns the unique ID of the event.
func (e *Event[T]) ID() string {
	return e.id
}

// State returns the current lifecycle state of the event.
func (e *Event[T]) State() EventState {
	return e.state
}

// Pending returns true if the event has neither triggered nor aborted.
func (e *Event[T]) Pending() bool {
	return e.state == EventPending
}

// Triggered returns true if the event has triggered. It keeps returning true
// after the event is processed.
func (e *Event[T]) Triggered() bool {
	return e.state == EventTriggered || e.state == EventProcessed
}

// Processed returns true if the scheduler has run the listeners of the
// event.
func (e *Event[T]) Processed() bool {
	return e.state == EventProcessed
}

// Aborted returns true if the event was aborted.
func (e *Event[T]) Aborted() bool {
	return e.state == EventAborted
}

// Trigger marks the event as triggered and schedules its listeners onto the
// immediate queue of the simulation. It returns false without any effect if
// the event is not pending, so an event can never trigger twice.
func (e *Event[T]) Trigger() bool {
	if e.state != EventPending {
		return false
	}

	e.state = EventTriggered
	e.sim.scheduleProcessing(e)

	return true
}

// Abort marks a pending event as aborted. Its listeners are discarded
// without running. Primitives that still hold the event in an internal queue
// discard it lazily the next time they visit it. Abort returns false without
// any effect if the event is not pending.
func (e *Event[T]) Abort() bool {
	if e.state != EventPending {
		return false
	}

	e.state = EventAborted
	e.listeners = nil

	return true
}

// AddListener registers a callback to run after the event triggers. If the
// event has already triggered, the callback is scheduled onto the immediate
// queue and runs in the next scheduler step, never synchronously. If the
// event is aborted, the callback is never invoked.
func (e *Event[T]) AddListener(l Listener[T]) {
	switch e.state {
	case EventPending:
		e.listeners = append(e.listeners, l)
	case EventTriggered, EventProcessed:
		ev := e
		e.sim.pushImmediate(func() { l(ev) })
	case EventAborted:
	}
}
