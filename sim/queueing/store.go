package queueing

import (
	"github.com/liuq/desim/sim"
)

// A Store is a FIFO blocking queue of values. Putting never blocks; getting
// blocks until a value is available.
type Store[V any, T sim.Time] struct {
	sim     *sim.Simulation[T]
	items   []V
	waiters []*sim.ValueEvent[V, T]
}

// NewStore creates an empty Store bound to the given simulation.
func NewStore[V any, T sim.Time](s *sim.Simulation[T]) *Store[V, T] {
	return &Store[V, T]{sim: s}
}

// Put appends v to the store. The returned event is already triggered when
// Put returns.
func (st *Store[V, T]) Put(v V) *sim.Event[T] {
	st.items = append(st.items, v)

	ev := st.sim.Event()
	ev.Trigger()

	st.drain()

	return ev
}

// Get returns an event that triggers with the value at the front of the
// store. If a value is available, the event is triggered before Get returns;
// otherwise the getter queues up in FIFO order.
func (st *Store[V, T]) Get() *sim.ValueEvent[V, T] {
	ev := sim.NewValueEvent[V](st.sim)

	if len(st.items) > 0 {
		ev.Trigger(st.items[0])
		st.items = st.items[1:]
	} else {
		st.waiters = append(st.waiters, ev)
	}

	return ev
}

// Size returns the number of stored values.
func (st *Store[V, T]) Size() int {
	return len(st.items)
}

// Waiting returns the number of queued getters that can still be served.
func (st *Store[V, T]) Waiting() int {
	n := 0
	for _, ev := range st.waiters {
		if !ev.Aborted() {
			n++
		}
	}

	return n
}

// drain serves queued getters in FIFO order while values are available.
// Aborted getters are discarded without consuming a value.
func (st *Store[V, T]) drain() {
	for len(st.waiters) > 0 && len(st.items) > 0 {
		ev := st.waiters[0]
		st.waiters = st.waiters[1:]

		if ev.Aborted() {
			continue
		}

		ev.Trigger(st.items[0])
		st.items = st.items[1:]
	}
}
