// Package queueing provides the synchronization primitives built on the
// event kernel: a counting resource, a FIFO store, a predicate-filtered
// store, and a priority store. Each primitive is bound to one simulation for
// its lifetime and never holds stored supply and servable waiters at the
// same time after one of its operations returns.
package queueing

import (
	"github.com/liuq/desim/sim"
)

// A Resource is a counting semaphore. Requests are granted in FIFO order, at
// most capacity grants outstanding at a time.
type Resource[T sim.Time] struct {
	sim       *sim.Simulation[T]
	available uint64
	waiters   []*sim.Event[T]
}

// NewResource creates a Resource with the given capacity, bound to the given
// simulation.
func NewResource[T sim.Time](
	s *sim.Simulation[T],
	capacity uint64,
) *Resource[T] {
	return &Resource[T]{
		sim:       s,
		available: capacity,
	}
}

// Request returns an event that triggers once one unit of capacity is
// granted to the caller. The event may already be triggered when Request
// returns.
func (r *Resource[T]) Request() *sim.Event[T] {
	ev := r.sim.Event()
	r.waiters = append(r.waiters, ev)

	r.drain()

	return ev
}

// Release returns one unit of capacity and grants it to the first unaborted
// queued request, if any.
func (r *Resource[T]) Release() {
	r.available++

	r.drain()
}

// Available returns the capacity that is not currently granted.
func (r *Resource[T]) Available() uint64 {
	return r.available
}

// Waiting returns the number of queued requests that can still be granted.
func (r *Resource[T]) Waiting() int {
	n := 0
	for _, ev := range r.waiters {
		if !ev.Aborted() {
			n++
		}
	}

	return n
}

// drain grants capacity to queued requests in FIFO order. Aborted requests
// are discarded without being charged capacity.
func (r *Resource[T]) drain() {
	for r.available > 0 && len(r.waiters) > 0 {
		ev := r.waiters[0]
		r.waiters = r.waiters[1:]

		if ev.Aborted() {
			continue
		}

		ev.Trigger()
		r.available--
	}
}
