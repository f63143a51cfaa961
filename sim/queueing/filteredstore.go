package queueing

import (
	"github.com/liuq/desim/sim"
)

// A Predicate decides whether a stored value satisfies a getter.
type Predicate[V any] func(v V) bool

type filteredWaiter[V any, T sim.Time] struct {
	ev   *sim.ValueEvent[V, T]
	pred Predicate[V]
}

// A FilteredStore is a blocking queue whose getters only accept values
// matching their predicate. Stored values and waiters both keep insertion
// order.
//
// The match policy is asymmetric: Put offers only the newly stored value to
// the waiters, in their arrival order, while Get scans the whole backlog of
// stored values with its predicate. A predicate that panics propagates out
// of the Put or Get call that invoked it.
type FilteredStore[V any, T sim.Time] struct {
	sim     *sim.Simulation[T]
	items   []V
	waiters []filteredWaiter[V, T]
}

// NewFilteredStore creates an empty FilteredStore bound to the given
// simulation.
func NewFilteredStore[V any, T sim.Time](
	s *sim.Simulation[T],
) *FilteredStore[V, T] {
	return &FilteredStore[V, T]{sim: s}
}

// Put appends v to the store and hands it to the first waiter whose
// predicate accepts it, if any. Older unmatched values are not reconsidered.
// The returned event is already triggered when Put returns.
func (fs *FilteredStore[V, T]) Put(v V) *sim.Event[T] {
	fs.items = append(fs.items, v)

	ev := fs.sim.Event()
	ev.Trigger()

	fs.matchNewest()

	return ev
}

// matchNewest offers the most recently stored value to the waiters in
// arrival order. Aborted waiters encountered along the way are discarded.
func (fs *FilteredStore[V, T]) matchNewest() {
	newest := fs.items[len(fs.items)-1]

	i := 0
	for i < len(fs.waiters) {
		w := fs.waiters[i]

		if w.ev.Aborted() {
			fs.waiters = append(fs.waiters[:i], fs.waiters[i+1:]...)
			continue
		}

		if w.pred(newest) {
			fs.waiters = append(fs.waiters[:i], fs.waiters[i+1:]...)
			fs.items = fs.items[:len(fs.items)-1]
			w.ev.Trigger(newest)
			return
		}

		i++
	}
}

// Get returns an event that triggers with the first stored value, front to
// back, that pred accepts. If no stored value matches, the getter queues up
// behind the earlier ones.
func (fs *FilteredStore[V, T]) Get(pred Predicate[V]) *sim.ValueEvent[V, T] {
	fs.discardAbortedWaiters()

	ev := sim.NewValueEvent[V](fs.sim)

	for i, v := range fs.items {
		if pred(v) {
			fs.items = append(fs.items[:i], fs.items[i+1:]...)
			ev.Trigger(v)
			return ev
		}
	}

	fs.waiters = append(fs.waiters, filteredWaiter[V, T]{ev: ev, pred: pred})

	return ev
}

func (fs *FilteredStore[V, T]) discardAbortedWaiters() {
	kept := fs.waiters[:0]
	for _, w := range fs.waiters {
		if !w.ev.Aborted() {
			kept = append(kept, w)
		}
	}
	fs.waiters = kept
}

// Size returns the number of stored values.
func (fs *FilteredStore[V, T]) Size() int {
	return len(fs.items)
}

// Waiting returns the number of queued getters that can still be served.
func (fs *FilteredStore[V, T]) Waiting() int {
	n := 0
	for _, w := range fs.waiters {
		if !w.ev.Aborted() {
			n++
		}
	}

	return n
}
