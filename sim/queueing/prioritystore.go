package queueing

import (
	"container/heap"

	"github.com/liuq/desim/sim"
)

type priorityWaiter[V any, T sim.Time] struct {
	priority int
	time     T
	seq      uint64
	ev       *sim.ValueEvent[V, T]
}

// before returns true if w outranks o: lower priority first, then earlier
// arrival time, then earlier submission.
func (w *priorityWaiter[V, T]) before(o *priorityWaiter[V, T]) bool {
	if w.priority != o.priority {
		return w.priority < o.priority
	}

	if w.time != o.time {
		return w.time < o.time
	}

	return w.seq < o.seq
}

// waiterHeap is a priority queue of getters, best-ranked first. It
// implements heap.Interface.
type waiterHeap[V any, T sim.Time] []*priorityWaiter[V, T]

func (h waiterHeap[V, T]) Len() int {
	return len(h)
}

func (h waiterHeap[V, T]) Less(i, j int) bool {
	return h[i].before(h[j])
}

func (h waiterHeap[V, T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *waiterHeap[V, T]) Push(x any) {
	*h = append(*h, x.(*priorityWaiter[V, T]))
}

func (h *waiterHeap[V, T]) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return w
}

// A PriorityStore is a blocking queue whose values are served in FIFO order
// to the getter with the best rank. Lower numeric priority is served first;
// ties go to the earlier Get call.
type PriorityStore[V any, T sim.Time] struct {
	sim     *sim.Simulation[T]
	items   []V
	seq     uint64
	waiters waiterHeap[V, T]
}

// NewPriorityStore creates an empty PriorityStore bound to the given
// simulation.
func NewPriorityStore[V any, T sim.Time](
	s *sim.Simulation[T],
) *PriorityStore[V, T] {
	ps := &PriorityStore[V, T]{sim: s}
	heap.Init(&ps.waiters)

	return ps
}

// Put appends v to the value queue. The returned event is already triggered
// when Put returns.
func (ps *PriorityStore[V, T]) Put(v V) *sim.Event[T] {
	ps.items = append(ps.items, v)

	ev := ps.sim.Event()
	ev.Trigger()

	ps.drain()

	return ev
}

// Get returns an event that triggers with the front value once the request
// is the best-ranked one. A request that outranks every queued getter is
// served immediately if a value is available.
func (ps *PriorityStore[V, T]) Get(priority int) *sim.ValueEvent[V, T] {
	ev := sim.NewValueEvent[V](ps.sim)

	ps.seq++
	w := &priorityWaiter[V, T]{
		priority: priority,
		time:     ps.sim.Now(),
		seq:      ps.seq,
		ev:       ev,
	}

	if len(ps.items) > 0 &&
		(ps.waiters.Len() == 0 || w.before(ps.waiters[0])) {
		ev.Trigger(ps.items[0])
		ps.items = ps.items[1:]

		return ev
	}

	heap.Push(&ps.waiters, w)

	ps.drain()

	return ev
}

// Size returns the number of stored values.
func (ps *PriorityStore[V, T]) Size() int {
	return len(ps.items)
}

// Waiting returns the number of queued getters that can still be served.
func (ps *PriorityStore[V, T]) Waiting() int {
	n := 0
	for _, w := range ps.waiters {
		if !w.ev.Aborted() {
			n++
		}
	}

	return n
}

// drain serves the best-ranked getters while values are available. Aborted
// getters are discarded without consuming a value.
func (ps *PriorityStore[V, T]) drain() {
	for len(ps.items) > 0 && ps.waiters.Len() > 0 {
		w := heap.Pop(&ps.waiters).(*priorityWaiter[V, T])

		if w.ev.Aborted() {
			continue
		}

		w.ev.Trigger(ps.items[0])
		ps.items = ps.items[1:]
	}
}
