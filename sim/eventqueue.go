package sim

// A timerEntry schedules the triggering of an event at a future instant.
// Entries that share a fire time keep their submission order through the
// insertion sequence number.
type timerEntry[T Time] struct {
	time T
	seq  uint64
	ev   *Event[T]
	fire func()
}

// timerQueue is a priority queue of timer entries, ordered by fire time
// first and insertion sequence second. It implements heap.Interface.
type timerQueue[T Time] []*timerEntry[T]

// Len returns the number of timer entries in the queue.
func (q timerQueue[T]) Len() int {
	return len(q)
}

// Less returns true if the i-th entry fires before the j-th entry. Entries
// with the same fire time keep submission order.
func (q timerQueue[T]) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}

	return q[i].seq < q[j].seq
}

// Swap changes the position of two entries in the queue.
func (q timerQueue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

// Push adds an entry to the queue.
func (q *timerQueue[T]) Push(x any) {
	*q = append(*q, x.(*timerEntry[T]))
}

// Pop removes and returns the entry that fires next.
func (q *timerQueue[T]) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return entry
}
