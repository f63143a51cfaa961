package sim

import (
	"container/heap"
	"log"
	"sync"
)

// A Simulation owns the logical clock and the two work queues that drive a
// discrete-event simulation run: a time-ordered queue of delayed triggers
// and a same-instant queue of immediately pending resumptions.
//
// A Simulation must be driven from a single goroutine. Model code never runs
// concurrently: exactly one process body or listener executes at any moment.
type Simulation[T Time] struct {
	HookableBase

	timeLock sync.RWMutex
	now      T

	seq       uint64
	timers    timerQueue[T]
	immediate []func()

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewSimulation creates a Simulation whose clock starts at the zero value of
// the time type.
func NewSimulation[T Time]() *Simulation[T] {
	s := new(Simulation[T])
	heap.Init(&s.timers)

	return s
}

// Now returns the current logical time.
func (s *Simulation[T]) Now() T {
	return s.readNow()
}

func (s *Simulation[T]) readNow() T {
	s.timeLock.RLock()
	t := s.now
	s.timeLock.RUnlock()

	return t
}

func (s *Simulation[T]) writeNow(t T) {
	s.timeLock.Lock()
	s.now = t
	s.timeLock.Unlock()
}

// Event allocates a fresh pending event owned by this simulation.
func (s *Simulation[T]) Event() *Event[T] {
	return &Event[T]{
		id:  GetIDGenerator().Generate(),
		sim: s,
	}
}

// Timeout returns a pending event that triggers delay after the current
// time. Timeout panics if the delay is negative.
func (s *Simulation[T]) Timeout(delay T) *Event[T] {
	var zero T
	if delay < zero {
		log.Panic("scheduling a timeout with a negative delay")
	}

	ev := s.Event()
	s.scheduleTimer(s.readNow()+delay, ev, func() { ev.Trigger() })

	return ev
}

// TimeoutValue returns a pending value-carrying event that triggers with v,
// delay after the current time. It panics if the delay is negative.
func TimeoutValue[V any, T Time](s *Simulation[T], delay T, v V) *ValueEvent[V, T] {
	var zero T
	if delay < zero {
		log.Panic("scheduling a timeout with a negative delay")
	}

	ev := NewValueEvent[V](s)
	s.scheduleTimer(s.readNow()+delay, ev.Event, func() { ev.Trigger(v) })

	return ev
}

func (s *Simulation[T]) scheduleTimer(t T, ev *Event[T], fire func()) {
	s.seq++
	heap.Push(&s.timers, &timerEntry[T]{
		time: t,
		seq:  s.seq,
		ev:   ev,
		fire: fire,
	})
}

// pushImmediate appends a callback to the same-instant queue. The callback
// runs before the clock advances to the next timer.
func (s *Simulation[T]) pushImmediate(cb func()) {
	s.immediate = append(s.immediate, cb)
}

// scheduleProcessing moves the listeners of a freshly triggered event onto
// the immediate queue. The event becomes processed once they have run.
func (s *Simulation[T]) scheduleProcessing(e *Event[T]) {
	listeners := e.listeners
	e.listeners = nil

	s.pushImmediate(func() {
		for _, l := range listeners {
			l(e)
		}

		e.state = EventProcessed
	})
}

// drainImmediate runs queued immediate callbacks in FIFO order until none is
// left, including the ones that the drained callbacks enqueue themselves.
func (s *Simulation[T]) drainImmediate() {
	for len(s.immediate) > 0 {
		cb := s.immediate[0]
		s.immediate = s.immediate[1:]
		cb()
	}
}

// fireNextTimer pops the earliest timer entry, advances the clock to its
// fire time, and triggers its event. Entries whose event has been triggered
// or aborted in the meantime still advance the clock but trigger nothing.
func (s *Simulation[T]) fireNextTimer() {
	entry := heap.Pop(&s.timers).(*timerEntry[T])
	if entry.time < s.readNow() {
		log.Panicf("cannot fire a timer in the past, timer for event %s",
			entry.ev.ID())
	}
	s.writeNow(entry.time)

	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosBeforeEvent,
		Item:   entry.ev,
	}
	s.InvokeHook(hookCtx)

	entry.fire()

	hookCtx.Pos = HookPosAfterEvent
	s.InvokeHook(hookCtx)
}

// Run processes scheduled work until both queues are empty. The immediate
// queue is always fully drained before the next timer fires.
func (s *Simulation[T]) Run() {
	for {
		s.pauseLock.Lock()

		s.drainImmediate()

		if s.timers.Len() == 0 {
			s.pauseLock.Unlock()
			return
		}

		s.fireNextTimer()

		s.pauseLock.Unlock()
	}
}

// RunUntil processes scheduled work up to and including the horizon. Timers
// beyond the horizon stay queued for a later call. When RunUntil returns,
// the clock reads the horizon, unless it already passed it.
func (s *Simulation[T]) RunUntil(horizon T) {
	for {
		s.pauseLock.Lock()

		s.drainImmediate()

		if s.timers.Len() == 0 || s.timers[0].time > horizon {
			s.pauseLock.Unlock()
			break
		}

		s.fireNextTimer()

		s.pauseLock.Unlock()
	}

	if horizon > s.readNow() {
		s.writeNow(horizon)
	}
}

// Pause prevents the simulation from processing more work until Continue is
// called. The running step always completes first.
func (s *Simulation[T]) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue allows a paused simulation to process more work.
func (s *Simulation[T]) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}
