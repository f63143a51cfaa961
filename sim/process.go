package sim

// A Routine is the body of a process. It runs cooperatively: it executes
// until it suspends on an event through the Process handle, and resumes in a
// later scheduler step once that event has triggered.
type Routine[T Time] func(p *Process[T])

// A Process is a cooperative routine managed by the scheduler. The routine
// runs in its own goroutine, but execution is strictly handed over: the
// scheduler and the routine never run at the same time, so model code stays
// effectively single-threaded.
type Process[T Time] struct {
	sim    *Simulation[T]
	done   *Event[T]
	resume chan struct{}
	yield  chan struct{}
}

// Process starts a routine, synchronously running it up to its first
// suspension point, or to completion if it never suspends. The returned
// event triggers when the routine finishes.
func (s *Simulation[T]) Process(r Routine[T]) *Event[T] {
	p := newProcess(s, s.Event())

	go func() {
		<-p.resume
		r(p)
		p.done.Trigger()
		p.yield <- struct{}{}
	}()

	p.step()

	return p.done
}

// ProcessValue starts a routine that produces a value. The returned event
// triggers with that value when the routine finishes.
func ProcessValue[V any, T Time](
	s *Simulation[T],
	r func(p *Process[T]) V,
) *ValueEvent[V, T] {
	done := NewValueEvent[V](s)
	p := newProcess(s, done.Event)

	go func() {
		<-p.resume
		v := r(p)
		done.Trigger(v)
		p.yield <- struct{}{}
	}()

	p.step()

	return done
}

func newProcess[T Time](s *Simulation[T], done *Event[T]) *Process[T] {
	return &Process[T]{
		sim:    s,
		done:   done,
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}
}

// step hands execution to the routine and blocks until it suspends again or
// finishes.
func (p *Process[T]) step() {
	p.resume <- struct{}{}
	<-p.yield
}

// Wait suspends the process until ev has triggered and is dequeued by the
// scheduler. Waiting on an already-triggered event resumes on the next
// scheduler step. Waiting on an event that is aborted, or gets aborted
// later, suspends the process forever.
func (p *Process[T]) Wait(ev *Event[T]) {
	ev.AddListener(func(*Event[T]) {
		p.step()
	})

	p.yield <- struct{}{}
	<-p.resume
}

// Delay suspends the process for the given duration of simulation time.
func (p *Process[T]) Delay(d T) {
	p.Wait(p.sim.Timeout(d))
}

// Now returns the current simulation time.
func (p *Process[T]) Now() T {
	return p.sim.Now()
}

// Sim returns the simulation the process belongs to.
func (p *Process[T]) Sim() *Simulation[T] {
	return p.sim
}

// Await suspends the process until ev triggers and returns its payload.
func Await[V any, T Time](p *Process[T], ev *ValueEvent[V, T]) V {
	p.Wait(ev.Event)

	return ev.Value()
}
