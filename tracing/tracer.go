// Package tracing records the timer events a simulation fires, through a
// datarecording backend, so a run can be inspected after the fact.
package tracing

import (
	"github.com/liuq/desim/datarecording"
	"github.com/liuq/desim/sim"
)

// EventTrace is one recorded firing of a scheduled event.
type EventTrace struct {
	ID    string
	Time  float64
	State string
}

// eventTraceTable is the table that holds the recorded event firings.
const eventTraceTable = "event_trace"

// A DBTracer is a hook that records every fired timer event through a
// DataRecorder.
type DBTracer[T sim.Time] struct {
	sim      *sim.Simulation[T]
	recorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer for the given simulation. It creates the
// trace table on the recorder.
func NewDBTracer[T sim.Time](
	s *sim.Simulation[T],
	recorder datarecording.DataRecorder,
) *DBTracer[T] {
	recorder.CreateTable(eventTraceTable, EventTrace{})

	return &DBTracer[T]{
		sim:      s,
		recorder: recorder,
	}
}

// Func records the fired event.
func (t *DBTracer[T]) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterEvent {
		return
	}

	ev, ok := ctx.Item.(*sim.Event[T])
	if !ok {
		return
	}

	t.recorder.InsertData(eventTraceTable, EventTrace{
		ID:    ev.ID(),
		Time:  float64(t.sim.Now()),
		State: ev.State().String(),
	})
}

// CollectTraces attaches a DBTracer to the simulation, recording every fired
// timer event through the recorder.
func CollectTraces[T sim.Time](
	s *sim.Simulation[T],
	recorder datarecording.DataRecorder,
) *DBTracer[T] {
	t := NewDBTracer(s, recorder)
	s.AcceptHook(t)

	return t
}
