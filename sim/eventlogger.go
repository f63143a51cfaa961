package sim

import "log"

// EventLogger is a hook that writes one line per fired timer event into a
// logger.
type EventLogger[T Time] struct {
	Logger *log.Logger
}

// NewEventLogger returns an EventLogger that writes into the given logger.
func NewEventLogger[T Time](logger *log.Logger) *EventLogger[T] {
	h := new(EventLogger[T])
	h.Logger = logger

	return h
}

// Func writes the event information into the logger.
func (h *EventLogger[T]) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*Event[T])
	if !ok {
		return
	}

	h.Logger.Printf("%v, event %s, %s", evt.sim.Now(), evt.ID(), evt.State())
}
