package engine

import (
	"github.com/lixenwraith/corridor/event"
)

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before World.Update()
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter dispatches queued events to registered handlers
//
// Dispatch is single threaded: all events are consumed and routed before
// systems update, so handlers mutate the world without synchronization.
// Multiple handlers may register for the same type; they run in
// registration order.
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.Queue
	scratch  []event.GameEvent // Reused drain buffer, dispatch-thread only
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.Queue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
// All handlers for an event are called before moving to the next event
//
// Must be called once per tick, before World.Update()
func (r *EventRouter) DispatchAll() {
	r.scratch = r.queue.Drain(r.scratch[:0])
	for _, ev := range r.scratch {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HasHandlers reports whether any handler is registered for t
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for t
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
