// Package events carries in-process notifications from the pattern engine
// and the control server to observers such as the status LED.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers. A nil bus drops the event.
// Usage: bus.Publish(EngineStateChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case EngineStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case ParametersAppliedEvent:
		event.Publish(b.dispatcher, e)
	case RequestHandledEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler's parameter type selects the event type; unknown handler
// types get a no-op unsubscribe.
// Usage: unsub := bus.Subscribe(func(e EngineStateChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(EngineStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ParametersAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RequestHandledEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Close stops the dispatcher and its subscriber goroutines.
func (b *Bus) Close() error {
	return b.dispatcher.Close()
}
