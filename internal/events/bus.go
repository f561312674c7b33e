package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for in-process broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(PresetCreatedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event is generic, so dispatch on the concrete type
	switch e := ev.(type) {
	case PresetCreatedEvent:
		event.Publish(b.dispatcher, e)
	case PresetUpdatedEvent:
		event.Publish(b.dispatcher, e)
	case PresetDeletedEvent:
		event.Publish(b.dispatcher, e)
	case PresetsReloadedEvent:
		event.Publish(b.dispatcher, e)
	case CommandGeneratedEvent:
		event.Publish(b.dispatcher, e)
	case GeneratorStatsEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler's parameter type selects the events it receives.
// Returns an unsubscribe function; unknown handler types get a no-op.
// Usage: unsub := bus.Subscribe(func(e PresetDeletedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(PresetCreatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PresetUpdatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PresetDeletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PresetsReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CommandGeneratedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(GeneratorStatsEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
