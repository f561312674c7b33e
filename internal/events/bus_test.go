package events

import (
	"sync"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan PresetCreatedEvent, 1)

	unsub := bus.Subscribe(func(e PresetCreatedEvent) {
		received <- e
	})
	defer unsub()

	event := PresetCreatedEvent{
		PresetID:  "abc",
		Name:      "IPTV 720p",
		Kind:      "preset",
		Action:    "created",
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(event)

	got := <-received
	if got.PresetID != event.PresetID {
		t.Errorf("Expected preset_id %s, got %s", event.PresetID, got.PresetID)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan CommandGeneratedEvent, 1)
	received2 := make(chan CommandGeneratedEvent, 1)

	unsub1 := bus.Subscribe(func(e CommandGeneratedEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e CommandGeneratedEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(CommandGeneratedEvent{Source: "api", FlagCount: 8})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan PresetDeletedEvent, 1)

	unsub := bus.Subscribe(func(e PresetDeletedEvent) {
		received <- e
	})

	bus.Publish(PresetDeletedEvent{PresetID: "one"})
	<-received

	unsub()

	bus.Publish(PresetDeletedEvent{PresetID: "two"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	createdReceived := make(chan bool, 1)
	deletedReceived := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(_ PresetCreatedEvent) {
		createdReceived <- true
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(_ PresetDeletedEvent) {
		deletedReceived <- true
	})
	defer unsub2()

	bus.Publish(PresetCreatedEvent{PresetID: "a"})
	<-createdReceived

	select {
	case <-deletedReceived:
		t.Fatal("Delete subscriber should NOT have received PresetCreatedEvent")
	case <-time.After(10 * time.Millisecond):
	}

	bus.Publish(PresetDeletedEvent{PresetID: "a"})
	<-deletedReceived

	select {
	case <-createdReceived:
		t.Fatal("Create subscriber should NOT have received PresetDeletedEvent")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_ThreadSafety(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	numGoroutines := 10
	eventsPerGoroutine := 100
	expected := numGoroutines * eventsPerGoroutine

	receivedCh := make(chan bool, expected)

	unsub := bus.Subscribe(func(_ CommandGeneratedEvent) {
		receivedCh <- true
	})
	defer unsub()

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range eventsPerGoroutine {
				bus.Publish(CommandGeneratedEvent{
					Source:    "api",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}

	wg.Wait()

	for range expected {
		<-receivedCh
	}
}

func TestBus_AllEventTypes(t *testing.T) {
	bus := New()

	tests := []struct {
		name  string
		event Event
	}{
		{"PresetCreated", PresetCreatedEvent{PresetID: "a"}},
		{"PresetUpdated", PresetUpdatedEvent{PresetID: "a"}},
		{"PresetDeleted", PresetDeletedEvent{PresetID: "a"}},
		{"PresetsReloaded", PresetsReloadedEvent{Count: 3, Source: "file"}},
		{"CommandGenerated", CommandGeneratedEvent{Source: "cli"}},
		{"GeneratorStats", GeneratorStatsEvent{EventType: "generator_stats"}},
		{"LogEntry", LogEntryEvent{Message: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(_ *testing.T) {
			received := make(chan Event, 1)

			var unsub func()
			switch tt.event.(type) {
			case PresetCreatedEvent:
				unsub = bus.Subscribe(func(e PresetCreatedEvent) { received <- e })
			case PresetUpdatedEvent:
				unsub = bus.Subscribe(func(e PresetUpdatedEvent) { received <- e })
			case PresetDeletedEvent:
				unsub = bus.Subscribe(func(e PresetDeletedEvent) { received <- e })
			case PresetsReloadedEvent:
				unsub = bus.Subscribe(func(e PresetsReloadedEvent) { received <- e })
			case CommandGeneratedEvent:
				unsub = bus.Subscribe(func(e CommandGeneratedEvent) { received <- e })
			case GeneratorStatsEvent:
				unsub = bus.Subscribe(func(e GeneratorStatsEvent) { received <- e })
			case LogEntryEvent:
				unsub = bus.Subscribe(func(e LogEntryEvent) { received <- e })
			}
			defer unsub()

			bus.Publish(tt.event)
			<-received
		})
	}
}

func TestBus_UnknownHandler(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[PresetsReloadedEvent](bus, ch)
	defer unsub()

	bus.Publish(PresetsReloadedEvent{Count: 2, Source: "file"})
	// Channel is full now; the second event is dropped instead of blocking.
	bus.Publish(PresetsReloadedEvent{Count: 3, Source: "file"})

	select {
	case ev := <-ch:
		if got := ev.(PresetsReloadedEvent).Count; got != 2 {
			t.Errorf("Count = %d, want 2", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
}
