package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
)

// ConnectedEvent is the first message on every event stream.
type ConnectedEvent struct {
	Message   string `json:"message" example:"SSE connection established"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z"`
}

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for preset changes and generated commands",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"connected":         ConnectedEvent{},
		"preset-created":    events.PresetCreatedEvent{},
		"preset-updated":    events.PresetUpdatedEvent{},
		"preset-deleted":    events.PresetDeletedEvent{},
		"presets-reloaded":  events.PresetsReloadedEvent{},
		"command-generated": events.CommandGeneratedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.PresetCreatedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PresetUpdatedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PresetDeletedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PresetsReloadedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CommandGeneratedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(ConnectedEvent{
			Message:   "SSE connection established",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			return
		}

		forward(ctx, eventCh, send)
	})
}

// forward writes events to the client until the request ends or a write fails.
func forward(ctx context.Context, eventCh <-chan any, send sse.Sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-eventCh:
			if err := send.Data(event); err != nil {
				return
			}
		}
	}
}
