package exporters

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/metrics"
)

// EventPublisher interface for publishing events.
type EventPublisher interface {
	Publish(ev events.Event)
}

// SSEExporter periodically publishes generator stats for the console's SSE stream.
// A snapshot is only published when it differs from the previous one.
type SSEExporter struct {
	eventBus EventPublisher
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	last     *events.GeneratorStatsEvent
}

// NewSSEExporter creates a new SSE exporter.
func NewSSEExporter(eventBus EventPublisher) *SSEExporter {
	return &SSEExporter{
		eventBus: eventBus,
		interval: 5 * time.Second,
	}
}

// Start begins the SSE export loop.
func (s *SSEExporter) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run()
}

// Stop stops the SSE exporter and waits for the goroutine to finish.
func (s *SSEExporter) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *SSEExporter) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.publishStats()
		}
	}
}

func (s *SSEExporter) publishStats() {
	ev := statsEvent(metrics.Snapshot())
	if s.last != nil && sameStats(*s.last, ev) {
		return
	}
	s.last = &ev
	s.eventBus.Publish(ev)
}

func statsEvent(snap metrics.GeneratorStats) events.GeneratorStatsEvent {
	warnings := make(map[string]string, len(snap.Warnings))
	for rule, n := range snap.Warnings {
		warnings[rule] = strconv.FormatUint(n, 10)
	}
	return events.GeneratorStatsEvent{
		EventType: "generator_stats",
		Commands:  strconv.FormatUint(snap.Commands, 10),
		Warnings:  warnings,
		Presets:   strconv.Itoa(snap.Presets),
	}
}

func sameStats(a, b events.GeneratorStatsEvent) bool {
	if a.Commands != b.Commands || a.Presets != b.Presets || len(a.Warnings) != len(b.Warnings) {
		return false
	}
	for rule, n := range a.Warnings {
		if b.Warnings[rule] != n {
			return false
		}
	}
	return true
}

// GetEventTypes returns event types for SSE endpoint registration.
func GetEventTypes() map[string]any {
	return map[string]any{
		"generator-stats": events.GeneratorStatsEvent{},
	}
}
