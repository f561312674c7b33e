// Package metrics provides Prometheus metrics for command generation and the preset store.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
)

const namespace = "ecm"

var (
	commandsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ffmpeg",
		Name:      "commands_generated_total",
		Help:      "Generated FFmpeg commands",
	}, []string{"source"})

	warningsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ffmpeg",
		Name:      "warnings_total",
		Help:      "Compatibility warnings raised by generated commands",
	}, []string{"rule"})

	commandFlags = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ffmpeg",
		Name:      "command_flags",
		Help:      "Number of flags per generated command",
		Buckets:   prometheus.LinearBuckets(4, 4, 10),
	})

	presetsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "presets",
		Name:      "stored",
		Help:      "Presets and profiles stored in the presets file, excluding built-ins",
	})

	presetStoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "presets",
		Name:      "store_errors_total",
		Help:      "Failed preset store operations",
	}, []string{"op"})

	// Local totals for the SSE exporter; Prometheus counters cannot be read back.
	stats   = GeneratorStats{Warnings: make(map[string]uint64)}
	statsMu sync.RWMutex
)

// GeneratorStats is a snapshot of the generator counters.
type GeneratorStats struct {
	Commands uint64
	Warnings map[string]uint64
	Presets  int
}

// RecordGeneration counts one generated command and the warning rules it raised.
func RecordGeneration(source string, flagCount int, rules []string) {
	commandsGenerated.WithLabelValues(source).Inc()
	commandFlags.Observe(float64(flagCount))
	for _, rule := range rules {
		warningsRaised.WithLabelValues(rule).Inc()
	}

	statsMu.Lock()
	defer statsMu.Unlock()
	stats.Commands++
	for _, rule := range rules {
		stats.Warnings[rule]++
	}
}

// SetPresetCount sets the number of presets held in the presets file.
// Built-in presets are not counted.
func SetPresetCount(n int) {
	presetsStored.Set(float64(n))

	statsMu.Lock()
	stats.Presets = n
	statsMu.Unlock()
}

// RecordPresetStoreError counts a failed store operation.
func RecordPresetStoreError(op string) {
	presetStoreErrors.WithLabelValues(op).Inc()
}

// Snapshot returns a copy of the current totals.
func Snapshot() GeneratorStats {
	statsMu.RLock()
	defer statsMu.RUnlock()
	warnings := make(map[string]uint64, len(stats.Warnings))
	for rule, n := range stats.Warnings {
		warnings[rule] = n
	}
	return GeneratorStats{Commands: stats.Commands, Warnings: warnings, Presets: stats.Presets}
}

// Subscribe records every CommandGeneratedEvent published on bus.
// Returns the unsubscribe function.
func Subscribe(bus *events.Bus) func() {
	return bus.Subscribe(func(e events.CommandGeneratedEvent) {
		RecordGeneration(e.Source, e.FlagCount, e.Warnings)
	})
}
