package events

// Event type constants for kelindar/event.
const (
	TypePresetCreated uint32 = iota + 1
	TypePresetUpdated
	TypePresetDeleted
	TypePresetsReloaded
	TypeCommandGenerated
	TypeGeneratorStats
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// PresetCreatedEvent is published after a preset is stored.
type PresetCreatedEvent struct {
	PresetID  string `json:"preset_id" example:"5f0c6e1e-8f1b-4d2a-9c3e-2b7f1f0a9d11" doc:"Preset identifier"`
	Name      string `json:"name" example:"IPTV H.264 720p" doc:"Preset name"`
	Kind      string `json:"kind" example:"preset" doc:"preset or profile"`
	Action    string `json:"action" example:"created" doc:"Action type"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PresetCreatedEvent.
func (e PresetCreatedEvent) Type() uint32 { return TypePresetCreated }

// PresetUpdatedEvent is published after a preset is replaced.
type PresetUpdatedEvent struct {
	PresetID  string `json:"preset_id" doc:"Preset identifier"`
	Name      string `json:"name" doc:"Preset name"`
	Kind      string `json:"kind" doc:"preset or profile"`
	Action    string `json:"action" example:"updated" doc:"Action type"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PresetUpdatedEvent.
func (e PresetUpdatedEvent) Type() uint32 { return TypePresetUpdated }

// PresetDeletedEvent is published after a preset is removed.
type PresetDeletedEvent struct {
	PresetID  string `json:"preset_id" doc:"Deleted preset identifier"`
	Action    string `json:"action" example:"deleted" doc:"Action type"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PresetDeletedEvent.
func (e PresetDeletedEvent) Type() uint32 { return TypePresetDeleted }

// PresetsReloadedEvent is published when the preset file is read again,
// e.g. after an edit on disk.
type PresetsReloadedEvent struct {
	Count     int    `json:"count" example:"12" doc:"Number of presets after the reload"`
	Source    string `json:"source" example:"file" doc:"What triggered the reload"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PresetsReloadedEvent.
func (e PresetsReloadedEvent) Type() uint32 { return TypePresetsReloaded }

// CommandGeneratedEvent is published for every generated command.
type CommandGeneratedEvent struct {
	Source    string   `json:"source" example:"api" doc:"api, preset or cli"`
	PresetID  string   `json:"preset_id,omitempty" doc:"Preset the command was generated from"`
	FlagCount int      `json:"flag_count" example:"14" doc:"Number of emitted flags"`
	Warnings  []string `json:"warnings" doc:"Rule identifiers of the raised warnings"`
	Timestamp string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CommandGeneratedEvent.
func (e CommandGeneratedEvent) Type() uint32 { return TypeCommandGenerated }

// GeneratorStatsEvent carries a periodic snapshot of generator counters.
type GeneratorStatsEvent struct {
	EventType string            `json:"type" example:"generator_stats"`
	Commands  string            `json:"commands" example:"42" doc:"Commands generated since start"`
	Warnings  map[string]string `json:"warnings" doc:"Warnings raised per rule since start"`
	Presets   string            `json:"presets" example:"12" doc:"Presets currently stored"`
}

// Type returns the event type identifier for GeneratorStatsEvent.
func (e GeneratorStatsEvent) Type() uint32 { return TypeGeneratorStats }

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"api" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
