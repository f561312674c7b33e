package presets

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/config"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/logging"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/metrics"
)

// Event sources for CommandGeneratedEvent and PresetsReloadedEvent.
const (
	SourcePreset = "preset"
	SourceFile   = "file"
	SourceManual = "manual"
)

// Service defines preset operations.
type Service interface {
	List(ctx context.Context) ([]Preset, error)
	Get(ctx context.Context, id string) (*Preset, error)
	Create(ctx context.Context, params CreateParams) (*Preset, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Preset, error)
	Delete(ctx context.Context, id string) error
	Reload(ctx context.Context) (int, error)
	Preview(ctx context.Context, id string) (*ffmpeg.Result, error)
	Watch(path string, debounce time.Duration) (func() error, error)
}

// Options configures the service.
type Options struct {
	Store    Store
	EventBus *events.Bus
	Logger   *slog.Logger
	Now      func() time.Time
}

type service struct {
	store    Store
	eventBus *events.Bus
	logger   *slog.Logger
	now      func() time.Time

	// serializes read-modify-write sequences on the store
	mu sync.Mutex
}

// NewService creates the preset service and loads the store.
func NewService(opts Options) (Service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("presets: store is required")
	}

	s := &service{
		store:    opts.Store,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = logging.GetLogger("presets")
	}
	if s.now == nil {
		s.now = time.Now
	}

	if err := s.store.Load(); err != nil {
		metrics.RecordPresetStoreError("load")
		return nil, NewPresetError(ErrCodeStoreError, "failed to load presets", err)
	}

	count := len(s.store.List())
	metrics.SetPresetCount(count)
	s.logger.Info("Loaded presets", "stored", count, "builtin", len(Builtin()))
	return s, nil
}

// List returns built-in presets first, then stored presets by name.
func (s *service) List(_ context.Context) ([]Preset, error) {
	stored := s.store.List()
	slices.SortFunc(stored, func(a, b Preset) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return append(Builtin(), stored...), nil
}

func (s *service) Get(_ context.Context, id string) (*Preset, error) {
	if p, ok := builtinByID(id); ok {
		return &p, nil
	}
	p, ok := s.store.Get(id)
	if !ok {
		return nil, NewPresetError(ErrCodePresetNotFound, fmt.Sprintf("preset %s not found", id), nil)
	}
	return &p, nil
}

func (s *service) Create(_ context.Context, params CreateParams) (*Preset, error) {
	name, kind, err := normalize(params.Name, params.Kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, taken := s.findByName(name, kind, ""); taken {
		return nil, NewPresetError(ErrCodePresetExists,
			fmt.Sprintf("%s %q already exists (%s)", kind, name, existing.ID), nil)
	}

	now := s.now().UTC()
	p := Preset{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		Kind:        kind,
		Config:      params.Config,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Add(p); err != nil {
		metrics.RecordPresetStoreError("add")
		return nil, NewPresetError(ErrCodeStoreError, "failed to save preset", err)
	}
	metrics.SetPresetCount(len(s.store.List()))

	s.logger.Info("Preset created", "preset_id", p.ID, "name", p.Name, "kind", p.Kind)
	s.publish(events.PresetCreatedEvent{
		PresetID:  p.ID,
		Name:      p.Name,
		Kind:      string(p.Kind),
		Action:    "created",
		Timestamp: now.Format(time.RFC3339),
	})
	return &p, nil
}

func (s *service) Update(_ context.Context, id string, params UpdateParams) (*Preset, error) {
	if _, ok := builtinByID(id); ok {
		return nil, NewPresetError(ErrCodeReadOnly, fmt.Sprintf("preset %s is built in", id), nil)
	}

	name, kind, err := normalize(params.Name, params.Kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.store.Get(id)
	if !ok {
		return nil, NewPresetError(ErrCodePresetNotFound, fmt.Sprintf("preset %s not found", id), nil)
	}
	if other, taken := s.findByName(name, kind, id); taken {
		return nil, NewPresetError(ErrCodePresetExists,
			fmt.Sprintf("%s %q already exists (%s)", kind, name, other.ID), nil)
	}

	now := s.now().UTC()
	updated := Preset{
		ID:          existing.ID,
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		Kind:        kind,
		Config:      params.Config,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   now,
	}

	if err := s.store.Update(updated); err != nil {
		metrics.RecordPresetStoreError("update")
		return nil, NewPresetError(ErrCodeStoreError, "failed to save preset", err)
	}

	s.logger.Info("Preset updated", "preset_id", id, "name", name)
	s.publish(events.PresetUpdatedEvent{
		PresetID:  id,
		Name:      name,
		Kind:      string(kind),
		Action:    "updated",
		Timestamp: now.Format(time.RFC3339),
	})
	return &updated, nil
}

func (s *service) Delete(_ context.Context, id string) error {
	if _, ok := builtinByID(id); ok {
		return NewPresetError(ErrCodeReadOnly, fmt.Sprintf("preset %s is built in", id), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Get(id); !ok {
		return NewPresetError(ErrCodePresetNotFound, fmt.Sprintf("preset %s not found", id), nil)
	}
	if err := s.store.Remove(id); err != nil {
		metrics.RecordPresetStoreError("remove")
		return NewPresetError(ErrCodeStoreError, "failed to delete preset", err)
	}
	metrics.SetPresetCount(len(s.store.List()))

	s.logger.Info("Preset deleted", "preset_id", id)
	s.publish(events.PresetDeletedEvent{
		PresetID:  id,
		Action:    "deleted",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	return nil
}

// Reload re-reads the store from disk and returns the stored preset count.
func (s *service) Reload(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(); err != nil {
		metrics.RecordPresetStoreError("load")
		return 0, NewPresetError(ErrCodeStoreError, "failed to reload presets", err)
	}
	return s.reloaded(SourceManual), nil
}

// reloaded refreshes the gauge and announces the new contents. Callers hold mu.
func (s *service) reloaded(source string) int {
	count := len(s.store.List())
	metrics.SetPresetCount(count)
	s.logger.Info("Presets reloaded", "count", count, "source", source)
	s.publish(events.PresetsReloadedEvent{
		Count:     count,
		Source:    source,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	return count
}

// Preview generates the command a stored preset describes.
func (s *service) Preview(ctx context.Context, id string) (*ffmpeg.Result, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := ffmpeg.Generate(p.Config)
	s.publish(events.CommandGeneratedEvent{
		Source:    SourcePreset,
		PresetID:  p.ID,
		FlagCount: len(res.Flags),
		Warnings:  WarningRules(res.WarningDetails),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	return &res, nil
}

// Watch reloads the store whenever path changes on disk. Writes made by the
// store itself are recognized and skipped.
func (s *service) Watch(path string, debounce time.Duration) (func() error, error) {
	w := config.NewConfigWatcher(path, os.ReadFile, s.logger,
		config.WithDebounce[[]byte](debounce),
		config.WithErrorHandler[[]byte](func(error) {
			metrics.RecordPresetStoreError("watch")
		}),
	)
	w.OnReload(s.applyFile)

	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch presets file: %w", err)
	}
	return w.Stop, nil
}

func (s *service) applyFile(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.store.Replace(data)
	if err != nil {
		metrics.RecordPresetStoreError("watch")
		s.logger.Warn("Ignoring invalid presets file", "error", err)
		return
	}
	if !changed {
		s.logger.Debug("Presets file unchanged")
		return
	}
	s.reloaded(SourceFile)
}

// findByName looks for a preset of the same kind and name, ignoring case
// and the preset with ID skip.
func (s *service) findByName(name string, kind Kind, skip string) (Preset, bool) {
	for _, p := range append(Builtin(), s.store.List()...) {
		if p.ID != skip && p.Kind == kind && strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

func (s *service) publish(ev events.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(ev)
	}
}

// WarningRules lists the rule identifiers of warnings, in order.
func WarningRules(warnings []ffmpeg.Warning) []string {
	rules := make([]string, 0, len(warnings))
	for _, w := range warnings {
		rules = append(rules, w.Rule)
	}
	return rules
}
