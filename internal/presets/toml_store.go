package presets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is used when no presets file is configured.
const DefaultPath = "presets.toml"

const fileVersion = 1

// file is the on-disk layout of the presets file.
type file struct {
	Version int               `toml:"version"`
	Presets map[string]Preset `toml:"presets"`
}

// tomlStore implements Store on a TOML file replaced atomically on save.
type tomlStore struct {
	path string
	mu   sync.RWMutex
	data file
	raw  []byte
}

// NewTOML creates a TOML-backed store. Call Load before use.
func NewTOML(path string) Store {
	if path == "" {
		path = DefaultPath
	}
	return &tomlStore{
		path: path,
		data: file{Version: fileVersion, Presets: make(map[string]Preset)},
	}
}

// Load loads the presets file.
func (s *tomlStore) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read presets file: %w", err)
	}

	_, err = s.Replace(data)
	return err
}

func (s *tomlStore) Replace(data []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.raw != nil && bytes.Equal(data, s.raw) {
		return false, nil
	}

	decoded, err := decodeFile(data)
	if err != nil {
		return false, err
	}
	s.data = decoded
	s.raw = bytes.Clone(data)
	return true, nil
}

func decodeFile(data []byte) (file, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return file{}, fmt.Errorf("failed to parse presets file: %w", err)
	}
	if f.Version == 0 {
		f.Version = fileVersion
	}
	if f.Version > fileVersion {
		return file{}, fmt.Errorf("presets file version %d is newer than supported version %d", f.Version, fileVersion)
	}

	presets := make(map[string]Preset, len(f.Presets))
	for key, p := range f.Presets {
		if p.ID == "" {
			p.ID = key
		}
		if p.Kind == "" {
			p.Kind = KindPreset
		}
		presets[p.ID] = p
	}
	f.Presets = presets
	return f, nil
}

// save writes the file. Callers hold the write lock.
func (s *tomlStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}

	data, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}
	s.raw = data
	return nil
}

// mutate applies fn and saves, restoring the previous entry when the write fails.
func (s *tomlStore) mutate(id string, fn func(map[string]Preset)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data.Presets[id]
	fn(s.data.Presets)

	if err := s.save(); err != nil {
		if existed {
			s.data.Presets[id] = prev
		} else {
			delete(s.data.Presets, id)
		}
		return err
	}
	return nil
}

func (s *tomlStore) Add(p Preset) error {
	return s.mutate(p.ID, func(m map[string]Preset) { m[p.ID] = p })
}

func (s *tomlStore) Update(p Preset) error {
	return s.mutate(p.ID, func(m map[string]Preset) { m[p.ID] = p })
}

func (s *tomlStore) Remove(id string) error {
	return s.mutate(id, func(m map[string]Preset) { delete(m, id) })
}

func (s *tomlStore) Get(id string) (Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data.Presets[id]
	return p, ok
}

func (s *tomlStore) List() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Preset, 0, len(s.data.Presets))
	for _, p := range s.data.Presets {
		out = append(out, p)
	}
	return out
}
