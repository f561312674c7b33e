package presets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

func setupTestStore(t *testing.T) (*tomlStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "presets.toml")
	return NewTOML(path).(*tomlStore), path
}

func TestNewTOMLDefaultPath(t *testing.T) {
	s := NewTOML("").(*tomlStore)
	assert.Equal(t, DefaultPath, s.path)
	assert.Equal(t, fileVersion, s.data.Version)
	assert.NotNil(t, s.data.Presets)
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := setupTestStore(t)
	require.NoError(t, s.Load())
	assert.Empty(t, s.List())
}

func TestStoreRoundTripKeepsCommands(t *testing.T) {
	s, path := setupTestStore(t)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, b := range Builtin() {
		b.ID = "copy-" + b.ID
		b.System = false
		b.CreatedAt = created
		b.UpdatedAt = created
		require.NoError(t, s.Add(b))
	}

	_, err := os.Stat(path)
	require.NoError(t, err, "Add should create the file and its directory")

	reloaded := NewTOML(path)
	require.NoError(t, reloaded.Load())
	require.Len(t, reloaded.List(), len(Builtin()))

	for _, b := range Builtin() {
		got, ok := reloaded.Get("copy-" + b.ID)
		require.True(t, ok, b.ID)
		assert.Equal(t, b.Name, got.Name)
		assert.Equal(t, b.Kind, got.Kind)
		assert.False(t, got.System)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.Equal(t, ffmpeg.Generate(b.Config).Command, ffmpeg.Generate(got.Config).Command,
			"stored config of %s should generate the same command", b.ID)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s, path := setupTestStore(t)
	require.NoError(t, s.Add(Preset{ID: "a", Name: "A", Kind: KindPreset}))

	require.NoError(t, s.Update(Preset{ID: "a", Name: "A2", Kind: KindProfile}))
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A2", got.Name)

	require.NoError(t, s.Remove("a"))
	_, ok = s.Get("a")
	assert.False(t, ok)

	fresh := NewTOML(path)
	require.NoError(t, fresh.Load())
	assert.Empty(t, fresh.List())
}

func TestReplaceSkipsOwnWrites(t *testing.T) {
	s, path := setupTestStore(t)
	require.NoError(t, s.Add(Preset{ID: "a", Name: "A", Kind: KindPreset}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := s.Replace(data)
	require.NoError(t, err)
	assert.False(t, changed)

	external := []byte("version = 1\n\n[presets.b]\nname = \"B\"\n")
	changed, err = s.Replace(external)
	require.NoError(t, err)
	assert.True(t, changed)

	got, ok := s.Get("b")
	require.True(t, ok, "ID falls back to the table key")
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, KindPreset, got.Kind, "kind defaults to preset")
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestReplaceRejectsBadFiles(t *testing.T) {
	s, _ := setupTestStore(t)
	require.NoError(t, s.Add(Preset{ID: "keep", Name: "Keep"}))

	for name, data := range map[string]string{
		"syntax":  "[presets\n",
		"version": "version = 99\n",
	} {
		t.Run(name, func(t *testing.T) {
			changed, err := s.Replace([]byte(data))
			assert.Error(t, err)
			assert.False(t, changed)
			_, ok := s.Get("keep")
			assert.True(t, ok, "a bad file must not clear the store")
		})
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The parent of the presets file is a regular file, so saving fails.
	s := NewTOML(filepath.Join(blocker, "presets.toml"))
	assert.Error(t, s.Add(Preset{ID: "x", Name: "X"}))
	_, ok := s.Get("x")
	assert.False(t, ok)
}
