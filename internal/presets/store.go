package presets

// Store persists user presets. Built-in presets never reach the store.
type Store interface {
	// Load reads the backing file. A missing file is an empty store.
	Load() error

	// Replace swaps the contents for data, as read from the backing file.
	// It reports false when data matches what the store last read or wrote.
	Replace(data []byte) (bool, error)

	// Add stores a new preset.
	Add(p Preset) error

	// Update replaces an existing preset.
	Update(p Preset) error

	// Remove deletes a preset by ID.
	Remove(id string) error

	// Get retrieves a preset by ID.
	Get(id string) (Preset, bool)

	// List returns all stored presets in no particular order.
	List() []Preset
}
