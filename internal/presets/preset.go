package presets

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

// Kind separates reusable encoding presets from full channel profiles.
type Kind string

// Preset kinds.
const (
	KindPreset  Kind = "preset"
	KindProfile Kind = "profile"
)

const maxNameLength = 100

// Preset is a named, stored encoding configuration.
type Preset struct {
	ID          string        `json:"id" toml:"id" yaml:"id"`
	Name        string        `json:"name" toml:"name" yaml:"name"`
	Description string        `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind          `json:"kind" toml:"kind" yaml:"kind"`
	System      bool          `json:"system" toml:"-" yaml:"-"`
	Config      ffmpeg.Config `json:"config" toml:"config" yaml:"config"`
	CreatedAt   time.Time     `json:"createdAt" toml:"created_at" yaml:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" toml:"updated_at" yaml:"updatedAt"`
}

// CreateParams contains parameters for creating a preset.
type CreateParams struct {
	Name        string
	Description string
	Kind        Kind
	Config      ffmpeg.Config
}

// UpdateParams replaces the editable fields of a preset.
type UpdateParams struct {
	Name        string
	Description string
	Kind        Kind
	Config      ffmpeg.Config
}

// normalize trims the name and defaults the kind, returning an
// INVALID_PARAMS error when either is unusable.
func normalize(name string, kind Kind) (string, Kind, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", NewPresetError(ErrCodeInvalidParams, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", "", NewPresetError(ErrCodeInvalidParams,
			fmt.Sprintf("name exceeds %d characters", maxNameLength), nil)
	}

	switch kind {
	case "":
		kind = KindPreset
	case KindPreset, KindProfile:
	default:
		return "", "", NewPresetError(ErrCodeInvalidParams,
			fmt.Sprintf("invalid kind: %s (must be preset or profile)", kind), nil)
	}
	return name, kind, nil
}
