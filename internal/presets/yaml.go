package presets

import (
	"errors"
	"fmt"
	"io"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
	"gopkg.in/yaml.v3"
)

// Document is the portable YAML form of a preset. IDs and timestamps stay
// behind so a document can be imported into any installation.
type Document struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Kind        Kind          `yaml:"kind"`
	Config      ffmpeg.Config `yaml:"config"`
}

// ExportYAML writes p as a YAML document.
func ExportYAML(w io.Writer, p Preset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := Document{
		Name:        p.Name,
		Description: p.Description,
		Kind:        p.Kind,
		Config:      p.Config,
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads a single YAML document into create parameters.
// Unknown fields are rejected.
func ImportYAML(r io.Reader) (CreateParams, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return CreateParams{}, NewPresetError(ErrCodeInvalidParams, "empty preset document", nil)
		}
		return CreateParams{}, NewPresetError(ErrCodeInvalidParams, "invalid preset document", err)
	}

	return CreateParams{
		Name:        doc.Name,
		Description: doc.Description,
		Kind:        doc.Kind,
		Config:      doc.Config,
	}, nil
}
