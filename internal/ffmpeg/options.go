package ffmpeg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option is one key/value entry of an ordered option map.
// An empty Value emits the flag alone (e.g. -re).
type Option struct {
	Key   string `json:"key" toml:"key" yaml:"key"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// Options is an ordered map of free-form flags. Emission follows slice order.
//
// JSON and YAML encode it as an object whose key order survives a round trip.
// TOML encodes it as an array of tables.
type Options []Option

// Flag returns the option key as a command-line flag.
func (o Option) Flag() string {
	return "-" + NormalizeKey(o.Key)
}

// NormalizeKey strips leading dashes so "-reconnect" and "reconnect" are the same key.
func NormalizeKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "-")
}

// Get returns the value stored for key.
func (o Options) Get(key string) (string, bool) {
	key = NormalizeKey(key)
	for _, opt := range o {
		if NormalizeKey(opt.Key) == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key in place, or appends it when absent.
// The receiver is not modified.
func (o Options) Set(key, value string) Options {
	out := make(Options, len(o), len(o)+1)
	copy(out, o)
	norm := NormalizeKey(key)
	for i := range out {
		if NormalizeKey(out[i].Key) == norm {
			out[i].Value = value
			return out
		}
	}
	return append(out, Option{Key: key, Value: value})
}

// Keys returns the normalized keys in order.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = NormalizeKey(opt.Key)
	}
	return keys
}

// MarshalJSON writes the options as a JSON object in slice order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(opt.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads either an object (order preserved) or an array of
// {"key","value"} pairs. Scalar values are stringified.
func (o *Options) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var pairs []Option
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		*o = pairs
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options: expected object, got %v", tok)
	}

	out := Options{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("options: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("options: unexpected key %v", keyTok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("options: value for %q: %w", key, err)
		}
		value, err := scalarString(raw)
		if err != nil {
			return fmt.Errorf("options: value for %q: %w", key, err)
		}
		out = append(out, Option{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	*o = out
	return nil
}

// MarshalYAML writes the options as a mapping node in slice order.
func (o Options) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, opt := range o {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: opt.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: opt.Value},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping (order preserved) or a sequence of key/value pairs.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Options, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("options: value for %q must be a scalar (line %d)", k.Value, v.Line)
			}
			out = append(out, Option{Key: k.Value, Value: yamlScalar(v)})
		}
		*o = out
		return nil
	case yaml.SequenceNode:
		var pairs []Option
		if err := node.Decode(&pairs); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		*o = pairs
		return nil
	default:
		return fmt.Errorf("options: expected mapping or sequence (line %d)", node.Line)
	}
}

func yamlScalar(v *yaml.Node) string {
	switch v.ShortTag() {
	case "!!null":
		return ""
	case "!!bool":
		var b bool
		if err := v.Decode(&b); err == nil {
			return boolFlagValue(b)
		}
	}
	return v.Value
}

func scalarString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return boolFlagValue(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", raw)
	}
}

// boolFlagValue renders booleans the way FFmpeg AVOptions expect them.
func boolFlagValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
