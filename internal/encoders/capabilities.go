package encoders

import (
	"context"
	"slices"
	"strings"
)

// CapabilityProvider supplies the hardware encoder identifiers available on
// the host. Entries are encoder names (h264_nvenc) or hardware families
// (nvenc, vaapi). The generator never consults it; the console uses it to
// grey out encoders that cannot run.
type CapabilityProvider interface {
	HardwareCapabilities(ctx context.Context) ([]string, error)
}

// hwaccelAliases maps decode APIs to the encoder family they imply.
var hwaccelAliases = map[string]string{
	"cuda":     "nvenc",
	"nvidia":   "nvenc",
	"intel":    "qsv",
	"amd":      "amf",
	"apple":    "videotoolbox",
	"rockchip": "rkmpp",
}

// StaticProvider reports a fixed capability list, typically from configuration.
type StaticProvider struct {
	capabilities []string
}

// NewStaticProvider normalizes capabilities to lowercase, drops blanks and
// duplicates, and sorts them.
func NewStaticProvider(capabilities []string) *StaticProvider {
	out := make([]string, 0, len(capabilities))
	for _, c := range capabilities {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return &StaticProvider{capabilities: slices.Compact(out)}
}

// HardwareCapabilities implements CapabilityProvider.
func (p *StaticProvider) HardwareCapabilities(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(p.capabilities), nil
}

type capabilitySet map[string]bool

func newCapabilitySet(capabilities []string) capabilitySet {
	set := make(capabilitySet, len(capabilities))
	for _, c := range capabilities {
		c = strings.ToLower(strings.TrimSpace(c))
		if alias, ok := hwaccelAliases[c]; ok {
			c = alias
		}
		set[c] = true
	}
	return set
}

// supports reports whether encoder can run: software encoders always can,
// hardware encoders need their name or family in the set.
func (s capabilitySet) supports(encoder string) bool {
	family := HWAccelFamily(encoder)
	if family == "" {
		return true
	}
	return s[strings.ToLower(encoder)] || s[family]
}

// Available reports whether encoder can run given capabilities.
func Available(encoder string, capabilities []string) bool {
	return newCapabilitySet(capabilities).supports(encoder)
}
