package ffmpeg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// activeFilters returns the enabled filters sorted by Order. Ties keep list position.
func activeFilters(filters []Filter) []Filter {
	out := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f.IsEnabled() {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// FilterChain renders the enabled filters as a comma-joined filtergraph.
// It returns "" when no filter is enabled.
func FilterChain(filters []Filter) string {
	active := activeFilters(filters)
	parts := make([]string, 0, len(active))
	for _, f := range active {
		if s := RenderFilter(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}

// RenderFilter renders a single filter descriptor in filtergraph syntax.
func RenderFilter(f Filter) string {
	p := f.Params
	switch f.Type {
	case FilterScale:
		s := "scale=" + paramOr(p, "width", "-1") + ":" + paramOr(p, "height", "-1")
		if flags := param(p, "flags"); flags != "" {
			s += ":flags=" + flags
		}
		return s
	case FilterFPS:
		return "fps=" + paramOr(p, "fps", "30")
	case FilterDeinterlace:
		if mode := param(p, "mode"); mode != "" {
			return "yadif=mode=" + mode
		}
		return "yadif"
	case FilterFormat:
		return "format=" + paramOr(p, "pixelFormat", "yuv420p")
	case FilterHWUpload:
		if n := param(p, "extraHwFrames"); n != "" {
			return "hwupload=extra_hw_frames=" + n
		}
		return "hwupload"
	case FilterHWDownload:
		return "hwdownload"
	case FilterCrop:
		return "crop=" + paramOr(p, "width", "iw") + ":" + paramOr(p, "height", "ih") + ":" +
			paramOr(p, "x", "0") + ":" + paramOr(p, "y", "0")
	case FilterPad:
		s := "pad=" + paramOr(p, "width", "iw") + ":" + paramOr(p, "height", "ih") + ":" +
			paramOr(p, "x", "0") + ":" + paramOr(p, "y", "0")
		if color := param(p, "color"); color != "" {
			s += ":color=" + color
		}
		return s
	case FilterTranspose:
		return "transpose=" + paramOr(p, "dir", "1")
	case FilterVolume:
		return "volume=" + paramOr(p, "volume", "1")
	case FilterLoudnorm:
		return "loudnorm=I=" + paramOr(p, "i", "-24") + ":TP=" + paramOr(p, "tp", "-2") +
			":LRA=" + paramOr(p, "lra", "7")
	case FilterAresample:
		return "aresample=" + paramOr(p, "sampleRate", "48000")
	case FilterAtempo:
		return "atempo=" + paramOr(p, "tempo", "1")
	case FilterCustom:
		return strings.TrimSpace(param(p, "filter"))
	default:
		return genericFilter(f.Type, p)
	}
}

// genericFilter renders type=k=v:k=v with keys sorted for determinism.
func genericFilter(t FilterType, p map[string]any) string {
	if len(p) == 0 {
		return string(t)
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+formatParam(p[k]))
	}
	return string(t) + "=" + strings.Join(pairs, ":")
}

func param(p map[string]any, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return formatParam(v)
}

func paramOr(p map[string]any, key, def string) string {
	if s := param(p, key); s != "" {
		return s
	}
	return def
}

// formatParam formats a decoded parameter value. JSON numbers arrive as float64,
// TOML integers as int64.
func formatParam(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// describeChain lists the filter descriptions in chain order for the -vf/-af annotation.
func describeChain(kind string, filters []Filter) string {
	active := activeFilters(filters)
	names := make([]string, 0, len(active))
	for _, f := range active {
		names = append(names, DescribeFilter(f.Type))
	}
	return fmt.Sprintf("%s filter chain: %s", kind, strings.Join(names, ", then "))
}
