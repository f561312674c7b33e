package ffmpeg

import (
	"fmt"
	"strings"
)

// Warning rule identifiers.
const (
	RuleContainerCodec    = "container-codec"
	RuleAudioFiltersCopy  = "audio-filters-copy"
	RuleVAAPIHWUpload     = "vaapi-hwupload"
	RuleVideoFiltersCopy  = "video-filters-copy"
	RuleMovflagsContainer = "movflags-container"
)

// Warning is an advisory compatibility finding. It never blocks generation.
type Warning struct {
	Rule    string `json:"rule" doc:"Rule identifier"`
	Message string `json:"message" doc:"Human-readable warning"`
}

var h26xEncoders = []string{
	"libx264", "libx265",
	"h264_nvenc", "hevc_nvenc",
	"h264_qsv", "hevc_qsv",
	"h264_vaapi", "hevc_vaapi",
	"h264_videotoolbox", "hevc_videotoolbox",
	"h264_amf", "hevc_amf",
	"h264_rkmpp", "hevc_rkmpp",
	"h264_v4l2m2m",
	"mpeg2video",
}

// restrictedContainers lists the video encoders each restrictive container carries well.
var restrictedContainers = map[string][]string{
	"ts":  h26xEncoders,
	"hls": h26xEncoders,
	"dash": append(append([]string{}, h26xEncoders...),
		"libvpx-vp9", "vp9_qsv", "vp9_vaapi",
		"libaom-av1", "libsvtav1", "av1_nvenc", "av1_qsv", "av1_vaapi", "av1_amf",
	),
}

// containerAliases maps alternative identifiers onto a restricted container.
var containerAliases = map[string]string{
	"mpegts": "ts",
}

var movflagsContainers = map[string]bool{"mp4": true, "mov": true}

type rule func(cfg *Config) (Warning, bool)

// rules run in this order; each one is independent of the others.
var rules = []rule{
	checkContainerCodec,
	checkAudioFiltersCopy,
	checkVAAPIHWUpload,
	checkVideoFiltersCopy,
	checkMovflagsContainer,
}

// Check evaluates every warning rule against cfg. The result is never nil.
func Check(cfg Config) []Warning {
	warnings := []Warning{}
	for _, r := range rules {
		if w, ok := r(&cfg); ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// Messages returns the message of every warning, in order. The result is never nil.
func Messages(warnings []Warning) []string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return msgs
}

func containerID(format string) string {
	id := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := containerAliases[id]; ok {
		return alias
	}
	return id
}

func checkContainerCodec(cfg *Config) (Warning, bool) {
	v := cfg.VideoCodec
	if v == nil || v.Codec == "" || v.IsCopy() {
		return Warning{}, false
	}
	container := containerID(cfg.Output.Format)
	allowed, ok := restrictedContainers[container]
	if !ok {
		return Warning{}, false
	}
	for _, c := range allowed {
		if strings.EqualFold(c, v.Codec) {
			return Warning{}, false
		}
	}
	return Warning{
		Rule: RuleContainerCodec,
		Message: fmt.Sprintf("Video codec %s is not recommended for the %s container; use an H.264 or HEVC encoder",
			v.Codec, container),
	}, true
}

func checkAudioFiltersCopy(cfg *Config) (Warning, bool) {
	if !cfg.AudioCodec.IsCopy() || len(activeFilters(cfg.AudioFilters)) == 0 {
		return Warning{}, false
	}
	return Warning{
		Rule:    RuleAudioFiltersCopy,
		Message: "Audio filters are ignored when the audio codec is copy; the stream is not decoded",
	}, true
}

func checkVAAPIHWUpload(cfg *Config) (Warning, bool) {
	v := cfg.VideoCodec
	if v == nil || !strings.HasSuffix(strings.ToLower(v.Codec), "_vaapi") {
		return Warning{}, false
	}
	active := activeFilters(cfg.VideoFilters)
	if len(active) == 0 {
		return Warning{}, false
	}
	for _, f := range active {
		if f.Type == FilterHWUpload {
			return Warning{}, false
		}
	}
	return Warning{
		Rule:    RuleVAAPIHWUpload,
		Message: fmt.Sprintf("%s with video filters needs a hwupload filter after the software filters", v.Codec),
	}, true
}

func checkVideoFiltersCopy(cfg *Config) (Warning, bool) {
	if !cfg.VideoCodec.IsCopy() || len(activeFilters(cfg.VideoFilters)) == 0 {
		return Warning{}, false
	}
	return Warning{
		Rule:    RuleVideoFiltersCopy,
		Message: "Video filters are ignored when the video codec is copy; the stream is not decoded",
	}, true
}

func checkMovflagsContainer(cfg *Config) (Warning, bool) {
	if len(cfg.Output.Movflags) == 0 {
		return Warning{}, false
	}
	container := containerID(cfg.Output.Format)
	if movflagsContainers[container] {
		return Warning{}, false
	}
	if container == "" {
		container = "unspecified"
	}
	return Warning{
		Rule:    RuleMovflagsContainer,
		Message: fmt.Sprintf("movflags only apply to MP4/MOV output and are dropped for the %s container", container),
	}, true
}
