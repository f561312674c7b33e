package encoders

import (
	"regexp"
	"strings"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

// EncoderType represents the type of encoder (video, audio).
type EncoderType string

// Encoder types, matching the letters in `ffmpeg -encoders`.
const (
	VideoEncoder EncoderType = "V"
	AudioEncoder EncoderType = "A"
)

// Encoder represents an FFmpeg encoder known to the console.
type Encoder struct {
	Type        EncoderType `json:"type" enum:"V,A" doc:"V for video, A for audio"`
	Name        string      `json:"name" example:"h264_nvenc" doc:"FFmpeg encoder name"`
	Description string      `json:"description" doc:"Human-readable description"`
	Codec       string      `json:"codec,omitempty" example:"h264" doc:"Codec family"`
	HWAccel     string      `json:"hwaccel,omitempty" example:"nvenc" doc:"Hardware family, empty for software encoders"`
	Available   bool        `json:"available" doc:"Whether the host reported the hardware this encoder needs"`
}

// EncoderList holds a categorized list of encoders.
type EncoderList struct {
	VideoEncoders []Encoder `json:"video_encoders"`
	AudioEncoders []Encoder `json:"audio_encoders"`
}

// EncoderFilter represents filter options for encoders.
type EncoderFilter struct {
	Type      string `json:"type"`      // V or A
	Search    string `json:"search"`    // matched against name or description
	Hwaccel   bool   `json:"hwaccel"`   // only hardware encoders
	Available bool   `json:"available"` // only available encoders
}

var hwaccelRegex = regexp.MustCompile(`(?i)(nvenc|qsv|amf|vaapi|videotoolbox|rkmpp|v4l2m2m|mediacodec|vulkan)`)

// HWAccelFamily returns the hardware family of an encoder name, or "" for
// software encoders.
func HWAccelFamily(encoder string) string {
	return strings.ToLower(hwaccelRegex.FindString(encoder))
}

// CodecFamily maps an encoder name to the codec it produces.
func CodecFamily(encoder string) string {
	name := strings.ToLower(encoder)
	switch {
	case strings.Contains(name, "h264"), strings.Contains(name, "x264"):
		return "h264"
	case strings.Contains(name, "hevc"), strings.Contains(name, "h265"), strings.Contains(name, "x265"):
		return "hevc"
	case strings.Contains(name, "av1"):
		return "av1"
	case strings.Contains(name, "vp9"):
		return "vp9"
	case strings.Contains(name, "mpeg2"):
		return "mpeg2"
	case strings.Contains(name, "aac"):
		return "aac"
	case strings.Contains(name, "opus"):
		return "opus"
	case strings.Contains(name, "mp3"):
		return "mp3"
	case name == "ac3", name == "eac3", name == "mp2", name == "flac":
		return name
	case strings.Contains(name, "vorbis"):
		return "vorbis"
	case strings.HasPrefix(name, "pcm_"):
		return "pcm"
	default:
		return ""
	}
}

// Catalog lists the encoders the generator can describe, marking hardware
// encoders available when capabilities names them or their family.
// The copy sentinel is not an encoder and is left out.
func Catalog(capabilities []string) EncoderList {
	caps := newCapabilitySet(capabilities)
	tables := ffmpeg.Catalog()

	build := func(t EncoderType, entries []ffmpeg.CatalogEntry) []Encoder {
		out := make([]Encoder, 0, len(entries))
		for _, e := range entries {
			if e.Value == ffmpeg.CodecCopy {
				continue
			}
			out = append(out, Encoder{
				Type:        t,
				Name:        e.Value,
				Description: e.Description,
				Codec:       CodecFamily(e.Value),
				HWAccel:     HWAccelFamily(e.Value),
				Available:   caps.supports(e.Value),
			})
		}
		return out
	}

	return EncoderList{
		VideoEncoders: build(VideoEncoder, tables.VideoCodecs),
		AudioEncoders: build(AudioEncoder, tables.AudioCodecs),
	}
}

// FilterEncoders applies filters to a list of encoders.
func FilterEncoders(encoders EncoderList, filter EncoderFilter) EncoderList {
	searchTerm := strings.ToLower(filter.Search)

	matches := func(encoder Encoder) bool {
		if filter.Type != "" && string(encoder.Type) != filter.Type {
			return false
		}
		if filter.Hwaccel && encoder.HWAccel == "" {
			return false
		}
		if filter.Available && !encoder.Available {
			return false
		}
		if searchTerm != "" &&
			!strings.Contains(strings.ToLower(encoder.Name), searchTerm) &&
			!strings.Contains(strings.ToLower(encoder.Description), searchTerm) {
			return false
		}
		return true
	}

	keep := func(in []Encoder) []Encoder {
		out := []Encoder{}
		for _, e := range in {
			if matches(e) {
				out = append(out, e)
			}
		}
		return out
	}

	return EncoderList{
		VideoEncoders: keep(encoders.VideoEncoders),
		AudioEncoders: keep(encoders.AudioEncoders),
	}
}
