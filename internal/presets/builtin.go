package presets

import (
	"time"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

var builtinTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

// streamInput is the input every built-in profile starts from: the channel's
// stream URL, reconnecting on drops.
func streamInput() ffmpeg.InputConfig {
	return ffmpeg.InputConfig{
		Type: ffmpeg.InputURL,
		Path: "{streamUrl}",
		Options: ffmpeg.Options{
			{Key: "reconnect", Value: "1"},
			{Key: "reconnect_streamed", Value: "1"},
			{Key: "reconnect_delay_max", Value: "5"},
		},
	}
}

func pipeOutput() ffmpeg.OutputConfig {
	return ffmpeg.OutputConfig{Path: "pipe:1", Format: "ts"}
}

func quietGlobals() ffmpeg.Options {
	return ffmpeg.Options{
		{Key: "hide_banner", Value: ""},
		{Key: "loglevel", Value: "warning"},
	}
}

// Builtin returns the read-only system presets. Each call builds fresh
// values so callers may modify what they get.
func Builtin() []Preset {
	system := func(id, name, desc string, kind Kind, cfg ffmpeg.Config) Preset {
		return Preset{
			ID:          id,
			Name:        name,
			Description: desc,
			Kind:        kind,
			System:      true,
			Config:      cfg,
			CreatedAt:   builtinTime,
			UpdatedAt:   builtinTime,
		}
	}

	return []Preset{
		system("system-passthrough", "Passthrough (MPEG-TS)",
			"Remux the upstream stream to MPEG-TS without re-encoding", KindProfile,
			ffmpeg.Config{
				Input:         streamInput(),
				Output:        pipeOutput(),
				VideoCodec:    &ffmpeg.VideoCodecConfig{Codec: ffmpeg.CodecCopy},
				AudioCodec:    &ffmpeg.AudioCodecConfig{Codec: ffmpeg.CodecCopy},
				GlobalOptions: quietGlobals(),
			}),
		system("system-x264-720p", "H.264 720p (software)",
			"libx264 at 720p with AAC stereo, suited to low-power clients", KindProfile,
			ffmpeg.Config{
				Input:  streamInput(),
				Output: pipeOutput(),
				VideoCodec: &ffmpeg.VideoCodecConfig{
					Codec:            "libx264",
					RateControl:      ffmpeg.RateControlCRF,
					CRF:              intPtr(23),
					Preset:           "veryfast",
					Tune:             "zerolatency",
					PixelFormat:      "yuv420p",
					KeyframeInterval: intPtr(50),
				},
				AudioCodec: &ffmpeg.AudioCodecConfig{Codec: "aac", Bitrate: "128k", Channels: intPtr(2)},
				VideoFilters: []ffmpeg.Filter{
					{Type: ffmpeg.FilterScale, Params: map[string]any{"width": 1280, "height": 720}},
				},
				GlobalOptions: quietGlobals(),
			}),
		system("system-nvenc-1080p", "H.264 1080p (NVENC)",
			"CUDA decode and NVENC encode at constant quality", KindProfile,
			ffmpeg.Config{
				Input: func() ffmpeg.InputConfig {
					in := streamInput()
					in.HWAccel = &ffmpeg.HWAccelConfig{API: ffmpeg.HWAccelCUDA, OutputFormat: "cuda"}
					return in
				}(),
				Output: pipeOutput(),
				VideoCodec: &ffmpeg.VideoCodecConfig{
					Codec:            "h264_nvenc",
					RateControl:      ffmpeg.RateControlCQ,
					CQ:               intPtr(23),
					Preset:           "p4",
					KeyframeInterval: intPtr(60),
				},
				AudioCodec:    &ffmpeg.AudioCodecConfig{Codec: "aac", Bitrate: "192k"},
				GlobalOptions: quietGlobals(),
			}),
		system("system-vaapi-h264", "H.264 (VAAPI)",
			"Intel/AMD VAAPI encode with frames uploaded to the GPU", KindProfile,
			ffmpeg.Config{
				Input: func() ffmpeg.InputConfig {
					in := streamInput()
					in.HWAccel = &ffmpeg.HWAccelConfig{API: ffmpeg.HWAccelVAAPI, Device: "/dev/dri/renderD128"}
					return in
				}(),
				Output: pipeOutput(),
				VideoCodec: &ffmpeg.VideoCodecConfig{
					Codec:         "h264_vaapi",
					RateControl:   ffmpeg.RateControlGlobalQuality,
					GlobalQuality: intPtr(25),
				},
				AudioCodec: &ffmpeg.AudioCodecConfig{Codec: ffmpeg.CodecCopy},
				VideoFilters: []ffmpeg.Filter{
					{Type: ffmpeg.FilterFormat, Order: 0, Params: map[string]any{"pixelFormat": "nv12"}},
					{Type: ffmpeg.FilterHWUpload, Order: 1},
				},
				GlobalOptions: quietGlobals(),
			}),
		system("system-loudnorm", "Loudness normalization",
			"Keep the video, re-encode audio normalized to EBU R128", KindPreset,
			ffmpeg.Config{
				Input:      streamInput(),
				Output:     pipeOutput(),
				VideoCodec: &ffmpeg.VideoCodecConfig{Codec: ffmpeg.CodecCopy},
				AudioCodec: &ffmpeg.AudioCodecConfig{Codec: "aac", Bitrate: "192k", SampleRate: intPtr(48000)},
				AudioFilters: []ffmpeg.Filter{
					{Type: ffmpeg.FilterLoudnorm},
				},
				GlobalOptions: quietGlobals(),
			}),
	}
}

func builtinByID(id string) (Preset, bool) {
	for _, p := range Builtin() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
