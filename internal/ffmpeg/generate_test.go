package ffmpeg

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func disabled() *bool { return new(bool) }

func fullConfig() Config {
	return Config{
		GlobalOptions: Options{{Key: "hide_banner"}, {Key: "-loglevel", Value: "warning"}},
		Input: InputConfig{
			Type:   InputURL,
			Path:   "{streamUrl}",
			Format: "mpegts",
			HWAccel: &HWAccelConfig{
				API:          HWAccelVAAPI,
				Device:       "/dev/dri/renderD128",
				OutputFormat: "vaapi",
			},
			Options: Options{{Key: "reconnect", Value: "1"}, {Key: "reconnect_delay_max", Value: "5"}},
		},
		StreamMappings: []StreamMapping{
			{InputIndex: 0, StreamType: StreamVideo, StreamIndex: 0, OutputIndex: 0},
			{InputIndex: 0, StreamType: StreamAudio, StreamIndex: 1, OutputIndex: 1},
		},
		VideoCodec: &VideoCodecConfig{
			Codec:            "h264_vaapi",
			RateControl:      RateControlVBR,
			Bitrate:          "4M",
			MaxBitrate:       "6M",
			Bufsize:          "8M",
			Profile:          "high",
			Level:            "4.1",
			BFrames:          intPtr(0),
			KeyframeInterval: intPtr(50),
			SCThreshold:      intPtr(0),
		},
		VideoFilters: []Filter{
			{Type: FilterHWUpload, Order: 2},
			{Type: FilterFormat, Order: 1, Params: map[string]any{"pixelFormat": "nv12"}},
			{Type: FilterDeinterlace, Order: 0},
		},
		AudioCodec: &AudioCodecConfig{
			Codec:      "aac",
			Bitrate:    "128k",
			SampleRate: intPtr(48000),
			Channels:   intPtr(2),
		},
		AudioFilters: []Filter{{Type: FilterLoudnorm}},
		Output: OutputConfig{
			Path:      "pipe:1",
			Format:    "ts",
			Overwrite: true,
			Options:   Options{{Key: "muxdelay", Value: "0"}},
		},
	}
}

func TestGenerateFullOrder(t *testing.T) {
	got := Generate(fullConfig())

	want := "ffmpeg -y -hide_banner -loglevel warning" +
		" -vaapi_device /dev/dri/renderD128 -hwaccel vaapi -hwaccel_output_format vaapi" +
		" -f mpegts -reconnect 1 -reconnect_delay_max 5 -i {streamUrl}" +
		" -map 0:v:0 -map 0:a:1" +
		" -c:v h264_vaapi -b:v 4M -maxrate 6M -bufsize 8M -profile:v high -level 4.1 -bf 0" +
		" -g 50 -sc_threshold 0" +
		` -vf "yadif,format=nv12,hwupload"` +
		" -c:a aac -b:a 128k -ar 48000 -ac 2" +
		` -af "loudnorm=I=-24:TP=-2:LRA=7"` +
		" -f mpegts -muxdelay 0 pipe:1"

	if diff := cmp.Diff(want, got.Command); diff != "" {
		t.Errorf("Command mismatch (-want +got):\n%s", diff)
	}
	if got.Warnings == nil || len(got.Warnings) != 0 {
		t.Errorf("Warnings = %#v, want empty non-nil slice", got.Warnings)
	}
}

func TestGenerateCategories(t *testing.T) {
	got := Generate(fullConfig())

	want := map[string]Category{
		"ffmpeg":                           CategoryGlobal,
		"-y":                               CategoryGlobal,
		"-loglevel warning":                CategoryGlobal,
		"-hwaccel vaapi":                   CategoryInput,
		"-f mpegts":                        CategoryInput,
		"-i {streamUrl}":                   CategoryInput,
		"-map 0:v:0":                       CategoryOutput,
		"-c:v h264_vaapi":                  CategoryVideo,
		"-g 50":                            CategoryVideo,
		`-vf "yadif,format=nv12,hwupload"`: CategoryFilter,
		"-c:a aac":                         CategoryAudio,
		"-muxdelay 0":                      CategoryOutput,
		"pipe:1":                           CategoryOutput,
	}

	// -f mpegts appears twice; the first is the input demuxer.
	seen := map[string]bool{}
	for _, f := range got.Flags {
		if seen[f.Text] {
			continue
		}
		seen[f.Text] = true
		if cat, ok := want[f.Text]; ok && cat != f.Category {
			t.Errorf("flag %q category = %s, want %s", f.Text, f.Category, cat)
		}
	}

	last := got.Flags[len(got.Flags)-1]
	if last.Text != "pipe:1" || last.Category != CategoryOutput {
		t.Errorf("last flag = %+v, want output path", last)
	}
}

func TestGenerateScenarios(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		ordered []string
	}{
		{
			name: "software transcode",
			config: Config{
				Input:      InputConfig{Type: InputFile, Path: "/input/video.mp4"},
				Output:     OutputConfig{Path: "/output/result.mp4", Format: "mp4", Overwrite: true},
				VideoCodec: &VideoCodecConfig{Codec: "libx264", RateControl: RateControlCRF, CRF: intPtr(23)},
				AudioCodec: &AudioCodecConfig{Codec: "aac", Bitrate: "192k"},
			},
			ordered: []string{"ffmpeg", "-y", "-i /input/video.mp4", "-c:v libx264", "-crf 23", "-c:a aac", "-b:a 192k", "/output/result.mp4"},
		},
		{
			name: "cuda hardware pipeline",
			config: Config{
				Input: InputConfig{
					Type:    InputURL,
					Path:    "http://example.com/live.ts",
					HWAccel: &HWAccelConfig{API: HWAccelCUDA, OutputFormat: "cuda"},
				},
				Output:     OutputConfig{Path: "pipe:1", Format: "ts"},
				VideoCodec: &VideoCodecConfig{Codec: "h264_nvenc"},
			},
			ordered: []string{"-hwaccel cuda", "-hwaccel_output_format cuda", "-i http://example.com/live.ts", "-c:v h264_nvenc"},
		},
		{
			name: "stream mapping",
			config: Config{
				Input:  InputConfig{Type: InputFile, Path: "in.mkv"},
				Output: OutputConfig{Path: "out.mkv"},
				StreamMappings: []StreamMapping{
					{InputIndex: 0, StreamType: StreamVideo, StreamIndex: 0, OutputIndex: 0},
					{InputIndex: 0, StreamType: StreamAudio, StreamIndex: 1, OutputIndex: 1},
				},
			},
			ordered: []string{"-map 0:v:0", "-map 0:a:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Generate(tt.config).Command
			pos := -1
			for _, part := range tt.ordered {
				idx := strings.Index(cmd[pos+1:], part)
				if idx < 0 {
					t.Fatalf("command %q missing %q after position %d", cmd, part, pos)
				}
				pos += 1 + idx
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(fullConfig())
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Generate(fullConfig())); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestGenerateDoesNotModifyConfig(t *testing.T) {
	cfg := fullConfig()
	cfg.VideoFilters = append(cfg.VideoFilters, Filter{Type: FilterScale, Enabled: disabled(), Order: -1})
	before := fullConfig()
	before.VideoFilters = append(before.VideoFilters, Filter{Type: FilterScale, Enabled: disabled(), Order: -1})

	Generate(cfg)

	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Errorf("Generate modified its input (-before +after):\n%s", diff)
	}
}

func TestGenerateAnnotationsAligned(t *testing.T) {
	configs := map[string]Config{
		"full":  fullConfig(),
		"empty": {},
		"unknown values": {
			Input:      InputConfig{Path: "in", Format: "weird", Options: Options{{Key: "custom_flag", Value: "x"}}},
			Output:     OutputConfig{Path: "out", Format: "exotic"},
			VideoCodec: &VideoCodecConfig{Codec: "fancy264", Preset: "turbo", Tune: "magic", PixelFormat: "rgb48", Profile: "odd"},
			AudioCodec: &AudioCodecConfig{Codec: "strange", Profile: "x", Channels: intPtr(3)},
		},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			res := Generate(cfg)
			if len(res.Flags) != len(res.Annotations) {
				t.Fatalf("len(Flags)=%d len(Annotations)=%d", len(res.Flags), len(res.Annotations))
			}
			texts := make([]string, len(res.Flags))
			for i, f := range res.Flags {
				texts[i] = f.Text
				a := res.Annotations[i]
				if a.Flag != f.Text {
					t.Errorf("annotation %d flag = %q, want %q", i, a.Flag, f.Text)
				}
				if a.Category != f.Category {
					t.Errorf("annotation %d category = %s, want %s", i, a.Category, f.Category)
				}
				if strings.TrimSpace(a.Explanation) == "" {
					t.Errorf("annotation %d for %q has empty explanation", i, f.Text)
				}
			}
			if res.Command != strings.Join(texts, " ") {
				t.Errorf("Command %q is not the join of flag texts", res.Command)
			}
			if res.Flags[0].Text != Program {
				t.Errorf("first flag = %q, want %q", res.Flags[0].Text, Program)
			}
		})
	}
}

func TestGenerateFallbackExplanations(t *testing.T) {
	res := Generate(Config{
		Input:      InputConfig{Path: "in", Options: Options{{Key: "custom_flag", Value: "x"}}},
		Output:     OutputConfig{Path: "out"},
		VideoCodec: &VideoCodecConfig{Codec: "fancy264", Preset: "turbo"},
	})

	want := map[string]string{
		"-custom_flag x": "-custom_flag: x",
		"-c:v fancy264":  "Video codec: fancy264",
		"-preset turbo":  "Preset: turbo",
	}
	for _, a := range res.Annotations {
		if exp, ok := want[a.Flag]; ok && a.Explanation != exp {
			t.Errorf("explanation for %q = %q, want %q", a.Flag, a.Explanation, exp)
		}
	}
}

func TestGenerateCopySuppression(t *testing.T) {
	cfg := Config{
		Input:  InputConfig{Type: InputURL, Path: "http://src/stream"},
		Output: OutputConfig{Path: "pipe:1", Format: "ts"},
		VideoCodec: &VideoCodecConfig{
			Codec:            CodecCopy,
			RateControl:      RateControlCRF,
			CRF:              intPtr(20),
			Preset:           "fast",
			PixelFormat:      "yuv420p",
			Profile:          "high",
			Level:            "4.0",
			Tune:             "zerolatency",
			BFrames:          intPtr(2),
			KeyframeInterval: intPtr(48),
			KeyintMin:        intPtr(24),
		},
		AudioCodec: &AudioCodecConfig{Codec: CodecCopy, Bitrate: "128k", SampleRate: intPtr(44100), Channels: intPtr(2), Profile: "aac_low"},
	}

	res := Generate(cfg)
	for _, flag := range []string{"-preset", "-crf", "-profile:v", "-level", "-tune", "-pix_fmt", "-bf", "-b:a", "-ar", "-ac", "-profile:a"} {
		for _, f := range res.Flags {
			if strings.HasPrefix(f.Text, flag+" ") {
				t.Errorf("copy mode emitted %q", f.Text)
			}
		}
	}
	for _, want := range []string{"-c:v copy", "-g 48", "-keyint_min 24", "-c:a copy"} {
		if !strings.Contains(res.Command, want) {
			t.Errorf("command %q missing %q", res.Command, want)
		}
	}
}

func TestGenerateRateControl(t *testing.T) {
	tests := []struct {
		name  string
		codec VideoCodecConfig
		want  string
	}{
		{"crf", VideoCodecConfig{Codec: "libx264", RateControl: RateControlCRF, CRF: intPtr(21), Bitrate: "5M"}, "-c:v libx264 -crf 21"},
		{"cbr", VideoCodecConfig{Codec: "libx264", RateControl: RateControlCBR, Bitrate: "5M", MaxBitrate: "6M"}, "-c:v libx264 -b:v 5M"},
		{"vbr", VideoCodecConfig{Codec: "libx264", RateControl: RateControlVBR, Bitrate: "5M", MaxBitrate: "6M", Bufsize: "10M"}, "-c:v libx264 -b:v 5M -maxrate 6M -bufsize 10M"},
		{"cq", VideoCodecConfig{Codec: "h264_nvenc", RateControl: RateControlCQ, CQ: intPtr(19), Preset: "p4"}, "-c:v h264_nvenc -preset p4 -cq 19"},
		{"qp", VideoCodecConfig{Codec: "h264_vaapi", RateControl: RateControlQP, QP: intPtr(24)}, "-c:v h264_vaapi -qp 24"},
		{"global quality", VideoCodecConfig{Codec: "h264_qsv", RateControl: RateControlGlobalQuality, GlobalQuality: intPtr(25)}, "-c:v h264_qsv -global_quality 25"},
		{"no mode", VideoCodecConfig{Codec: "libx264", Bitrate: "3M"}, "-c:v libx264 -b:v 3M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := tt.codec
			res := Generate(Config{Input: InputConfig{Path: "in"}, Output: OutputConfig{Path: "out"}, VideoCodec: &codec})
			want := "ffmpeg -i in " + tt.want + " out"
			if res.Command != want {
				t.Errorf("Command = %q, want %q", res.Command, want)
			}
		})
	}
}

func TestGenerateHWAccel(t *testing.T) {
	tests := []struct {
		name string
		hw   *HWAccelConfig
		want string
	}{
		{"none", &HWAccelConfig{API: HWAccelNone, Device: "/dev/dri/renderD128"}, "ffmpeg -i in out"},
		{"nil", nil, "ffmpeg -i in out"},
		{"vaapi with device", &HWAccelConfig{API: HWAccelVAAPI, Device: "/dev/dri/renderD128"}, "ffmpeg -vaapi_device /dev/dri/renderD128 -hwaccel vaapi -i in out"},
		{"cuda ignores device", &HWAccelConfig{API: HWAccelCUDA, Device: "0"}, "ffmpeg -hwaccel cuda -i in out"},
		{"qsv output format", &HWAccelConfig{API: HWAccelQSV, OutputFormat: "qsv"}, "ffmpeg -hwaccel qsv -hwaccel_output_format qsv -i in out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(Config{Input: InputConfig{Path: "in", HWAccel: tt.hw}, Output: OutputConfig{Path: "out"}})
			if res.Command != tt.want {
				t.Errorf("Command = %q, want %q", res.Command, tt.want)
			}
		})
	}
}

func TestGenerateStreamMappings(t *testing.T) {
	res := Generate(Config{
		Input:  InputConfig{Path: "in"},
		Output: OutputConfig{Path: "out"},
		StreamMappings: []StreamMapping{
			{InputIndex: 0, StreamType: StreamAll},
			{InputIndex: 0, StreamType: StreamSubtitle, StreamIndex: 2, Label: "English"},
			{InputIndex: 1, StreamType: StreamData, StreamIndex: 0},
		},
	})

	want := "ffmpeg -i in -map 0 -map 0:s:2 -map 1:d:0 out"
	if res.Command != want {
		t.Errorf("Command = %q, want %q", res.Command, want)
	}
	if exp := res.Annotations[3].Explanation; !strings.HasSuffix(exp, "(English)") {
		t.Errorf("label missing from explanation %q", exp)
	}
}

func TestGenerateOutput(t *testing.T) {
	tests := []struct {
		name   string
		output OutputConfig
		want   string
	}{
		{"ts muxer", OutputConfig{Path: "pipe:1", Format: "ts"}, "ffmpeg -i in -f mpegts pipe:1"},
		{"mkv muxer", OutputConfig{Path: "out.mkv", Format: "mkv"}, "ffmpeg -i in -f matroska out.mkv"},
		{"unknown passes through", OutputConfig{Path: "out", Format: "nut"}, "ffmpeg -i in -f nut out"},
		{
			"movflags on mp4",
			OutputConfig{Path: "out.mp4", Format: "mp4", Movflags: []string{"faststart", "+frag_keyframe"}, Options: Options{{Key: "-brand", Value: "mp42"}}},
			"ffmpeg -i in -f mp4 -movflags +faststart+frag_keyframe -brand mp42 out.mp4",
		},
		{"movflags dropped on ts", OutputConfig{Path: "out.ts", Format: "ts", Movflags: []string{"faststart"}}, "ffmpeg -i in -f mpegts out.ts"},
		{"path with spaces", OutputConfig{Path: "/srv/my recordings/out.ts"}, `ffmpeg -i in "/srv/my recordings/out.ts"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(Config{Input: InputConfig{Path: "in"}, Output: tt.output})
			if res.Command != tt.want {
				t.Errorf("Command = %q, want %q", res.Command, tt.want)
			}
		})
	}
}

func TestGenerateArgs(t *testing.T) {
	res := Generate(Config{
		Input:        InputConfig{Path: "/media/My Show.mkv"},
		Output:       OutputConfig{Path: "pipe:1", Format: "ts"},
		VideoFilters: []Filter{{Type: FilterScale, Params: map[string]any{"width": float64(1280), "height": float64(720)}}},
	})

	want := []string{"ffmpeg", "-i", "/media/My Show.mkv", "-vf", "scale=1280:720", "-f", "mpegts", "pipe:1"}
	if diff := cmp.Diff(want, res.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.Command, `-i "/media/My Show.mkv"`) {
		t.Errorf("Command %q does not quote the input path", res.Command)
	}
}

func shellConfigs() map[string]Config {
	return map[string]Config{
		"query string and variables": {
			Input:        InputConfig{Path: "http://host/live.m3u8?user=a&token=$SECRET"},
			Output:       OutputConfig{Path: "pipe:1", Format: "ts"},
			VideoFilters: []Filter{{Type: FilterCustom, Params: map[string]any{"filter": "drawtext=text='$HOME'"}}},
		},
		"quotes and backticks": {
			Input:  InputConfig{Path: "in"},
			Output: OutputConfig{Path: "/srv/out \"final\" `date`.ts"},
		},
		"history expansion": {
			Input:  InputConfig{Path: "in"},
			Output: OutputConfig{Path: "out.ts", Options: Options{{Key: "metadata", Value: "title=Live! It's on"}}},
		},
		"globs and braces": {
			Input:  InputConfig{Path: "/srv/rec-*.ts"},
			Output: OutputConfig{Path: "/srv/{a,b}.ts", Options: Options{{Key: "metadata", Value: "comment=#1 (main); ~root | <x>"}}},
		},
	}
}

func TestGenerateQuotesShellMetacharacters(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"query string and variables", `ffmpeg -i "http://host/live.m3u8?user=a&token=\$SECRET" -vf "drawtext=text='\$HOME'" -f mpegts pipe:1`},
		{"quotes and backticks", "ffmpeg -i in \"/srv/out \\\"final\\\" \\`date\\`.ts\""},
		{"history expansion", `ffmpeg -i in -metadata 'title=Live! It'\''s on' out.ts`},
		{"globs and braces", `ffmpeg -i "/srv/rec-*.ts" -metadata "comment=#1 (main); ~root | <x>" "/srv/{a,b}.ts"`},
	}

	configs := shellConfigs()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(configs[tt.name]).Command; got != tt.want {
				t.Errorf("Command = %s\nwant      %s", got, tt.want)
			}
		})
	}
}

func TestGenerateCommandSplitsLikeArgs(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	for name, cfg := range shellConfigs() {
		t.Run(name, func(t *testing.T) {
			res := Generate(cfg)
			script := "set -- " + res.Command + "; printf '%s\\000' \"$@\""
			out, err := exec.Command(sh, "-c", script).Output()
			if err != nil {
				t.Fatalf("sh -c %q: %v", script, err)
			}

			got := strings.Split(strings.TrimSuffix(string(out), "\x00"), "\x00")
			if diff := cmp.Diff(res.Args, got); diff != "" {
				t.Errorf("shell split differs from Args (-args +shell):\n%s", diff)
			}
		})
	}
}

func TestGenerateKeepsPlaceholdersBare(t *testing.T) {
	res := Generate(Config{Input: InputConfig{Path: "{streamUrl}"}, Output: OutputConfig{Path: "pipe:1"}})
	if res.Command != "ffmpeg -i {streamUrl} pipe:1" {
		t.Errorf("Command = %q", res.Command)
	}
}

func TestGenerateSkipsEmptyFilterChain(t *testing.T) {
	res := Generate(Config{
		Input:  InputConfig{Path: "in"},
		Output: OutputConfig{Path: "out"},
		VideoFilters: []Filter{
			{Type: FilterScale, Enabled: disabled()},
			{Type: FilterCustom, Params: map[string]any{"filter": "  "}},
		},
		AudioFilters: []Filter{{Type: FilterVolume, Enabled: disabled()}},
	})

	if res.Command != "ffmpeg -i in out" {
		t.Errorf("Command = %q, want no filter flags", res.Command)
	}
}
