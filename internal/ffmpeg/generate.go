package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
)

// Program is the first token of every generated command.
const Program = "ffmpeg"

// Category groups flags in the annotated view.
type Category string

// Annotation categories.
const (
	CategoryGlobal Category = "global"
	CategoryInput  Category = "input"
	CategoryVideo  Category = "video"
	CategoryAudio  Category = "audio"
	CategoryFilter Category = "filter"
	CategoryOutput Category = "output"
)

// Flag is one emitted token group, e.g. "-c:v libx264".
type Flag struct {
	Text     string   `json:"text" doc:"Flag as it appears in the command"`
	Category Category `json:"category" enum:"global,input,video,audio,filter,output" doc:"Flag category"`
}

// Annotation explains the flag at the same index.
type Annotation struct {
	Flag        string   `json:"flag" doc:"Flag text, equal to flags[i].text"`
	Explanation string   `json:"explanation" doc:"Human-readable explanation"`
	Category    Category `json:"category" enum:"global,input,video,audio,filter,output" doc:"Flag category"`
}

// Result is the output of Generate. Flags and Annotations are index-aligned.
type Result struct {
	Command        string       `json:"command" doc:"Shell-ready command line"`
	Args           []string     `json:"args" doc:"Argument vector without shell quoting, program first"`
	Flags          []Flag       `json:"flags" doc:"Ordered flags"`
	Annotations    []Annotation `json:"annotations" doc:"One explanation per flag"`
	Warnings       []string     `json:"warnings" doc:"Compatibility warning messages, possibly empty"`
	WarningDetails []Warning    `json:"warningDetails" doc:"Warnings with their rule identifiers, index-aligned with warnings"`
}

// muxerNames maps container identifiers to FFmpeg muxer names.
var muxerNames = map[string]string{
	"ts":  "mpegts",
	"mkv": "matroska",
}

// MuxerName returns the -f value for a container identifier.
func MuxerName(container string) string {
	if m, ok := muxerNames[strings.ToLower(container)]; ok {
		return m
	}
	return container
}

type builder struct {
	args        []string
	flags       []Flag
	annotations []Annotation
}

// add appends one flag made of args. A blank explanation falls back to the flag text.
func (b *builder) add(cat Category, explanation string, args ...string) {
	quoted := make([]string, len(args))
	for i, a := range args {
		if i == 0 {
			quoted[i] = a
			continue
		}
		quoted[i] = quote(a)
	}
	b.addText(cat, explanation, strings.Join(quoted, " "), args...)
}

// addText appends a flag whose command text is given verbatim.
func (b *builder) addText(cat Category, explanation, text string, args ...string) {
	if strings.TrimSpace(explanation) == "" {
		explanation = fallback("Flag", text)
	}
	b.args = append(b.args, args...)
	b.flags = append(b.flags, Flag{Text: text, Category: cat})
	b.annotations = append(b.annotations, Annotation{Flag: text, Explanation: explanation, Category: cat})
}

func (b *builder) options(cat Category, opts Options) {
	for _, opt := range opts {
		key := NormalizeKey(opt.Key)
		if key == "" {
			continue
		}
		if opt.Value == "" {
			b.add(cat, DescribeOption(key, ""), opt.Flag())
			continue
		}
		b.add(cat, DescribeOption(key, opt.Value), opt.Flag(), opt.Value)
	}
}

// shellSpecial holds the characters a POSIX shell splits on, expands or
// interprets when they appear unquoted.
const shellSpecial = " \t\n\"'\\|&;<>()$`*?[#~!"

var doubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// quote returns s unchanged unless the shell would split or expand it.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, shellSpecial) && !braceExpands(s) {
		return s
	}
	return shellQuote(s)
}

// braceExpands reports whether bash would brace-expand s. Placeholders such
// as {streamUrl} have no comma or range and stay literal.
func braceExpands(s string) bool {
	return strings.Contains(s, "{") && (strings.Contains(s, ",") || strings.Contains(s, ".."))
}

// shellQuote wraps s in double quotes with \ " $ and ` escaped. Values
// containing ! are single-quoted instead, since interactive bash expands
// history inside double quotes.
func shellQuote(s string) string {
	if strings.Contains(s, "!") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return `"` + doubleQuoted.Replace(s) + `"`
}

// Generate turns cfg into a command line with per-flag annotations and warnings.
// It has no side effects and does not modify cfg; equal inputs give equal results.
func Generate(cfg Config) Result {
	b := &builder{}

	b.add(CategoryGlobal, "FFmpeg program", Program)
	if cfg.Output.Overwrite {
		b.add(CategoryGlobal, "Overwrite the output without asking", "-y")
	}
	b.options(CategoryGlobal, cfg.GlobalOptions)

	addInput(b, &cfg.Input)
	addMappings(b, cfg.StreamMappings)
	addVideo(b, cfg.VideoCodec)

	if chain := FilterChain(cfg.VideoFilters); chain != "" {
		b.addText(CategoryFilter, describeChain("Video", cfg.VideoFilters), `-vf `+shellQuote(chain), "-vf", chain)
	}

	addAudio(b, cfg.AudioCodec)

	if chain := FilterChain(cfg.AudioFilters); chain != "" {
		b.addText(CategoryFilter, describeChain("Audio", cfg.AudioFilters), `-af `+shellQuote(chain), "-af", chain)
	}

	addOutput(b, &cfg.Output)

	texts := make([]string, len(b.flags))
	for i, f := range b.flags {
		texts[i] = f.Text
	}

	warnings := Check(cfg)

	return Result{
		Command:        strings.Join(texts, " "),
		Args:           b.args,
		Flags:          b.flags,
		Annotations:    b.annotations,
		Warnings:       Messages(warnings),
		WarningDetails: warnings,
	}
}

func addInput(b *builder, in *InputConfig) {
	if hw := in.HWAccel; hw.Enabled() {
		if hw.API == HWAccelVAAPI && hw.Device != "" {
			b.add(CategoryInput, "Use VAAPI render device "+hw.Device, "-vaapi_device", hw.Device)
		}
		b.add(CategoryInput, DescribeHWAccel(hw.API), "-hwaccel", string(hw.API))
		if hw.OutputFormat != "" {
			b.add(CategoryInput, "Keep decoded frames in "+hw.OutputFormat+" memory", "-hwaccel_output_format", hw.OutputFormat)
		}
	}

	if in.Format != "" {
		b.add(CategoryInput, "Force input format: "+DescribeFormat(in.Format), "-f", in.Format)
	}

	b.options(CategoryInput, in.Options)

	var explanation string
	switch in.Type {
	case InputURL:
		explanation = "Read input from URL " + in.Path
	case InputDevice:
		explanation = "Capture input from device " + in.Path
	case InputFile:
		explanation = "Read input from file " + in.Path
	default:
		explanation = fallback("Input", in.Path)
	}
	b.add(CategoryInput, explanation, "-i", in.Path)
}

var streamTypeCodes = map[StreamType]string{
	StreamVideo:    "v",
	StreamAudio:    "a",
	StreamSubtitle: "s",
	StreamData:     "d",
}

// MapSpecifier renders the -map value for a stream mapping.
func MapSpecifier(m StreamMapping) string {
	code, ok := streamTypeCodes[m.StreamType]
	if !ok {
		return strconv.Itoa(m.InputIndex)
	}
	return fmt.Sprintf("%d:%s:%d", m.InputIndex, code, m.StreamIndex)
}

func addMappings(b *builder, mappings []StreamMapping) {
	for _, m := range mappings {
		var explanation string
		if _, ok := streamTypeCodes[m.StreamType]; ok {
			explanation = fmt.Sprintf("Map %s stream %d of input %d to output stream %d",
				DescribeStreamType(m.StreamType), m.StreamIndex, m.InputIndex, m.OutputIndex)
		} else {
			explanation = fmt.Sprintf("Map every stream of input %d", m.InputIndex)
		}
		if m.Label != "" {
			explanation += " (" + m.Label + ")"
		}
		b.add(CategoryOutput, explanation, "-map", MapSpecifier(m))
	}
}

func addVideo(b *builder, v *VideoCodecConfig) {
	if v == nil {
		return
	}

	if v.Codec != "" {
		b.add(CategoryVideo, DescribeVideoCodec(v.Codec), "-c:v", v.Codec)
	}

	if !v.IsCopy() {
		if v.Preset != "" {
			b.add(CategoryVideo, DescribePreset(v.Preset), "-preset", v.Preset)
		}
		addRateControl(b, v)
		if v.PixelFormat != "" {
			b.add(CategoryVideo, DescribePixelFormat(v.PixelFormat), "-pix_fmt", v.PixelFormat)
		}
		if v.Profile != "" {
			b.add(CategoryVideo, DescribeProfile(v.Profile), "-profile:v", v.Profile)
		}
		if v.Level != "" {
			b.add(CategoryVideo, "Codec level "+v.Level, "-level", v.Level)
		}
		if v.Tune != "" {
			b.add(CategoryVideo, DescribeTune(v.Tune), "-tune", v.Tune)
		}
		if v.BFrames != nil {
			b.add(CategoryVideo, fmt.Sprintf("Use up to %d consecutive B-frames", *v.BFrames), "-bf", strconv.Itoa(*v.BFrames))
		}
	}

	// Keyframe controls act at the muxing layer and survive copy.
	if v.KeyframeInterval != nil {
		b.add(CategoryVideo, fmt.Sprintf("Place a keyframe every %d frames", *v.KeyframeInterval),
			"-g", strconv.Itoa(*v.KeyframeInterval))
	}
	if v.KeyintMin != nil {
		b.add(CategoryVideo, fmt.Sprintf("Keep at least %d frames between keyframes", *v.KeyintMin),
			"-keyint_min", strconv.Itoa(*v.KeyintMin))
	}
	if v.SCThreshold != nil {
		b.add(CategoryVideo, fmt.Sprintf("Scene change threshold %d (0 disables scene-cut keyframes)", *v.SCThreshold),
			"-sc_threshold", strconv.Itoa(*v.SCThreshold))
	}
	if v.ForceKeyFrames != "" {
		b.add(CategoryVideo, "Force keyframes at "+v.ForceKeyFrames, "-force_key_frames", v.ForceKeyFrames)
	}
}

func addRateControl(b *builder, v *VideoCodecConfig) {
	crf := func() {
		if v.CRF != nil {
			b.add(CategoryVideo, fmt.Sprintf("Constant rate factor %d (lower means higher quality)", *v.CRF),
				"-crf", strconv.Itoa(*v.CRF))
		}
	}
	bitrate := func() {
		if v.Bitrate != "" {
			b.add(CategoryVideo, "Target video bitrate "+v.Bitrate, "-b:v", v.Bitrate)
		}
	}

	switch v.RateControl {
	case RateControlCRF:
		crf()
	case RateControlCBR:
		bitrate()
	case RateControlVBR:
		bitrate()
		if v.MaxBitrate != "" {
			b.add(CategoryVideo, "Maximum video bitrate "+v.MaxBitrate, "-maxrate", v.MaxBitrate)
		}
		if v.Bufsize != "" {
			b.add(CategoryVideo, "Rate control buffer size "+v.Bufsize, "-bufsize", v.Bufsize)
		}
	case RateControlCQ:
		if v.CQ != nil {
			b.add(CategoryVideo, fmt.Sprintf("NVENC constant quality %d", *v.CQ), "-cq", strconv.Itoa(*v.CQ))
		}
	case RateControlQP:
		if v.QP != nil {
			b.add(CategoryVideo, fmt.Sprintf("Constant quantizer %d", *v.QP), "-qp", strconv.Itoa(*v.QP))
		}
	case RateControlGlobalQuality:
		if v.GlobalQuality != nil {
			b.add(CategoryVideo, fmt.Sprintf("Global quality %d (QSV/VAAPI)", *v.GlobalQuality),
				"-global_quality", strconv.Itoa(*v.GlobalQuality))
		}
	case "":
		// No mode selected: emit whichever of crf and bitrate is present.
		crf()
		bitrate()
	}
}

func addAudio(b *builder, a *AudioCodecConfig) {
	if a == nil {
		return
	}
	if a.Codec != "" {
		b.add(CategoryAudio, DescribeAudioCodec(a.Codec), "-c:a", a.Codec)
	}
	if a.IsCopy() {
		return
	}
	if a.Bitrate != "" {
		b.add(CategoryAudio, "Audio bitrate "+a.Bitrate, "-b:a", a.Bitrate)
	}
	if a.SampleRate != nil {
		b.add(CategoryAudio, fmt.Sprintf("Audio sample rate %d Hz", *a.SampleRate), "-ar", strconv.Itoa(*a.SampleRate))
	}
	if a.Channels != nil {
		b.add(CategoryAudio, describeChannels(*a.Channels), "-ac", strconv.Itoa(*a.Channels))
	}
	if a.Profile != "" {
		b.add(CategoryAudio, DescribeProfile(a.Profile), "-profile:a", a.Profile)
	}
}

func describeChannels(n int) string {
	switch n {
	case 1:
		return "Mono audio"
	case 2:
		return "Stereo audio"
	case 6:
		return "5.1 surround audio"
	case 8:
		return "7.1 surround audio"
	}
	return fmt.Sprintf("%d audio channels", n)
}

func addOutput(b *builder, out *OutputConfig) {
	container := containerID(out.Format)
	if out.Format != "" {
		b.add(CategoryOutput, "Output container: "+DescribeFormat(out.Format), "-f", MuxerName(out.Format))
	}
	if len(out.Movflags) > 0 && movflagsContainers[container] {
		flags := make([]string, 0, len(out.Movflags))
		for _, f := range out.Movflags {
			if f = strings.TrimLeft(strings.TrimSpace(f), "+"); f != "" {
				flags = append(flags, "+"+f)
			}
		}
		if len(flags) > 0 {
			value := strings.Join(flags, "")
			b.add(CategoryOutput, "MP4 muxer flags "+value, "-movflags", value)
		}
	}
	b.options(CategoryOutput, out.Options)
	b.addText(CategoryOutput, describeOutputPath(out.Path), quote(out.Path), out.Path)
}

func describeOutputPath(path string) string {
	if fd, ok := strings.CutPrefix(path, "pipe:"); ok {
		switch fd {
		case "", "1":
			return "Stream the output to standard output"
		default:
			return "Stream the output to file descriptor " + fd
		}
	}
	if path == "" {
		return "Output path"
	}
	return "Write output to " + path
}
