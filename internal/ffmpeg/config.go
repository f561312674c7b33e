package ffmpeg

// InputType identifies where the input comes from.
type InputType string

// Input types.
const (
	InputFile   InputType = "file"
	InputURL    InputType = "url"
	InputDevice InputType = "device"
)

// HWAccelAPI is a hardware decode API passed to -hwaccel.
type HWAccelAPI string

// Hardware acceleration APIs.
const (
	HWAccelNone         HWAccelAPI = "none"
	HWAccelCUDA         HWAccelAPI = "cuda"
	HWAccelVAAPI        HWAccelAPI = "vaapi"
	HWAccelQSV          HWAccelAPI = "qsv"
	HWAccelD3D11VA      HWAccelAPI = "d3d11va"
	HWAccelDXVA2        HWAccelAPI = "dxva2"
	HWAccelVideoToolbox HWAccelAPI = "videotoolbox"
)

// RateControl selects how the video encoder spends bits.
type RateControl string

// Rate control modes.
const (
	RateControlCRF           RateControl = "crf"
	RateControlCBR           RateControl = "cbr"
	RateControlVBR           RateControl = "vbr"
	RateControlCQ            RateControl = "cq"
	RateControlQP            RateControl = "qp"
	RateControlGlobalQuality RateControl = "global_quality"
)

// StreamType is the stream selector used by -map.
type StreamType string

// Stream types.
const (
	StreamVideo    StreamType = "video"
	StreamAudio    StreamType = "audio"
	StreamSubtitle StreamType = "subtitle"
	StreamData     StreamType = "data"
	StreamAll      StreamType = "all"
)

// FilterType names a filter descriptor kind.
type FilterType string

// Filter types with dedicated rendering. Any other type is rendered generically.
const (
	FilterScale       FilterType = "scale"
	FilterFPS         FilterType = "fps"
	FilterDeinterlace FilterType = "deinterlace"
	FilterFormat      FilterType = "format"
	FilterHWUpload    FilterType = "hwupload"
	FilterHWDownload  FilterType = "hwdownload"
	FilterCrop        FilterType = "crop"
	FilterPad         FilterType = "pad"
	FilterTranspose   FilterType = "transpose"
	FilterVolume      FilterType = "volume"
	FilterLoudnorm    FilterType = "loudnorm"
	FilterAresample   FilterType = "aresample"
	FilterAtempo      FilterType = "atempo"
	FilterCustom      FilterType = "custom"
)

// CodecCopy is the codec sentinel meaning the stream is passed through untouched.
const CodecCopy = "copy"

// Config is the structured encoding configuration the generator turns into a command.
// It is plain data: the generator reads it and never modifies it.
type Config struct {
	Input          InputConfig       `json:"input" toml:"input" yaml:"input" doc:"Input source"`
	Output         OutputConfig      `json:"output" toml:"output" yaml:"output" doc:"Output target"`
	VideoCodec     *VideoCodecConfig `json:"videoCodec,omitempty" toml:"video_codec,omitempty" yaml:"videoCodec,omitempty" doc:"Video encoder settings"`
	AudioCodec     *AudioCodecConfig `json:"audioCodec,omitempty" toml:"audio_codec,omitempty" yaml:"audioCodec,omitempty" doc:"Audio encoder settings"`
	VideoFilters   []Filter          `json:"videoFilters,omitempty" toml:"video_filters,omitempty" yaml:"videoFilters,omitempty" doc:"Video filter chain"`
	AudioFilters   []Filter          `json:"audioFilters,omitempty" toml:"audio_filters,omitempty" yaml:"audioFilters,omitempty" doc:"Audio filter chain"`
	StreamMappings []StreamMapping   `json:"streamMappings,omitempty" toml:"stream_mappings,omitempty" yaml:"streamMappings,omitempty" doc:"Explicit -map entries"`
	GlobalOptions  Options           `json:"globalOptions,omitempty" toml:"global_options,omitempty" yaml:"globalOptions,omitempty" doc:"Flags emitted before any input flag"`
}

// InputConfig describes the single input of a command.
type InputConfig struct {
	Type    InputType      `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty" enum:"file,url,device" doc:"Input kind"`
	Path    string         `json:"path" toml:"path" yaml:"path" example:"{streamUrl}" doc:"Input path or URL, placeholders pass through"`
	Format  string         `json:"format,omitempty" toml:"format,omitempty" yaml:"format,omitempty" doc:"Forced input demuxer"`
	HWAccel *HWAccelConfig `json:"hwaccel,omitempty" toml:"hwaccel,omitempty" yaml:"hwaccel,omitempty" doc:"Hardware decode settings"`
	Options Options        `json:"options,omitempty" toml:"options,omitempty" yaml:"options,omitempty" doc:"Input-stage flags"`
}

// HWAccelConfig selects a hardware decode pipeline.
type HWAccelConfig struct {
	API          HWAccelAPI `json:"api" toml:"api" yaml:"api" enum:"none,cuda,vaapi,qsv,d3d11va,dxva2,videotoolbox" doc:"Acceleration API"`
	Device       string     `json:"device,omitempty" toml:"device,omitempty" yaml:"device,omitempty" example:"/dev/dri/renderD128" doc:"Device path (VAAPI)"`
	OutputFormat string     `json:"outputFormat,omitempty" toml:"output_format,omitempty" yaml:"outputFormat,omitempty" doc:"Frame format kept on the device"`
}

// Enabled reports whether the config asks for hardware decoding.
func (h *HWAccelConfig) Enabled() bool {
	return h != nil && h.API != "" && h.API != HWAccelNone
}

// OutputConfig describes the single output of a command.
type OutputConfig struct {
	Path      string   `json:"path" toml:"path" yaml:"path" example:"pipe:1" doc:"Output path, pipe:N writes to a file descriptor"`
	Format    string   `json:"format,omitempty" toml:"format,omitempty" yaml:"format,omitempty" example:"ts" doc:"Container identifier"`
	Overwrite bool     `json:"overwrite,omitempty" toml:"overwrite,omitempty" yaml:"overwrite,omitempty" doc:"Overwrite the output without asking"`
	Options   Options  `json:"options,omitempty" toml:"options,omitempty" yaml:"options,omitempty" doc:"Container-specific flags"`
	Movflags  []string `json:"movflags,omitempty" toml:"movflags,omitempty" yaml:"movflags,omitempty" doc:"MP4 muxer flags"`
}

// VideoCodecConfig holds the video encoder settings. Pointer fields are optional.
type VideoCodecConfig struct {
	Codec         string      `json:"codec" toml:"codec" yaml:"codec" example:"libx264" doc:"Encoder name or copy"`
	RateControl   RateControl `json:"rateControl,omitempty" toml:"rate_control,omitempty" yaml:"rateControl,omitempty" enum:"crf,cbr,vbr,cq,qp,global_quality" doc:"Rate control mode"`
	CRF           *int        `json:"crf,omitempty" toml:"crf,omitempty" yaml:"crf,omitempty" doc:"Constant rate factor"`
	Bitrate       string      `json:"bitrate,omitempty" toml:"bitrate,omitempty" yaml:"bitrate,omitempty" example:"5M" doc:"Target bitrate"`
	MaxBitrate    string      `json:"maxBitrate,omitempty" toml:"max_bitrate,omitempty" yaml:"maxBitrate,omitempty" doc:"Peak bitrate (vbr)"`
	Bufsize       string      `json:"bufsize,omitempty" toml:"bufsize,omitempty" yaml:"bufsize,omitempty" doc:"Rate control buffer (vbr)"`
	CQ            *int        `json:"cq,omitempty" toml:"cq,omitempty" yaml:"cq,omitempty" doc:"NVENC constant quality"`
	QP            *int        `json:"qp,omitempty" toml:"qp,omitempty" yaml:"qp,omitempty" doc:"Constant quantizer"`
	GlobalQuality *int        `json:"globalQuality,omitempty" toml:"global_quality,omitempty" yaml:"globalQuality,omitempty" doc:"QSV/VAAPI global quality"`

	Preset      string `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty" doc:"Encoder preset"`
	PixelFormat string `json:"pixelFormat,omitempty" toml:"pixel_format,omitempty" yaml:"pixelFormat,omitempty" doc:"Output pixel format"`
	Profile     string `json:"profile,omitempty" toml:"profile,omitempty" yaml:"profile,omitempty" doc:"Codec profile"`
	Level       string `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty" doc:"Codec level"`
	Tune        string `json:"tune,omitempty" toml:"tune,omitempty" yaml:"tune,omitempty" doc:"Encoder tune"`
	BFrames     *int   `json:"bFrames,omitempty" toml:"b_frames,omitempty" yaml:"bFrames,omitempty" doc:"Maximum consecutive B-frames"`

	KeyframeInterval *int   `json:"keyframeInterval,omitempty" toml:"keyframe_interval,omitempty" yaml:"keyframeInterval,omitempty" doc:"GOP size (-g)"`
	KeyintMin        *int   `json:"keyintMin,omitempty" toml:"keyint_min,omitempty" yaml:"keyintMin,omitempty" doc:"Minimum GOP size"`
	SCThreshold      *int   `json:"scThreshold,omitempty" toml:"sc_threshold,omitempty" yaml:"scThreshold,omitempty" doc:"Scene change threshold"`
	ForceKeyFrames   string `json:"forceKeyFrames,omitempty" toml:"force_key_frames,omitempty" yaml:"forceKeyFrames,omitempty" doc:"Forced keyframe expression"`
}

// IsCopy reports whether the video stream is passed through.
func (v *VideoCodecConfig) IsCopy() bool {
	return v != nil && v.Codec == CodecCopy
}

// AudioCodecConfig holds the audio encoder settings.
type AudioCodecConfig struct {
	Codec      string `json:"codec" toml:"codec" yaml:"codec" example:"aac" doc:"Encoder name or copy"`
	Bitrate    string `json:"bitrate,omitempty" toml:"bitrate,omitempty" yaml:"bitrate,omitempty" example:"192k" doc:"Audio bitrate"`
	SampleRate *int   `json:"sampleRate,omitempty" toml:"sample_rate,omitempty" yaml:"sampleRate,omitempty" doc:"Sample rate in Hz"`
	Channels   *int   `json:"channels,omitempty" toml:"channels,omitempty" yaml:"channels,omitempty" doc:"Channel count"`
	Profile    string `json:"profile,omitempty" toml:"profile,omitempty" yaml:"profile,omitempty" doc:"Codec profile"`
}

// IsCopy reports whether the audio stream is passed through.
func (a *AudioCodecConfig) IsCopy() bool {
	return a != nil && a.Codec == CodecCopy
}

// Filter is one entry of a video or audio filter chain.
type Filter struct {
	Type    FilterType     `json:"type" toml:"type" yaml:"type" example:"scale" doc:"Filter kind"`
	Enabled *bool          `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty" doc:"Set to false to skip the filter; absent means enabled"`
	Params  map[string]any `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty" doc:"Filter-specific parameters"`
	Order   int            `json:"order,omitempty" toml:"order" yaml:"order" doc:"Sort key, ascending"`
}

// IsEnabled reports whether the filter takes part in the chain. An unset
// Enabled counts as enabled.
func (f Filter) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// StreamMapping is one -map entry.
type StreamMapping struct {
	InputIndex  int        `json:"inputIndex" toml:"input_index" yaml:"inputIndex" doc:"Input file index"`
	StreamType  StreamType `json:"streamType" toml:"stream_type" yaml:"streamType" enum:"video,audio,subtitle,data,all" doc:"Stream selector"`
	StreamIndex int        `json:"streamIndex" toml:"stream_index" yaml:"streamIndex" doc:"Stream index within the type"`
	OutputIndex int        `json:"outputIndex,omitempty" toml:"output_index" yaml:"outputIndex" doc:"Output stream slot"`
	Label       string     `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty" doc:"Display label"`
}
