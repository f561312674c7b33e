package ffmpeg

import (
	"fmt"
	"sort"
	"strings"
)

var videoCodecDescriptions = map[string]string{
	"copy":              "Copy the video stream without re-encoding",
	"libx264":           "Encode video as H.264 with the x264 software encoder",
	"libx265":           "Encode video as H.265/HEVC with the x265 software encoder",
	"libvpx-vp9":        "Encode video as VP9 with the libvpx software encoder",
	"libaom-av1":        "Encode video as AV1 with the libaom reference encoder",
	"libsvtav1":         "Encode video as AV1 with the SVT-AV1 software encoder",
	"mpeg2video":        "Encode video as MPEG-2, the broadcast legacy codec",
	"h264_nvenc":        "Encode video as H.264 on an NVIDIA GPU (NVENC)",
	"hevc_nvenc":        "Encode video as H.265/HEVC on an NVIDIA GPU (NVENC)",
	"av1_nvenc":         "Encode video as AV1 on an NVIDIA GPU (NVENC)",
	"h264_qsv":          "Encode video as H.264 with Intel Quick Sync Video",
	"hevc_qsv":          "Encode video as H.265/HEVC with Intel Quick Sync Video",
	"av1_qsv":           "Encode video as AV1 with Intel Quick Sync Video",
	"h264_vaapi":        "Encode video as H.264 through VAAPI (Intel/AMD on Linux)",
	"hevc_vaapi":        "Encode video as H.265/HEVC through VAAPI (Intel/AMD on Linux)",
	"av1_vaapi":         "Encode video as AV1 through VAAPI (Intel/AMD on Linux)",
	"h264_amf":          "Encode video as H.264 on an AMD GPU (AMF)",
	"hevc_amf":          "Encode video as H.265/HEVC on an AMD GPU (AMF)",
	"h264_videotoolbox": "Encode video as H.264 with Apple VideoToolbox",
	"hevc_videotoolbox": "Encode video as H.265/HEVC with Apple VideoToolbox",
	"h264_rkmpp":        "Encode video as H.264 on a Rockchip VPU (MPP)",
	"h264_v4l2m2m":      "Encode video as H.264 through a V4L2 memory-to-memory encoder",
}

var audioCodecDescriptions = map[string]string{
	"copy":       "Copy the audio stream without re-encoding",
	"aac":        "Encode audio as AAC with the native FFmpeg encoder",
	"libfdk_aac": "Encode audio as AAC with the Fraunhofer FDK encoder",
	"libopus":    "Encode audio as Opus",
	"libmp3lame": "Encode audio as MP3 with LAME",
	"mp2":        "Encode audio as MPEG-1 Layer II, common in DVB broadcasts",
	"ac3":        "Encode audio as Dolby Digital (AC-3)",
	"eac3":       "Encode audio as Dolby Digital Plus (E-AC-3)",
	"flac":       "Encode audio as lossless FLAC",
	"libvorbis":  "Encode audio as Vorbis",
	"pcm_s16le":  "Write uncompressed 16-bit PCM audio",
}

var presetDescriptions = map[string]string{
	"ultrafast": "Fastest x264/x265 preset, largest files",
	"superfast": "Very fast encoding with low compression efficiency",
	"veryfast":  "Fast encoding, a common choice for live transcoding",
	"faster":    "Faster than default with slightly larger output",
	"fast":      "Slightly faster than the default preset",
	"medium":    "Default balance between speed and compression",
	"slow":      "Better compression at a higher CPU cost",
	"slower":    "High compression, slow encoding",
	"veryslow":  "Best practical compression, very slow encoding",
	"placebo":   "Exhaustive search with negligible gains over veryslow",
	"p1":        "NVENC fastest preset (lowest quality)",
	"p2":        "NVENC faster preset",
	"p3":        "NVENC fast preset",
	"p4":        "NVENC medium preset (default)",
	"p5":        "NVENC slow preset (good quality)",
	"p6":        "NVENC slower preset (better quality)",
	"p7":        "NVENC slowest preset (best quality)",
	"llhq":      "NVENC legacy low-latency high-quality preset",
	"llhp":      "NVENC legacy low-latency high-performance preset",
	"hq":        "NVENC legacy high-quality preset",
}

var tuneDescriptions = map[string]string{
	"film":        "Tune for high quality film content",
	"animation":   "Tune for cartoons and flat-colored animation",
	"grain":       "Tune to preserve film grain",
	"stillimage":  "Tune for slideshow-like content",
	"fastdecode":  "Tune for cheap decoding on weak players",
	"zerolatency": "Tune for minimal encoding latency (live streaming)",
	"psnr":        "Tune to optimize PSNR metrics",
	"ssim":        "Tune to optimize SSIM metrics",
	"hq":          "NVENC tune for high quality",
	"ll":          "NVENC tune for low latency",
	"ull":         "NVENC tune for ultra low latency",
	"lossless":    "NVENC tune for lossless encoding",
}

var formatDescriptions = map[string]string{
	"ts":       "MPEG transport stream, the standard IPTV container",
	"mpegts":   "MPEG transport stream, the standard IPTV container",
	"hls":      "HTTP Live Streaming playlist with segments",
	"dash":     "MPEG-DASH manifest with segments",
	"mp4":      "MP4 container",
	"mov":      "QuickTime MOV container",
	"mkv":      "Matroska container",
	"matroska": "Matroska container",
	"webm":     "WebM container (VP8/VP9/AV1 with Opus/Vorbis)",
	"flv":      "Flash video container, used for RTMP",
	"rtsp":     "RTSP stream",
	"rtp":      "RTP stream",
	"mjpeg":    "Motion JPEG stream",
	"v4l2":     "Video4Linux2 capture device",
	"alsa":     "ALSA audio capture device",
	"lavfi":    "libavfilter virtual input (test sources)",
	"null":     "Discard the output (benchmarking)",
}

var pixelFormatDescriptions = map[string]string{
	"yuv420p":     "8-bit 4:2:0, the most compatible pixel format",
	"yuv420p10le": "10-bit 4:2:0 for HDR or high bit depth output",
	"yuv422p":     "8-bit 4:2:2 chroma",
	"yuv444p":     "8-bit 4:4:4 full chroma",
	"nv12":        "8-bit 4:2:0 semi-planar, the native hardware encoder layout",
	"p010le":      "10-bit 4:2:0 semi-planar for hardware encoders",
	"cuda":        "Frames stay in NVIDIA GPU memory",
	"vaapi":       "Frames stay in VAAPI surfaces",
	"qsv":         "Frames stay in Quick Sync surfaces",
}

var profileDescriptions = map[string]string{
	"baseline":  "H.264 baseline profile for old devices",
	"main":      "Main profile, widely compatible",
	"high":      "H.264 high profile, best compression for 8-bit",
	"high10":    "H.264 high 10-bit profile",
	"main10":    "HEVC main 10-bit profile",
	"aac_low":   "AAC low complexity profile",
	"aac_he":    "HE-AAC profile for low bitrates",
	"aac_he_v2": "HE-AAC v2 profile for very low bitrate stereo",
}

var hwaccelDescriptions = map[HWAccelAPI]string{
	HWAccelNone:         "Software decoding",
	HWAccelCUDA:         "Decode on NVIDIA GPUs with CUDA/NVDEC",
	HWAccelVAAPI:        "Decode through VAAPI (Intel/AMD on Linux)",
	HWAccelQSV:          "Decode with Intel Quick Sync Video",
	HWAccelD3D11VA:      "Decode with Direct3D 11 video acceleration (Windows)",
	HWAccelDXVA2:        "Decode with DirectX Video Acceleration 2 (Windows)",
	HWAccelVideoToolbox: "Decode with Apple VideoToolbox",
}

var rateControlDescriptions = map[RateControl]string{
	RateControlCRF:           "Constant rate factor: constant quality, variable size",
	RateControlCBR:           "Constant bitrate",
	RateControlVBR:           "Variable bitrate capped by a maximum rate",
	RateControlCQ:            "NVENC constant quality",
	RateControlQP:            "Constant quantizer per frame",
	RateControlGlobalQuality: "QSV/VAAPI global quality (ICQ)",
}

var streamTypeDescriptions = map[StreamType]string{
	StreamVideo:    "video",
	StreamAudio:    "audio",
	StreamSubtitle: "subtitle",
	StreamData:     "data",
	StreamAll:      "every stream",
}

var filterDescriptions = map[FilterType]string{
	FilterScale:       "Resize the video",
	FilterFPS:         "Convert the frame rate",
	FilterDeinterlace: "Deinterlace the video (yadif)",
	FilterFormat:      "Convert the pixel format",
	FilterHWUpload:    "Upload frames to hardware surfaces",
	FilterHWDownload:  "Download frames from hardware surfaces",
	FilterCrop:        "Crop the video",
	FilterPad:         "Pad the video to a larger canvas",
	FilterTranspose:   "Rotate or flip the video",
	FilterVolume:      "Adjust the audio volume",
	FilterLoudnorm:    "Normalize loudness (EBU R128)",
	FilterAresample:   "Resample the audio",
	FilterAtempo:      "Change the audio tempo",
	FilterCustom:      "Custom filter expression",
}

// OptionInfo documents a well-known free-form option key.
type OptionInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stage       string `json:"stage"` // global, input or output
}

// KnownOptions documents the option keys the console offers in its option editors.
var KnownOptions = []OptionInfo{
	{Key: "hide_banner", Name: "Hide Banner", Description: "Suppress the FFmpeg banner", Stage: "global"},
	{Key: "nostdin", Name: "No Stdin", Description: "Do not read from standard input", Stage: "global"},
	{Key: "loglevel", Name: "Log Level", Description: "FFmpeg log verbosity", Stage: "global"},
	{Key: "stats", Name: "Stats", Description: "Print encoding progress statistics", Stage: "global"},
	{Key: "progress", Name: "Progress", Description: "Write machine-readable progress to a URL", Stage: "global"},
	{Key: "threads", Name: "Threads", Description: "Number of worker threads", Stage: "global"},
	{Key: "init_hw_device", Name: "Init HW Device", Description: "Initialize a named hardware device", Stage: "global"},
	{Key: "filter_hw_device", Name: "Filter HW Device", Description: "Hardware device used by filters", Stage: "global"},
	{Key: "re", Name: "Native Rate", Description: "Read input at its native frame rate", Stage: "input"},
	{Key: "reconnect", Name: "Reconnect", Description: "Reconnect when the input connection drops", Stage: "input"},
	{Key: "reconnect_streamed", Name: "Reconnect Streamed", Description: "Reconnect even for non-seekable streams", Stage: "input"},
	{Key: "reconnect_on_network_error", Name: "Reconnect On Network Error", Description: "Reconnect after network errors", Stage: "input"},
	{Key: "reconnect_delay_max", Name: "Reconnect Delay Max", Description: "Maximum seconds between reconnect attempts", Stage: "input"},
	{Key: "analyzeduration", Name: "Analyze Duration", Description: "Microseconds spent analyzing the input", Stage: "input"},
	{Key: "probesize", Name: "Probe Size", Description: "Bytes read to detect the input streams", Stage: "input"},
	{Key: "fflags", Name: "Format Flags", Description: "Demuxer/muxer flags such as +genpts", Stage: "input"},
	{Key: "user_agent", Name: "User Agent", Description: "HTTP User-Agent sent to the source", Stage: "input"},
	{Key: "thread_queue_size", Name: "Thread Queue Size", Description: "Packets buffered per input thread", Stage: "input"},
	{Key: "rw_timeout", Name: "Read/Write Timeout", Description: "Microseconds before an I/O operation fails", Stage: "input"},
	{Key: "hls_time", Name: "HLS Segment Time", Description: "Target HLS segment duration in seconds", Stage: "output"},
	{Key: "hls_list_size", Name: "HLS List Size", Description: "Number of segments kept in the playlist", Stage: "output"},
	{Key: "hls_flags", Name: "HLS Flags", Description: "HLS muxer flags such as delete_segments", Stage: "output"},
	{Key: "hls_segment_filename", Name: "HLS Segment Filename", Description: "Segment file name pattern", Stage: "output"},
	{Key: "seg_duration", Name: "DASH Segment Duration", Description: "Target DASH segment duration in seconds", Stage: "output"},
	{Key: "muxdelay", Name: "Mux Delay", Description: "Maximum demux-decode delay in seconds", Stage: "output"},
	{Key: "muxpreload", Name: "Mux Preload", Description: "Initial demux-decode delay in seconds", Stage: "output"},
	{Key: "flush_packets", Name: "Flush Packets", Description: "Flush packets immediately to the output", Stage: "output"},
	{Key: "mpegts_flags", Name: "MPEG-TS Flags", Description: "MPEG-TS muxer flags", Stage: "output"},
	{Key: "avoid_negative_ts", Name: "Avoid Negative Timestamps", Description: "Shift timestamps to avoid negative values", Stage: "output"},
}

var knownOptionIndex = func() map[string]OptionInfo {
	idx := make(map[string]OptionInfo, len(KnownOptions))
	for _, info := range KnownOptions {
		idx[info.Key] = info
	}
	return idx
}()

// describe returns the table entry for value, or "<field>: <value>" when it is missing.
func describe(table map[string]string, field, value string) string {
	if d, ok := table[strings.ToLower(value)]; ok {
		return d
	}
	return fallback(field, value)
}

func fallback(field, value string) string {
	if value == "" {
		return field
	}
	return field + ": " + value
}

// DescribeVideoCodec explains a video encoder name.
func DescribeVideoCodec(codec string) string {
	return describe(videoCodecDescriptions, "Video codec", codec)
}

// DescribeAudioCodec explains an audio encoder name.
func DescribeAudioCodec(codec string) string {
	return describe(audioCodecDescriptions, "Audio codec", codec)
}

// DescribePreset explains an encoder preset.
func DescribePreset(preset string) string {
	return describe(presetDescriptions, "Preset", preset)
}

// DescribeTune explains an encoder tune.
func DescribeTune(tune string) string {
	return describe(tuneDescriptions, "Tune", tune)
}

// DescribeFormat explains a container or device format identifier.
func DescribeFormat(format string) string {
	return describe(formatDescriptions, "Format", format)
}

// DescribePixelFormat explains a pixel format.
func DescribePixelFormat(pixFmt string) string {
	return describe(pixelFormatDescriptions, "Pixel format", pixFmt)
}

// DescribeProfile explains a codec profile.
func DescribeProfile(profile string) string {
	return describe(profileDescriptions, "Profile", profile)
}

// DescribeHWAccel explains a hardware acceleration API.
func DescribeHWAccel(api HWAccelAPI) string {
	if d, ok := hwaccelDescriptions[api]; ok {
		return d
	}
	return fallback("Hardware acceleration", string(api))
}

// DescribeRateControl explains a rate control mode.
func DescribeRateControl(mode RateControl) string {
	if d, ok := rateControlDescriptions[mode]; ok {
		return d
	}
	return fallback("Rate control", string(mode))
}

// DescribeStreamType names a stream type for annotations.
func DescribeStreamType(t StreamType) string {
	if d, ok := streamTypeDescriptions[t]; ok {
		return d
	}
	return fallback("Stream type", string(t))
}

// DescribeFilter explains a filter type.
func DescribeFilter(t FilterType) string {
	if d, ok := filterDescriptions[t]; ok {
		return d
	}
	return fallback("Filter", string(t))
}

// DescribeOption explains a free-form option; unknown keys fall back to "-key: value".
func DescribeOption(key, value string) string {
	norm := NormalizeKey(key)
	info, ok := knownOptionIndex[norm]
	if !ok {
		return fallback("-"+norm, value)
	}
	if value == "" {
		return info.Description
	}
	return fmt.Sprintf("%s (%s)", info.Description, value)
}

// CatalogEntry is one identifier with its description.
type CatalogEntry struct {
	Value       string `json:"value" doc:"Identifier"`
	Description string `json:"description" doc:"Human-readable description"`
}

// Tables holds the description tables for the console dropdowns.
type Tables struct {
	VideoCodecs  []CatalogEntry `json:"video_codecs"`
	AudioCodecs  []CatalogEntry `json:"audio_codecs"`
	Presets      []CatalogEntry `json:"presets"`
	Tunes        []CatalogEntry `json:"tunes"`
	Formats      []CatalogEntry `json:"formats"`
	PixelFormats []CatalogEntry `json:"pixel_formats"`
	Profiles     []CatalogEntry `json:"profiles"`
	HWAccels     []CatalogEntry `json:"hwaccels"`
	RateControls []CatalogEntry `json:"rate_controls"`
	Filters      []CatalogEntry `json:"filters"`
	Options      []OptionInfo   `json:"options"`
}

// Catalog returns every description table sorted by identifier.
func Catalog() Tables {
	return Tables{
		VideoCodecs:  entries(videoCodecDescriptions),
		AudioCodecs:  entries(audioCodecDescriptions),
		Presets:      entries(presetDescriptions),
		Tunes:        entries(tuneDescriptions),
		Formats:      entries(formatDescriptions),
		PixelFormats: entries(pixelFormatDescriptions),
		Profiles:     entries(profileDescriptions),
		HWAccels:     entries(hwaccelDescriptions),
		RateControls: entries(rateControlDescriptions),
		Filters:      entries(filterDescriptions),
		Options:      append([]OptionInfo(nil), KnownOptions...),
	}
}

func entries[K ~string](table map[K]string) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(table))
	for k, v := range table {
		out = append(out, CatalogEntry{Value: string(k), Description: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
