package models

import (
	"time"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/encoders"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2024-12-15 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Generator models
type GenerateRequest struct {
	Body ffmpeg.Config
}

type GenerateResponse struct {
	Body ffmpeg.Result
}

type CatalogResponse struct {
	Body ffmpeg.Tables
}

// Capability models
type CapabilitiesData struct {
	Capabilities  []string           `json:"capabilities" doc:"Hardware families reported for this host"`
	VideoEncoders []encoders.Encoder `json:"video_encoders" doc:"Known video encoders"`
	AudioEncoders []encoders.Encoder `json:"audio_encoders" doc:"Known audio encoders"`
	Count         int                `json:"count" example:"24" doc:"Total number of encoders after filtering"`
}

type CapabilitiesRequest struct {
	Type      string `query:"type" enum:"V,A" doc:"Only video (V) or audio (A) encoders"`
	Search    string `query:"search" maxLength:"50" doc:"Match against encoder name or description"`
	HWAccel   bool   `query:"hwaccel" doc:"Only hardware encoders"`
	Available bool   `query:"available" doc:"Only encoders the host can run"`
}

type CapabilitiesResponse struct {
	Body CapabilitiesData
}

// Preset models
type PresetData struct {
	ID          string        `json:"id" example:"5f0c6e1e-8f1b-4d2a-9c3e-2b7f1f0a9d11" doc:"Preset identifier"`
	Name        string        `json:"name" example:"IPTV H.264 720p" doc:"Preset name"`
	Description string        `json:"description,omitempty" doc:"Free-form description"`
	Kind        string        `json:"kind" enum:"preset,profile" doc:"preset or profile"`
	System      bool          `json:"system" doc:"Built-in presets are read-only"`
	Config      ffmpeg.Config `json:"config" doc:"Stored configuration"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty" doc:"Creation time"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty" doc:"Last update time"`
}

type PresetListData struct {
	Presets []PresetData `json:"presets" doc:"Built-in presets first, then stored presets by name"`
	Count   int          `json:"count" example:"7" doc:"Number of presets"`
}

type PresetListResponse struct {
	Body PresetListData
}

type PresetListRequest struct {
	Kind string `query:"kind" enum:"preset,profile" doc:"Only presets of this kind"`
}

type PresetRequestData struct {
	Name        string        `json:"name" minLength:"1" maxLength:"100" example:"IPTV H.264 720p" doc:"Preset name, unique per kind"`
	Description string        `json:"description,omitempty" maxLength:"500" doc:"Free-form description"`
	Kind        string        `json:"kind,omitempty" enum:"preset,profile" default:"preset" doc:"preset or profile"`
	Config      ffmpeg.Config `json:"config" doc:"Configuration to store"`
}

type PresetRequest struct {
	Body PresetRequestData
}

type PresetUpdateRequest struct {
	PresetID string `path:"preset_id" example:"5f0c6e1e-8f1b-4d2a-9c3e-2b7f1f0a9d11" doc:"Preset identifier"`
	Body     PresetRequestData
}

type PresetResponse struct {
	Body PresetData
}

type PresetCommandData struct {
	PresetID string `json:"preset_id" doc:"Preset the command was generated from"`
	ffmpeg.Result
}

type PresetCommandResponse struct {
	Body PresetCommandData
}

// ReloadResponse is the response for the preset reload operation
type ReloadResponse struct {
	Body struct {
		Message string `json:"message" doc:"Operation result message"`
		Count   int    `json:"count" doc:"Number of stored presets after the reload"`
	}
}
