package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/api/models"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/encoders"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/presets"
)

// SourceAPI marks commands generated through POST /api/ffmpeg/generate.
const SourceAPI = "api"

// registerGeneratorRoutes registers the command builder endpoints.
func (s *Server) registerGeneratorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generate-command",
		Method:      http.MethodPost,
		Path:        "/api/ffmpeg/generate",
		Summary:     "Generate Command",
		Description: "Build an FFmpeg command from a configuration, with one annotation per flag and compatibility warnings",
		Tags:        []string{"ffmpeg"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422},
	}, func(_ context.Context, input *models.GenerateRequest) (*models.GenerateResponse, error) {
		res := ffmpeg.Generate(input.Body)

		s.eventBus.Publish(events.CommandGeneratedEvent{
			Source:    SourceAPI,
			FlagCount: len(res.Flags),
			Warnings:  presets.WarningRules(res.WarningDetails),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if len(res.Warnings) > 0 {
			s.logger.Debug("Generated command with warnings", "rules", presets.WarningRules(res.WarningDetails))
		}

		return &models.GenerateResponse{Body: res}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-ffmpeg-catalog",
		Method:      http.MethodGet,
		Path:        "/api/ffmpeg/catalog",
		Summary:     "Get Description Tables",
		Description: "Codecs, presets, tunes, formats, pixel formats, profiles, hardware APIs, rate controls, filters and option keys with descriptions",
		Tags:        []string{"ffmpeg"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.CatalogResponse, error) {
		return &models.CatalogResponse{Body: ffmpeg.Catalog()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-ffmpeg-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/ffmpeg/capabilities",
		Summary:     "Get Hardware Capabilities",
		Description: "Hardware families reported for this host and the encoder catalog marked with availability",
		Tags:        []string{"ffmpeg", "encoders"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(ctx context.Context, input *models.CapabilitiesRequest) (*models.CapabilitiesResponse, error) {
		caps, err := s.capabilities.HardwareCapabilities(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to read hardware capabilities", err)
		}

		list := encoders.FilterEncoders(encoders.Catalog(caps), encoders.EncoderFilter{
			Type:      input.Type,
			Search:    input.Search,
			Hwaccel:   input.HWAccel,
			Available: input.Available,
		})

		return &models.CapabilitiesResponse{
			Body: models.CapabilitiesData{
				Capabilities:  caps,
				VideoEncoders: list.VideoEncoders,
				AudioEncoders: list.AudioEncoders,
				Count:         len(list.VideoEncoders) + len(list.AudioEncoders),
			},
		}, nil
	})
}
