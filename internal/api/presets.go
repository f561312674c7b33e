package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/api/models"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/presets"
)

type presetIDInput struct {
	PresetID string `path:"preset_id" example:"system-x264-720p" doc:"Preset identifier"`
}

// registerPresetRoutes registers all preset-related endpoints
func (s *Server) registerPresetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-presets",
		Method:      http.MethodGet,
		Path:        "/api/ffmpeg/presets",
		Summary:     "List Presets",
		Description: "List built-in and stored presets and profiles",
		Tags:        []string{"presets"},
		Errors:      []int{401, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.PresetListRequest) (*models.PresetListResponse, error) {
		list, err := s.presetService.List(ctx)
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		data := make([]models.PresetData, 0, len(list))
		for _, p := range list {
			if input.Kind != "" && string(p.Kind) != input.Kind {
				continue
			}
			data = append(data, domainToAPIPreset(p))
		}

		return &models.PresetListResponse{
			Body: models.PresetListData{
				Presets: data,
				Count:   len(data),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-preset",
		Method:        http.MethodPost,
		Path:          "/api/ffmpeg/presets",
		Summary:       "Create Preset",
		Description:   "Store a named configuration as a preset or profile",
		Tags:          []string{"presets"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{400, 401, 409, 422, 500},
		Security:      withAuth(),
	}, func(ctx context.Context, input *models.PresetRequest) (*models.PresetResponse, error) {
		p, err := s.presetService.Create(ctx, presets.CreateParams{
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Kind:        presets.Kind(input.Body.Kind),
			Config:      input.Body.Config,
		})
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		return &models.PresetResponse{Body: domainToAPIPreset(*p)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "reload-presets",
		Method:      http.MethodPost,
		Path:        "/api/ffmpeg/presets/reload",
		Summary:     "Reload Presets",
		Description: "Re-read the presets file from disk",
		Tags:        []string{"presets"},
		Errors:      []int{401, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.ReloadResponse, error) {
		count, err := s.presetService.Reload(ctx)
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		resp := &models.ReloadResponse{}
		resp.Body.Message = "Presets reloaded"
		resp.Body.Count = count
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-preset",
		Method:      http.MethodGet,
		Path:        "/api/ffmpeg/presets/{preset_id}",
		Summary:     "Get Preset",
		Description: "Get a preset with its stored configuration",
		Tags:        []string{"presets"},
		Errors:      []int{401, 404, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *presetIDInput) (*models.PresetResponse, error) {
		p, err := s.presetService.Get(ctx, input.PresetID)
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		return &models.PresetResponse{Body: domainToAPIPreset(*p)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-preset",
		Method:      http.MethodPut,
		Path:        "/api/ffmpeg/presets/{preset_id}",
		Summary:     "Update Preset",
		Description: "Replace the name, description, kind and configuration of a stored preset",
		Tags:        []string{"presets"},
		Errors:      []int{400, 401, 403, 404, 409, 422, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.PresetUpdateRequest) (*models.PresetResponse, error) {
		p, err := s.presetService.Update(ctx, input.PresetID, presets.UpdateParams{
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Kind:        presets.Kind(input.Body.Kind),
			Config:      input.Body.Config,
		})
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		return &models.PresetResponse{Body: domainToAPIPreset(*p)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-preset",
		Method:        http.MethodDelete,
		Path:          "/api/ffmpeg/presets/{preset_id}",
		Summary:       "Delete Preset",
		Description:   "Delete a stored preset",
		Tags:          []string{"presets"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{401, 403, 404, 500},
		Security:      withAuth(),
	}, func(ctx context.Context, input *presetIDInput) (*struct{}, error) {
		if err := s.presetService.Delete(ctx, input.PresetID); err != nil {
			return nil, s.mapPresetError(err)
		}
		return nil, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-preset-command",
		Method:      http.MethodGet,
		Path:        "/api/ffmpeg/presets/{preset_id}/command",
		Summary:     "Get Preset Command",
		Description: "Generate the annotated FFmpeg command a preset describes",
		Tags:        []string{"presets", "ffmpeg"},
		Errors:      []int{401, 404, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *presetIDInput) (*models.PresetCommandResponse, error) {
		res, err := s.presetService.Preview(ctx, input.PresetID)
		if err != nil {
			return nil, s.mapPresetError(err)
		}

		return &models.PresetCommandResponse{
			Body: models.PresetCommandData{
				PresetID: input.PresetID,
				Result:   *res,
			},
		}, nil
	})
}

func domainToAPIPreset(p presets.Preset) models.PresetData {
	data := models.PresetData{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Kind:        string(p.Kind),
		System:      p.System,
		Config:      p.Config,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		data.CreatedAt = &created
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		data.UpdatedAt = &updated
	}
	return data
}

// mapPresetError maps domain errors to HTTP errors
func (s *Server) mapPresetError(err error) error {
	var presetErr *presets.PresetError
	if !errors.As(err, &presetErr) {
		return huma.Error500InternalServerError("internal server error", err)
	}

	switch presetErr.Code {
	case presets.ErrCodePresetNotFound:
		return huma.Error404NotFound(presetErr.Message, err)
	case presets.ErrCodePresetExists:
		return huma.Error409Conflict(presetErr.Message, err)
	case presets.ErrCodeReadOnly:
		return huma.Error403Forbidden(presetErr.Message, err)
	case presets.ErrCodeInvalidParams:
		return huma.Error400BadRequest(presetErr.Message, err)
	case presets.ErrCodeStoreError:
		s.logger.Error("Preset store failure", "error", err)
		return huma.Error500InternalServerError(presetErr.Message, err)
	default:
		return huma.Error500InternalServerError("internal server error", err)
	}
}
