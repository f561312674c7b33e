package ffmpeg

import "github.com/danielgtaylor/huma/v2"

// Schema describes Options as a free-form JSON object for OpenAPI and request validation.
func (Options) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "Ordered flag map, emitted as -key value in key order",
		AdditionalProperties: true,
	}
}
