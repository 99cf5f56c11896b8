package provider

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Gen912/WeWear/task"
)

// FashnTerminal is the set of prediction statuses after which FASHN stops
// working on a prediction.
var FashnTerminal = map[string]bool{
	"completed": true,
	"failed":    true,
}

// FashnSchema is the recognized-field table for try-on submissions, with the
// documented defaults. num_samples is clamped to what the provider accepts.
var FashnSchema = task.Schema{
	Fields: map[string]task.FieldKind{
		"segmentation_free": task.Boolean,
		"return_base64":     task.Boolean,
		"seed":              task.Number,
		"num_samples":       task.Number,
	},
	Defaults: map[string]any{
		"category":           "auto",
		"segmentation_free":  true,
		"moderation_level":   "permissive",
		"garment_photo_type": "auto",
		"mode":               "balanced",
		"seed":               float64(42),
		"num_samples":        float64(1),
		"output_format":      "png",
		"return_base64":      false,
	},
	Clamps: map[string]task.Range{
		"num_samples": {Min: 1, Max: 4},
	},
}

// Fashn is the virtual try-on provider client.
type Fashn struct {
	client *Client
}

// NewFashn builds a FASHN client with bearer auth.
func NewFashn(baseURL, apiKey string, logger *zap.Logger) *Fashn {
	return &Fashn{
		client: NewClient(baseURL, map[string]string{
			"Authorization": "Bearer " + apiKey,
		}, logger.Named("fashn")),
	}
}

// CreatePrediction submits a try-on job and returns the provider's
// prediction-creation response verbatim.
func (f *Fashn) CreatePrediction(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	return f.client.PostJSON(ctx, "/run", payload)
}

// GetPrediction returns the current status envelope for a prediction.
func (f *Fashn) GetPrediction(ctx context.Context, id string) (json.RawMessage, error) {
	return f.client.GetJSON(ctx, "/status/"+id)
}
