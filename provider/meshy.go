package provider

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Gen912/WeWear/task"
)

// MeshyTerminal is the set of task statuses after which Meshy stops working
// on a task.
var MeshyTerminal = map[string]bool{
	"SUCCEEDED": true,
	"FAILED":    true,
	"CANCELED":  true,
}

// MeshySchema is the recognized-field table for image-to-3d submissions.
// Texturing is on unless the client turns it off.
var MeshySchema = task.Schema{
	Fields: map[string]task.FieldKind{
		"should_texture":   task.Boolean,
		"should_remesh":    task.Boolean,
		"enable_pbr":       task.Boolean,
		"target_polycount": task.Number,
	},
	Defaults: map[string]any{
		"should_texture": true,
	},
}

// Meshy is the image-to-3d provider client.
type Meshy struct {
	client *Client
}

// NewMeshy builds a Meshy client with bearer auth.
func NewMeshy(baseURL, apiKey string, logger *zap.Logger) *Meshy {
	return &Meshy{
		client: NewClient(baseURL, map[string]string{
			"Authorization": "Bearer " + apiKey,
		}, logger.Named("meshy")),
	}
}

// CreateTask submits an image-to-3d job and returns the provider's
// job-creation response verbatim.
func (m *Meshy) CreateTask(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	return m.client.PostJSON(ctx, "/image-to-3d", payload)
}

// GetTask returns the current status envelope for a task.
func (m *Meshy) GetTask(ctx context.Context, taskID string) (json.RawMessage, error) {
	return m.client.GetJSON(ctx, "/image-to-3d/"+taskID)
}
