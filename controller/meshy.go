package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gen912/WeWear/pkg/metrics"
	"github.com/Gen912/WeWear/provider"
	"github.com/Gen912/WeWear/task"
)

// SubmitImageTo3D accepts either a multipart upload (file field "image") or
// a JSON body with "image_url", translates the parameter bag through the
// Meshy schema and relays the provider's job-creation response.
func (h *Handler) SubmitImageTo3D(c *gin.Context) {
	src, params, err := parseJobRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := src.Resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := provider.MeshySchema.Apply(params)
	payload["image_url"] = image

	resp, err := h.meshy.CreateTask(c.Request.Context(), payload)
	if err != nil {
		metrics.JobsSubmitted.WithLabelValues("meshy", metrics.OutcomeError).Inc()
		h.logger.Error("image-to-3d submission failed", zap.Error(err))
		upstreamFailure(c, err)
		return
	}
	metrics.JobsSubmitted.WithLabelValues("meshy", metrics.OutcomeOK).Inc()
	c.Data(http.StatusOK, "application/json", resp)
}

// GetImageTo3DTask relays the provider's current status envelope for a task.
func (h *Handler) GetImageTo3DTask(c *gin.Context) {
	resp, err := h.meshy.GetTask(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

// StreamImageTo3DEvents streams status envelopes for a task over SSE until
// the task reaches SUCCEEDED, FAILED or CANCELED, a poll fails, or the
// browser disconnects.
func (h *Handler) StreamImageTo3DEvents(c *gin.Context) {
	taskID := c.Param("task_id")
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		envelope, err := h.meshy.GetTask(ctx, taskID)
		if err != nil {
			metrics.Polls.WithLabelValues("meshy", metrics.OutcomeError).Inc()
			return nil, err
		}
		metrics.Polls.WithLabelValues("meshy", metrics.OutcomeOK).Inc()
		return envelope, nil
	}
	h.streamEvents(c, fetch, provider.MeshyTerminal)
}

// parseJobRequest turns the inbound request into an image source plus the
// loosely-typed parameter bag, whichever encoding the client picked.
func parseJobRequest(c *gin.Context) (task.ImageSource, map[string]any, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return parseMultipartJob(c)
	}
	return parseJSONJob(c)
}

func parseMultipartJob(c *gin.Context) (task.ImageSource, map[string]any, error) {
	params := map[string]any{}

	file, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return task.ImageSource{}, nil, err
	}

	var src task.ImageSource
	if file != nil {
		if src, err = readUpload(file); err != nil {
			return task.ImageSource{}, nil, err
		}
	}

	if form := c.Request.MultipartForm; form != nil {
		for name, values := range form.Value {
			if len(values) > 0 {
				params[name] = values[0]
			}
		}
	}
	if url, ok := params["image_url"].(string); ok {
		src.URL = url
		delete(params, "image_url")
	}
	return src, params, nil
}

func parseJSONJob(c *gin.Context) (task.ImageSource, map[string]any, error) {
	params := map[string]any{}
	if err := c.ShouldBindJSON(&params); err != nil {
		return task.ImageSource{}, nil, err
	}

	var src task.ImageSource
	if url, ok := params["image_url"].(string); ok {
		src.URL = url
		delete(params, "image_url")
	}
	return src, params, nil
}
