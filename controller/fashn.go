package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gen912/WeWear/pkg/metrics"
	"github.com/Gen912/WeWear/provider"
)

const missingTryOnImages = "Please upload both person and garment images."

// SubmitTryOn accepts multipart fields "person" and "garment" plus optional
// try-on parameters, translates them through the FASHN schema and relays the
// provider's prediction-creation response.
func (h *Handler) SubmitTryOn(c *gin.Context) {
	personFile, personErr := c.FormFile("person")
	garmentFile, garmentErr := c.FormFile("garment")
	if personErr != nil || garmentErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingTryOnImages})
		return
	}

	person, err := readUpload(personFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	garment, err := readUpload(garmentFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := map[string]any{}
	if form := c.Request.MultipartForm; form != nil {
		for name, values := range form.Value {
			if len(values) > 0 {
				params[name] = values[0]
			}
		}
	}

	payload := provider.FashnSchema.Apply(params)
	// uploads are always inline bytes here, Resolve cannot fail
	payload["model_image"], _ = person.Resolve()
	payload["garment_image"], _ = garment.Resolve()

	resp, err := h.fashn.CreatePrediction(c.Request.Context(), payload)
	if err != nil {
		metrics.JobsSubmitted.WithLabelValues("fashn", metrics.OutcomeError).Inc()
		h.logger.Error("try-on submission failed", zap.Error(err))
		upstreamFailure(c, err)
		return
	}
	metrics.JobsSubmitted.WithLabelValues("fashn", metrics.OutcomeOK).Inc()
	c.Data(http.StatusOK, "application/json", resp)
}

// GetTryOn relays the provider's current status envelope for a prediction.
func (h *Handler) GetTryOn(c *gin.Context) {
	resp, err := h.fashn.GetPrediction(c.Request.Context(), c.Param("id"))
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

// StreamTryOnEvents streams status envelopes for a prediction over SSE until
// it completes or fails, a poll fails, or the browser disconnects.
func (h *Handler) StreamTryOnEvents(c *gin.Context) {
	id := c.Param("id")
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		envelope, err := h.fashn.GetPrediction(ctx, id)
		if err != nil {
			metrics.Polls.WithLabelValues("fashn", metrics.OutcomeError).Inc()
			return nil, err
		}
		metrics.Polls.WithLabelValues("fashn", metrics.OutcomeOK).Inc()
		return envelope, nil
	}
	h.streamEvents(c, fetch, provider.FashnTerminal)
}
