package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gen912/WeWear/pkg/metrics"
	"github.com/Gen912/WeWear/util"
)

// Download re-streams a remote result file through the relay so the browser
// does not have to fetch it from the provider's origin.
func (h *Handler) Download(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	err := util.RelayDownload(c.Request.Context(), h.downloads, rawURL, c.Writer)
	if err != nil {
		metrics.Downloads.WithLabelValues(metrics.OutcomeError).Inc()
		var de *util.DownloadError
		if errors.As(err, &de) {
			h.logger.Error("download relay failed", zap.String("url", rawURL), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// headers already went out; a broken transfer just ends here
		return
	}
	metrics.Downloads.WithLabelValues(metrics.OutcomeOK).Inc()
}
