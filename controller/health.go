package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness plus whether provider credentials were configured,
// which the browser client checks before offering uploads.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"api_key_configured": h.cfg.KeysConfigured(),
	})
}
