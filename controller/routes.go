package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes attaches the relay's HTTP surface to r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/image-to-3d", h.SubmitImageTo3D)
	r.GET("/image-to-3d/:task_id", h.GetImageTo3DTask)
	r.GET("/events/:task_id", h.StreamImageTo3DEvents)

	r.POST("/fashn/tryon", h.SubmitTryOn)
	r.GET("/fashn/tryon/:id", h.GetTryOn)
	r.GET("/fashn/events/:id", h.StreamTryOnEvents)

	r.GET("/download", h.Download)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
