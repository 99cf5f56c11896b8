package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	ginsse "github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gen912/WeWear/config"
	"github.com/Gen912/WeWear/pkg/sse"
	"github.com/Gen912/WeWear/provider"
	"github.com/Gen912/WeWear/task"
)

// Handler carries the relay's injected collaborators: the two provider
// clients, the plain HTTP client used by the download relay, and config for
// the health report.
type Handler struct {
	cfg       *config.Config
	meshy     *provider.Meshy
	fashn     *provider.Fashn
	downloads *http.Client
	logger    *zap.Logger
}

// NewHandler wires a Handler from loaded config.
func NewHandler(cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:   cfg,
		meshy: provider.NewMeshy(cfg.MeshyBaseURL, cfg.MeshyAPIKey, logger),
		fashn: provider.NewFashn(cfg.FashnBaseURL, cfg.FashnAPIKey, logger),
		// no global timeout: result files can be large, cancellation
		// rides the request context instead
		downloads: &http.Client{},
		logger:    logger,
	}
}

// upstreamFailure relays a failed provider call as 500, preferring the
// provider's own error payload over our wrapper text.
func upstreamFailure(c *gin.Context, err error) {
	var ue *provider.UpstreamError
	if errors.As(err, &ue) {
		if payload := ue.Payload(); payload != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": payload})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// readUpload pulls one multipart file into memory as an ImageSource.
func readUpload(file *multipart.FileHeader) (task.ImageSource, error) {
	f, err := file.Open()
	if err != nil {
		return task.ImageSource{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return task.ImageSource{}, err
	}
	return task.ImageSource{
		Data: data,
		MIME: file.Header.Get("Content-Type"),
	}, nil
}

// streamEvents serves one SSE subscription: spawn the poll session, relay
// its events until it closes the channel or the browser disconnects.
func (h *Handler) streamEvents(c *gin.Context, fetch sse.FetchFunc, terminal map[string]bool) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := make(chan sse.Event, 8)
	go sse.NewSession(fetch, terminal).Run(c.Request.Context(), events)

	// comment ping as the initial handshake, some proxies need it to keep
	// the connection open
	c.Writer.WriteString(": connected\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.Render(-1, ginsse.Event{
			Event: ev.Name,
			Data:  string(ev.Data),
		})
		return true
	})
}
