package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// UpstreamError is returned when a provider call fails, either at the
// transport level or with a non-2xx status. Body holds the provider's error
// payload when one was returned.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Payload returns the provider's error body when it is valid JSON, so
// handlers can relay it to the browser verbatim. Returns nil otherwise.
func (e *UpstreamError) Payload() json.RawMessage {
	if len(e.Body) > 0 && json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return nil
}

// Client performs JSON requests against one provider's job API. It never
// retries; callers decide what a failed call means for them.
type Client struct {
	baseURL string
	headers map[string]string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client for the given base URL. headers are sent on
// every request, auth included.
func NewClient(baseURL string, headers map[string]string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// PostJSON submits payload to path and returns the response body on 2xx.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("encode payload: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// GetJSON fetches path and returns the response body on 2xx.
func (c *Client) GetJSON(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("upstream returned error status",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return json.RawMessage(body), nil
}
