package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientPostJSONRelaysBody(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"result":"task-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, map[string]string{"Authorization": "Bearer test-key"}, zap.NewNop())
	body, err := c.PostJSON(context.Background(), "/image-to-3d", map[string]any{"image_url": "https://x/y.png"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"task-123"}`, string(body))
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "https://x/y.png", gotBody["image_url"])
}

func TestClientGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status/abc", r.URL.Path)
		w.Write([]byte(`{"status":"processing"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	body, err := c.GetJSON(context.Background(), "/status/abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"processing"}`, string(body))
}

func TestClientNon2xxCarriesProviderBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient credits"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.GetJSON(context.Background(), "/image-to-3d/t1")
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusPaymentRequired, ue.StatusCode)
	assert.JSONEq(t, `{"error":"insufficient credits"}`, string(ue.Payload()))
}

func TestClientNonJSONErrorBodyHasNoPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.GetJSON(context.Background(), "/run")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Nil(t, ue.Payload())
	assert.Contains(t, ue.Error(), "upstream exploded")
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.GetJSON(context.Background(), "/status/x")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Nil(t, ue.Payload())
	assert.NotEmpty(t, ue.Error())
}

func TestMeshyEndpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := NewMeshy(srv.URL, "k", zap.NewNop())
	_, err := m.CreateTask(context.Background(), map[string]any{})
	require.NoError(t, err)
	_, err = m.GetTask(context.Background(), "task-123")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /image-to-3d", "GET /image-to-3d/task-123"}, paths)
}

func TestFashnEndpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := NewFashn(srv.URL, "k", zap.NewNop())
	_, err := f.CreatePrediction(context.Background(), map[string]any{})
	require.NoError(t, err)
	_, err = f.GetPrediction(context.Background(), "pred-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /run", "GET /status/pred-1"}, paths)
}
