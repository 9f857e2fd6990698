package server

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipecheck/internal/config"
	"github.com/vk/pipecheck/internal/ctxlog"
)

func contextWithLogger(t *testing.T, logger *slog.Logger) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), logger))
	t.Cleanup(cancel)
	return ctx, cancel
}

func TestCORS_AllowedOrigin(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := newClient(t).R().
		SetHeader("Origin", "http://localhost:3000").
		Get(ts.URL + "/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, res.Header().Values("Vary"), "Origin")
}

func TestCORS_Preflight(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := newClient(t).R().
		SetHeader("Origin", "http://localhost:3000").
		SetHeader("Access-Control-Request-Method", "POST").
		SetHeader("Access-Control-Request-Headers", "content-type,x-custom").
		Options(ts.URL + "/pipelines/parse")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, res.StatusCode())
	assert.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, res.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "content-type,x-custom", res.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, corsMaxAge, res.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	client := newClient(t)

	t.Run("simple request gets no CORS headers", func(t *testing.T) {
		res, err := client.R().
			SetHeader("Origin", "http://evil.example").
			Get(ts.URL + "/")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode())
		assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is rejected", func(t *testing.T) {
		res, err := client.R().
			SetHeader("Origin", "http://evil.example").
			SetHeader("Access-Control-Request-Method", "POST").
			Options(ts.URL + "/pipelines/parse")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode())
		assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORS_Wildcard(t *testing.T) {
	ts, _ := newTestServer(t, func(c *config.Config) {
		c.CORS = config.CORS{AllowOrigins: []string{"*"}}
	})

	res, err := newClient(t).R().
		SetHeader("Origin", "http://anywhere.example").
		Get(ts.URL + "/")
	require.NoError(t, err)

	assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, res.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestLogging(t *testing.T) {
	ts, buf := newTestServer(t, nil)
	client := newClient(t)

	t.Run("generates a request id", func(t *testing.T) {
		res, err := client.R().Get(ts.URL + "/health")
		require.NoError(t, err)

		id := res.Header().Get(headerRequestID)
		require.NotEmpty(t, id)
		assert.Contains(t, buf.String(), "request_id="+id)
		assert.Contains(t, buf.String(), "Request handled.")
	})

	t.Run("keeps the caller's request id", func(t *testing.T) {
		res, err := client.R().
			SetHeader(headerRequestID, "req-42").
			Get(ts.URL + "/health")
		require.NoError(t, err)

		assert.Equal(t, "req-42", res.Header().Get(headerRequestID))
		assert.Contains(t, buf.String(), "request_id=req-42")
	})
}
