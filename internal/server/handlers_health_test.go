package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(srv, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.String())
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")
}

func TestReadinessEndpoint(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		srv := newTestServer(t, withHealthChecks(
			HealthCheck{Name: "database", Check: func(context.Context) error { return nil }},
			HealthCheck{Name: "cache", Check: func(context.Context) error { return nil }},
		))

		rec := doJSON(srv, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decodeBody(t, rec.Body.String())["status"])
	})

	t.Run("failing check reports its name", func(t *testing.T) {
		srv := newTestServer(t, withHealthChecks(
			HealthCheck{Name: "database", Check: func(context.Context) error { return nil }},
			HealthCheck{Name: "cache", Check: func(context.Context) error { return errors.New("connection refused") }},
		))

		rec := doJSON(srv, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeBody(t, rec.Body.String())
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "cache", body["failed_check"])
		assert.Equal(t, "connection refused", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(srv, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
