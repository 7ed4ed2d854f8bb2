package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "provision/internal/http"
	"provision/internal/listing/handler"
	"provision/internal/listing/service"
	"provision/internal/listing/store"
	"provision/internal/platform/metrics"
)

func newRouter(t *testing.T, staticDir string, checks ...httpapi.ReadinessCheck) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewMemory(), log)
	return httpapi.NewRouter(handler.New(svc, log), httpapi.RouterConfig{
		Logger:    log,
		Metrics:   metrics.New(),
		StaticDir: staticDir,
		Readiness: checks,
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyEndpoint(t *testing.T) {
	router := newRouter(t, "", httpapi.ReadinessCheck{
		Name:  "postgres",
		Check: func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestReadyEndpointFailingDependency(t *testing.T) {
	router := newRouter(t, "", httpapi.ReadinessCheck{
		Name:  "redis",
		Check: func(context.Context) error { return errors.New("dial tcp: connection refused") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"unavailable","error_description":"redis is unavailable"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, "")

	// Drive one request through the chain so the counter has a sample.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "provision_http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	router := newRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-me", rec.Header().Get("X-Request-ID"))
}

func TestContentTypeEnforcement(t *testing.T) {
	router := newRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_request")
}

func TestStaticIndex(t *testing.T) {
	dir := t.TempDir()
	page := "<!DOCTYPE html><title>Service PROvision</title>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644))

	router := newRouter(t, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service PROvision")
}
