// Package httpapi assembles the public HTTP surface: the listing routes, the
// health and metrics endpoints and the static landing page, all behind the
// shared middleware chain.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"provision/internal/listing/handler"
	"provision/internal/platform/metrics"
	"provision/internal/platform/middleware"
	dErrors "provision/pkg/domain-errors"
	"provision/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// ReadinessCheck probes one backing dependency for the /ready endpoint.
type ReadinessCheck struct {
	Name  string
	Check func(context.Context) error
}

// RouterConfig carries everything the router needs beyond the listing handler.
type RouterConfig struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	StaticDir string
	Readiness []ReadinessCheck
}

// NewRouter wires the middleware chain and all public endpoints.
func NewRouter(listings *handler.Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	if cfg.Metrics != nil {
		r.Use(middleware.Latency(cfg.Metrics))
	}

	r.Get("/health", handleHealth)
	r.Get("/ready", handleReady(cfg.Logger, cfg.Readiness))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	if cfg.StaticDir != "" {
		r.Get("/", serveIndex(cfg.StaticDir))
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.Handle("/static/*", fs)
	}

	listings.Register(r)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady probes every configured dependency; the first failure makes the
// whole service not ready.
func handleReady(log *slog.Logger, checks []ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed",
					"check", c.Name,
					"error", err.Error(),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, c.Name+" is unavailable"))
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func serveIndex(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
