// Package web provides the HTTP router, handlers and server.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/woozymasta/hello-app/internal/config"
	"github.com/woozymasta/hello-app/internal/metrics"
)

// Options configures the router.
type Options struct {
	// Started is the process start time used for uptime.
	Started time.Time

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time

	// Wishes serves GET /wishes; nil leaves the route unregistered.
	Wishes http.Handler

	// Metrics instruments requests and serves GET /metrics; nil disables both.
	Metrics *metrics.Metrics

	Logger   zerolog.Logger
	Instance config.Instance
}

// NewRouter builds the application handler.
func NewRouter(opts Options) http.Handler {
	h := &handlers{
		instance: opts.Instance.WithDefaults(),
		started:  opts.Started,
		now:      opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.started.IsZero() {
		h.started = h.now()
	}

	r := chi.NewRouter()

	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestID)
	r.Use(accessLog())
	r.Use(opts.Metrics.Middleware)
	r.Use(h.recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.notFound)

	r.Get("/health", h.wrap(h.health))
	r.Get("/", h.wrap(h.root))
	r.Get("/api/info", h.wrap(h.info))

	if opts.Wishes != nil {
		r.Method(http.MethodGet, "/wishes", opts.Wishes)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	return r
}
