package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/hello-app/internal/config"
	"github.com/woozymasta/hello-app/internal/metrics"
	"github.com/woozymasta/hello-app/internal/web"
	"github.com/woozymasta/hello-app/internal/wishes"
)

// processStart is captured as early as possible so uptime covers startup.
var processStart = time.Now()

// App represents the main application with all its dependencies.
type App struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	wishes    *wishes.Page
	webServer *web.Server
	instance  config.Instance
}

// New creates and initializes a new App instance. The listener on addr is
// bound here, so a busy port fails New rather than Run.
func New(cfg *config.Config, instance config.Instance, addr string) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}

	instance = instance.WithDefaults()

	// Initialize metrics if enabled
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	var page *wishes.Page
	if cfg.Wishes.Enabled {
		var err error
		page, err = openWishes(cfg.Wishes)
		if err != nil {
			return nil, err
		}
	}

	opts := web.Options{
		Instance: instance,
		Started:  processStart,
		Metrics:  m,
		Logger:   log.Logger,
	}
	if page != nil {
		opts.Wishes = page
	}

	webSrv, err := web.NewServer(addr, web.NewRouter(opts), cfg.ReadHeaderTimeout.Std())
	if err != nil {
		return nil, fmt.Errorf("app: create web server: %w", err)
	}

	return &App{
		cfg:       cfg,
		instance:  instance,
		metrics:   m,
		wishes:    page,
		webServer: webSrv,
	}, nil
}

func openWishes(cfg config.Wishes) (*wishes.Page, error) {
	if cfg.Path == "" {
		return wishes.Embedded(), nil
	}

	page, err := wishes.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("app: open wishes page: %w", err)
	}
	return page, nil
}

// Addr returns the address the HTTP server listens on.
func (a *App) Addr() string {
	return a.webServer.Addr()
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.webServer.Handler()
}

// Run starts the application and blocks until the context is canceled or
// the HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	a.webServer.Start()

	if a.wishes != nil && a.wishes.Path() != "" {
		go func() {
			if err := a.wishes.Watch(ctx, a.cfg.Wishes.ReloadInterval.Std()); err != nil {
				log.Warn().Err(err).Str("path", a.wishes.Path()).Msg("Wishes page watcher stopped")
			}
		}()
	}

	log.Info().
		Str("addr", a.Addr()).
		Str("environment", a.instance.Environment).
		Str("region", a.instance.Region).
		Str("instance_id", a.instance.InstanceID).
		Bool("metrics_enabled", a.metrics != nil).
		Bool("wishes_enabled", a.wishes != nil).
		Msg("hello-app started")

	select {
	case <-ctx.Done():
		log.Info().Msg("hello-app stopping")
		return nil
	case err, ok := <-a.webServer.Err():
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	if a.webServer == nil {
		return nil
	}

	if err := a.webServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}

	log.Info().Msg("hello-app stopped")
	return nil
}
