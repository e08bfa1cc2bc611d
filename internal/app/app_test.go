package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/woozymasta/hello-app/internal/config"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default() error = %v", err)
	}
	return cfg
}

func shutdown(t *testing.T, a *App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestRunServesUntilCanceled(t *testing.T) {
	t.Parallel()

	a, err := New(defaultConfig(t), config.Instance{Environment: "staging"}, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	resp, err := http.Get("http://" + a.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	shutdown(t, a)
}

func TestWishesDisabledByDefault(t *testing.T) {
	t.Parallel()

	a, err := New(defaultConfig(t), config.Instance{}, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer shutdown(t, a)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishes", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /wishes status = %d, want 404", rec.Code)
	}
}

func TestWishesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wishes.html")
	if err := os.WriteFile(path, []byte("<h1>Happy birthday</h1>"), 0o600); err != nil {
		t.Fatalf("write page: %v", err)
	}

	cfg := defaultConfig(t)
	cfg.Wishes.Enabled = true
	cfg.Wishes.Path = path
	cfg.MetricsEnabled = true

	a, err := New(cfg, config.Instance{}, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer shutdown(t, a)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /wishes status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "<h1>Happy birthday</h1>" {
		t.Fatalf("GET /wishes body = %q", got)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hello_app_http_requests_total") {
		t.Fatalf("GET /metrics = %d, want exposition with request counter", rec.Code)
	}
}

func TestNewFailsOnMissingWishesFile(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig(t)
	cfg.Wishes.Enabled = true
	cfg.Wishes.Path = filepath.Join(t.TempDir(), "missing.html")

	if _, err := New(cfg, config.Instance{}, "127.0.0.1:0"); err == nil {
		t.Fatal("New() error = nil, want missing wishes file error")
	}
}

func TestNewFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	first, err := New(defaultConfig(t), config.Instance{}, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer shutdown(t, first)

	if _, err := New(defaultConfig(t), config.Instance{}, first.Addr()); err == nil {
		t.Fatal("New() on busy port error = nil, want error")
	}
}
