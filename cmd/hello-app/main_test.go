package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
)

func TestParseDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "APP_REGION", "WEBSITE_INSTANCE_ID"} {
		unsetenv(t, key)
	}

	var opts options
	if _, err := flags.ParseArgs(&opts, nil); err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if opts.Port != "3000" {
		t.Fatalf("Port = %q, want 3000", opts.Port)
	}
	inst := opts.Instance.WithDefaults()
	if inst.Environment != "development" || inst.Region != "unknown" || inst.InstanceID != "local" {
		t.Fatalf("Instance = %+v, want defaults", inst)
	}
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_REGION", "westeurope")
	t.Setenv("WEBSITE_INSTANCE_ID", "abc123")

	var opts options
	if _, err := flags.ParseArgs(&opts, nil); err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if opts.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", opts.Port)
	}
	if opts.Environment != "production" || opts.Region != "westeurope" || opts.InstanceID != "abc123" {
		t.Fatalf("Instance = %+v", opts.Instance)
	}
}

func TestLoadConfigWishesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishes.html")

	cfg, err := loadConfig(context.Background(), &options{WishesFile: path})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if !cfg.Wishes.Enabled || cfg.Wishes.Path != path {
		t.Fatalf("Wishes = %+v, want enabled with %s", cfg.Wishes, path)
	}

	cfg, err = loadConfig(context.Background(), &options{Wishes: true})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if !cfg.Wishes.Enabled || cfg.Wishes.Path != "" {
		t.Fatalf("Wishes = %+v, want enabled embedded page", cfg.Wishes)
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	if err := run(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("run(--version) error = %v", err)
	}
	if err := run(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("run(--help) error = %v", err)
	}
}

func TestRunStartsWithDefaultConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := run(ctx, []string{"--port", "0", "--log-level", "error"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRunStartsWithWishesAndMetrics(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "wishes.html")
	if err := os.WriteFile(page, []byte("<h1>hi</h1>"), 0o600); err != nil {
		t.Fatalf("write page: %v", err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("metrics_enabled: true\nwishes:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	args := []string{"--port", "0", "--log-level", "error", "--config", configPath, "--wishes-file", page}
	if err := run(ctx, args); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRunMissingConfig(t *testing.T) {
	err := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("run() error = nil, want missing config error")
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}
