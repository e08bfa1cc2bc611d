// Package reloader polls a file and triggers a callback when its content changes.
package reloader

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Reloader watches a single file and applies updates on changes.
type Reloader struct {
	onChange   func(context.Context) error
	path       string
	interval   time.Duration
	lastSig    [sha256.Size]byte
	hasLastSig bool
}

// New creates a new file reloader.
func New(path string, interval time.Duration, onChange func(context.Context) error) (*Reloader, error) {
	if path == "" {
		return nil, errors.New("reloader: empty file path")
	}
	if interval <= 0 {
		return nil, errors.New("reloader: interval must be greater than zero")
	}
	if onChange == nil {
		return nil, errors.New("reloader: onChange callback is required")
	}

	return &Reloader{
		path:     path,
		interval: interval,
		onChange: onChange,
	}, nil
}

// Seed records data as the content the caller already applied, so the
// first tick reloads if the file no longer matches it. Call before Start.
func (r *Reloader) Seed(data []byte) {
	r.lastSig = sha256.Sum256(data)
	r.hasLastSig = true
}

// Start polls the file on a gocron duration job until ctx is canceled.
// Checks never overlap: a slow callback postpones the next tick.
// Without Seed, the file content at Start is taken as already applied.
func (r *Reloader) Start(ctx context.Context) error {
	if r == nil {
		return nil
	}

	if !r.hasLastSig {
		if sig, err := fileSignature(r.path); err != nil {
			log.Warn().Err(err).Str("path", r.path).Msg("Failed to initialize file watcher signature")
		} else {
			r.lastSig = sig
			r.hasLastSig = true
		}
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("reloader: new scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() { r.tick(ctx) }),
		gocron.WithName("reload:"+r.path),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("reloader: add job: %w", err)
	}

	s.Start()

	log.Info().
		Str("path", r.path).
		Dur("interval", r.interval).
		Msg("File auto-reload watcher started")

	<-ctx.Done()

	if err := s.Shutdown(); err != nil {
		log.Warn().Err(err).Str("path", r.path).Msg("Failed to stop file watcher scheduler")
	}
	log.Info().Str("path", r.path).Msg("File auto-reload watcher stopped")

	return nil
}

func (r *Reloader) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	sig, err := fileSignature(r.path)
	if err != nil {
		log.Warn().Err(err).Str("path", r.path).Msg("Failed to read watched file")
		return
	}

	if r.hasLastSig && sig == r.lastSig {
		return
	}

	log.Info().Str("path", r.path).Msg("Detected file change, applying reload")
	if err := r.onChange(ctx); err != nil {
		// Signature stays stale so the next tick retries.
		log.Error().Err(err).Str("path", r.path).Msg("Reload failed, keeping previous content")
		return
	}
	log.Info().Str("path", r.path).Msg("Reload applied")

	r.lastSig = sig
	r.hasLastSig = true
}

func fileSignature(path string) ([sha256.Size]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, fmt.Errorf("read file %q: %w", path, err)
	}
	return sha256.Sum256(data), nil
}
