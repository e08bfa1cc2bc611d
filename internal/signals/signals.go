package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Shutdowner is an interface for objects that can be gracefully shut down.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// WithSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func WithSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// GracefulShutdown shuts down the given Shutdowner with the specified timeout
// and reports whether it finished cleanly.
// This function is intended to be used in a defer statement.
func GracefulShutdown(shutdowner Shutdowner, timeout time.Duration) bool {
	if shutdowner == nil {
		return true
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := shutdowner.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Dur("timeout", timeout).Msg("Failed to shutdown gracefully")
		return false
	}

	log.Debug().Dur("took", time.Since(start)).Msg("Shutdown completed")
	return true
}
