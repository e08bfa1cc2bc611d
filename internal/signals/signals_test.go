package signals

import (
	"context"
	"errors"
	"testing"
	"time"
)

type shutdownFunc func(ctx context.Context) error

func (f shutdownFunc) Shutdown(ctx context.Context) error { return f(ctx) }

func TestGracefulShutdownPassesDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	ok := GracefulShutdown(shutdownFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}), time.Second)

	if !ok {
		t.Fatal("GracefulShutdown() = false, want true")
	}
	if !hasDeadline {
		t.Fatal("shutdown context has no deadline")
	}
}

func TestGracefulShutdownReportsError(t *testing.T) {
	t.Parallel()

	ok := GracefulShutdown(shutdownFunc(func(context.Context) error {
		return errors.New("boom")
	}), time.Second)

	if ok {
		t.Fatal("GracefulShutdown() = true, want false")
	}
}

func TestGracefulShutdownNil(t *testing.T) {
	t.Parallel()

	if !GracefulShutdown(nil, time.Second) {
		t.Fatal("GracefulShutdown(nil) = false, want true")
	}
}
