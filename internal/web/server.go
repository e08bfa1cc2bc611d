package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Server owns the HTTP listener and the http.Server serving the router.
type Server struct {
	srv      *http.Server
	ln       net.Listener
	errc     chan error
	stopErr  error
	stopOnce sync.Once
	started  atomic.Bool
}

// NewServer binds addr eagerly so that failures such as a port already in
// use surface at startup instead of inside the serving goroutine.
func NewServer(addr string, handler http.Handler, readHeaderTimeout time.Duration) (*Server, error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("web: listen on %s: %w", addr, err)
	}

	return &Server{
		srv:  srv,
		ln:   ln,
		errc: make(chan error, 1),
	}, nil
}

// Addr returns the address the listener is bound to.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Handler returns the handler the server dispatches to.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves requests in a separate goroutine. A serving failure is
// delivered on Err.
func (s *Server) Start() {
	s.started.Store(true)
	log.Info().Str("addr", s.Addr()).Msg("Starting HTTP server")

	go func() {
		err := s.srv.Serve(s.ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped with error")
			s.errc <- err
		}
		close(s.errc)
	}()
}

// Err is closed after the server stops; it yields the error when serving
// failed for any reason other than Shutdown.
func (s *Server) Err() <-chan error {
	return s.errc
}

// Shutdown gracefully shuts down the HTTP server. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.stopErr = s.srv.Shutdown(ctx)
		// Serve owns the listener once started; otherwise release it here.
		if !s.started.Load() {
			_ = s.ln.Close()
		}
	})
	return s.stopErr
}
