package web

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/hlog"
)

type notFoundResponse struct {
	Error       string `json:"error"`
	Path        string `json:"path"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type internalErrorResponse struct {
	Error       string `json:"error"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// notFound answers unmatched routes and unsupported methods alike.
func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	err := writeJSON(w, r, http.StatusNotFound, notFoundResponse{
		Error:       http.StatusText(http.StatusNotFound),
		Path:        r.URL.EscapedPath(),
		Timestamp:   timestamp(h.now()),
		Environment: h.instance.Environment,
	})
	if err != nil {
		h.internalError(w, r, err)
	}
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")

	body := internalErrorResponse{
		Error:       http.StatusText(http.StatusInternalServerError),
		Timestamp:   timestamp(h.now()),
		Environment: h.instance.Environment,
	}
	if werr := writeJSON(w, r, http.StatusInternalServerError, body); werr != nil {
		http.Error(w, body.Error, http.StatusInternalServerError)
	}
}

// recoverer converts a panicking handler into the 500 response.
func (h *handlers) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel value compared by identity
				panic(rec)
			}

			hlog.FromRequest(r).Debug().Bytes("stack", debug.Stack()).Msg("Recovered panic")
			h.internalError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
