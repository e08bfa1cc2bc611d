package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

const contentTypeJSON = "application/json; charset=utf-8"

// timestampLayout renders UTC time with millisecond precision, e.g.
// 2024-05-01T10:20:30.123Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// writeJSON encodes v before touching the response so an encoding failure
// can still be answered with a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("Failed to write response body")
	}

	return nil
}
