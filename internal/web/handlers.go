package web

import (
	"math"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/woozymasta/hello-app/internal/config"
	"github.com/woozymasta/hello-app/internal/vars"
)

const (
	greeting        = "Hello World from Azure App Service!"
	applicationName = "Hello World App"
)

// handlerFunc is an HTTP handler that reports failures instead of writing
// them; see handlers.wrap.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type handlers struct {
	now      func() time.Time
	started  time.Time
	instance config.Instance
}

// wrap turns a failing handlerFunc into the 500 response.
func (h *handlers) wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.internalError(w, r, err)
		}
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Region      string `json:"region"`
	InstanceID  string `json:"instanceId"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, r, http.StatusOK, healthResponse{
		Status:      "healthy",
		Timestamp:   timestamp(h.now()),
		Environment: h.instance.Environment,
		Region:      h.instance.Region,
		InstanceID:  h.instance.InstanceID,
	})
}

// requestHeaders echoes selected inbound headers. Headers missing from the
// request are left out of the JSON object.
type requestHeaders struct {
	UserAgent       *string `json:"user-agent,omitempty"`
	XForwardedFor   *string `json:"x-forwarded-for,omitempty"`
	XForwardedProto *string `json:"x-forwarded-proto,omitempty"`
	Host            *string `json:"host,omitempty"`
}

type rootResponse struct {
	Message        string         `json:"message"`
	Timestamp      string         `json:"timestamp"`
	Environment    string         `json:"environment"`
	Region         string         `json:"region"`
	InstanceID     string         `json:"instanceId"`
	RequestHeaders requestHeaders `json:"requestHeaders"`
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) error {
	headers := requestHeaders{
		UserAgent:       firstHeader(r.Header, "User-Agent"),
		XForwardedFor:   joinedHeader(r.Header, "X-Forwarded-For"),
		XForwardedProto: joinedHeader(r.Header, "X-Forwarded-Proto"),
	}
	if r.Host != "" {
		host := r.Host
		headers.Host = &host
	}

	return writeJSON(w, r, http.StatusOK, rootResponse{
		Message:        greeting,
		Timestamp:      timestamp(h.now()),
		Environment:    h.instance.Environment,
		Region:         h.instance.Region,
		InstanceID:     h.instance.InstanceID,
		RequestHeaders: headers,
	})
}

func firstHeader(header http.Header, name string) *string {
	values := header.Values(name)
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// joinedHeader merges repeated list headers the way proxies chain them.
func joinedHeader(header http.Header, name string) *string {
	values := header.Values(name)
	if len(values) == 0 {
		return nil
	}
	joined := strings.Join(values, ", ")
	return &joined
}

type memoryStats struct {
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapSys    uint64 `json:"heapSys"`
	HeapInuse  uint64 `json:"heapInuse"`
	Sys        uint64 `json:"sys"`
	TotalAlloc uint64 `json:"totalAlloc"`
	NumGC      uint32 `json:"numGC"`
}

type infoResponse struct {
	Application string         `json:"application"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Region      string         `json:"region"`
	InstanceID  string         `json:"instanceId"`
	Uptime      float64        `json:"uptime"`
	Memory      memoryStats    `json:"memory"`
	Platform    string         `json:"platform"`
	GoVersion   string         `json:"goVersion"`
	Arch        string         `json:"arch"`
	Build       vars.BuildInfo `json:"build"`
}

func (h *handlers) info(w http.ResponseWriter, r *http.Request) error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return writeJSON(w, r, http.StatusOK, infoResponse{
		Application: applicationName,
		Version:     vars.Version,
		Environment: h.instance.Environment,
		Region:      h.instance.Region,
		InstanceID:  h.instance.InstanceID,
		Uptime:      h.uptime(),
		Memory: memoryStats{
			HeapAlloc:  ms.HeapAlloc,
			HeapSys:    ms.HeapSys,
			HeapInuse:  ms.HeapInuse,
			Sys:        ms.Sys,
			TotalAlloc: ms.TotalAlloc,
			NumGC:      ms.NumGC,
		},
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		Build:     vars.Info(),
	})
}

// uptime is in seconds and never negative.
func (h *handlers) uptime() float64 {
	return math.Max(0, h.now().Sub(h.started).Seconds())
}
