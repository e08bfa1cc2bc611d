// Package vars provides build-time metadata about the application.
// Values are typically injected at build time via ldflags and reflect
// the state of the git repository and the build moment.
package vars

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

var (
	// Version is the application version, defaults to "1.0.0".
	Version = "1.0.0"

	// Commit is the current git commit SHA (short or full), defaults to "unknown".
	Commit = "unknown"

	// BuildTime is the application build time in RFC3339 UTC, defaults to 1970-01-01.
	BuildTime = time.Unix(0, 0).UTC()

	// URL is the repository URL.
	URL = "https://github.com/woozymasta/hello-app"

	// _buildTime is an internal string passed via ldflags that overrides BuildTime when set.
	_buildTime string
)

// BuildInfo is a safe container for build metadata that can be
// exposed externally (e.g. via an API or CLI command).
type BuildInfo struct {
	// BuildTime is the application build time (UTC).
	BuildTime time.Time `json:"buildTime"`

	// Version is the application version.
	Version string `json:"version"`

	// Commit is the current git commit SHA (short or full).
	Commit string `json:"commit"`

	// URL is the repository URL.
	URL string `json:"url,omitempty"`

	// GoVersion is the Go toolchain the binary was built with.
	GoVersion string `json:"goVersion"`
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

// Print writes build information to w in a human-readable format.
func Print(w io.Writer) {
	fmt.Fprintf(w, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
go:       %s
`, URL, os.Args[0], Version, Commit, BuildTime.Format(time.RFC3339), runtime.Version())
}

// Info returns a BuildInfo struct populated with the current
// build metadata values.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		URL:       URL,
		GoVersion: runtime.Version(),
	}
}
