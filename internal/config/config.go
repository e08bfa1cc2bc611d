package config

// Config represents the optional file-based application configuration.
// Values that identify the running instance come from the environment,
// see Instance.
type Config struct {
	// Wishes configures the static wishes page served on /wishes.
	Wishes Wishes `yaml:"wishes" json:"wishes"`

	// ReadHeaderTimeout bounds the time allowed to read request headers.
	ReadHeaderTimeout Duration `yaml:"read_header_timeout,omitempty" json:"read_header_timeout,omitempty" default:"5s" jsonschema:"example=5s"`

	// ShutdownTimeout defines the timeout for graceful shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty" default:"10s" jsonschema:"example=10s"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `yaml:"metrics_enabled,omitempty" json:"metrics_enabled,omitempty" default:"false" jsonschema:"default=false"`
}

// Wishes defines where the wishes page comes from.
type Wishes struct {
	// Path is an HTML file on disk. When empty, the page embedded
	// into the binary is served.
	Path string `yaml:"path,omitempty" json:"path,omitempty" default:"" jsonschema:"example=/srv/www/wishes.html"`

	// ReloadInterval defines how often Path is checked for changes.
	ReloadInterval Duration `yaml:"reload_interval,omitempty" json:"reload_interval,omitempty" default:"10s" jsonschema:"example=10s"`

	// Enabled registers the /wishes route.
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty" default:"false" jsonschema:"default=false"`
}
