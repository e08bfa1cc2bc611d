package config

// Default values for instance fields when the environment does not set them.
const (
	DefaultEnvironment = "development"
	DefaultRegion      = "unknown"
	DefaultInstanceID  = "local"
)

// Instance holds the environment strings describing where the process runs.
// It is filled once at startup and never mutated afterwards.
type Instance struct {
	Environment string `long:"env" env:"APP_ENV" default:"development" description:"Deployment environment name"`
	Region      string `long:"region" env:"APP_REGION" default:"unknown" description:"Deployment region"`
	InstanceID  string `long:"instance-id" env:"WEBSITE_INSTANCE_ID" default:"local" description:"Instance identifier"`
}

// WithDefaults returns a copy of i where empty fields are replaced by
// their defaults. An empty environment variable counts as unset.
func (i Instance) WithDefaults() Instance {
	if i.Environment == "" {
		i.Environment = DefaultEnvironment
	}
	if i.Region == "" {
		i.Region = DefaultRegion
	}
	if i.InstanceID == "" {
		i.InstanceID = DefaultInstanceID
	}
	return i
}
