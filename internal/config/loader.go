package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog/log"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	jamle "github.com/woozymasta/jamle"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/hello-app/static"
)

const schemaURL = "embedded://config-schema"

var (
	schemaOnce sync.Once
	schema     *jschema.Schema
	schemaErr  error
)

// getSchema lazily compiles the embedded JSON schema and returns it.
func getSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = compileEmbeddedSchema(static.ConfigSchema)
	})

	return schema, schemaErr
}

func compileEmbeddedSchema(raw []byte) (*jschema.Schema, error) {
	if len(raw) == 0 {
		return nil, ErrSchemaLoad
	}

	// AddResource expects a decoded JSON value, not raw bytes.
	var schemaDoc interface{}
	if err := json.Unmarshal(raw, &schemaDoc); err != nil {
		return nil, fmt.Errorf("%w: unmarshal schema: %v", ErrSchemaLoad, err)
	}

	compiler := jschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("%w: add resource: %v", ErrSchemaLoad, err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %v", ErrSchemaLoad, err)
	}

	return compiled, nil
}

// Default returns a configuration populated only with default values.
// It is used when no configuration file is given.
func Default() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("%w: apply defaults: %v", ErrInvalidConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads, parses and validates configuration from the given path.
// The path must point to a YAML or JSON file. Environment variables inside
// the configuration are expanded by jamle.
func Load(_ context.Context, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrConfigNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("stat config %q: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, expected file", ErrInvalidConfig, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := jamle.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}

	// Apply default values for fields that weren't set in the config.
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("%w: apply defaults: %v", ErrInvalidConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("config_path", path).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Bool("wishes_enabled", cfg.Wishes.Enabled).
		Msg("Configuration loaded and validated")

	return &cfg, nil
}

// validate checks configuration against the embedded JSON schema and
// returns a wrapped ErrSchemaValidation on failure. Constraints the schema
// cannot express are reported as ErrInvalidConfig.
func validate(cfg *Config) error {
	compiled, err := getSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so Validate receives plain maps and slices.
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: marshal for validation: %v", ErrInvalidConfig, err)
	}

	var cfgDoc interface{}
	if err := json.Unmarshal(data, &cfgDoc); err != nil {
		return fmt.Errorf("%w: unmarshal for validation: %v", ErrInvalidConfig, err)
	}

	if err := compiled.Validate(cfgDoc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if cfg.ReadHeaderTimeout.Std() <= 0 {
		return fmt.Errorf("%w: read_header_timeout must be greater than zero", ErrInvalidConfig)
	}
	if cfg.ShutdownTimeout.Std() <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be greater than zero", ErrInvalidConfig)
	}
	if cfg.Wishes.Path != "" && cfg.Wishes.ReloadInterval.Std() <= 0 {
		return fmt.Errorf("%w: wishes.reload_interval must be greater than zero", ErrInvalidConfig)
	}

	return nil
}

// Dump renders the effective configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return out, nil
}
