package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Duration wraps time.Duration so it can be written as "5s", "1m30s" etc.
// in YAML, JSON and struct default tags.
type Duration struct {
	time.Duration
}

func parseDuration(s string) (Duration, error) {
	dur, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration format: %w", err)
	}
	return Duration{dur}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is also used by
// creasty/defaults when applying the default tag.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler interface.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalJSON implements json.Marshaler interface.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// JSONSchema returns the JSON schema for Duration type.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title: "Human readable duration",
		Type:  "string",
		// No "format": draft-07 validators read "duration" as ISO 8601.
		Description: "Go duration string: a sequence of <number><unit> tokens. " +
			"Units: `ns`, `us`, `ms`, `s`, `m`, `h`.",
		Pattern:  durationPattern,
		Examples: []any{"5s", "1m30s", "250ms", "2h"},
	}
}

// Std returns the standard time.Duration value.
func (d Duration) Std() time.Duration {
	return d.Duration
}

const durationPattern = `^(?:\d+(?:\.\d+)?(?:ns|us|µs|ms|s|m|h))+$`
