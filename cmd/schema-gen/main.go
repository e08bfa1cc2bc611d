package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/woozymasta/hello-app/internal/config"
)

func main() {
	var (
		outFile     string
		modulePath  string
		prettyPrint bool
	)
	flag.StringVar(&outFile, "out", "", "output file path (default: stdout)")
	flag.StringVar(&modulePath, "module", "github.com/woozymasta/hello-app", "go module path (for extracting comments)")
	flag.BoolVar(&prettyPrint, "pretty", true, "pretty print JSON output")
	flag.Parse()

	if err := run(outFile, modulePath, prettyPrint); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outFile != "" {
		fmt.Fprintf(os.Stderr, "Config schema written to: %s\n", outFile)
	}
}

func run(outFile, modulePath string, prettyPrint bool) error {
	configSchema, err := reflectConfig(modulePath)
	if err != nil {
		return err
	}

	if err := writeSchema(outFile, configSchema, prettyPrint); err != nil {
		return fmt.Errorf("write config schema: %w", err)
	}

	return nil
}

func reflectConfig(modulePath string) (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
	}

	// Add Go comments for better documentation
	if err := r.AddGoComments(modulePath, "internal/config", jsonschema.WithFullComment()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to add Go comments: %v\n", err)
	}

	s := r.Reflect(new(config.Config))
	if s == nil {
		return nil, fmt.Errorf("reflect config schema: empty result")
	}

	// Use draft-07 which is supported by github.com/santhosh-tekuri/jsonschema/v6.
	s.Version = "http://json-schema.org/draft-07/schema#"
	s.Title = "Hello App Configuration"
	s.Description = "Configuration schema for the hello-app HTTP service"

	return s, nil
}

func writeSchema(outFile string, schema interface{}, prettyPrint bool) error {
	output := os.Stdout
	if outFile != "" {
		if dir := filepath.Dir(outFile); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}

		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to close output file %s: %v\n", outFile, cerr)
			}
		}()
		output = f
	}

	enc := json.NewEncoder(output)
	if prettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	return nil
}
