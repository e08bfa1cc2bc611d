package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesConfigSchema(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "schemas", "config.json")
	if err := run(out, "github.com/woozymasta/hello-app", true); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode schema: %v", err)
	}

	if doc["$schema"] != "http://json-schema.org/draft-07/schema#" {
		t.Fatalf("$schema = %v, want draft-07", doc["$schema"])
	}
	if doc["title"] != "Hello App Configuration" {
		t.Fatalf("title = %v", doc["title"])
	}

	defs, ok := doc["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("$defs = %T, want object", doc["$defs"])
	}
	for _, name := range []string{"Config", "Wishes"} {
		if _, ok := defs[name]; !ok {
			t.Fatalf("$defs.%s is missing", name)
		}
	}
}
