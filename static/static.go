package static

import _ "embed"

// ConfigSchema contains the JSON schema for configuration validation.
// It is embedded at build time from schemas/config.json, which is
// generated by cmd/schema-gen.
//
//go:embed schemas/config.json
var ConfigSchema []byte

// WishesHTML is the default page served on /wishes when no file
// is configured.
//
//go:embed wishes.html
var WishesHTML []byte
