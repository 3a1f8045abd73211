package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads, schema-validates, and decodes a settings file.
//
// Validation is two-layered: strict YAML decoding rejects unknown fields
// (typos), and the embedded CUE schema rejects structural violations with
// positions. Duplicate feed ids are rejected here too - downstream code
// indexes feeds by id.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		if seen[f.ID] {
			return nil, fmt.Errorf("config %s: duplicate feed id %q", path, f.ID)
		}
		seen[f.ID] = true
	}

	return &cfg, nil
}

// validateSchema unifies the raw document with the embedded CUE schema.
func validateSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	// Concrete(true) turns missing required fields (e.g. a feed without an
	// id) into validation errors instead of incomplete values.
	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}

	return nil
}
