/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package generate

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// configSchema constrains the generation parameters the placeholder
// generator understands. Unknown properties pass through untouched since
// config is ultimately caller-opaque; only the fields the generator reads
// are typed here.
const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"width":  {"type": "integer", "minimum": 1, "maximum": 4096},
		"height": {"type": "integer", "minimum": 1, "maximum": 4096},
		"seed":   {"type": "integer"}
	}
}`

// ValidateConfig checks a request config against the generator schema.
// A nil config is valid (all defaults).
func ValidateConfig(assetType string, cfg any) error {
	if cfg == nil {
		return nil
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(cfg),
	)
	if err != nil {
		return fmt.Errorf("validate %s config: %w", assetType, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid %s config: %s", assetType, strings.Join(msgs, "; "))
	}
	return nil
}
