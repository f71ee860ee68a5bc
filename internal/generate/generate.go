/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package generate is the asset-generation boundary. Generators produce
// artifact data plus generation metadata from a type and a configuration;
// they never touch the persistence layer. The caller is responsible for
// saving the resulting asset through the store.
//
// The shipped Placeholder generator stands in for real procedural
// generators: it validates the request, then renders a deterministic
// placeholder sprite so downstream file and persistence plumbing can be
// exercised end to end.
package generate

import (
	"context"
	"fmt"
	"time"

	"assetforge/internal/version"
)

// Request asks for one artifact of the given type. Config is the opaque
// generation parameter object supplied by the caller.
type Request struct {
	Type   string `json:"type"`
	Config any    `json:"config,omitempty"`
}

// Metadata records generation-time facts carried alongside the data.
type Metadata struct {
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// Artifact is the generation result: the data plus the echoed request and
// metadata. Data marshals to base64 on the command bridge.
type Artifact struct {
	Type     string   `json:"type"`
	Config   any      `json:"config,omitempty"`
	Data     []byte   `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Generator produces artifacts from requests.
type Generator interface {
	Generate(ctx context.Context, req Request) (Artifact, error)
	GenerateBatch(ctx context.Context, reqs []Request) ([]Artifact, error)
}

// Placeholder is the stand-in Generator used until real procedural
// generators land.
type Placeholder struct{}

// NewPlaceholder returns the stand-in generator.
func NewPlaceholder() *Placeholder { return &Placeholder{} }

// Generate validates the request and renders a placeholder sprite.
func (g *Placeholder) Generate(ctx context.Context, req Request) (Artifact, error) {
	if req.Type == "" {
		return Artifact{}, fmt.Errorf("asset type is required")
	}
	if err := ValidateConfig(req.Type, req.Config); err != nil {
		return Artifact{}, err
	}
	w, h := configSize(req.Config)
	data, err := renderPlaceholderPNG(w, h)
	if err != nil {
		return Artifact{}, fmt.Errorf("render placeholder: %w", err)
	}
	return Artifact{
		Type:   req.Type,
		Config: req.Config,
		Data:   data,
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Version:     version.String(),
		},
	}, nil
}

// GenerateBatch generates each request in order. The first failure aborts
// the batch; there are no partial retries.
func (g *Placeholder) GenerateBatch(ctx context.Context, reqs []Request) ([]Artifact, error) {
	out := make([]Artifact, 0, len(reqs))
	for i, req := range reqs {
		a, err := g.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("batch item %d (%s): %w", i, req.Type, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// configSize extracts width/height from a config object, defaulting to 64.
func configSize(cfg any) (w, h int) {
	w, h = 64, 64
	m, ok := cfg.(map[string]any)
	if !ok {
		return w, h
	}
	if v, ok := m["width"].(float64); ok && v >= 1 {
		w = int(v)
	}
	if v, ok := m["height"].(float64); ok && v >= 1 {
		h = int(v)
	}
	return w, h
}
