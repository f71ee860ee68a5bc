/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for persisted assets and settings.
// The JSON tags match the wire names used by the command bridge.

// Asset is a persisted artifact record. Config and Metadata are opaque,
// caller-supplied JSON values (any combination of null/bool/number/string/
// array/object); the store serializes them to JSON text columns. Pointer
// fields distinguish "absent" from zero values.
type Asset struct {
	ID           string `json:"id,omitempty"`
	Type         string `json:"asset_type"`
	Name         string `json:"name"`
	Config       any    `json:"config,omitempty"`
	Metadata     any    `json:"metadata,omitempty"`
	FilePath     string `json:"file_path,omitempty"`
	FileSize     *int64 `json:"file_size,omitempty"`
	QualityScore *int64 `json:"quality_score,omitempty"`
	// RFC 3339 timestamps. CreatedAt is set once (or taken from the input to
	// support externally-timestamped imports); UpdatedAt is refreshed on
	// every write.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Setting is a key-value pair with last-write-wins semantics.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
