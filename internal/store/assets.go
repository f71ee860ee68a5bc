/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"database/sql"
	"log/slog"

	"assetforge/internal/domain"
	applog "assetforge/internal/log"

	"github.com/google/uuid"
)

// ListAssets returns assets matching the filters, ordered by updated_at
// descending (most recently touched first). An empty result is an empty
// slice, not an error.
func (s *Store) ListAssets(ctx context.Context, f Filters) ([]domain.Asset, error) {
	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, err
	}
	out := []domain.Asset{}
	err = s.withConn(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return &QueryError{Op: "list assets", Err: err}
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanAsset(rows)
			if err != nil {
				return &QueryError{Op: "scan asset row", Err: err}
			}
			out = append(out, a)
		}
		if err := rows.Err(); err != nil {
			return &QueryError{Op: "list assets", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAsset performs an atomic full-row upsert and returns the effective id.
// A missing id is replaced with a fresh random UUID. asset_type and name are
// mandatory, and file_size/quality_score must be non-negative when present;
// violations fail with *ValidationError before any write. created_at is taken
// from the input when provided (externally-timestamped imports), otherwise
// set to now; updated_at is always set to now.
func (s *Store) SaveAsset(ctx context.Context, a domain.Asset) (string, error) {
	if a.Type == "" {
		return "", &ValidationError{Field: "asset_type"}
	}
	if a.Name == "" {
		return "", &ValidationError{Field: "name"}
	}
	if a.FileSize != nil && *a.FileSize < 0 {
		return "", &ValidationError{Field: "file_size", Reason: "must be non-negative"}
	}
	if a.QualityScore != nil && *a.QualityScore < 0 {
		return "", &ValidationError{Field: "quality_score", Reason: "must be non-negative"}
	}
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := nowRFC3339()
	createdAt := a.CreatedAt
	if createdAt == "" {
		createdAt = now
	}

	var filePath sql.NullString
	if a.FilePath != "" {
		filePath = sql.NullString{String: a.FilePath, Valid: true}
	}
	var fileSize, qualityScore sql.NullInt64
	if a.FileSize != nil {
		fileSize = sql.NullInt64{Int64: *a.FileSize, Valid: true}
	}
	if a.QualityScore != nil {
		qualityScore = sql.NullInt64{Int64: *a.QualityScore, Valid: true}
	}

	err := s.withConn(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT OR REPLACE INTO assets
			 (id, asset_type, name, config, metadata, file_path, file_size, quality_score, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, a.Type, a.Name,
			encodeJSONColumn(a.Config), encodeJSONColumn(a.Metadata),
			filePath, fileSize, qualityScore,
			createdAt, now,
		)
		if err != nil {
			return &QueryError{Op: "save asset", Err: err}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	applog.WithComponent("store").Debug("asset saved",
		slog.String("id", id), slog.String("type", a.Type))
	return id, nil
}

// DeleteAsset removes the row with the given id. Zero rows affected is
// reported as ErrNotFound, not a silent no-op.
func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	return s.withConn(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
		if err != nil {
			return &QueryError{Op: "delete asset", Err: err}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &QueryError{Op: "delete asset", Err: err}
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
