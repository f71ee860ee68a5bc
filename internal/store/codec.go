/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package store

import (
	"database/sql"
	"encoding/json"

	"assetforge/internal/domain"
)

// Row codec: the mapping between the relational row (typed columns plus
// JSON-encoded text blobs) and the in-memory asset representation.
//
// Config and metadata are caller-opaque payloads, so both directions apply a
// deliberate lossy policy: a value that cannot be marshalled is stored as
// empty text, and stored text that cannot be unmarshalled decodes as absent.
// Neither case propagates an error.

// assetColumns is the column order shared by the listing query and scanAsset.
type assetRow struct {
	id           string
	assetType    string
	name         string
	config       sql.NullString
	metadata     sql.NullString
	filePath     sql.NullString
	fileSize     sql.NullInt64
	qualityScore sql.NullInt64
	createdAt    string
	updatedAt    string
}

// scanAsset reads one row from rows into a domain.Asset.
func scanAsset(rows *sql.Rows) (domain.Asset, error) {
	var r assetRow
	if err := rows.Scan(
		&r.id, &r.assetType, &r.name,
		&r.config, &r.metadata,
		&r.filePath, &r.fileSize, &r.qualityScore,
		&r.createdAt, &r.updatedAt,
	); err != nil {
		return domain.Asset{}, err
	}
	a := domain.Asset{
		ID:        r.id,
		Type:      r.assetType,
		Name:      r.name,
		Config:    decodeJSONColumn(r.config),
		Metadata:  decodeJSONColumn(r.metadata),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
	if r.filePath.Valid {
		a.FilePath = r.filePath.String
	}
	if r.fileSize.Valid {
		v := r.fileSize.Int64
		a.FileSize = &v
	}
	if r.qualityScore.Valid {
		v := r.qualityScore.Int64
		a.QualityScore = &v
	}
	return a, nil
}

// decodeJSONColumn turns stored JSON text into a semi-structured value.
// NULL, empty text, and unreadable blobs all decode as absent (nil).
func decodeJSONColumn(col sql.NullString) any {
	if !col.Valid || col.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return nil
	}
	return v
}

// encodeJSONColumn serializes an opaque value to its JSON text form for
// storage. Absent values map to NULL; a marshal failure is swallowed and
// stored as empty text.
func encodeJSONColumn(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{String: "", Valid: true}
	}
	return sql.NullString{String: string(b), Valid: true}
}
