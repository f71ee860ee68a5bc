/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Filters narrows an asset listing. All fields are optional and compose with
// logical AND. Limit caps the row count; zero means unlimited.
type Filters struct {
	// Type is an exact match on asset_type.
	Type string
	// Search is a case-sensitive substring match on name.
	Search string
	// Limit is the maximum number of rows to return. Negative is invalid.
	Limit int
}

// predicate is one typed WHERE clause with its bound value. Values are always
// bound, never interpolated into the SQL text.
type predicate struct {
	expr string
	arg  any
}

// buildListQuery composes the asset listing statement from the filters.
// The LIMIT value is the one clause embedded as text; it is validated as a
// non-negative integer first since it cannot be bound in all engines.
func buildListQuery(f Filters) (string, []any, error) {
	if f.Limit < 0 {
		return "", nil, &QueryError{Op: "list assets", Err: fmt.Errorf("negative limit %d", f.Limit)}
	}
	var preds []predicate
	if f.Type != "" {
		preds = append(preds, predicate{expr: "asset_type = ?", arg: f.Type})
	}
	if f.Search != "" {
		preds = append(preds, predicate{expr: "name LIKE ?", arg: "%" + f.Search + "%"})
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, asset_type, name, config, metadata, file_path, file_size, quality_score, created_at, updated_at FROM assets`)
	args := make([]any, 0, len(preds))
	for i, p := range preds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.expr)
		args = append(args, p.arg)
	}
	sb.WriteString(" ORDER BY updated_at DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(f.Limit))
	}
	return sb.String(), args, nil
}
