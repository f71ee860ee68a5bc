/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package store

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the stored value for key. A key that has never been set
// yields ok=false, not an error. Further encoding of the value (e.g. JSON as
// string) is the caller's business.
func (s *Store) GetSetting(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.withConn(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
		switch err := row.Scan(&value); {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return &QueryError{Op: "get setting", Err: err}
		default:
			ok = true
			return nil
		}
	})
	return value, ok, err
}

// SetSetting upserts the key with the current timestamp. Last write wins.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	return s.withConn(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
			key, value, nowRFC3339())
		if err != nil {
			return &QueryError{Op: "save setting", Err: err}
		}
		return nil
	})
}
