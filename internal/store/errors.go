/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a delete targets an id with no matching row.
var ErrNotFound = errors.New("asset not found")

// InitError wraps a failure to create the data directory or open the
// database. It is fatal to process startup.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("storage init at %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// QueryError wraps a statement that could not be prepared or executed.
type QueryError struct {
	Op  string // e.g. "list assets", "save setting"
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError reports a missing or invalid asset field. It is raised
// before any write happens. An empty Reason means the field is required and
// absent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field %s", e.Field)
}
