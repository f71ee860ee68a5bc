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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	applog "assetforge/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// DBFileName is the fixed, well-known database file name inside the
// application data directory.
const DBFileName = "assets.db"

// Store owns the single shared connection to the embedded asset database.
// Every statement runs under mu for its full duration (prepare, bind,
// execute, row materialization), which yields sequential consistency for all
// store operations. The lock is never held across file I/O or dialog work.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// DBPath returns the full path of the database file inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}

// Open creates the data directory tree if absent, opens (or creates) the
// database file, and idempotently ensures the schema. A failure here is an
// *InitError and should abort startup. The Store is intended to live for the
// remainder of the process; Close exists for tests.
func Open(dataDir string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("store"), "open").With(
		slog.String("dir", dataDir),
	)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		l.Error("create data dir failed", slog.Any("err", err))
		return nil, &InitError{Path: dataDir, Err: err}
	}
	path := DBPath(dataDir)
	// Convert to forward slashes for the SQLite URI and set a busy timeout.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, &InitError{Path: path, Err: err}
	}
	// Single shared connection; the mutex is the real serialization point.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, &InitError{Path: path, Err: fmt.Errorf("enable WAL: %w", err)}
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, &InitError{Path: path, Err: err}
	}

	l.Info("store ready", slog.String("path", path))
	return &Store{db: db}, nil
}

// Close releases the underlying connection. The application relies on process
// exit in normal operation; tests use this.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// withConn runs fn with exclusive access to the shared connection. All store
// operations funnel through here so no two statements ever interleave.
func (s *Store) withConn(fn func(db *sql.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}

// ensureSchema idempotently creates the assets and settings tables.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id            TEXT PRIMARY KEY,
			asset_type    TEXT NOT NULL,
			name          TEXT NOT NULL,
			config        TEXT,
			metadata      TEXT,
			file_path     TEXT,
			file_size     INTEGER,
			quality_score INTEGER,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// rfc3339Nano is RFC 3339 with a fixed-width nanosecond fraction. The fixed
// width keeps lexicographic order equal to chronological order, which the
// updated_at DESC listing relies on.
const rfc3339Nano = "2006-01-02T15:04:05.000000000Z07:00"

// nowRFC3339 is the single clock used for created_at/updated_at stamps.
func nowRFC3339() string {
	return time.Now().UTC().Format(rfc3339Nano)
}
