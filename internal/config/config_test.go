/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// memKeyring is an in-memory TokenStore for tests.
type memKeyring struct{ m map[string]string }

func (k *memKeyring) Get(service, key string) (string, error) {
	v, ok := k.m[service+"/"+key]
	if !ok {
		return "", os.ErrNotExist
	}
	return v, nil
}
func (k *memKeyring) Set(service, key, value string) error {
	if k.m == nil {
		k.m = map[string]string{}
	}
	k.m[service+"/"+key] = value
	return nil
}
func (k *memKeyring) Delete(service, key string) error {
	delete(k.m, service+"/"+key)
	return nil
}

func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", filepath.Join(home, "AppData", "Roaming"))
		t.Setenv("USERPROFILE", home)
	} else {
		t.Setenv("HOME", home)
	}
	return home
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("config_version = %d, want 1", cfg.ConfigVersion)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Generator.TimeoutMs != 15000 {
		t.Fatalf("generator timeout default = %d", cfg.Generator.TimeoutMs)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withTempHome(t)
	old := tokenStore
	tokenStore = &memKeyring{}
	t.Cleanup(func() { tokenStore = old })

	cfg := Defaults()
	cfg.Storage.DataDir = "/tmp/af-data"
	cfg.Logging.Level = "debug"
	if err := Save(cfg, "secret-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, tok, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Storage.DataDir != "/tmp/af-data" {
		t.Fatalf("data_dir = %q", got.Storage.DataDir)
	}
	if got.Logging.Level != "debug" {
		t.Fatalf("logging.level = %q", got.Logging.Level)
	}
	if tok != "secret-token" {
		t.Fatalf("token = %q", tok)
	}
}

func TestEnvOverrides(t *testing.T) {
	withTempHome(t)
	old := tokenStore
	tokenStore = &memKeyring{}
	t.Cleanup(func() { tokenStore = old })

	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvTelemetryOptIn, "yes")
	t.Setenv(EnvGeneratorTimeoutMs, "250")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.DataDir != "/env/data" {
		t.Fatalf("data_dir = %q", cfg.Storage.DataDir)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("logging.level = %q", cfg.Logging.Level)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("telemetry opt-in not applied")
	}
	if cfg.Generator.TimeoutMs != 250 {
		t.Fatalf("generator timeout = %d", cfg.Generator.TimeoutMs)
	}
}

func TestDataDirResolution(t *testing.T) {
	withTempHome(t)
	cfg := Defaults()

	// Explicit config value wins.
	cfg.Storage.DataDir = "/explicit"
	if d, err := DataDir(cfg); err != nil || d != "/explicit" {
		t.Fatalf("DataDir = %q, %v", d, err)
	}

	// Env override when config is empty.
	cfg.Storage.DataDir = ""
	t.Setenv(EnvDataDir, "/from-env")
	if d, err := DataDir(cfg); err != nil || d != "/from-env" {
		t.Fatalf("DataDir = %q, %v", d, err)
	}

	// Platform default otherwise.
	t.Setenv(EnvDataDir, "")
	d, err := DataDir(cfg)
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if d == "" {
		t.Fatalf("expected non-empty platform default")
	}
}
