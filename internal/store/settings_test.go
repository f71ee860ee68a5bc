/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package store

import (
	"context"
	"testing"
)

func TestGetSettingMissingKey(t *testing.T) {
	s := openTestStore(t)
	v, ok, err := s.GetSetting(context.Background(), "missing-key")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("missing key must be absent, got ok=%v value=%q", ok, v)
	}
}

func TestSetGetSetting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "k", "v"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	v, ok, err := s.GetSetting(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("GetSetting = %q, %v, %v", v, ok, err)
	}
}

func TestSettingLastWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, v := range []string{"first", "second", "third"} {
		if err := s.SetSetting(ctx, "theme", v); err != nil {
			t.Fatalf("SetSetting %q: %v", v, err)
		}
	}
	v, ok, err := s.GetSetting(ctx, "theme")
	if err != nil || !ok || v != "third" {
		t.Fatalf("GetSetting = %q, %v, %v; want last write", v, ok, err)
	}
}
