/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"assetforge/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndListSingleAsset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "Hero"})
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(got))
	}
	a := got[0]
	if a.ID != id || a.Type != "sprite" || a.Name != "Hero" {
		t.Fatalf("unexpected asset: %+v", a)
	}
	if a.CreatedAt == "" || a.UpdatedAt == "" || a.CreatedAt > a.UpdatedAt {
		t.Fatalf("want created_at <= updated_at, got %q / %q", a.CreatedAt, a.UpdatedAt)
	}
}

func TestSaveValidation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var verr *ValidationError
	if _, err := s.SaveAsset(ctx, domain.Asset{Name: "no type"}); !errors.As(err, &verr) || verr.Field != "asset_type" {
		t.Fatalf("expected asset_type validation error, got %v", err)
	}
	if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite"}); !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	// Counters must be non-negative when present.
	negSize := int64(-1)
	if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "n", FileSize: &negSize}); !errors.As(err, &verr) || verr.Field != "file_size" {
		t.Fatalf("expected file_size validation error, got %v", err)
	}
	negScore := int64(-3)
	if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "n", QualityScore: &negScore}); !errors.As(err, &verr) || verr.Field != "quality_score" {
		t.Fatalf("expected quality_score validation error, got %v", err)
	}

	// Nothing was written.
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store after failed validation, got %d rows", len(got))
	}
}

func TestUpsertFullyReplacesRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	size := int64(1024)
	score := int64(7)
	id, err := s.SaveAsset(ctx, domain.Asset{
		ID:           "fixed-id",
		Type:         "sprite",
		Name:         "Old Name",
		Config:       map[string]any{"seed": float64(1)},
		FilePath:     "/tmp/old.png",
		FileSize:     &size,
		QualityScore: &score,
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	firstList, err := s.ListAssets(ctx, Filters{})
	if err != nil || len(firstList) != 1 {
		t.Fatalf("list after first save: %v (%d rows)", err, len(firstList))
	}
	createdAt := firstList[0].CreatedAt

	// Second save with the same id omits the optional fields; they must
	// become absent, not merged from the old row.
	if _, err := s.SaveAsset(ctx, domain.Asset{ID: id, Type: "tileset", Name: "New Name"}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("upsert must not create a second row, got %d", len(got))
	}
	a := got[0]
	if a.Type != "tileset" || a.Name != "New Name" {
		t.Fatalf("row not replaced: %+v", a)
	}
	if a.Config != nil || a.Metadata != nil || a.FilePath != "" || a.FileSize != nil || a.QualityScore != nil {
		t.Fatalf("omitted fields must be absent after upsert: %+v", a)
	}
	// Fresh created_at because the replacement did not carry one.
	if a.CreatedAt == "" || a.UpdatedAt < createdAt {
		t.Fatalf("unexpected timestamps: %+v", a)
	}
}

func TestSavePreservesExplicitCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const imported = "2020-05-01T10:00:00.000000000Z"
	id, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "Imported", CreatedAt: imported})
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil || len(got) != 1 {
		t.Fatalf("ListAssets: %v (%d rows)", err, len(got))
	}
	if got[0].ID != id || got[0].CreatedAt != imported {
		t.Fatalf("created_at not preserved: %+v", got[0])
	}
	if got[0].UpdatedAt <= imported {
		t.Fatalf("updated_at must be now, got %q", got[0].UpdatedAt)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.DeleteAsset(ctx, "never-existed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	id, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "Doomed"})
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	if err := s.DeleteAsset(ctx, id); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("deleted asset still listed: %+v", got)
	}
}

func TestListFilterByType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: fmt.Sprintf("Sprite %d", i)}); err != nil {
			t.Fatalf("save sprite: %v", err)
		}
	}
	if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sfx", Name: "Boom"}); err != nil {
		t.Fatalf("save sfx: %v", err)
	}

	got, err := s.ListAssets(ctx, Filters{Type: "sprite"})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sprites, got %d", len(got))
	}
	for i, a := range got {
		if a.Type != "sprite" {
			t.Fatalf("row %d has type %q", i, a.Type)
		}
		if i > 0 && got[i-1].UpdatedAt < a.UpdatedAt {
			t.Fatalf("rows not in descending updated_at order: %q before %q", got[i-1].UpdatedAt, a.UpdatedAt)
		}
	}
}

func TestListFilterBySearch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Firefly", "campfire", "Waterfall", "FIRE"} {
		if _, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: name}); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	got, err := s.ListAssets(ctx, Filters{Search: "fire"})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	// Case-sensitive LIKE over ASCII: "FIRE" does not match "fire".
	want := map[string]bool{"Firefly": true, "campfire": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d: %+v", len(want), len(got), got)
	}
	for _, a := range got {
		if !want[a.Name] {
			t.Fatalf("unexpected match %q", a.Name)
		}
	}
}

func TestListFiltersCompose(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seed := []domain.Asset{
		{Type: "sprite", Name: "fire imp"},
		{Type: "sprite", Name: "ice imp"},
		{Type: "sfx", Name: "fire crackle"},
	}
	for _, a := range seed {
		if _, err := s.SaveAsset(ctx, a); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := s.ListAssets(ctx, Filters{Type: "sprite", Search: "fire"})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 || got[0].Name != "fire imp" {
		t.Fatalf("AND composition broken: %+v", got)
	}
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: fmt.Sprintf("A%d", i)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		ids = append(ids, id)
	}
	got, err := s.ListAssets(ctx, Filters{Limit: 2})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 rows, got %d", len(got))
	}
	// The two most recently updated are the last two saved.
	if got[0].ID != ids[4] || got[1].ID != ids[3] {
		t.Fatalf("limit did not keep the most recent rows: %+v", got)
	}

	if _, err := s.ListAssets(ctx, Filters{Limit: -1}); err == nil {
		t.Fatalf("negative limit must be rejected")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cfg := map[string]any{"seed": float64(42), "biome": "desert"}
	id, err := s.SaveAsset(ctx, domain.Asset{Type: "terrain", Name: "Dunes", Config: cfg})
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil || len(got) != 1 || got[0].ID != id {
		t.Fatalf("ListAssets: %v (%d rows)", err, len(got))
	}
	rt, ok := got[0].Config.(map[string]any)
	if !ok {
		t.Fatalf("config decoded as %T", got[0].Config)
	}
	if rt["seed"] != float64(42) || rt["biome"] != "desert" {
		t.Fatalf("config round-trip mismatch: %+v", rt)
	}
}

func TestUnreadableJSONDecodesAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAsset(ctx, domain.Asset{Type: "sprite", Name: "Corrupt"})
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	// Corrupt the stored blob directly.
	err = s.withConn(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `UPDATE assets SET config = '{not json' WHERE id = ?`, id)
		return err
	})
	if err != nil {
		t.Fatalf("corrupt config: %v", err)
	}

	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 || got[0].Config != nil {
		t.Fatalf("unreadable config must decode as absent: %+v", got)
	}
}

func TestConcurrentSavesBothVisible(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.SaveAsset(ctx, domain.Asset{
				ID:   fmt.Sprintf("conc-%02d", i),
				Type: "sprite",
				Name: fmt.Sprintf("Concurrent %d", i),
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	got, err := s.ListAssets(ctx, Filters{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != n {
		t.Fatalf("lost update: expected %d rows, got %d", n, len(got))
	}
}
