/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"assetforge/internal/dialogs"
	"assetforge/internal/domain"
	"assetforge/internal/fsops"
	"assetforge/internal/generate"
	"assetforge/internal/store"
)

// New returns a dispatcher with every application operation registered
// against the given store and generator.
func New(st *store.Store, gen generate.Generator) *Dispatcher {
	d := NewDispatcher()

	d.Register("db_get_assets", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Filters struct {
				Type   string `json:"type"`
				Search string `json:"search"`
				Limit  int    `json:"limit"`
			} `json:"filters"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		assets, err := st.ListAssets(ctx, store.Filters{
			Type:   in.Filters.Type,
			Search: in.Filters.Search,
			Limit:  in.Filters.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load assets: %w", err)
		}
		return assets, nil
	})

	d.Register("db_save_asset", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Asset domain.Asset `json:"asset"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		id, err := st.SaveAsset(ctx, in.Asset)
		if err != nil {
			return nil, fmt.Errorf("failed to save asset: %w", err)
		}
		return id, nil
	})

	d.Register("db_delete_asset", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			AssetID string `json:"asset_id"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := st.DeleteAsset(ctx, in.AssetID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("asset %s not found", in.AssetID)
			}
			return nil, fmt.Errorf("failed to delete asset: %w", err)
		}
		return "asset deleted", nil
	})

	d.Register("db_get_setting", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Key string `json:"key"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		value, ok, err := st.GetSetting(ctx, in.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to load setting: %w", err)
		}
		if !ok {
			// Absent settings marshal to JSON null so callers can apply
			// their own defaults.
			return nil, nil
		}
		return value, nil
	})

	d.Register("db_save_setting", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := st.SetSetting(ctx, in.Key, in.Value); err != nil {
			return nil, fmt.Errorf("failed to save setting: %w", err)
		}
		return "setting saved", nil
	})

	d.Register("fs_save_file", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Path string `json:"path"`
			Data []byte `json:"data"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := fsops.SaveFile(in.Path, in.Data); err != nil {
			return nil, fmt.Errorf("failed to save file: %w", err)
		}
		return "file saved", nil
	})

	d.Register("fs_read_file", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Path string `json:"path"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		data, err := fsops.ReadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return data, nil
	})

	d.Register("fs_ensure_dir", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Path string `json:"path"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := fsops.EnsureDir(in.Path); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		return "directory ready", nil
	})

	d.Register("dialog_open_directory", func(ctx context.Context, args json.RawMessage) (any, error) {
		path, err := dialogs.PickFolder(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open directory dialog: %w", err)
		}
		// Cancellation is an empty selection, not an error.
		if path == "" {
			return []string{}, nil
		}
		return []string{path}, nil
	})

	d.Register("dialog_save_file", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in dialogs.SaveFileOptions
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		path, err := dialogs.PickSaveFile(ctx, in)
		if err != nil {
			if errors.Is(err, dialogs.ErrCancelled) {
				return nil, errors.New("save dialog was cancelled")
			}
			return nil, fmt.Errorf("failed to open save dialog: %w", err)
		}
		return path, nil
	})

	d.Register("generate_asset", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Type   string `json:"asset_type"`
			Config any    `json:"config"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		a, err := gen.Generate(ctx, generate.Request{Type: in.Type, Config: in.Config})
		if err != nil {
			return nil, fmt.Errorf("generation failed: %w", err)
		}
		return a, nil
	})

	d.Register("generate_batch", func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Requests []generate.Request `json:"requests"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		out, err := gen.GenerateBatch(ctx, in.Requests)
		if err != nil {
			return nil, fmt.Errorf("batch generation failed: %w", err)
		}
		return out, nil
	})

	return d
}

// decodeArgs unmarshals the argument object, tolerating a missing body for
// operations that take no arguments.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
