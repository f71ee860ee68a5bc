/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"assetforge/internal/bridge"
	"assetforge/internal/config"
	"assetforge/internal/crash"
	"assetforge/internal/domain"
	"assetforge/internal/export"
	"assetforge/internal/fsops"
	"assetforge/internal/generate"
	applog "assetforge/internal/log"
	"assetforge/internal/store"
	"assetforge/internal/telemetry"
	"assetforge/internal/version"
)

func usage() {
	fmt.Println("AssetForge — game asset library")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  assetforge version|-v|--version               Show version")
	fmt.Println("  assetforge list [type] [search] [limit]       List stored assets")
	fmt.Println("  assetforge delete <id>                        Delete an asset by id")
	fmt.Println("  assetforge setting get <key>                  Print a setting value")
	fmt.Println("  assetforge setting set <key> <value>          Store a setting value")
	fmt.Println("  assetforge generate <type> [config-json] [out-file]")
	fmt.Println("                                                Generate an asset and record it")
	fmt.Println("  assetforge export <out.pdf>                   Write the asset catalog PDF")
	fmt.Println("  assetforge invoke <op> [args-json]            Run a raw bridge operation")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	cfg, _, err := config.Load()
	if err != nil {
		l.Error("config load failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	dataDir, err := config.DataDir(cfg)
	if err != nil {
		l.Error("data dir resolution failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer crash.Recover(dataDir)
	telemetry.InitDefault()

	args := os.Args
	if len(args) < 2 {
		usage()
		return
	}
	if args[1] == "version" || args[1] == "--version" || args[1] == "-v" {
		fmt.Println("AssetForge — game asset library")
		fmt.Println(version.String())
		return
	}

	st, err := store.Open(dataDir)
	if err != nil {
		l.Error("store open failed", slog.Any("err", err), slog.String("data_dir", dataDir))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error("store close failed", slog.Any("err", err))
		}
	}()

	d := bridge.New(st, generate.NewPlaceholder())
	ctx := context.Background()

	switch args[1] {
	case "list":
		f := store.Filters{}
		if len(args) > 2 {
			f.Type = args[2]
		}
		if len(args) > 3 {
			f.Search = args[3]
		}
		if len(args) > 4 {
			n, err := strconv.Atoi(args[4])
			if err != nil {
				fmt.Println("limit must be an integer")
				os.Exit(2)
			}
			f.Limit = n
		}
		assets, err := st.ListAssets(ctx, f)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		for _, a := range assets {
			fmt.Printf("%s  %-10s  %s\n", a.ID, a.Type, a.Name)
		}
		fmt.Printf("%d asset(s)\n", len(assets))

	case "delete":
		if len(args) < 3 {
			fmt.Println("delete requires <id>")
			usage()
			os.Exit(2)
		}
		if err := st.DeleteAsset(ctx, args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Deleted", args[2])

	case "setting":
		runSetting(ctx, st, args[2:])

	case "generate":
		runGenerate(ctx, st, args[2:])

	case "export":
		if len(args) < 3 {
			fmt.Println("export requires <out.pdf>")
			usage()
			os.Exit(2)
		}
		assets, err := st.ListAssets(ctx, store.Filters{})
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := export.WriteCatalogPDF(assets, args[2], export.CatalogOptions{}); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote catalog to", args[2])

	case "invoke":
		if len(args) < 3 {
			fmt.Println("invoke requires <op> [args-json]")
			fmt.Println("Operations:", d.Operations())
			os.Exit(2)
		}
		var raw json.RawMessage
		if len(args) > 3 {
			raw = json.RawMessage(args[3])
		}
		out, err := d.Invoke(ctx, args[2], raw)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println(string(out))

	default:
		usage()
	}
}

func runSetting(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("setting requires get <key> or set <key> <value>")
		usage()
		os.Exit(2)
	}
	switch args[0] {
	case "get":
		value, ok, err := st.GetSetting(ctx, args[1])
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("(not set)")
			return
		}
		fmt.Println(value)
	case "set":
		if len(args) < 3 {
			fmt.Println("setting set requires <key> and <value>")
			os.Exit(2)
		}
		if err := st.SetSetting(ctx, args[1], args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Saved setting", args[1])
	default:
		fmt.Println("unknown setting action:", args[0])
		os.Exit(2)
	}
}

// runGenerate produces one asset, optionally writes the artifact to a file,
// and records the asset row.
func runGenerate(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("generate requires <type>")
		usage()
		os.Exit(2)
	}
	assetType := args[0]
	var cfg any
	if len(args) > 1 && args[1] != "" {
		if err := json.Unmarshal([]byte(args[1]), &cfg); err != nil {
			fmt.Println("config is not valid JSON:", err)
			os.Exit(2)
		}
	}

	gen := generate.NewPlaceholder()
	artifact, err := gen.Generate(ctx, generate.Request{Type: assetType, Config: cfg})
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	asset := domainAsset(artifact)
	if len(args) > 2 {
		outPath := args[2]
		if err := fsops.SaveFile(outPath, artifact.Data); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		size := int64(len(artifact.Data))
		asset.FilePath = outPath
		asset.FileSize = &size
		fmt.Println("Wrote artifact to", outPath)
	}

	id, err := st.SaveAsset(ctx, asset)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	telemetry.Event("asset_generated", map[string]any{"asset_type": assetType})
	fmt.Println("Saved asset", id)
}

func domainAsset(a generate.Artifact) domain.Asset {
	return domain.Asset{
		Type:     a.Type,
		Name:     fmt.Sprintf("%s %s", a.Type, a.Metadata.GeneratedAt),
		Config:   a.Config,
		Metadata: a.Metadata,
	}
}
