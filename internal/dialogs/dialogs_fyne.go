//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package dialogs

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
)

// FynePicker shows native-looking dialogs parented to the main window.
// Each request is a single-shot handoff: the dialog callback fires exactly
// once and delivers its result over a buffered channel to the waiting caller.
type FynePicker struct {
	Win fyne.Window
}

// NewFynePicker returns a Picker backed by Fyne dialogs.
func NewFynePicker(win fyne.Window) *FynePicker { return &FynePicker{Win: win} }

type pickResult struct {
	path string
	err  error
}

func (p *FynePicker) PickFolder(_ context.Context) (string, error) {
	ch := make(chan pickResult, 1)
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		switch {
		case err != nil:
			ch <- pickResult{err: err}
		case uri == nil:
			// user cancelled: empty success, not an error
			ch <- pickResult{}
		default:
			ch <- pickResult{path: uri.Path()}
		}
	}, p.Win)
	d.Show()
	res := <-ch
	return res.path, res.err
}

func (p *FynePicker) PickSaveFile(_ context.Context, opts SaveFileOptions) (string, error) {
	ch := make(chan pickResult, 1)
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		switch {
		case err != nil:
			ch <- pickResult{err: err}
		case wc == nil:
			ch <- pickResult{err: ErrCancelled}
		default:
			path := wc.URI().Path()
			_ = wc.Close()
			ch <- pickResult{path: path}
		}
	}, p.Win)
	if opts.DefaultFileName != "" {
		d.SetFileName(opts.DefaultFileName)
	}
	if exts := filterExtensions(opts.Filters); len(exts) > 0 {
		d.SetFilter(fstorage.NewExtensionFileFilter(exts))
	}
	// Fyne fixes the dialog title; opts.Title is advisory only.
	d.Show()
	res := <-ch
	return res.path, res.err
}

// filterExtensions flattens the option filters into the dotted extension
// list Fyne expects.
func filterExtensions(filters []FileFilter) []string {
	var exts []string
	for _, f := range filters {
		for _, e := range f.Extensions {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts = append(exts, e)
		}
	}
	return exts
}
