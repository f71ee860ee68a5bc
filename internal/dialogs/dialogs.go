/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package dialogs is the native file-dialog boundary. The desktop build
// (-tags fyne, cgo) registers a Fyne-backed picker at startup; headless
// builds keep the unavailable default so the rest of the application stays
// testable.
//
// Cancellation semantics are asymmetric on purpose, matching the UI
// convention the callers already handle: a cancelled folder pick is an empty
// path with no error, a cancelled save-file pick is ErrCancelled.
package dialogs

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled is returned by PickSaveFile when the user dismisses the
// dialog without choosing a destination.
var ErrCancelled = errors.New("dialog cancelled by user")

// ErrUnavailable is returned when no native dialog backend is registered
// (headless or non-fyne builds).
var ErrUnavailable = errors.New("native dialogs unavailable in this build")

// FileFilter restricts the selectable files of a save dialog.
type FileFilter struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// SaveFileOptions configures PickSaveFile.
type SaveFileOptions struct {
	Title           string       `json:"title,omitempty"`
	DefaultFileName string       `json:"defaultFileName,omitempty"`
	Filters         []FileFilter `json:"filters,omitempty"`
}

// Picker is the pluggable dialog backend. Implementations block the calling
// goroutine until the user responds; there is no cancellation path once the
// request is issued.
type Picker interface {
	// PickFolder returns the chosen directory, or "" with a nil error when
	// the user cancels.
	PickFolder(ctx context.Context) (string, error)
	// PickSaveFile returns the chosen destination path, or ErrCancelled.
	PickSaveFile(ctx context.Context, opts SaveFileOptions) (string, error)
}

var (
	pickerMu sync.RWMutex
	picker   Picker = unavailablePicker{}
)

// SetPicker installs the dialog backend for the process. Called once at
// startup by the desktop shell.
func SetPicker(p Picker) {
	pickerMu.Lock()
	defer pickerMu.Unlock()
	if p == nil {
		picker = unavailablePicker{}
		return
	}
	picker = p
}

func current() Picker {
	pickerMu.RLock()
	defer pickerMu.RUnlock()
	return picker
}

// PickFolder shows the native folder picker.
func PickFolder(ctx context.Context) (string, error) {
	return current().PickFolder(ctx)
}

// PickSaveFile shows the native save-file picker.
func PickSaveFile(ctx context.Context, opts SaveFileOptions) (string, error) {
	return current().PickSaveFile(ctx, opts)
}

type unavailablePicker struct{}

func (unavailablePicker) PickFolder(context.Context) (string, error) {
	return "", ErrUnavailable
}

func (unavailablePicker) PickSaveFile(context.Context, SaveFileOptions) (string, error) {
	return "", ErrUnavailable
}
