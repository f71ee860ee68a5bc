/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package bridge is the process-internal command surface: callers issue
// named operations with JSON-shaped arguments and receive JSON-shaped
// results or a descriptive error message. All store, file, dialog, and
// generation operations funnel through here; nothing below this layer
// formats errors for users.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	applog "assetforge/internal/log"
)

// Handler executes one named operation. args is the raw JSON argument
// object; the returned value is marshalled to JSON by Invoke.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes operation names to handlers.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher returns an empty dispatcher. Use New to get one wired to
// the application services.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register installs a handler under the given operation name, replacing any
// previous one.
func (d *Dispatcher) Register(name string, h Handler) {
	d.handlers[name] = h
}

// Operations returns the registered operation names, sorted.
func (d *Dispatcher) Operations() []string {
	ops := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		ops = append(ops, name)
	}
	sort.Strings(ops)
	return ops
}

// Invoke runs the named operation. The error, when non-nil, carries the
// descriptive message callers surface to the user; failures never terminate
// the process at this layer.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	l := applog.WithOperation(applog.WithComponent("bridge"), name)
	res, err := h(ctx, args)
	if err != nil {
		l.Debug("operation failed", slog.Any("err", err))
		return nil, err
	}
	out, err := json.Marshal(res)
	if err != nil {
		l.Error("marshal result failed", slog.Any("err", err))
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}
	return out, nil
}
