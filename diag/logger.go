// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag holds the diagnostic logger shared by the chart
// compilation packages.
//
// By default nothing is logged. Diagnostics worth seeing are emitted
// at slog.LevelWarn (for example, a stat kind that is recognized but
// not implemented and therefore passes its data through unchanged);
// per-layer pipeline progress is emitted at slog.LevelDebug.
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used for diagnostics. Passing nil
// restores the silent default. It is safe to call concurrently with
// chart builds.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// Logger returns the current diagnostic logger.
func Logger() *slog.Logger {
	return logger.Load()
}
