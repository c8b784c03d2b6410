// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the process/breakpoint engine of spec.md
// §4.5: it owns the debugger child process, drives it through its MI2
// banner and breakpoint installation, runs the target, correlates async
// stop events to user breakpoints, materializes a frame façade, invokes
// the plugin, and resumes — until the target exits or a watchdog fires.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mgordner/mi2run/internal/core"
)

// Config carries everything the engine needs to spawn and drive a
// debugger session: the path to the debugger binary, the target
// executable and its arguments, a watchdog timeout, an optional remote
// target spec, and optional init scripts fed line-by-line once the
// debugger starts (spec.md SPEC_FULL.md §4: init scripts are fed
// line-by-line, not as one blob, the way the original does).
type Config struct {
	DebuggerPath string
	Exe          string
	Args         []string

	// Timeout is the watchdog interval; any debugger I/O resets it.
	// Zero selects DefaultTimeout.
	Timeout time.Duration

	// Remote, if set, is a "host:port" spec passed to target-select
	// remote instead of running Exe locally. Validated eagerly by
	// NewConfig, per SPEC_FULL.md §4's "fail fast" supplement.
	Remote string

	// InitScripts are file paths whose lines are fed one at a time
	// through interpreter_exec("console", line) during Starting.
	InitScripts []string

	// LogPath, if set, names an append-only log file used in addition to
	// stderr. The engine itself does not open it; the front end passes it
	// to core.NewLogger and hands the resulting logger to New.
	LogPath string
}

// DefaultTimeout is the watchdog interval used when Config.Timeout is
// zero, matching spec.md §4.5's "default 10 s".
const DefaultTimeout = 10 * time.Second

// NewConfig validates cfg and fills in defaults. Remote is checked for a
// well-formed "host:port" shape here rather than deferred to the
// Starting transition (SPEC_FULL.md §4), so a malformed spec fails
// before the debugger child is even spawned.
func NewConfig(cfg Config) (Config, error) {
	if cfg.DebuggerPath == "" {
		cfg.DebuggerPath = "gdb"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Remote != "" {
		if err := validateRemoteSpec(cfg.Remote); err != nil {
			return cfg, err
		}
	}
	if cfg.Remote == "" && cfg.Exe == "" {
		return cfg, &core.TargetMissing{Detail: "neither Exe nor Remote is set"}
	}
	return cfg, nil
}

func validateRemoteSpec(spec string) error {
	host, port, found := strings.Cut(spec, ":")
	if !found || host == "" || port == "" {
		return &core.RemoteSpec{Spec: spec, Reason: "expected host:port"}
	}
	if _, err := strconv.Atoi(port); err != nil {
		return &core.RemoteSpec{Spec: spec, Reason: fmt.Sprintf("port %q is not numeric", port)}
	}
	return nil
}
