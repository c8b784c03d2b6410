// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "fmt"

// MismatchedToken is raised when a result record's token does not match
// the token of the command it is presumed to reply to (spec.md §4.3, §7).
type MismatchedToken struct {
	Want, Got uint64
}

func (e *MismatchedToken) Error() string {
	return fmt.Sprintf("mi2/interp: mismatched token: want %d, got %d", e.Want, e.Got)
}

// UnexpectedResultClass is raised when a command's reply carries a class
// other than the one the caller expected (and isn't "error", which becomes
// DebuggerError instead).
type UnexpectedResultClass struct {
	Want, Got string
	Msg       string
}

func (e *UnexpectedResultClass) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("mi2/interp: unexpected result class: want %s, got %s (%s)", e.Want, e.Got, e.Msg)
	}
	return fmt.Sprintf("mi2/interp: unexpected result class: want %s, got %s", e.Want, e.Got)
}

// UnexpectedRecord is raised when a record arrives that is structurally
// valid MI2 but out of place for the current protocol state (e.g. a result
// record's token is absent, or the batch ends before a reply arrived).
type UnexpectedRecord struct {
	Detail string
}

func (e *UnexpectedRecord) Error() string {
	return "mi2/interp: unexpected record: " + e.Detail
}

// UnexpectedAsyncRecord is raised when wait_for_stop (or an internal
// dispatch routine) receives an async record it cannot make sense of.
type UnexpectedAsyncRecord struct {
	Detail string
}

func (e *UnexpectedAsyncRecord) Error() string {
	return "mi2/interp: unexpected async record: " + e.Detail
}

// DebuggerError wraps a result record of class "error": the debugger
// declined to perform the requested command.
type DebuggerError struct {
	Msg  string
	Code string
	HasCode bool
}

func (e *DebuggerError) Error() string {
	if e.HasCode {
		return fmt.Sprintf("mi2/interp: debugger error [%s]: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("mi2/interp: debugger error: %s", e.Msg)
}

// Timeout is raised when the watchdog fires (surfaced here for callers
// that drive the interpreter directly, e.g. tests; engine.Engine is the
// usual owner of the watchdog itself).
type Timeout struct{}

func (e *Timeout) Error() string { return "mi2/interp: watchdog timeout" }
