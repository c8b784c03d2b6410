// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import "fmt"

// RecordKind identifies which of the four record families (spec.md §3) a
// parsed line belongs to.
type RecordKind uint8

const (
	RecordStream RecordKind = iota
	RecordAsync
	RecordResult
	RecordPrompt
)

func (k RecordKind) String() string {
	switch k {
	case RecordStream:
		return "stream"
	case RecordAsync:
		return "async"
	case RecordResult:
		return "result"
	case RecordPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// StreamKind distinguishes the three stream record types: console output
// (destined for a human), target output (the debuggee's own stdout/stderr,
// forwarded verbatim), and log output (gdb's internal diagnostics).
type StreamKind uint8

const (
	StreamConsole StreamKind = iota // '~'
	StreamTarget                    // '@'
	StreamLog                       // '&'
)

// AsyncKind distinguishes the three async record types.
type AsyncKind uint8

const (
	AsyncExec   AsyncKind = iota // '*'
	AsyncStatus                  // '+'
	AsyncNotify                  // '='
)

// ResultClass is the class field of a Result record's reply to a command.
// Unrecognized classes are preserved verbatim so the parser tolerates
// debugger versions that add new ones (spec.md §4.2 semantic rules).
type ResultClass string

const (
	ClassDone      ResultClass = "done"
	ClassRunning   ResultClass = "running"
	ClassConnected ResultClass = "connected"
	ClassError     ResultClass = "error"
	ClassExit      ResultClass = "exit"
)

// Record is one classified line of debugger output, optionally carrying a
// token that correlates it with the command that produced it.
type Record struct {
	Kind RecordKind

	// Token is the numeric prefix, if any. Only result records replying
	// to a tokened command, and occasionally async records, carry one.
	Token    uint64
	HasToken bool

	// Valid when Kind == RecordStream.
	StreamKind StreamKind
	Text       string

	// Valid when Kind == RecordAsync.
	AsyncKind AsyncKind
	Class     string // async class, e.g. "stopped"; unknown classes pass through raw

	// Valid when Kind == RecordResult.
	ResultClass ResultClass

	// Valid when Kind == RecordAsync or RecordResult.
	Results Tuple
}

// Get is a convenience accessor over Results, for both async and result
// records, following spec.md §3's Tuple.Get semantics.
func (r Record) Get(key string) (Value, bool) {
	return Tuple(r.Results).Get(key)
}

func (r Record) String() string {
	switch r.Kind {
	case RecordStream:
		return fmt.Sprintf("stream{%v %q}", r.StreamKind, r.Text)
	case RecordAsync:
		return fmt.Sprintf("async{%v %s %v}", r.AsyncKind, r.Class, r.Results)
	case RecordResult:
		return fmt.Sprintf("result{%s %v}", r.ResultClass, r.Results)
	case RecordPrompt:
		return "prompt"
	default:
		return "unknown-record"
	}
}
