// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/mgordner/mi2run/mi2"
)

// TraceFindKind selects which "-trace-find" variant to issue.
type TraceFindKind uint8

const (
	TraceFindNone TraceFindKind = iota
	TraceFindFrameNumber
	TraceFindTracepointNumber
	TraceFindPC
	TraceFindPCInside
	TraceFindPCOutside
	TraceFindLine
)

// TraceFind issues the "-trace-find" variant selected by kind, with arg
// supplying the frame number/tracepoint number/address/line as text.
func (ip *Interp) TraceFind(kind TraceFindKind, arg string) (mi2.Record, error) {
	var mode string
	switch kind {
	case TraceFindNone:
		mode = "none"
	case TraceFindFrameNumber:
		mode = "frame-number"
	case TraceFindTracepointNumber:
		mode = "tracepoint-number"
	case TraceFindPC:
		mode = "pc"
	case TraceFindPCInside:
		mode = "pc-inside-range"
	case TraceFindPCOutside:
		mode = "pc-outside-range"
	case TraceFindLine:
		mode = "line"
	}
	args := " " + mode
	if arg != "" {
		args += " " + arg
	}
	return ip.exec("trace-find", args, mi2.ClassDone)
}

// TraceDefineVariable issues "-trace-define-variable name [value]".
func (ip *Interp) TraceDefineVariable(name, value string) error {
	args := " " + name
	if value != "" {
		args += " " + value
	}
	_, err := ip.exec("trace-define-variable", args, mi2.ClassDone)
	return err
}

// TraceFrameCollected issues "-trace-frame-collected".
func (ip *Interp) TraceFrameCollected() (mi2.Record, error) {
	return ip.exec("trace-frame-collected", "", mi2.ClassDone)
}

// TraceListVariables issues "-trace-list-variables".
func (ip *Interp) TraceListVariables() (mi2.Record, error) {
	return ip.exec("trace-list-variables", "", mi2.ClassDone)
}

// TraceSave issues "-trace-save [-r] filename".
func (ip *Interp) TraceSave(filename string, raw bool) error {
	args := ""
	if raw {
		args += " -r"
	}
	args += " " + filename
	_, err := ip.exec("trace-save", args, mi2.ClassDone)
	return err
}

// TraceStart issues "-trace-start".
func (ip *Interp) TraceStart() error {
	_, err := ip.exec("trace-start", "", mi2.ClassDone)
	return err
}

// TraceStatus issues "-trace-status".
func (ip *Interp) TraceStatus() (mi2.Record, error) {
	return ip.exec("trace-status", "", mi2.ClassDone)
}

// TraceStop issues "-trace-stop".
func (ip *Interp) TraceStop() error {
	_, err := ip.exec("trace-stop", "", mi2.ClassDone)
	return err
}

