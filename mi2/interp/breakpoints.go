// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"

	"github.com/mgordner/mi2run/mi2"
)

// BreakInsertOptions carries the optional flags "-break-insert" accepts.
type BreakInsertOptions struct {
	Temporary bool   // -t
	Hardware  bool   // -h
	Condition string // -c EXPR
	HasCondition bool
	IgnoreCount int // -i COUNT
	HasIgnoreCount bool
	Thread int // -p THREAD
	HasThread bool
}

func (o BreakInsertOptions) flags() string {
	s := ""
	if o.Temporary {
		s += " -t"
	}
	if o.Hardware {
		s += " -h"
	}
	if o.HasCondition {
		s += fmt.Sprintf(" -c %q", o.Condition)
	}
	if o.HasIgnoreCount {
		s += fmt.Sprintf(" -i %d", o.IgnoreCount)
	}
	if o.HasThread {
		s += fmt.Sprintf(" -p %d", o.Thread)
	}
	return s
}

// BreakInsert issues "-break-insert" for locator, which may yield more
// than one Breakpoint when the locator matches multiple locations (spec.md
// §3, §4.3).
func (ip *Interp) BreakInsert(locator string, opts BreakInsertOptions) ([]mi2.Breakpoint, error) {
	rec, err := ip.exec("break-insert", opts.flags()+" "+locator, mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	return mi2.DecodeBreakpoints(rec.Results)
}

// BreakInfo issues "-break-info n".
func (ip *Interp) BreakInfo(n int) (mi2.Breakpoint, error) {
	rec, err := ip.exec("break-info", fmt.Sprintf(" %d", n), mi2.ClassDone)
	if err != nil {
		return mi2.Breakpoint{}, err
	}
	bps, err := mi2.DecodeBreakpoints(rec.Results)
	if err != nil {
		return mi2.Breakpoint{}, err
	}
	if len(bps) == 0 {
		return mi2.Breakpoint{}, &UnexpectedRecord{Detail: "break-info returned no breakpoint"}
	}
	return bps[0], nil
}

// BreakAfter issues "-break-after n count".
func (ip *Interp) BreakAfter(n, count int) error {
	_, err := ip.exec("break-after", fmt.Sprintf(" %d %d", n, count), mi2.ClassDone)
	return err
}

// BreakCommands issues "-break-commands n cmd...".
func (ip *Interp) BreakCommands(n int, commands []string) error {
	args := fmt.Sprintf(" %d", n)
	for _, c := range commands {
		args += fmt.Sprintf(" %q", c)
	}
	_, err := ip.exec("break-commands", args, mi2.ClassDone)
	return err
}

// BreakCondition issues "-break-condition n expr".
func (ip *Interp) BreakCondition(n int, expr string) error {
	_, err := ip.exec("break-condition", fmt.Sprintf(" %d %s", n, expr), mi2.ClassDone)
	return err
}

// BreakDelete issues "-break-delete n...".
func (ip *Interp) BreakDelete(numbers ...int) error {
	args := ""
	for _, n := range numbers {
		args += fmt.Sprintf(" %d", n)
	}
	_, err := ip.exec("break-delete", args, mi2.ClassDone)
	return err
}

// BreakEnable issues "-break-enable n...".
func (ip *Interp) BreakEnable(numbers ...int) error {
	args := ""
	for _, n := range numbers {
		args += fmt.Sprintf(" %d", n)
	}
	_, err := ip.exec("break-enable", args, mi2.ClassDone)
	return err
}

// BreakDisable issues "-break-disable n...".
func (ip *Interp) BreakDisable(numbers ...int) error {
	args := ""
	for _, n := range numbers {
		args += fmt.Sprintf(" %d", n)
	}
	_, err := ip.exec("break-disable", args, mi2.ClassDone)
	return err
}

// BreakList issues "-break-list".
func (ip *Interp) BreakList() ([]mi2.Breakpoint, error) {
	rec, err := ip.exec("break-list", "", mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("BreakpointTable")
	if !ok {
		return nil, nil
	}
	t, err := v.AsTuple()
	if err != nil {
		return nil, err
	}
	body, ok := t.Get("body")
	if !ok {
		return nil, nil
	}
	bodyTuple, err := body.AsTuple()
	if err == nil {
		return mi2.DecodeBreakpoints(bodyTuple)
	}
	list, err := body.AsList()
	if err != nil {
		return nil, err
	}
	results, err := list.Results()
	if err != nil {
		return nil, nil
	}
	return mi2.DecodeBreakpoints(mi2.Tuple(results))
}

// BreakWatch issues "-break-watch expr".
func (ip *Interp) BreakWatch(expr string) (mi2.Breakpoint, error) {
	rec, err := ip.exec("break-watch", " "+expr, mi2.ClassDone)
	if err != nil {
		return mi2.Breakpoint{}, err
	}
	bps, err := mi2.DecodeBreakpoints(rec.Results)
	if err != nil || len(bps) == 0 {
		return mi2.Breakpoint{}, err
	}
	return bps[0], nil
}

// CatchLoad issues "-catch-load libname".
func (ip *Interp) CatchLoad(libname string) error {
	_, err := ip.exec("catch-load", " "+libname, mi2.ClassDone)
	return err
}

// CatchUnload issues "-catch-unload libname".
func (ip *Interp) CatchUnload(libname string) error {
	_, err := ip.exec("catch-unload", " "+libname, mi2.ClassDone)
	return err
}

// CatchAssert issues "-catch-assert" (gdb's Ada assertion catchpoint).
func (ip *Interp) CatchAssert() error {
	_, err := ip.exec("catch-assert", "", mi2.ClassDone)
	return err
}

// CatchException issues "-catch-exception" (gdb's Ada exception catchpoint).
func (ip *Interp) CatchException(exceptionName string) error {
	args := ""
	if exceptionName != "" {
		args = " -e " + exceptionName
	}
	_, err := ip.exec("catch-exception", args, mi2.ClassDone)
	return err
}

// DprintfInsert issues "-dprintf-insert location format args...".
func (ip *Interp) DprintfInsert(location, format string, args ...string) error {
	line := fmt.Sprintf(" %s %q", location, format)
	for _, a := range args {
		line += " " + a
	}
	_, err := ip.exec("dprintf-insert", line, mi2.ClassDone)
	return err
}
