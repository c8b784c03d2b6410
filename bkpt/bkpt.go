// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bkpt defines the plugin surface of spec.md §6: the interface a
// collaborator implements to contribute a user breakpoint, and the four
// hooks the engine calls as that breakpoint is installed and fires.
package bkpt

import "github.com/mgordner/mi2run/frame"

// UserBreakpoint is a plugin-contributed breakpoint: an immutable
// identifier (a gdb locator string, such as a function name or
// "file:line"), an optional condition expression, and four lifecycle
// hooks the engine invokes during breakpoint installation and execution.
type UserBreakpoint interface {
	// Identifier names the location to break at, in gdb locator syntax
	// (see interp.Locator.Serialize for the supported shapes).
	Identifier() string

	// Condition returns the breakpoint's condition expression, and
	// whether one is set at all.
	Condition() (expr string, ok bool)

	// OnSet is called once the locator resolved to exactly one
	// breakpoint location, reporting its installed address, file, and
	// line.
	OnSet(addr, file string, line int)

	// OnSetMultiple is called instead of OnSet when the locator
	// resolved to several locations, reporting a representative name
	// and the count installed.
	OnSetMultiple(addr, name string, count int)

	// OnNotFound is called when installation failed because the
	// debugger answered with an error reply (whatever its message, e.g.
	// an unresolvable locator) or returned no breakpoint. Installation
	// continues with the next breakpoint; this is not treated as fatal.
	OnNotFound()

	// Invoke is called each time this breakpoint fires, with the
	// frame façade for the stopped frame and the source location
	// reported by the stop event. A panic escaping Invoke is caught at
	// the dispatch seam and treated as fatal (spec.md §7).
	Invoke(fr *frame.Frame, file string, line int)
}

// Base is an embeddable partial UserBreakpoint implementation supplying
// Identifier and Condition from stored fields, so a plugin need only
// define the four hooks it cares about by embedding Base and overriding
// methods selectively — the remaining hooks default to no-ops via
// NopHooks.
type Base struct {
	NopHooks
	Ident   string
	Cond    string
	HasCond bool
}

// Identifier returns the stored identifier string.
func (b Base) Identifier() string { return b.Ident }

// Condition returns the stored condition, if any.
func (b Base) Condition() (string, bool) { return b.Cond, b.HasCond }

// NopHooks implements all four UserBreakpoint hooks as no-ops, for
// embedding by plugins that only care about a subset.
type NopHooks struct{}

func (NopHooks) OnSet(addr, file string, line int)             {}
func (NopHooks) OnSetMultiple(addr, name string, count int)    {}
func (NopHooks) OnNotFound()                                   {}
func (NopHooks) Invoke(fr *frame.Frame, file string, line int) {}

// New builds a UserBreakpoint from a plain identifier and a single
// invoke callback, for the common case of a plugin that doesn't care
// about the install-time hooks. cond, if non-empty, is used as the
// breakpoint's condition expression.
func New(identifier, cond string, invoke func(fr *frame.Frame, file string, line int)) UserBreakpoint {
	return &simple{ident: identifier, cond: cond, hasCond: cond != "", invoke: invoke}
}

type simple struct {
	NopHooks
	ident   string
	cond    string
	hasCond bool
	invoke  func(fr *frame.Frame, file string, line int)
}

func (s *simple) Identifier() string        { return s.ident }
func (s *simple) Condition() (string, bool) { return s.cond, s.hasCond }
func (s *simple) Invoke(fr *frame.Frame, file string, line int) {
	if s.invoke != nil {
		s.invoke(fr, file, line)
	}
}
