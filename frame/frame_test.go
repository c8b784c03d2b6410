// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"io"
	"testing"

	"github.com/mgordner/mi2run/mi2"
	"github.com/mgordner/mi2run/mi2/interp"
	"github.com/mgordner/mi2run/mi2/token"
)

// fakeGdb scripts a minimal request/response exchange for exercising Frame
// methods, mirroring the harness in mi2/interp's own tests.
type fakeGdb struct {
	outW    *io.PipeWriter
	scripts [][]string
}

func newFakeGdb() (*fakeGdb, *token.Stream) {
	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	fg := &fakeGdb{outW: outW}
	go func() {
		buf := make([]byte, 4096)
		i := 0
		for {
			_, err := cmdR.Read(buf)
			if err != nil {
				return
			}
			if i >= len(fg.scripts) {
				continue
			}
			for _, line := range fg.scripts[i] {
				io.WriteString(fg.outW, line+"\n")
			}
			i++
		}
	}()
	return fg, token.New(cmdW, outR, nil, nil)
}

func TestParseResultStringShapes(t *testing.T) {
	cases := []struct {
		in       string
		wantRef  bool
		wantAddr uint64
	}{
		{`@0x601040`, true, 0x601040},
		{`0x400544 <f> "hello"`, false, 0},
		{`97 'a'`, false, 0},
		{`42`, false, 0},
	}
	for _, c := range cases {
		v, err := parseResultString(c.in)
		if err != nil {
			t.Fatalf("parseResultString(%q): %v", c.in, err)
		}
		if v.HasRef != c.wantRef {
			t.Errorf("parseResultString(%q).HasRef = %v, want %v", c.in, v.HasRef, c.wantRef)
		}
		if c.wantRef && v.Ref != c.wantAddr {
			t.Errorf("parseResultString(%q).Ref = %#x, want %#x", c.in, v.Ref, c.wantAddr)
		}
	}
}

func TestParseResultStringPointerWithCStringAndEllipsis(t *testing.T) {
	v, err := parseResultString(`0x601030 <buf> "hello..."`)
	if err != nil {
		t.Fatalf("parseResultString: %v", err)
	}
	if !v.CString.Ellipsis {
		t.Fatalf("got CString = %#v, want Ellipsis=true", v.CString)
	}
	if v.CString.Value != "hello" {
		t.Fatalf("got CString.Value = %q, want %q", v.CString.Value, "hello")
	}
}

func TestCallParsesVoidResultAsNil(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		{`1^done`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)
	f := New(ip, mi2.FrameRecord{}, 0, nil)
	v, err := f.Call("g()")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v != nil {
		t.Fatalf("got %#v, want nil for void call", v)
	}
}

func TestCallParsesIntegerResult(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		{`1^done,value="42"`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)
	f := New(ip, mi2.FrameRecord{}, 0, nil)
	v, err := f.Call("x")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v == nil || v.Value != "42" {
		t.Fatalf("got %#v, want Value=42", v)
	}
}

func TestSetExitInvokesCallback(t *testing.T) {
	var got int
	var ok bool
	f := &Frame{setExit: func(code int) { got, ok = code, true }}
	f.SetExit(7)
	if !ok || got != 7 {
		t.Fatalf("SetExit callback: got=%d ok=%v", got, ok)
	}
}

func TestGetCStringReturnsValueDirectlyWithoutEllipsis(t *testing.T) {
	f := &Frame{argList: []Arg{
		{ID: "s", Var: Var{CString: CString{Value: "hello", Ellipsis: false}}},
	}}
	got, err := f.GetCString(0)
	if err != nil {
		t.Fatalf("GetCString: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestGetCStringWalksPastEllipsis(t *testing.T) {
	fg, st := newFakeGdb()
	// "hel" truncated with an ellipsis; GetCString must re-print
	// s[3], s[4], s[5] to recover "lo\0".
	fg.scripts = [][]string{
		{`1^done,value="108 'l'"`, `(gdb)`},
		{`2^done,value="111 'o'"`, `(gdb)`},
		{`3^done,value="0 '\000'"`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)
	f := New(ip, mi2.FrameRecord{}, 0, nil)
	f.argList = []Arg{
		{ID: "s", Var: Var{CString: CString{Value: "hel", Ellipsis: true}}},
	}
	got, err := f.GetCString(0)
	if err != nil {
		t.Fatalf("GetCString: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestBacktraceMapsStackListFrames(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		{`1^done,stack=[frame={level="0",addr="0x4005d0",func="f",file="t.c",line="10"},frame={level="1",addr="0x400600",func="main",file="t.c",line="20"}]`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)
	f := New(ip, mi2.FrameRecord{}, 0, nil)
	bt, err := f.Backtrace()
	if err != nil {
		t.Fatalf("Backtrace: %v", err)
	}
	if len(bt) != 2 {
		t.Fatalf("got %d frames, want 2", len(bt))
	}
	if bt[0].Func != "f" || bt[0].CallSite != 0x4005d0 {
		t.Fatalf("got %#v", bt[0])
	}
	if bt[1].Func != "main" || bt[1].Loc.Line != 20 {
		t.Fatalf("got %#v", bt[1])
	}
}
