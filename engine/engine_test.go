// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mgordner/mi2run/bkpt"
	"github.com/mgordner/mi2run/frame"
	"github.com/mgordner/mi2run/mi2/interp"
	"github.com/mgordner/mi2run/mi2/token"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGdb scripts a request/response exchange: for every command line it
// reads, it writes back the next entry of scripts in order. Unsolicited
// lines (e.g. a stop event requiring no command) are written directly
// via outW from a separate goroutine.
type fakeGdb struct {
	outW    *io.PipeWriter
	scripts [][]string
}

func newFakeGdb() (*fakeGdb, *token.Stream) {
	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	fg := &fakeGdb{outW: outW}
	go func() {
		sc := bufio.NewScanner(cmdR)
		sc.Buffer(make([]byte, 0, 4096), 1<<20)
		i := 0
		for sc.Scan() {
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

func TestNewConfigDefaultsAndValidation(t *testing.T) {
	cfg, err := NewConfig(Config{Exe: "/bin/true"})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.DebuggerPath != "gdb" || cfg.Timeout != DefaultTimeout {
		t.Fatalf("got %#v", cfg)
	}
}

func TestNewConfigRejectsBadRemoteSpec(t *testing.T) {
	if _, err := NewConfig(Config{Remote: "localhost"}); err == nil {
		t.Fatalf("expected error for missing port")
	}
	if _, err := NewConfig(Config{Remote: "localhost:notaport"}); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}

func TestNewConfigRejectsNoTarget(t *testing.T) {
	if _, err := NewConfig(Config{}); err == nil {
		t.Fatalf("expected error when neither Exe nor Remote is set")
	}
}

func TestInstallBreakpointsSingleLocation(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		{`1^done,bkpt={number="1",type="breakpoint",disp="keep",enabled="y",addr="0x1000",func="f",file="t.c",fullname="/tmp/t.c",line="10",thread-groups=["i1"],times="0"}`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)

	var setAddr, setFile string
	var setLine int
	b := bkpt.New("f", "", nil)
	wrapped := &recordingBreakpoint{UserBreakpoint: b, onSet: func(addr, file string, line int) {
		setAddr, setFile, setLine = addr, file, line
	}}

	byNumber, err := installBreakpoints(ip, []bkpt.UserBreakpoint{wrapped}, discardLogger())
	if err != nil {
		t.Fatalf("installBreakpoints: %v", err)
	}
	if len(byNumber) != 1 || byNumber[1] != wrapped {
		t.Fatalf("got %#v", byNumber)
	}
	if setAddr != "0x1000" || setFile != "t.c" || setLine != 10 {
		t.Fatalf("OnSet got addr=%q file=%q line=%d", setAddr, setFile, setLine)
	}
}

func TestInstallBreakpointsNotFoundIsSkippedNotFatal(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		{`1^error,msg="Function \"nope\" not defined."`, `(gdb)`},
	}
	ip := interp.New(st, interp.Sinks{}, 0)

	var notFound bool
	b := bkpt.New("nope", "", nil)
	wrapped := &recordingBreakpoint{UserBreakpoint: b, onNotFound: func() { notFound = true }}

	byNumber, err := installBreakpoints(ip, []bkpt.UserBreakpoint{wrapped}, discardLogger())
	if err != nil {
		t.Fatalf("installBreakpoints: %v", err)
	}
	if len(byNumber) != 0 {
		t.Fatalf("got %#v, want empty map", byNumber)
	}
	if !notFound {
		t.Fatalf("OnNotFound was not called")
	}
}

// recordingBreakpoint wraps a UserBreakpoint to intercept hook calls for
// assertions without needing a full bkpt.Base subclass per test.
type recordingBreakpoint struct {
	bkpt.UserBreakpoint
	onSet         func(addr, file string, line int)
	onSetMultiple func(addr, name string, count int)
	onNotFound    func()
}

func (r *recordingBreakpoint) OnSet(addr, file string, line int) {
	if r.onSet != nil {
		r.onSet(addr, file, line)
	}
}
func (r *recordingBreakpoint) OnSetMultiple(addr, name string, count int) {
	if r.onSetMultiple != nil {
		r.onSetMultiple(addr, name, count)
	}
}
func (r *recordingBreakpoint) OnNotFound() {
	if r.onNotFound != nil {
		r.onNotFound()
	}
}

func TestDispatchInvokesBreakpointThenExits(t *testing.T) {
	fg, st := newFakeGdb()
	fg.scripts = [][]string{
		// Reply to the exec-continue issued after the plugin returns.
		{`1^running`, `(gdb)`, `*stopped,reason="exited-normally",exit-code="00"`},
	}
	go io.WriteString(fg.outW, `*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={func="f",args=[],file="t.c",line="21"}`+"\n")
	ip := interp.New(st, interp.Sinks{}, 0)

	var invoked bool
	b := bkpt.New("f", "", func(fr *frame.Frame, file string, line int) {
		invoked = true
		if file != "t.c" || line != 21 {
			t.Errorf("invoke got file=%q line=%d", file, line)
		}
	})
	byNumber := map[int]bkpt.UserBreakpoint{1: b}

	e := New(Config{}, nil, discardLogger())
	wd := newWatchdog(time.Hour, nil)
	defer wd.stop()

	code, err := e.dispatch(context.Background(), ip, byNumber, wd)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !invoked {
		t.Fatalf("breakpoint invoke was not called")
	}
	if code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}

func TestDispatchHonorsPluginSetExit(t *testing.T) {
	fg, st := newFakeGdb()
	go io.WriteString(fg.outW, `*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={func="_exit",args=[{name="code",value="7"}],file="t.c",line="5"}`+"\n")
	ip := interp.New(st, interp.Sinks{}, 0)

	e := New(Config{}, nil, discardLogger())
	b := bkpt.New("_exit", "", func(fr *frame.Frame, file string, line int) {
		fr.SetExit(7)
	})
	byNumber := map[int]bkpt.UserBreakpoint{1: b}

	wd := newWatchdog(time.Hour, nil)
	defer wd.stop()
	code, err := e.dispatch(context.Background(), ip, byNumber, wd)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if code != 7 {
		t.Fatalf("got exit code %d, want 7 (plugin exit precedence)", code)
	}
}

func TestDispatchCatchesPluginPanic(t *testing.T) {
	fg, st := newFakeGdb()
	go io.WriteString(fg.outW, `*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={func="f",args=[],file="t.c",line="1"}`+"\n")
	ip := interp.New(st, interp.Sinks{}, 0)

	e := New(Config{}, nil, discardLogger())
	b := bkpt.New("f", "", func(fr *frame.Frame, file string, line int) {
		panic("boom")
	})
	byNumber := map[int]bkpt.UserBreakpoint{1: b}

	wd := newWatchdog(time.Hour, nil)
	defer wd.stop()
	_, err := e.dispatch(context.Background(), ip, byNumber, wd)
	if err == nil {
		t.Fatalf("expected an error from the panicking plugin")
	}
}
