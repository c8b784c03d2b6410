// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/mgordner/mi2run/mi2"
	"github.com/mgordner/mi2run/mi2/token"
)

// fakeGdb pipes a scripted request/response exchange: it reads one command
// line from cmdR and, for each entry in scripts, writes the canned lines.
// The command text itself is ignored (tests only check token numbering via
// the scripted reply token).
type fakeGdb struct {
	cmdR *io.PipeReader
	outW *io.PipeWriter

	t       *testing.T
	scripts [][]string // one slice of output lines per expected command
}

func newFakeGdb(t *testing.T) (*fakeGdb, *token.Stream) {
	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	fg := &fakeGdb{cmdR: cmdR, outW: outW, t: t}
	st := token.New(cmdW, outR, nil, nil)
	return fg, st
}

// serve runs in a goroutine: for every line of input it reads a full
// gdb "batch" to write back, taken in order from fg.scripts.
func (fg *fakeGdb) serve() {
	sc := bufio.NewScanner(fg.cmdR)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	i := 0
	for sc.Scan() {
		if i >= len(fg.scripts) {
			return
		}
		for _, line := range fg.scripts[i] {
			io.WriteString(fg.outW, line+"\n")
		}
		i++
	}
}

func TestExecRunRoundTrip(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`1^running`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	if err := ip.ExecRun(); err != nil {
		t.Fatalf("ExecRun: %v", err)
	}
}

func TestBreakInsertSingleLocation(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`1^done,bkpt={number="1",type="breakpoint",disp="keep",enabled="y",addr="0x1000",func="f",file="t.c",fullname="/tmp/t.c",line="10",thread-groups=["i1"],times="0"}`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	bps, err := ip.BreakInsert("f", BreakInsertOptions{})
	if err != nil {
		t.Fatalf("BreakInsert: %v", err)
	}
	if len(bps) != 1 || bps[0].Number != 1 || bps[0].Func != "f" {
		t.Fatalf("got %#v", bps)
	}
}

func TestDebuggerErrorFromErrorClass(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`1^error,msg="No symbol \"foo\" in current context."`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	_, err := ip.BreakInsert("foo", BreakInsertOptions{})
	de, ok := err.(*DebuggerError)
	if !ok {
		t.Fatalf("got %T: %v", err, err)
	}
	if de.Msg != `No symbol "foo" in current context.` {
		t.Fatalf("got %q", de.Msg)
	}
}

func TestMismatchedTokenIsFatal(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`99^done`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	err := ip.ExecRun()
	if _, ok := err.(*MismatchedToken); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestStreamRecordsDispatchedDuringCommand(t *testing.T) {
	var console, target, log []string
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`~"console line\n"`, `@"target line\n"`, `&"log line\n"`, `1^running`, `(gdb)`},
	}
	go fg.serve()
	sinks := Sinks{
		Console: func(s string) { console = append(console, s) },
		Target:  func(s string) { target = append(target, s) },
		Log:     func(s string) { log = append(log, s) },
	}
	ip := New(st, sinks, 0)
	if err := ip.ExecRun(); err != nil {
		t.Fatalf("ExecRun: %v", err)
	}
	if len(console) != 1 || console[0] != "console line\n" {
		t.Fatalf("console = %v", console)
	}
	if len(target) != 1 || target[0] != "target line\n" {
		t.Fatalf("target = %v", target)
	}
	if len(log) != 1 || log[0] != "log line\n" {
		t.Fatalf("log = %v", log)
	}
}

func TestWaitForStopReturnsExecAsyncEvent(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`1^running`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	if err := ip.ExecRun(); err != nil {
		t.Fatalf("ExecRun: %v", err)
	}
	// The stop event arrives with no following prompt, as real gdb emits
	// asynchronous notifications.
	go io.WriteString(fg.outW, `*stopped,reason="breakpoint-hit",bkptno="3",thread-id="1",frame={func="f",args=[],file="t.c",line="21"}`+"\n")
	rec, err := ip.WaitForStop()
	if err != nil {
		t.Fatalf("WaitForStop: %v", err)
	}
	ev, err := mi2.DecodeStopEvent(rec.Results)
	if err != nil {
		t.Fatalf("DecodeStopEvent: %v", err)
	}
	if ev.Reason != "breakpoint-hit" || ev.BkptNo != 3 {
		t.Fatalf("got %#v", ev)
	}
}

func TestAsyncEventsDuringCommandAreQueuedInOrder(t *testing.T) {
	fg, st := newFakeGdb(t)
	fg.scripts = [][]string{
		{`*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={func="a",args=[],file="t.c",line="1"}`, `*stopped,reason="breakpoint-hit",bkptno="2",thread-id="1",frame={func="b",args=[],file="t.c",line="2"}`, `1^running`, `(gdb)`},
	}
	go fg.serve()
	ip := New(st, Sinks{}, 0)
	if err := ip.ExecContinue(); err != nil {
		t.Fatalf("ExecContinue: %v", err)
	}
	rec, err := ip.WaitForStop()
	if err != nil {
		t.Fatalf("WaitForStop: %v", err)
	}
	ev, _ := mi2.DecodeStopEvent(rec.Results)
	if ev.Reason != "breakpoint-hit" || ev.BkptNo != 1 {
		t.Fatalf("got %#v", ev)
	}
	rec, err = ip.WaitForStop()
	if err != nil {
		t.Fatalf("second WaitForStop: %v", err)
	}
	ev, _ = mi2.DecodeStopEvent(rec.Results)
	if ev.Reason != "breakpoint-hit" || ev.BkptNo != 2 {
		t.Fatalf("second event: got %#v", ev)
	}
}

func TestReadHeaderExtractsVersion(t *testing.T) {
	fg, st := newFakeGdb(t)
	banner := strings.Join([]string{
		`GNU gdb (GDB) 12.1`,
		`This GDB was configured as "x86_64-pc-linux-gnu".`,
		`(gdb)`,
	}, "\n") + "\n"
	go io.WriteString(fg.outW, banner)
	ip := New(st, Sinks{}, 0)
	info, err := ip.ReadHeader()
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if info.Version != "12.1" {
		t.Fatalf("got version %q", info.Version)
	}
	if info.Config != "x86_64-pc-linux-gnu" {
		t.Fatalf("got config %q", info.Config)
	}
}
