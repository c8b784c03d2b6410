// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestSendWritesLine(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, strings.NewReader(""), nil, nil)
	if err := s.Send("1-break-insert main"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if buf.String() != "1-break-insert main\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestNextLineStripsTerminatorAndDetectsPrompt(t *testing.T) {
	s := New(io.Discard, strings.NewReader("1^done\n(gdb)\n"), nil, nil)
	line, err := s.NextLine()
	if err != nil || line != "1^done" {
		t.Fatalf("got %q, %v", line, err)
	}
	line, err = s.NextLine()
	if err != nil || !IsPrompt(line) {
		t.Fatalf("got %q, %v", line, err)
	}
}

func TestNextLineEOFIsDebuggerGone(t *testing.T) {
	s := New(io.Discard, strings.NewReader(""), nil, nil)
	_, err := s.NextLine()
	if err != ErrDebuggerGone {
		t.Fatalf("got %v", err)
	}
}

func TestSendAfterCloseIsIoBroken(t *testing.T) {
	pr, pw := io.Pipe()
	pr.Close()
	s := New(pw, strings.NewReader(""), nil, nil)
	if err := s.Send("x"); err == nil {
		t.Fatal("want error")
	}
	if err := s.Send("x"); err != ErrIoBroken {
		t.Fatalf("got %v", err)
	}
}

func TestStderrDrainedToSink(t *testing.T) {
	sink := make(chan string, 4)
	s := New(io.Discard, strings.NewReader(""), strings.NewReader("oops\nmore\n"), sink)
	s.Wait()
	close(sink)
	var got []string
	for l := range sink {
		got = append(got, l)
	}
	if len(got) != 2 || got[0] != "oops" || got[1] != "more" {
		t.Fatalf("got %v", got)
	}
}
