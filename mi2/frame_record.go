// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import "strconv"

// FrameArg is one {name, value} pair from a frame's args list.
type FrameArg struct {
	Name, Value string
}

// FrameRecord is the decoded form of a "frame={...}" tuple, per spec.md §3.
type FrameRecord struct {
	Level      int
	HasLevel   bool
	Func       string
	HasFunc    bool
	Addr       string
	HasAddr    bool
	File       string
	HasFile    bool
	Line       int
	HasLine    bool
	From       string
	HasFrom    bool
	Args       []FrameArg
	HasArgs    bool
}

// DecodeFrame builds a FrameRecord from a frame tuple.
func DecodeFrame(t Tuple) (FrameRecord, error) {
	var f FrameRecord
	if s, err := t.GetString("level"); err == nil {
		n, err := strconv.Atoi(s)
		if err != nil {
			return f, &ParseError{Expected: "frame level", Line: s}
		}
		f.Level, f.HasLevel = n, true
	}
	if s, err := t.GetString("func"); err == nil {
		f.Func, f.HasFunc = s, true
	}
	if s, err := t.GetString("addr"); err == nil {
		f.Addr, f.HasAddr = s, true
	}
	if s, err := t.GetString("file"); err == nil {
		f.File, f.HasFile = s, true
	}
	if s, err := t.GetString("line"); err == nil {
		n, _ := strconv.Atoi(s)
		f.Line, f.HasLine = n, true
	}
	if s, err := t.GetString("from"); err == nil {
		f.From, f.HasFrom = s, true
	}
	if v, ok := t.Get("args"); ok {
		list, err := v.AsList()
		if err != nil {
			return f, err
		}
		// args=[{name="p",value="0x0"},...] parses as a ValueList of
		// anonymous tuples, not a ResultList: the first byte of each
		// element is '{', so parseResult's leading parseIdent fails
		// and parseList falls back to parseValue. An empty args list
		// parses as an empty ValueList too, so Len()==0 is handled by
		// the same loop rather than a separate case.
		values, err := list.Values()
		if err != nil {
			return f, err
		}
		for _, elem := range values {
			argTuple, err := elem.AsTuple()
			if err != nil {
				continue
			}
			name, _ := argTuple.GetString("name")
			value, _ := argTuple.GetString("value")
			f.Args = append(f.Args, FrameArg{Name: name, Value: value})
		}
		f.HasArgs = true
	}
	return f, nil
}

// StopEvent is the decoded form of an async "*stopped,..." record, per
// spec.md §3's "Stop event" data type.
type StopEvent struct {
	Reason   string
	BkptNo   int
	HasBkptNo bool
	ThreadID string
	HasThreadID bool
	Frame    FrameRecord
	HasFrame bool
	ExitCode int
	HasExitCode bool
	Raw      Tuple
}

// DecodeStopEvent builds a StopEvent from the results of a *stopped async
// record.
func DecodeStopEvent(results Tuple) (StopEvent, error) {
	ev := StopEvent{Raw: results}
	ev.Reason, _ = results.GetString("reason")
	if s, err := results.GetString("bkptno"); err == nil {
		n, err := strconv.Atoi(s)
		if err != nil {
			return ev, &ParseError{Expected: "bkptno", Line: s}
		}
		ev.BkptNo, ev.HasBkptNo = n, true
	}
	if s, err := results.GetString("thread-id"); err == nil {
		ev.ThreadID, ev.HasThreadID = s, true
	}
	if v, ok := results.Get("frame"); ok {
		t, err := v.AsTuple()
		if err != nil {
			return ev, err
		}
		fr, err := DecodeFrame(t)
		if err != nil {
			return ev, err
		}
		ev.Frame, ev.HasFrame = fr, true
	}
	if s, err := results.GetString("exit-code"); err == nil {
		// MI encodes this in octal, e.g. "014" for 12, per spec.md §4.5.
		n, err := strconv.ParseInt(s, 8, 32)
		if err != nil {
			return ev, &ParseError{Expected: "octal exit-code", Line: s}
		}
		ev.ExitCode, ev.HasExitCode = int(n), true
	}
	return ev, nil
}
