// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import "strconv"

// Breakpoint is the decoded form of a "bkpt={...}" tuple from a
// -break-insert / -break-info / -break-list reply, per spec.md §3.
type Breakpoint struct {
	Number      int
	Type        string
	Disp        string
	Addr        string
	Enabled     bool
	EnableCount int
	HitCount    int

	Func     string
	HasFunc  bool
	Filename string
	Fullname string
	Line     int
	HasLine  bool
	At       string
	HasAt    bool
	Pending  string
	HasPending bool
	Thread   string
	HasThread bool
	Cond     string
	HasCond  bool
	OriginalLocation string
	HasOriginalLocation bool
	What     string
	HasWhat  bool
}

// DecodeBreakpoint builds a Breakpoint from a bkpt tuple.
func DecodeBreakpoint(t Tuple) (Breakpoint, error) {
	var bp Breakpoint
	numStr, err := t.GetString("number")
	if err != nil {
		return bp, err
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return bp, &ParseError{Expected: "breakpoint number", Line: numStr}
	}
	bp.Number = n

	bp.Type, _ = t.GetString("type")
	bp.Disp, _ = t.GetString("disp")
	bp.Addr, _ = t.GetString("addr")
	enabled, _ := t.GetString("enabled")
	bp.Enabled = enabled == "y"
	if v, ok := t.Get("enable-count"); ok {
		s, _ := v.AsString()
		bp.EnableCount, _ = strconv.Atoi(s)
	}
	if v, ok := t.Get("hit-count"); ok {
		s, _ := v.AsString()
		bp.HitCount, _ = strconv.Atoi(s)
	}

	if s, err := t.GetString("func"); err == nil {
		bp.Func, bp.HasFunc = s, true
	}
	if s, err := t.GetString("filename"); err == nil {
		bp.Filename = s
	} else {
		bp.Filename, _ = t.GetString("file")
	}
	bp.Fullname, _ = t.GetString("fullname")
	if s, err := t.GetString("line"); err == nil {
		bp.Line, _ = strconv.Atoi(s)
		bp.HasLine = true
	}
	if s, err := t.GetString("at"); err == nil {
		bp.At, bp.HasAt = s, true
	}
	if s, err := t.GetString("pending"); err == nil {
		bp.Pending, bp.HasPending = s, true
	}
	if s, err := t.GetString("thread"); err == nil {
		bp.Thread, bp.HasThread = s, true
	}
	if s, err := t.GetString("cond"); err == nil {
		bp.Cond, bp.HasCond = s, true
	}
	if s, err := t.GetString("original-location"); err == nil {
		bp.OriginalLocation, bp.HasOriginalLocation = s, true
	}
	if s, err := t.GetString("what"); err == nil {
		bp.What, bp.HasWhat = s, true
	}
	return bp, nil
}

// DecodeBreakpoints decodes a "bkpt=[{...},{...}]" multi-location reply,
// where the results list holds either repeated "bkpt" keys (for the
// canonical multi-location form) or a single one.
func DecodeBreakpoints(results Tuple) ([]Breakpoint, error) {
	var out []Breakpoint
	for _, r := range results {
		if r.Key != "bkpt" && r.Key != "breakpoint" {
			continue
		}
		switch r.Value.Kind {
		case KindTuple:
			t, _ := r.Value.AsTuple()
			bp, err := DecodeBreakpoint(t)
			if err != nil {
				return nil, err
			}
			out = append(out, bp)
		case KindList:
			l, _ := r.Value.AsList()
			if l.Kind == ResultList {
				rs, _ := l.Results()
				bp, err := DecodeBreakpoint(Tuple(rs))
				if err != nil {
					return nil, err
				}
				out = append(out, bp)
			} else {
				vs, _ := l.Values()
				for _, v := range vs {
					t, err := v.AsTuple()
					if err != nil {
						continue
					}
					bp, err := DecodeBreakpoint(t)
					if err != nil {
						return nil, err
					}
					out = append(out, bp)
				}
			}
		}
	}
	return out, nil
}
