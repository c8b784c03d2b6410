// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/mgordner/mi2run/mi2"
)

// DataDisassemble issues "-data-disassemble -s start -e end -- mode".
func (ip *Interp) DataDisassemble(start, end string, mode int) (mi2.Record, error) {
	return ip.exec("data-disassemble", fmt.Sprintf(" -s %s -e %s -- %d", start, end, mode), mi2.ClassDone)
}

// DataEvaluateExpression issues "-data-evaluate-expression expr" and
// returns the raw "value" string (frame.Call and frame.Print both build
// on this; their post-parsing of the four result shapes lives in package
// frame per spec.md §4.4).
func (ip *Interp) DataEvaluateExpression(expr string) (string, error) {
	rec, err := ip.exec("data-evaluate-expression", fmt.Sprintf(" %q", expr), mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("value")
}

// DataListChangedRegisters issues "-data-list-changed-registers".
func (ip *Interp) DataListChangedRegisters() ([]int, error) {
	rec, err := ip.exec("data-list-changed-registers", "", mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("changed-registers")
	if !ok {
		return nil, nil
	}
	list, err := v.AsList()
	if err != nil {
		return nil, err
	}
	values, err := list.Values()
	if err != nil {
		return nil, nil
	}
	out := make([]int, 0, len(values))
	for _, val := range values {
		s, err := val.AsString()
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// DataListRegisterNames issues "-data-list-register-names".
func (ip *Interp) DataListRegisterNames() ([]string, error) {
	rec, err := ip.exec("data-list-register-names", "", mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("register-names")
	if !ok {
		return nil, nil
	}
	list, err := v.AsList()
	if err != nil {
		return nil, err
	}
	values, err := list.Values()
	if err != nil {
		return nil, nil
	}
	out := make([]string, len(values))
	for i, val := range values {
		out[i], _ = val.AsString()
	}
	return out, nil
}

// RegisterValue is one {number, value} entry of a data-list-register-values
// reply.
type RegisterValue struct {
	Number int
	Value  string
}

// DataListRegisterValues issues "-data-list-register-values format".
func (ip *Interp) DataListRegisterValues(format string) ([]RegisterValue, error) {
	rec, err := ip.exec("data-list-register-values", " "+format, mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("register-values")
	if !ok {
		return nil, nil
	}
	list, err := v.AsList()
	if err != nil {
		return nil, err
	}
	results, err := list.Results()
	if err != nil {
		return nil, nil
	}
	var out []RegisterValue
	for _, r := range results {
		t, err := r.Value.AsTuple()
		if err != nil {
			continue
		}
		numStr, _ := t.GetString("number")
		n, _ := strconv.Atoi(numStr)
		val, _ := t.GetString("value")
		out = append(out, RegisterValue{Number: n, Value: val})
	}
	return out, nil
}

// ReadMemory issues "-data-read-memory addr word-size rows cols" (the
// classic row/column form).
func (ip *Interp) ReadMemory(addr string, wordSize, rows, cols int) (mi2.Record, error) {
	return ip.exec("data-read-memory", fmt.Sprintf(" %s x %d %d %d", addr, wordSize, rows, cols), mi2.ClassDone)
}

// ReadMemoryBytes issues "-data-read-memory-bytes addr count" and decodes
// the hex-encoded "contents" field back into raw bytes.
func (ip *Interp) ReadMemoryBytes(addr string, count int) ([]byte, error) {
	rec, err := ip.exec("data-read-memory-bytes", fmt.Sprintf(" %s %d", addr, count), mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("memory")
	if !ok {
		return nil, &mi2.MissingValue{Key: "memory"}
	}
	list, err := v.AsList()
	if err != nil {
		return nil, err
	}
	values, err := list.Values()
	if err != nil || len(values) == 0 {
		return nil, &UnexpectedRecord{Detail: "data-read-memory-bytes returned no ranges"}
	}
	t, err := values[0].AsTuple()
	if err != nil {
		return nil, err
	}
	contents, err := t.GetString("contents")
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(contents)
}

// WriteMemoryBytes issues "-data-write-memory-bytes addr hexdata".
func (ip *Interp) WriteMemoryBytes(addr string, data []byte) error {
	_, err := ip.exec("data-write-memory-bytes", fmt.Sprintf(" %s %s", addr, hex.EncodeToString(data)), mi2.ClassDone)
	return err
}
