// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"strconv"

	"github.com/mgordner/mi2run/mi2"
)

// StackInfoFrame issues "-stack-info-frame" and decodes the returned frame.
func (ip *Interp) StackInfoFrame() (mi2.FrameRecord, error) {
	rec, err := ip.exec("stack-info-frame", "", mi2.ClassDone)
	if err != nil {
		return mi2.FrameRecord{}, err
	}
	v, ok := rec.Get("frame")
	if !ok {
		return mi2.FrameRecord{}, &mi2.MissingValue{Key: "frame"}
	}
	t, err := v.AsTuple()
	if err != nil {
		return mi2.FrameRecord{}, err
	}
	return mi2.DecodeFrame(t)
}

// StackListFrames issues "-stack-list-frames" and decodes the backtrace.
func (ip *Interp) StackListFrames() ([]mi2.FrameRecord, error) {
	rec, err := ip.exec("stack-list-frames", "", mi2.ClassDone)
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get("stack")
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
	var frames []mi2.FrameRecord
	for _, r := range results {
		if r.Key != "frame" {
			continue
		}
		t, err := r.Value.AsTuple()
		if err != nil {
			continue
		}
		fr, err := mi2.DecodeFrame(t)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

// StackListArguments issues "-stack-list-arguments showValues [low high]".
func (ip *Interp) StackListArguments(showValues int, low, high int, hasRange bool) (mi2.Record, error) {
	args := fmt.Sprintf(" %d", showValues)
	if hasRange {
		args += fmt.Sprintf(" %d %d", low, high)
	}
	return ip.exec("stack-list-arguments", args, mi2.ClassDone)
}

// StackListLocals issues "-stack-list-locals showValues".
func (ip *Interp) StackListLocals(showValues int) (mi2.Record, error) {
	return ip.exec("stack-list-locals", fmt.Sprintf(" %d", showValues), mi2.ClassDone)
}

// StackListVariables issues "-stack-list-variables showValues".
func (ip *Interp) StackListVariables(showValues int) (mi2.Record, error) {
	return ip.exec("stack-list-variables", fmt.Sprintf(" %d", showValues), mi2.ClassDone)
}

// StackSelectFrame issues "-stack-select-frame n" (frame.select translates
// to this, per spec.md §4.4).
func (ip *Interp) StackSelectFrame(n int) error {
	_, err := ip.exec("stack-select-frame", " "+strconv.Itoa(n), mi2.ClassDone)
	return err
}

// InfoDepth issues "-stack-info-depth" and returns the reported depth.
func (ip *Interp) InfoDepth() (int, error) {
	rec, err := ip.exec("stack-info-depth", "", mi2.ClassDone)
	if err != nil {
		return 0, err
	}
	s, err := rec.Results.GetString("depth")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}
