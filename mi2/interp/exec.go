// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"

	"github.com/mgordner/mi2run/mi2"
)

// ExecRun issues "-exec-run".
func (ip *Interp) ExecRun() error {
	_, err := ip.exec("exec-run", "", mi2.ClassRunning)
	return err
}

// ExecContinue issues "-exec-continue".
func (ip *Interp) ExecContinue() error {
	_, err := ip.exec("exec-continue", "", mi2.ClassRunning)
	return err
}

// ExecNext issues "-exec-next".
func (ip *Interp) ExecNext() error {
	_, err := ip.exec("exec-next", "", mi2.ClassRunning)
	return err
}

// ExecStep issues "-exec-step".
func (ip *Interp) ExecStep() error {
	_, err := ip.exec("exec-step", "", mi2.ClassRunning)
	return err
}

// ExecStepInstruction issues "-exec-step-instruction".
func (ip *Interp) ExecStepInstruction() error {
	_, err := ip.exec("exec-step-instruction", "", mi2.ClassRunning)
	return err
}

// ExecNextInstruction issues "-exec-next-instruction".
func (ip *Interp) ExecNextInstruction() error {
	_, err := ip.exec("exec-next-instruction", "", mi2.ClassRunning)
	return err
}

// ExecFinish issues "-exec-finish".
func (ip *Interp) ExecFinish() error {
	_, err := ip.exec("exec-finish", "", mi2.ClassRunning)
	return err
}

// ExecJump issues "-exec-jump location".
func (ip *Interp) ExecJump(location string) error {
	_, err := ip.exec("exec-jump", " "+location, mi2.ClassRunning)
	return err
}

// ExecUntil issues "-exec-until [location]".
func (ip *Interp) ExecUntil(location string) error {
	args := ""
	if location != "" {
		args = " " + location
	}
	_, err := ip.exec("exec-until", args, mi2.ClassRunning)
	return err
}

// ExecReturn issues "-exec-return [value]", forcing an early return from
// the current frame per spec.md §4.4 (frame.return_ translates to this).
func (ip *Interp) ExecReturn(value string) error {
	args := ""
	if value != "" {
		args = " " + value
	}
	_, err := ip.exec("exec-return", args, mi2.ClassDone)
	return err
}

// ExecInterrupt issues "-exec-interrupt".
func (ip *Interp) ExecInterrupt() error {
	_, err := ip.exec("exec-interrupt", "", mi2.ClassDone)
	return err
}

// ExecArguments issues "-exec-arguments args...".
func (ip *Interp) ExecArguments(args ...string) error {
	line := ""
	for _, a := range args {
		line += fmt.Sprintf(" %s", a)
	}
	_, err := ip.exec("exec-arguments", line, mi2.ClassDone)
	return err
}
