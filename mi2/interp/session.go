// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"regexp"

	"github.com/mgordner/mi2run/mi2"
)

// VersionInfo is the parsed form of the debugger's startup banner, read by
// ReadHeader before the first command is issued.
type VersionInfo struct {
	Version string
	Toolset string
	Config  string
}

var (
	versionRE = regexp.MustCompile(`GNU gdb(?: \(([^)]*)\))? (\S+)`)
	configRE  = regexp.MustCompile(`This GDB was configured as "([^"]*)"`)
)

// ReadHeader reads the lines of the debugger's startup banner (everything
// printed before the first "(gdb)" prompt), forwarding each to the console
// sink and extracting the
// version/toolset/config via regular expressions, per spec.md §4.5's
// Banner transition.
func (ip *Interp) ReadHeader() (VersionInfo, error) {
	defer ip.enter()()

	var info VersionInfo
	for {
		line, err := ip.stream.NextLine()
		if err != nil {
			return info, err
		}
		if line == "(gdb)" {
			return info, nil
		}
		if m := versionRE.FindStringSubmatch(line); m != nil {
			info.Toolset = m[1]
			info.Version = m[2]
		}
		if m := configRE.FindStringSubmatch(line); m != nil {
			info.Config = m[1]
		}
		ip.sinks.console(line)
	}
}

// GdbExit issues "-gdb-exit", asking the debugger to terminate cleanly.
func (ip *Interp) GdbExit() error {
	_, err := ip.exec("gdb-exit", "", mi2.ClassExit)
	return err
}

// Set issues "-gdb-set name value".
func (ip *Interp) Set(name, value string) error {
	_, err := ip.exec("gdb-set", fmt.Sprintf(" %s %s", name, value), mi2.ClassDone)
	return err
}

// Show issues "-gdb-show name" and returns the "value" field of the reply.
func (ip *Interp) Show(name string) (string, error) {
	rec, err := ip.exec("gdb-show", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("value")
}

// EnableTimings toggles "-enable-timings".
func (ip *Interp) EnableTimings(on bool) error {
	arg := "no"
	if on {
		arg = "yes"
	}
	_, err := ip.exec("enable-timings", " "+arg, mi2.ClassDone)
	return err
}

// Version issues "-gdb-version". The banner text gdb prints in reply
// arrives as console stream records and goes to the console sink; Version
// itself returns only the command's error.
func (ip *Interp) Version() error {
	_, err := ip.exec("gdb-version", "", mi2.ClassDone)
	return err
}

// FileExecAndSymbols issues "-file-exec-and-symbols path".
func (ip *Interp) FileExecAndSymbols(path string) error {
	_, err := ip.exec("file-exec-and-symbols", " "+path, mi2.ClassDone)
	return err
}

// InterpreterExec issues "-interpreter-exec lang command", used to feed
// console commands (e.g. init scripts) through the MI channel.
func (ip *Interp) InterpreterExec(lang, command string) error {
	_, err := ip.exec("interpreter-exec", fmt.Sprintf(" %s %q", lang, command), mi2.ClassDone)
	return err
}

// TargetSelectRemote issues "-target-select remote spec".
func (ip *Interp) TargetSelectRemote(spec string) error {
	_, err := ip.exec("target-select", " remote "+spec, mi2.ClassConnected)
	return err
}
