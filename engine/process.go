// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"io"
	"os/exec"

	"golang.org/x/sys/unix"
)

// spawnedDebugger wraps the running debugger child, its pipes, and the
// process group it was placed in so the watchdog's kill path can reap a
// target that forked children of its own — mirroring the original's
// process-tree-aware terminate() while using golang.org/x/sys/unix's
// cross-platform process-group primitives instead of raw syscall numbers
// (SPEC_FULL.md §2).
type spawnedDebugger struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

func spawnDebugger(path string, args []string) (*spawnedDebugger, error) {
	cmd := exec.Command(path, args...)
	cmd.SysProcAttr = setpgidAttr()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &spawnedDebugger{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

// killGroup sends SIGKILL to the debugger's whole process group, so a
// target spawned under it is reaped too when the watchdog fires.
func (p *spawnedDebugger) killGroup() error {
	pid := p.cmd.Process.Pid
	if err := unix.Kill(-pid, unix.SIGKILL); err != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}

func (p *spawnedDebugger) wait() error {
	return p.cmd.Wait()
}
