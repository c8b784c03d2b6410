// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package engine

import "syscall"

// setpgidAttr places the debugger child in its own process group so
// killGroup's negative-pid signal reaches it and any target it spawned.
func setpgidAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
