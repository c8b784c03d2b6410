// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The mi2run tool drives a debugger's MI2 interpreter against a target
// program, installing a fixed set of built-in user breakpoints and
// reporting the target's exit code. Run "mi2run -h" for its flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
