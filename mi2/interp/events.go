// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "github.com/mgordner/mi2run/mi2"

// WaitForStop blocks until the next async "exec"-type record arrives and
// returns it, per spec.md §4.3's Events family. Any previously queued exec
// record (one that arrived while a command's reply was being collected)
// is returned first and in order, per spec.md §5's ordering guarantee.
func (ip *Interp) WaitForStop() (mi2.Record, error) {
	defer ip.enter()()

	if rec, ok := ip.popPendingExec(); ok {
		return rec, nil
	}
	for {
		rec, err := ip.readRecord()
		if err != nil {
			return mi2.Record{}, err
		}
		switch rec.Kind {
		case mi2.RecordStream:
			ip.dispatchStream(rec)
		case mi2.RecordAsync:
			if rec.AsyncKind == mi2.AsyncExec {
				return rec, nil
			}
			ip.sinks.async(rec)
		case mi2.RecordResult:
			return mi2.Record{}, &UnexpectedRecord{Detail: "result record arrived with no command outstanding"}
		case mi2.RecordPrompt:
			// gdb does not emit a prompt for spontaneous async output; a
			// stray one here is harmless to ignore.
		}
	}
}
