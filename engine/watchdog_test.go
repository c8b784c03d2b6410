// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchdogFiresAfterInterval(t *testing.T) {
	var fired int32
	w := newWatchdog(20*time.Millisecond, func() { atomic.StoreInt32(&fired, 1) })
	defer w.stop()
	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("watchdog did not fire")
	}
}

func TestWatchdogKickExtendsDeadline(t *testing.T) {
	var fired int32
	w := newWatchdog(60*time.Millisecond, func() { atomic.StoreInt32(&fired, 1) })
	defer w.stop()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		w.kick()
		time.Sleep(20 * time.Millisecond)
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatalf("watchdog fired despite repeated kicks")
	}
}

func TestWatchdogStopReportsWhetherFired(t *testing.T) {
	w := newWatchdog(time.Hour, nil)
	if w.stop() {
		t.Fatalf("stop() reported fired=true before any expiry")
	}
}

func TestWatchdogHasFiredWithoutDisarming(t *testing.T) {
	w := newWatchdog(20*time.Millisecond, func() {})
	defer w.stop()
	time.Sleep(100 * time.Millisecond)
	if !w.hasFired() {
		t.Fatalf("hasFired() = false, want true after expiry")
	}
	// Calling hasFired again must not disarm or otherwise change state.
	if !w.hasFired() {
		t.Fatalf("hasFired() = false on second call")
	}
}
