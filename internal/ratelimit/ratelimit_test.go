package ratelimit

import (
	"testing"
	"time"

	"github.com/emprendelab/vitrina/internal/clock"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDebounceCollapsesBurst(t *testing.T) {
	clk := clock.Stepping(epoch)
	runs := make(chan struct{}, 4)
	d := Debounce(clk, 300*time.Millisecond, func() { runs <- struct{}{} })

	d.Call()
	clk.Advance(100 * time.Millisecond)
	d.Call()
	clk.Advance(100 * time.Millisecond)
	d.Call()

	clk.Advance(299 * time.Millisecond)
	expectNoRun(t, runs, "before the quiet period ended")

	clk.Advance(time.Millisecond)
	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("debounced function did not run after the quiet period")
	}

	clk.Advance(time.Second)
	expectNoRun(t, runs, "again without a call")
}

func TestDebounceStop(t *testing.T) {
	clk := clock.Stepping(epoch)
	runs := make(chan struct{}, 1)
	d := Debounce(clk, 50*time.Millisecond, func() { runs <- struct{}{} })

	d.Call()
	d.Stop()
	d.Call()
	clk.Advance(time.Second)

	expectNoRun(t, runs, "after Stop")
}

func expectNoRun(t *testing.T, runs <-chan struct{}, when string) {
	t.Helper()
	select {
	case <-runs:
		t.Errorf("debounced function ran %s", when)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestThrottleDropsWithinWindow(t *testing.T) {
	clk := clock.Stepping(epoch)
	runs := 0
	th := Throttle(clk, 16*time.Millisecond, func() { runs++ })

	if !th.Call() {
		t.Fatal("first call should run")
	}
	clk.Advance(10 * time.Millisecond)
	if th.Call() {
		t.Error("call inside the window should be dropped")
	}
	clk.Advance(6 * time.Millisecond)
	if !th.Call() {
		t.Error("call at the window boundary should run")
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestThrottleStop(t *testing.T) {
	clk := clock.Stepping(epoch)
	runs := 0
	th := Throttle(clk, 16*time.Millisecond, func() { runs++ })

	th.Call()
	th.Stop()
	clk.Advance(time.Second)
	if th.Call() {
		t.Error("call after Stop should be dropped")
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}
