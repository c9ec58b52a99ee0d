// Package ratelimit wraps functions so that bursts of calls collapse
// into fewer invocations.
package ratelimit

import (
	"sync"
	"time"

	"github.com/emprendelab/vitrina/internal/clock"
)

// Debounced runs its function once the wait interval has passed without
// another Call.
type Debounced struct {
	mu    sync.Mutex
	clk   clock.Clock
	wait  time.Duration
	fn    func()
	timer clock.Timer
	ended bool
}

// Debounce returns a Debounced wrapper around fn. fn runs on its own
// goroutine.
func Debounce(clk clock.Clock, wait time.Duration, fn func()) *Debounced {
	if clk == nil {
		clk = clock.Real()
	}
	return &Debounced{clk: clk, wait: wait, fn: fn}
}

// Call (re)starts the wait interval.
func (d *Debounced) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ended {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clk.AfterFunc(d.wait, d.fn)
}

// Stop cancels a pending invocation and ignores later calls.
func (d *Debounced) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ended = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttled runs its function at most once per limit. Calls inside the
// window are dropped, not deferred.
type Throttled struct {
	mu     sync.Mutex
	clk    clock.Clock
	limit  time.Duration
	fn     func()
	last   time.Time
	primed bool
	ended  bool
}

// Throttle returns a Throttled wrapper around fn.
func Throttle(clk clock.Clock, limit time.Duration, fn func()) *Throttled {
	if clk == nil {
		clk = clock.Real()
	}
	return &Throttled{clk: clk, limit: limit, fn: fn}
}

// Call runs fn synchronously unless the previous run was less than
// limit ago. It reports whether fn ran.
func (t *Throttled) Call() bool {
	t.mu.Lock()
	if t.ended {
		t.mu.Unlock()
		return false
	}
	now := t.clk.Now()
	if t.primed && now.Sub(t.last) < t.limit {
		t.mu.Unlock()
		return false
	}
	t.last = now
	t.primed = true
	t.mu.Unlock()

	t.fn()
	return true
}

// Stop drops every later call.
func (t *Throttled) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ended = true
}
