// Package clock provides the time source for timer-driven code (tweens,
// debouncers, the stats poller) so tests can run it without sleeping.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source vitrina's timer-driven code takes.
type Clock = clockwork.Clock

// Timer is the handle returned by Clock.AfterFunc.
type Timer = clockwork.Timer

// Real returns the wall clock.
func Real() Clock { return clockwork.NewRealClock() }

// SteppingClock is a fake clock whose time also moves when someone
// waits on it: After(d) advances the clock by d and returns an
// already-fired channel, so frame loops finish instantly and
// deterministically. AfterFunc callbacks fire on their own goroutine
// once Advance passes their deadline.
type SteppingClock struct {
	*clockwork.FakeClock
}

// Stepping returns a SteppingClock set to initial.
func Stepping(initial time.Time) *SteppingClock {
	return &SteppingClock{FakeClock: clockwork.NewFakeClockAt(initial)}
}

// After advances the clock by d and returns a channel holding the new
// time.
func (c *SteppingClock) After(d time.Duration) <-chan time.Time {
	c.Advance(d)
	ch := make(chan time.Time, 1)
	ch <- c.Now()
	return ch
}
