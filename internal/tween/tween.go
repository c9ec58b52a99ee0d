// Package tween moves an integer value from a start to an end value over
// a fixed duration, reporting every rounded intermediate step.
package tween

import (
	"context"
	"math"
	"time"

	"github.com/emprendelab/vitrina/internal/clock"
)

// DefaultFrame is the interval between intermediate updates, roughly
// one display frame at 60Hz.
const DefaultFrame = 16 * time.Millisecond

// Tweener animates a value from `from` to `to` over d, calling update
// with each new rounded value. The final call always carries exactly
// `to`. Implementations return ctx.Err() when cancelled mid-flight.
type Tweener interface {
	Tween(ctx context.Context, from, to int, d time.Duration, update func(int)) error
}

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// Linear is constant-speed progress.
func Linear(p float64) float64 { return p }

// EaseOutCubic decelerates toward the end value.
func EaseOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

// Stepper is a frame-stepped Tweener.
type Stepper struct {
	Clock clock.Clock
	Frame time.Duration
	Ease  Easing
}

// NewStepper returns a Stepper on the wall clock with the default frame
// interval and EaseOutCubic.
func NewStepper() *Stepper {
	return &Stepper{Clock: clock.Real(), Frame: DefaultFrame, Ease: EaseOutCubic}
}

// Tween implements Tweener. Consecutive duplicate values are not
// reported.
func (s *Stepper) Tween(ctx context.Context, from, to int, d time.Duration, update func(int)) error {
	if from == to {
		return nil
	}
	if d <= 0 {
		update(to)
		return nil
	}

	clk := s.Clock
	if clk == nil {
		clk = clock.Real()
	}
	frame := s.Frame
	if frame <= 0 {
		frame = DefaultFrame
	}
	ease := s.Ease
	if ease == nil {
		ease = Linear
	}

	start := clk.Now()
	last := from
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-clk.After(frame):
			p := float64(now.Sub(start)) / float64(d)
			if p >= 1 {
				if last != to {
					update(to)
				}
				return nil
			}
			v := Interpolate(from, to, ease(p))
			if v != last {
				update(v)
				last = v
			}
		}
	}
}

// Interpolate returns the value at eased progress p between from and
// to, rounded to the nearest integer.
func Interpolate(from, to int, p float64) int {
	return int(math.Round(float64(from) + float64(to-from)*p))
}

// Instant is a Tweener that jumps straight to the end value.
type Instant struct{}

func (Instant) Tween(_ context.Context, from, to int, _ time.Duration, update func(int)) error {
	if from != to {
		update(to)
	}
	return nil
}
