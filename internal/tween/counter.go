// Package tween animates the displayed score toward its target.
package tween

import (
	"math"
	"time"
)

// FrameInterval is the tick rate the UI drives a Counter at.
const FrameInterval = time.Second / 60

// Counter eases an integer from the value currently shown to a target over a
// fixed duration. Every Retarget starts a new generation; callers drop frames
// carrying an older one.
type Counter struct {
	duration time.Duration
	from     int
	to       int
	shown    int
	start    time.Time
	running  bool
	gen      uint64
}

// NewCounter creates a Counter showing initial.
func NewCounter(duration time.Duration, initial int) *Counter {
	return &Counter{duration: duration, from: initial, to: initial, shown: initial}
}

// Retarget starts animating from the shown value toward target and returns the new generation.
func (c *Counter) Retarget(target int, now time.Time) uint64 {
	c.gen++
	c.from = c.shown
	c.to = target
	c.start = now
	c.running = c.from != c.to && c.duration > 0
	if !c.running {
		c.shown = target
	}
	return c.gen
}

// Step advances the animation to now and reports whether it has finished.
func (c *Counter) Step(now time.Time) (int, bool) {
	if !c.running {
		return c.shown, true
	}
	progress := float64(now.Sub(c.start)) / float64(c.duration)
	if progress >= 1 {
		c.shown = c.to
		c.running = false
		return c.shown, true
	}
	if progress < 0 {
		progress = 0
	}
	c.shown = int(math.Floor(float64(c.from) + float64(c.to-c.from)*progress))
	return c.shown, false
}

// Current reports whether gen is the latest generation.
func (c *Counter) Current(gen uint64) bool { return gen == c.gen }

func (c *Counter) Value() int    { return c.shown }
func (c *Counter) Target() int   { return c.to }
func (c *Counter) Running() bool { return c.running }
