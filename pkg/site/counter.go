package site

import (
	"math"
	"time"
)

// DefaultCountDuration is how long a counter takes to reach its target.
const DefaultCountDuration = 2 * time.Second

// Counter counts from 0 to Target one step per Interval once started.
type Counter struct {
	target   int
	duration time.Duration
	value    int
	started  bool
}

// NewCounter creates a stopped counter. A non-positive duration uses
// DefaultCountDuration.
func NewCounter(target int, duration time.Duration) *Counter {
	if duration <= 0 {
		duration = DefaultCountDuration
	}
	return &Counter{target: target, duration: duration}
}

// Interval is the time between steps: |floor(duration/target)| in whole
// milliseconds, never below one millisecond.
func (c *Counter) Interval() time.Duration {
	if c.target == 0 {
		return c.duration
	}
	ms := math.Abs(math.Floor(float64(c.duration.Milliseconds()) / float64(c.target)))
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Start arms the counter. It returns false if it was already started.
func (c *Counter) Start() bool {
	if c.started {
		return false
	}
	c.started = true
	return true
}

// Started reports whether Start has been called.
func (c *Counter) Started() bool {
	return c.started
}

// Tick advances one step and reports whether more steps remain. Ticks before
// Start or after the target is reached do nothing.
func (c *Counter) Tick() bool {
	if !c.started || c.Done() {
		return false
	}
	c.value++
	return !c.Done()
}

// Value is the number currently displayed.
func (c *Counter) Value() int {
	return c.value
}

// Target is the final value.
func (c *Counter) Target() int {
	return c.target
}

// Done reports whether the counter has reached its target. Targets below one
// are done from the start.
func (c *Counter) Done() bool {
	return c.value >= c.target
}
