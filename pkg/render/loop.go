package render

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is roughly one display refresh.
const DefaultFrameInterval = time.Second / 60

// Loop is a cooperative frame scheduler. Each tick it calls draw if the frame
// is dirty, or unconditionally when continuous. Nothing runs between ticks and
// draw must not block.
type Loop struct {
	interval   time.Duration
	continuous bool
	dirty      atomic.Bool
	frames     atomic.Int64
}

// NewLoop creates a loop ticking every interval. The first tick always draws.
func NewLoop(interval time.Duration, continuous bool) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	l := &Loop{interval: interval, continuous: continuous}
	l.dirty.Store(true)
	return l
}

// Invalidate marks the next frame dirty. Safe from any goroutine.
func (l *Loop) Invalidate() {
	l.dirty.Store(true)
}

// Frames returns how many frames have been drawn.
func (l *Loop) Frames() int64 {
	return l.frames.Load()
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Step runs one frame: draw is called if the frame is dirty or the loop is
// continuous. It reports whether draw ran. Hosts with their own tick source
// (a bubbletea program) call Step instead of Run.
func (l *Loop) Step(draw func() error) (bool, error) {
	if !l.dirty.Swap(false) && !l.continuous {
		return false, nil
	}
	if err := draw(); err != nil {
		return true, err
	}
	l.frames.Add(1)
	return true, nil
}

// Run ticks until ctx is done or draw fails. The ticker is released on return,
// so a cancelled context leaves no scheduled callbacks behind. A cancelled
// context is a normal stop and returns nil.
func (l *Loop) Run(ctx context.Context, draw func() error) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := l.Step(draw); err != nil {
				return err
			}
		}
	}
}
