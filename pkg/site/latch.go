// Package site holds the page around the circuit: static content, the
// scroll-triggered fade-in latch, the hero counters and the contact form.
package site

// DefaultThreshold is the visible fraction that trips a Latch.
const DefaultThreshold = 0.1

// Latch flips to visible the first time enough of a section is on screen and
// stays there.
type Latch struct {
	threshold float64
	visible   bool
}

// NewLatch returns a latch tripping at threshold. Values outside (0,1] use
// DefaultThreshold.
func NewLatch(threshold float64) *Latch {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Latch{threshold: threshold}
}

// Observe reports a visibility ratio and returns whether the latch is set.
func (l *Latch) Observe(ratio float64) bool {
	if !l.visible && ratio > 0 && ratio >= l.threshold {
		l.visible = true
	}
	return l.visible
}

// Visible reports whether the latch has tripped.
func (l *Latch) Visible() bool {
	return l.visible
}

// VisibleRatio returns the fraction of a block of height lines starting at
// top that falls inside the window [viewTop, viewTop+viewHeight).
func VisibleRatio(top, height, viewTop, viewHeight int) float64 {
	if height <= 0 || viewHeight <= 0 {
		return 0
	}
	lo := max(top, viewTop)
	hi := min(top+height, viewTop+viewHeight)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(height)
}
