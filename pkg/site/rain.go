package site

import (
	"math/rand"
	"strings"
	"time"
)

const (
	// RainColumns is the number of falling digit strips across the hero.
	RainColumns = 20
	// DefaultRainInterval is the time between rain steps.
	DefaultRainInterval = 120 * time.Millisecond
)

// rainDrop is one strip of binary digits. The strip's lower edge sits at row
// (tick-delay)/period modulo cycle, counted from the top of the backdrop.
type rainDrop struct {
	digits []byte
	delay  int
	period int
	gap    int
}

// Rain is the falling binary-digit backdrop behind the hero. Columns are
// spread evenly across the width; each has its own start delay and speed.
type Rain struct {
	drops []rainDrop
	tick  int
}

// NewRain builds the backdrop from seed. The same seed gives the same rain.
func NewRain(seed int64) *Rain {
	rng := rand.New(rand.NewSource(seed))
	r := &Rain{drops: make([]rainDrop, RainColumns)}
	for i := range r.drops {
		d := rainDrop{
			digits: make([]byte, 4+rng.Intn(9)),
			delay:  rng.Intn(40),
			period: 1 + rng.Intn(3),
			gap:    rng.Intn(6),
		}
		for j := range d.digits {
			d.digits[j] = byte('0' + rng.Intn(2))
		}
		r.drops[i] = d
	}
	return r
}

// Step advances the rain by one tick.
func (r *Rain) Step() {
	r.tick++
}

// Ticks is the number of steps taken so far.
func (r *Rain) Ticks() int {
	return r.tick
}

// Lines draws the backdrop as height rows of exactly width ASCII bytes, with
// spaces where no digit falls.
func (r *Rain) Lines(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", width))
	}
	for i, d := range r.drops {
		x := i * width / len(r.drops)
		if x >= width {
			continue
		}
		for y := range height {
			if c, ok := d.at(r.tick, y, height); ok {
				grid[y][x] = c
			}
		}
	}
	out := make([]string, height)
	for y, row := range grid {
		out[y] = string(row)
	}
	return out
}

// at returns the digit of d shown at row y, if any.
func (d rainDrop) at(tick, y, height int) (byte, bool) {
	if tick < d.delay {
		return 0, false
	}
	cycle := len(d.digits) + height + d.gap
	bottom := ((tick - d.delay) / d.period) % cycle
	top := bottom - len(d.digits)
	if y < top || y >= bottom {
		return 0, false
	}
	return d.digits[y-top], true
}
