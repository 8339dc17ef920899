package tui

import (
	"time"

	"github.com/jask/teasheet/sheet"
)

// trackWindow bounds how much motion history feeds the velocity
// estimate. Terminals deliver discrete cell events with no velocity
// attached, so the shell differentiates positions over a short sliding
// window instead.
const trackWindow = 120 * time.Millisecond

type motionSample struct {
	at  time.Time
	pos sheet.Point
}

// velocityTracker estimates pointer velocity from recent motion
// samples.
type velocityTracker struct {
	samples []motionSample
}

func (t *velocityTracker) reset() {
	t.samples = t.samples[:0]
}

func (t *velocityTracker) observe(at time.Time, p sheet.Point) {
	t.samples = append(t.samples, motionSample{at: at, pos: p})
	cut := 0
	for cut < len(t.samples)-1 && at.Sub(t.samples[cut].at) > trackWindow {
		cut++
	}
	t.samples = t.samples[cut:]
}

// velocity returns points per second over the retained window, or zero
// when fewer than two samples are held.
func (t *velocityTracker) velocity() sheet.Point {
	if len(t.samples) < 2 {
		return sheet.Point{}
	}
	first := t.samples[0]
	last := t.samples[len(t.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return sheet.Point{}
	}
	return sheet.Point{
		X: (last.pos.X - first.pos.X) / dt,
		Y: (last.pos.Y - first.pos.Y) / dt,
	}
}
