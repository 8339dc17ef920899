package tui

import (
	"time"

	"github.com/jask/teasheet/sheet"
)

// animation eases the sheet height toward an outcome's target. The
// shell owns the animation entirely; the engine only supplies targets
// and durations.
type animation struct {
	active  bool
	from    float64
	outcome sheet.Outcome
	start   time.Time
}

func (a *animation) begin(from float64, o sheet.Outcome, now time.Time) {
	a.active = true
	a.from = from
	a.outcome = o
	a.start = now
}

func (a *animation) stop() {
	a.active = false
}

// target is the height the animation lands on; dismissals collapse to
// zero.
func (a *animation) target() float64 {
	if a.outcome.Kind == sheet.OutcomeDismiss {
		return 0
	}
	return a.outcome.Height
}

// heightAt returns the eased height at now and whether the animation
// has finished.
func (a *animation) heightAt(now time.Time) (float64, bool) {
	if !a.active || a.outcome.Duration <= 0 {
		return a.target(), true
	}
	t := now.Sub(a.start).Seconds() / a.outcome.Duration.Seconds()
	if t >= 1 {
		return a.target(), true
	}
	if t < 0 {
		t = 0
	}
	return a.from + (a.target()-a.from)*easeOutCubic(t), false
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
