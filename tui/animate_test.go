package tui

import (
	"testing"
	"time"

	"github.com/jask/teasheet/sheet"
)

func TestAnimationEasesTowardTarget(t *testing.T) {
	var a animation
	t0 := time.Now()
	a.begin(100, sheet.Outcome{Kind: sheet.OutcomeSnap, Height: 500, Duration: 400 * time.Millisecond}, t0)

	h, done := a.heightAt(t0)
	if done || h != 100 {
		t.Fatalf("start = (%g, %v), want (100, false)", h, done)
	}
	mid, done := a.heightAt(t0.Add(200 * time.Millisecond))
	if done || mid <= 100 || mid >= 500 {
		t.Fatalf("midpoint = (%g, %v), want strictly between 100 and 500", mid, done)
	}
	// Ease-out spends the back half slowly: past halfway by midpoint.
	if mid < 300 {
		t.Fatalf("midpoint = %g, want past the linear midpoint", mid)
	}
	h, done = a.heightAt(t0.Add(400 * time.Millisecond))
	if !done || h != 500 {
		t.Fatalf("end = (%g, %v), want (500, true)", h, done)
	}
}

func TestAnimationDismissTargetsZero(t *testing.T) {
	var a animation
	t0 := time.Now()
	a.begin(300, sheet.Outcome{Kind: sheet.OutcomeDismiss, Duration: 200 * time.Millisecond}, t0)
	h, done := a.heightAt(t0.Add(time.Second))
	if !done || h != 0 {
		t.Fatalf("dismiss end = (%g, %v), want (0, true)", h, done)
	}
}

func TestAnimationZeroDurationFinishesImmediately(t *testing.T) {
	var a animation
	t0 := time.Now()
	a.begin(300, sheet.Outcome{Kind: sheet.OutcomeSnap, Height: 160}, t0)
	h, done := a.heightAt(t0)
	if !done || h != 160 {
		t.Fatalf("zero-duration = (%g, %v), want (160, true)", h, done)
	}
}

func TestEaseOutCubicBounds(t *testing.T) {
	if got := easeOutCubic(0); got != 0 {
		t.Fatalf("ease(0) = %g", got)
	}
	if got := easeOutCubic(1); got != 1 {
		t.Fatalf("ease(1) = %g", got)
	}
	prev := 0.0
	for x := 0.1; x <= 1.0; x += 0.1 {
		got := easeOutCubic(x)
		if got < prev {
			t.Fatalf("ease not monotonic at %g", x)
		}
		prev = got
	}
}
