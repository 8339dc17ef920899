package sheet

import (
	"testing"
	"time"
)

// bottomController starts a bottom-edge sheet on an 820-point host, so
// Full() resolves to 800 and Fixed(300) stays at 300.
func bottomController(sizes ...Size) *Controller {
	return NewController(Metrics{AvailableExtent: 820}, Config{}, sizes...)
}

func began(y float64) Sample {
	return Sample{Phase: PhaseBegan, Translation: Point{Y: y}}
}

func changed(y float64) Sample {
	return Sample{Phase: PhaseChanged, Translation: Point{Y: y}}
}

func ended(y, vy float64) Sample {
	return Sample{Phase: PhaseEnded, Translation: Point{Y: y}, Velocity: Point{Y: vy}}
}

func TestDragTracksLiveHeight(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	if f, _ := c.Update(began(500)); f == nil || f.Height != 300 {
		t.Fatalf("began frame = %+v, want height 300", f)
	}
	f, o := c.Update(changed(100))
	if o != nil {
		t.Fatalf("changed produced outcome %+v", o)
	}
	if f.Height != 700 || f.Offset != 0 {
		t.Fatalf("frame = %+v, want height 700 offset 0", f)
	}
}

func TestGrowingReleaseSnapsToLargerSize(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(100))
	_, o := c.Update(ended(100, 0))
	if o == nil || o.Kind != OutcomeSnap {
		t.Fatalf("outcome = %+v, want snap", o)
	}
	if o.Target != Full() || o.Height != 800 {
		t.Fatalf("snap target = %s at %g, want full at 800", o.Target, o.Height)
	}
	if c.State().Preferred != Full() {
		t.Fatalf("preferred not committed at decision time: %s", c.State().Preferred)
	}
	// The settled height commits only once the animation finishes.
	if c.State().Actual != 300 {
		t.Fatalf("actual committed early: %g", c.State().Actual)
	}
	c.CommitSettle(*o)
	if c.State().Actual != 800 {
		t.Fatalf("actual after settle = %g, want 800", c.State().Actual)
	}
}

func TestShrinkingReleaseSnapsBelow(t *testing.T) {
	c := bottomController(Fixed(300), Fixed(500), Full())
	o, ok := c.ResizeTo(Full(), false)
	if !ok {
		t.Fatalf("resize rejected")
	}
	c.CommitSettle(o)
	c.Update(began(100))
	c.Update(changed(200)) // height 700
	_, out := c.Update(ended(200, 0))
	if out.Kind != OutcomeSnap || out.Target != Fixed(500) {
		t.Fatalf("outcome = %+v, want snap to fixed(500)", out)
	}
}

func TestReleaseAtExactSnapHeightSettlesThere(t *testing.T) {
	// A zero-velocity release projected exactly onto a middle entry
	// settles on that entry via the scan rule, not nearest-by-distance.
	c := bottomController(Fixed(300), Fixed(500), Full())
	c.Update(began(700))
	c.Update(changed(500)) // height exactly 500
	_, o := c.Update(ended(500, 0))
	if o == nil || o.Kind != OutcomeSnap {
		t.Fatalf("outcome = %+v, want snap", o)
	}
	if o.Target != Fixed(500) || o.Height != 500 {
		t.Fatalf("snap target = %s at %g, want fixed(500) at 500", o.Target, o.Height)
	}
}

func TestVelocityProjectsFinalHeight(t *testing.T) {
	// Same release position, different fling speeds, different targets.
	c := bottomController(Fixed(300), Fixed(500), Full())
	c.Update(began(500))
	c.Update(changed(350)) // height 450, growing
	_, o := c.Update(ended(350, 0))
	if o.Target != Fixed(500) {
		t.Fatalf("slow release target = %s, want fixed(500)", o.Target)
	}

	c2 := bottomController(Fixed(300), Fixed(500), Full())
	c2.Update(began(500))
	c2.Update(changed(350))
	_, o2 := c2.Update(ended(350, -800)) // fast upward fling: +160 points
	if o2.Target != Full() {
		t.Fatalf("fling release target = %s, want full", o2.Target)
	}
}

func TestOverscrollBelowMinimumProducesOffset(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	f, _ := c.Update(changed(560)) // raw height 240
	if f.Height != 300 {
		t.Fatalf("height = %g, want pinned at 300", f.Height)
	}
	if f.Offset != 60 {
		t.Fatalf("offset = %g, want 60", f.Offset)
	}
}

func TestOverscrollAboveMaximumHardClamps(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(900))
	f, _ := c.Update(changed(0)) // raw height 1200
	if f.Height != 800 || f.Offset != 0 {
		t.Fatalf("frame = %+v, want height 800 offset 0", f)
	}
}

func TestDismissThresholdIsStrict(t *testing.T) {
	// minH/2 = 150: exactly 150 snaps, just below dismisses.
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(650)) // raw 150, rubber-banded
	_, o := c.Update(ended(650, 0))
	if o.Kind != OutcomeSnap || o.Target != Fixed(300) {
		t.Fatalf("release at exactly minH/2 = %+v, want snap to fixed(300)", o)
	}

	c2 := bottomController(Fixed(300), Full())
	c2.Update(began(500))
	c2.Update(changed(651)) // raw 149
	_, o2 := c2.Update(ended(651, 0))
	if o2.Kind != OutcomeDismiss {
		t.Fatalf("release below minH/2 = %+v, want dismiss", o2)
	}
}

func TestHardDismissOverridesPosition(t *testing.T) {
	c := bottomController(Fixed(300), Fixed(600))
	o, _ := c.ResizeTo(Fixed(400), false)
	c.CommitSettle(o)

	c.Update(began(0))
	c.Update(changed(50)) // height 350, well above the dismiss threshold
	_, out := c.Update(ended(50, 600))
	if out.Kind != OutcomeDismiss {
		t.Fatalf("downward fling over threshold = %+v, want dismiss", out)
	}

	// The same release under the velocity threshold snaps instead.
	c2 := bottomController(Fixed(300), Fixed(600))
	o2, _ := c2.ResizeTo(Fixed(400), false)
	c2.CommitSettle(o2)
	c2.Update(began(0))
	c2.Update(changed(50))
	_, out2 := c2.Update(ended(50, 400))
	if out2.Kind != OutcomeSnap || out2.Target != Fixed(300) {
		t.Fatalf("slow downward release = %+v, want snap to fixed(300)", out2)
	}
}

func TestSettleDurationScalesAndCaps(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(300))
	_, o := c.Update(ended(300, -800))
	if o.Duration <= 200*time.Millisecond || o.Duration >= 500*time.Millisecond {
		t.Fatalf("duration = %v, want between the bounds", o.Duration)
	}

	c2 := bottomController(Fixed(300), Full())
	c2.Update(began(500))
	c2.Update(changed(300))
	_, o2 := c2.Update(ended(300, -10000))
	if o2.Duration != 500*time.Millisecond {
		t.Fatalf("duration = %v, want capped at 500ms", o2.Duration)
	}
}

func TestCancelRevertsToCommittedHeight(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(100)) // dragged out to 700
	_, o := c.Update(Sample{Phase: PhaseCancelled})
	if o == nil || o.Kind != OutcomeRevert {
		t.Fatalf("outcome = %+v, want revert", o)
	}
	if o.Height != 300 {
		t.Fatalf("revert height = %g, want the committed 300, never an intermediate", o.Height)
	}
	if c.State().Preferred != Fixed(300) {
		t.Fatalf("cancel mutated preferred size: %s", c.State().Preferred)
	}
}

func TestFailedGestureRevertsLikeCancel(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(250))
	_, o := c.Update(Sample{Phase: PhaseFailed})
	if o == nil || o.Kind != OutcomeRevert || o.Height != 300 {
		t.Fatalf("outcome = %+v, want revert to 300", o)
	}
}

func TestBeganWhileDraggingKeepsAnchor(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(400))
	if f, o := c.Update(began(0)); f != nil || o != nil {
		t.Fatalf("second began must be a no-op, got %+v %+v", f, o)
	}
	f, _ := c.Update(changed(300))
	if f.Height != 500 {
		t.Fatalf("height = %g, want 500 from the original anchor", f.Height)
	}
}

func TestSamplesWhileIdleAreNoops(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	for _, s := range []Sample{changed(100), ended(100, 0), {Phase: PhaseCancelled}, {Phase: PhaseFailed}} {
		if f, o := c.Update(s); f != nil || o != nil {
			t.Fatalf("idle sample phase %d produced output %+v %+v", s.Phase, f, o)
		}
	}
}

func TestProgrammaticCallsRejectedWhileDragging(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	if _, ok := c.ResizeTo(Full(), true); ok {
		t.Fatalf("resize accepted during drag")
	}
	if _, ok := c.SetSnapSizes(true, Fixed(100)); ok {
		t.Fatalf("snap replacement accepted during drag")
	}
	if _, ok := c.Dismiss(); ok {
		t.Fatalf("dismiss accepted during drag")
	}
}

func TestSetSnapSizesResizesToSmallest(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	o, ok := c.SetSnapSizes(true, Full(), Fixed(200))
	if !ok {
		t.Fatalf("replacement rejected")
	}
	if o.Kind != OutcomeSnap || o.Target != Fixed(200) || o.Height != 200 {
		t.Fatalf("outcome = %+v, want snap to fixed(200) at 200", o)
	}
	if o.Duration == 0 {
		t.Fatalf("animated replacement should carry a duration")
	}

	o2, _ := c.SetSnapSizes(false, Fixed(250))
	if o2.Duration != 0 {
		t.Fatalf("unanimated replacement duration = %v, want 0", o2.Duration)
	}
}

func TestSetSnapSizesEmptyIsIgnored(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	if _, ok := c.SetSnapSizes(true); ok {
		t.Fatalf("empty snap set accepted")
	}
	if c.Snaps().Min() != 300 || c.Snaps().Max() != 800 {
		t.Fatalf("snap set mutated: [%g, %g]", c.Snaps().Min(), c.Snaps().Max())
	}
}

func TestDragAnchorsAtLiveAnimatedHeight(t *testing.T) {
	// A drag beginning mid-animation anchors at the height on screen,
	// not the animation target.
	c := bottomController(Fixed(300), Full())
	c.SyncHeight(450)
	c.Update(began(500))
	f, _ := c.Update(changed(490))
	if f.Height != 460 {
		t.Fatalf("height = %g, want 460 anchored at the live 450", f.Height)
	}
}

func TestDismissCommitsNothing(t *testing.T) {
	c := bottomController(Fixed(300), Full())
	c.Update(began(500))
	c.Update(changed(700))
	_, o := c.Update(ended(700, 600))
	if o.Kind != OutcomeDismiss {
		t.Fatalf("outcome = %+v, want dismiss", o)
	}
	if c.State().Preferred != Fixed(300) || c.State().Actual != 300 {
		t.Fatalf("dismiss mutated state: %+v", c.State())
	}
	c.CommitSettle(*o)
	if c.State().Actual != 300 {
		t.Fatalf("dismiss settle mutated actual: %g", c.State().Actual)
	}
}

func TestTopEdgeMirrorsDragMath(t *testing.T) {
	c := NewController(Metrics{AvailableExtent: 820, Edge: EdgeTop}, Config{}, Fixed(300), Full())
	c.Update(began(100))
	f, _ := c.Update(changed(500)) // moving down grows a top sheet
	if f.Height != 700 {
		t.Fatalf("height = %g, want 700", f.Height)
	}
	// Closing direction for a top sheet is upward.
	_, o := c.Update(ended(500, -600))
	if o.Kind != OutcomeDismiss {
		t.Fatalf("upward fling on a top sheet = %+v, want dismiss", o)
	}
}
