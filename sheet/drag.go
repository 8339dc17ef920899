package sheet

import (
	"math"
	"time"
)

// Phase is a gesture lifecycle phase. Every gesture delivers one
// PhaseBegan, zero or more PhaseChanged, and exactly one terminal
// phase.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
	PhaseFailed
)

// Point is a position or velocity in host points.
type Point struct {
	X, Y float64
}

// Sample is one pointer observation forwarded by the host gesture
// layer. Velocity is in points per second and is read on PhaseEnded.
type Sample struct {
	Phase       Phase
	Translation Point
	Velocity    Point
}

// Frame is the live geometry to render for the current sample. Offset
// is a rigid shift of the whole sheet past its anchored edge; it is
// nonzero only while rubber-banding below the minimum snap height.
type Frame struct {
	Height float64
	Offset float64
}

// OutcomeKind classifies a terminal drag decision.
type OutcomeKind int

const (
	// OutcomeRevert returns the sheet to the committed size after a
	// cancelled or failed gesture.
	OutcomeRevert OutcomeKind = iota
	// OutcomeSnap settles the sheet at Target.
	OutcomeSnap
	// OutcomeDismiss closes the sheet.
	OutcomeDismiss
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSnap:
		return "snap"
	case OutcomeDismiss:
		return "dismiss"
	default:
		return "revert"
	}
}

// Outcome is the terminal decision for one gesture, or for a
// programmatic resize. The shell animates the sheet to Height over
// Duration, then calls Controller.CommitSettle.
type Outcome struct {
	Kind     OutcomeKind
	Target   Size
	Height   float64
	Duration time.Duration
}

// Config tunes the release math. Zero fields take the defaults, which
// assume point units comparable to mobile display points.
type Config struct {
	// VelocityScale scales the release velocity into the projected
	// final height.
	VelocityScale float64
	// HardDismiss is the closing speed, in points per second, beyond
	// which a release dismisses regardless of position.
	HardDismiss float64
	// DurationScale converts scaled release velocity into extra
	// animation seconds.
	DurationScale float64
	// MinDuration and MaxDuration bound every animation.
	MinDuration time.Duration
	MaxDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.VelocityScale == 0 {
		c.VelocityScale = 0.2
	}
	if c.HardDismiss == 0 {
		c.HardDismiss = 500
	}
	if c.DurationScale == 0 {
		c.DurationScale = 0.0002
	}
	if c.MinDuration == 0 {
		c.MinDuration = 200 * time.Millisecond
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = 500 * time.Millisecond
	}
	return c
}

// State is the committed sheet geometry. Preferred is the last size the
// sheet snapped to or was resized to; Actual is the height on screen,
// kept current by the shell through SyncHeight so a drag beginning
// mid-animation anchors where the sheet actually is.
type State struct {
	Preferred Size
	Actual    float64
}

// session is the per-gesture state. It exists only between PhaseBegan
// and the terminal phase and is never shared across gestures.
type session struct {
	anchorHeight float64
	anchorY      float64
	delta        float64 // last growth delta; sign picks the snap scan direction
	frame        Frame
}

// Controller is the drag state machine. It consumes pointer samples and
// produces a live Frame per sample while dragging and a single Outcome
// on the terminal phase. At most one session exists at a time; a began
// sample while already dragging is ignored without resetting the
// anchor.
type Controller struct {
	cfg     Config
	metrics Metrics
	snaps   *SnapSet
	state   State
	session *session
}

// NewController builds a controller with the given snap sizes resolved
// against m. An empty size list falls back to Half. The sheet starts
// committed at the smallest snap entry.
func NewController(m Metrics, cfg Config, sizes ...Size) *Controller {
	snaps := NewSnapSet(m, sizes...)
	return &Controller{
		cfg:     cfg.withDefaults(),
		metrics: m,
		snaps:   snaps,
		state: State{
			Preferred: snaps.Smallest(),
			Actual:    snaps.Min(),
		},
	}
}

// Dragging reports whether a gesture is in flight.
func (c *Controller) Dragging() bool { return c.session != nil }

// State returns the committed geometry.
func (c *Controller) State() State { return c.state }

// Snaps returns the active snap set.
func (c *Controller) Snaps() *SnapSet { return c.snaps }

// Metrics returns the geometry the controller currently resolves
// against.
func (c *Controller) Metrics() Metrics { return c.metrics }

// SetMetrics re-resolves the snap set against new host geometry.
func (c *Controller) SetMetrics(m Metrics) {
	c.metrics = m
	c.snaps.Reresolve(m)
}

// SyncHeight records the height currently on screen. The shell calls it
// on every animation tick; it is ignored while a drag session owns the
// geometry.
func (c *Controller) SyncHeight(h float64) {
	if c.session == nil {
		c.state.Actual = h
	}
}

// CommitSettle finalizes an outcome once its animation has run,
// locking the settled height in. Dismiss outcomes commit nothing.
func (c *Controller) CommitSettle(o Outcome) {
	if o.Kind == OutcomeDismiss {
		return
	}
	c.state.Actual = o.Height
}

// Update advances the state machine with one sample. frame is non-nil
// for began and changed samples of a live gesture; outcome is non-nil
// exactly once, on the terminal phase. Samples that violate the state
// machine (changed while idle, began while dragging) are no-ops.
func (c *Controller) Update(s Sample) (frame *Frame, outcome *Outcome) {
	switch s.Phase {
	case PhaseBegan:
		if c.session != nil {
			return nil, nil
		}
		c.session = &session{
			anchorHeight: c.state.Actual,
			anchorY:      s.Translation.Y,
			frame:        Frame{Height: c.state.Actual},
		}
		f := c.session.frame
		return &f, nil

	case PhaseChanged:
		if c.session == nil {
			return nil, nil
		}
		c.session.delta = c.metrics.Edge.growth(c.session.anchorY, s.Translation.Y)
		c.session.frame = c.trackFrame(c.session.anchorHeight + c.session.delta)
		f := c.session.frame
		return &f, nil

	case PhaseEnded:
		if c.session == nil {
			return nil, nil
		}
		sess := c.session
		c.session = nil
		return nil, c.release(sess, s.Velocity)

	case PhaseCancelled, PhaseFailed:
		if c.session == nil {
			return nil, nil
		}
		c.session = nil
		return nil, &Outcome{
			Kind:     OutcomeRevert,
			Target:   c.state.Preferred,
			Height:   c.state.Preferred.Resolve(c.metrics),
			Duration: c.cfg.MinDuration,
		}
	}
	return nil, nil
}

// trackFrame clamps a raw height into a renderable frame. Heights below
// the floor freeze at the floor and surface the excess as a rigid
// offset past the edge; heights above the ceiling hard-clamp with no
// offset.
func (c *Controller) trackFrame(h float64) Frame {
	minH := math.Min(c.session.anchorHeight, c.snaps.Min())
	maxH := math.Max(c.session.anchorHeight, c.snaps.Max())
	switch {
	case h < minH:
		return Frame{Height: minH, Offset: minH - h}
	case h > maxH:
		return Frame{Height: maxH}
	default:
		return Frame{Height: h}
	}
}

// release turns the final sample of a gesture into a terminal decision.
func (c *Controller) release(sess *session, v Point) *Outcome {
	minH := math.Min(sess.anchorHeight, c.snaps.Min())
	rate := c.metrics.Edge.growthRate(v.Y)
	velocityTerm := c.cfg.VelocityScale * rate

	// Project where the sheet is heading: the raw (unclamped below)
	// height plus the scaled release velocity.
	finalHeight := sess.frame.Height - sess.frame.Offset + velocityTerm
	if -rate > c.cfg.HardDismiss {
		// Fast fling toward the edge closes no matter where the sheet
		// was released.
		finalHeight = -1
	}

	duration := c.settleDuration(velocityTerm)
	if finalHeight < minH/2 {
		return &Outcome{Kind: OutcomeDismiss, Duration: duration}
	}

	size, height := c.pickSnap(sess.delta > 0, finalHeight)
	c.state.Preferred = size
	return &Outcome{Kind: OutcomeSnap, Target: size, Height: height, Duration: duration}
}

// pickSnap selects the snap entry for a projected height. A growing
// gesture takes the nearest entry at or above the projection, falling
// back to the largest; a shrinking gesture takes the largest entry
// strictly below it, falling back to the smallest. Ties resolve by scan
// order, never by distance.
func (c *Controller) pickSnap(growing bool, finalHeight float64) (Size, float64) {
	entries := c.snaps.entries
	if growing {
		for _, e := range entries {
			if e.height >= finalHeight {
				return e.size, e.height
			}
		}
		last := entries[len(entries)-1]
		return last.size, last.height
	}
	pick := entries[0]
	for _, e := range entries {
		if finalHeight > e.height {
			pick = e
		}
	}
	return pick.size, pick.height
}

func (c *Controller) settleDuration(velocityTerm float64) time.Duration {
	secs := math.Abs(velocityTerm)*c.cfg.DurationScale + c.cfg.MinDuration.Seconds()
	d := time.Duration(secs * float64(time.Second))
	if d > c.cfg.MaxDuration {
		d = c.cfg.MaxDuration
	}
	if d < c.cfg.MinDuration {
		d = c.cfg.MinDuration
	}
	return d
}

// SetSnapSizes replaces the snap set and resizes the sheet to the new
// smallest entry. An empty list is ignored and the previous set kept.
// Rejected while a drag is active. The returned outcome has zero
// duration when animated is false.
func (c *Controller) SetSnapSizes(animated bool, sizes ...Size) (Outcome, bool) {
	if c.session != nil {
		return Outcome{}, false
	}
	if !c.snaps.Replace(c.metrics, sizes...) {
		return Outcome{}, false
	}
	return c.resize(c.snaps.Smallest(), animated)
}

// ResizeTo commits a size directly, bypassing gesture logic. Rejected
// while a drag is active.
func (c *Controller) ResizeTo(size Size, animated bool) (Outcome, bool) {
	if c.session != nil {
		return Outcome{}, false
	}
	return c.resize(size, animated)
}

// Dismiss produces a programmatic dismiss decision, as from a barrier
// tap. Rejected while a drag is active.
func (c *Controller) Dismiss() (Outcome, bool) {
	if c.session != nil {
		return Outcome{}, false
	}
	return Outcome{Kind: OutcomeDismiss, Duration: c.cfg.MinDuration}, true
}

func (c *Controller) resize(size Size, animated bool) (Outcome, bool) {
	c.state.Preferred = size
	o := Outcome{
		Kind:     OutcomeSnap,
		Target:   size,
		Height:   size.Resolve(c.metrics),
		Duration: c.cfg.MinDuration,
	}
	if !animated {
		o.Duration = 0
	}
	return o, true
}
