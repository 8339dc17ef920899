package sheet

import "math"

// Rect is an axis-aligned region in host points.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ScrollState describes the nested scrollable region at gesture
// recognition time.
type ScrollState struct {
	// Offset is the distance from the region's scroll origin.
	Offset float64
	Bounds Rect
}

// Activation is the input to ShouldActivate for one candidate gesture.
type Activation struct {
	Touch    Point
	Velocity Point
	Scroll   ScrollState
	Edge     Edge
	// Height is the current sheet height, MaxSnap the largest snap
	// height, and FullHeight the resolved Full() height.
	Height     float64
	MaxSnap    float64
	FullHeight float64
}

// ShouldActivate decides, once per candidate gesture and before any
// samples are processed, whether the sheet drag owns the touch or the
// nested scroll region keeps it. The decision does not change while the
// gesture is underway.
//
// Touches outside the scroll region always belong to the sheet. Inside
// it, the region keeps the gesture unless it sits at its scroll origin
// and the motion is dominantly vertical; even then, a gesture in the
// growing direction only activates while the sheet can still grow, so
// the region's own overscroll handles the rest.
func ShouldActivate(a Activation) bool {
	if !a.Scroll.Bounds.Contains(a.Touch) {
		return true
	}
	if a.Scroll.Offset != 0 {
		return false
	}
	if math.Abs(a.Velocity.Y) <= math.Abs(a.Velocity.X) {
		return false
	}
	if a.Edge.growthRate(a.Velocity.Y) < 0 {
		return true
	}
	return a.MaxSnap > a.Height && a.Height < a.FullHeight
}
