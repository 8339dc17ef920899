package sheet

import (
	"fmt"
	"math"
)

// Edge is the host edge the sheet is anchored to. Drag math inside the
// controller is written in "growth" coordinates; the edge is applied
// once at the input boundary to convert pointer samples, so the rest of
// the engine never branches on polarity.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeTop
)

func (e Edge) String() string {
	if e == EdgeTop {
		return "top"
	}
	return "bottom"
}

// growth converts a pointer y position into sheet growth relative to
// the anchor sample. Dragging away from the anchored edge grows the
// sheet.
func (e Edge) growth(anchorY, y float64) float64 {
	if e == EdgeTop {
		return y - anchorY
	}
	return anchorY - y
}

// growthRate converts a pointer y velocity into a growth rate, positive
// while the sheet is being opened further.
func (e Edge) growthRate(vy float64) float64 {
	if e == EdgeTop {
		return vy
	}
	return -vy
}

// edgeMargin is the safety gap, in points, kept clear at the far edge
// regardless of the requested size.
const edgeMargin = 20.0

// Metrics is the host geometry sizes resolve against. The shell
// re-supplies it whenever the host is resized or its insets change.
type Metrics struct {
	// AvailableExtent is the full height of the host, in points.
	AvailableExtent float64
	// TopInset and BottomInset are safe-area style reservations at the
	// respective host edges.
	TopInset    float64
	BottomInset float64
	// ChromeHeight is the fixed handle/header height added on top of
	// proportional sizes.
	ChromeHeight float64
	Edge         Edge
}

// farInset is the inset at the edge the sheet grows toward.
func (m Metrics) farInset() float64 {
	if m.Edge == EdgeTop {
		return m.BottomInset
	}
	return m.TopInset
}

// limit is the largest height any size may resolve to.
func (m Metrics) limit() float64 {
	return math.Max(0, m.AvailableExtent-m.farInset()-edgeMargin)
}

type sizeKind int

const (
	sizeFixed sizeKind = iota
	sizeProportional
	sizeFull
)

// Size is a target sheet extent: a fixed point length, a fraction of
// the available extent, or the full available extent. A Size is a
// value; it resolves to a concrete height only against Metrics.
type Size struct {
	kind  sizeKind
	value float64
}

// Fixed is a size of the given height in points, clamped to what the
// host can show.
func Fixed(points float64) Size {
	return Size{kind: sizeFixed, value: points}
}

// Proportional is a size covering the given fraction of the available
// extent, plus the chrome height.
func Proportional(fraction float64) Size {
	return Size{kind: sizeProportional, value: fraction}
}

// Full is the largest presentable size.
func Full() Size {
	return Size{kind: sizeFull}
}

// Half covers half the available extent and is the default snap size.
var Half = Proportional(0.5)

// Resolve returns the concrete height for s under m. Heights are never
// negative, even for zero or negative available extents.
func (s Size) Resolve(m Metrics) float64 {
	var h float64
	switch s.kind {
	case sizeFixed:
		h = math.Min(s.value, m.limit())
	case sizeProportional:
		h = s.value*m.AvailableExtent + m.ChromeHeight
	case sizeFull:
		h = m.limit()
	}
	return math.Max(0, h)
}

func (s Size) String() string {
	switch s.kind {
	case sizeFixed:
		return fmt.Sprintf("fixed(%g)", s.value)
	case sizeProportional:
		return fmt.Sprintf("%g%%", s.value*100)
	default:
		return "full"
	}
}
