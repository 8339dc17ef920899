// Package sheet is the interactive core of a draggable, resizable
// sheet: size resolution, snap sets, the drag state machine, and
// gesture arbitration against a nested scrollable region.
//
// Everything in this package is a synchronous transform of input
// samples to output geometry and decisions. It owns no rendering
// surface and runs no goroutines; a presentation shell (see the tui
// package) forwards pointer samples in and applies frames and outcomes
// to the screen.
package sheet
