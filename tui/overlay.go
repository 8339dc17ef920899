package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// composite splices the rendered sheet over the base view starting at
// the given row. Both strings are treated as line-based grids of the
// host size; sheet rows that fall outside the host (an offset shift
// past the edge) are skipped.
func composite(base, sheetView string, width, height, row int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := splitToLines(base, height)
	for i := range out {
		out[i] = padRightANSI(out[i], width)
	}
	for i, line := range strings.Split(sheetView, "\n") {
		r := row + i
		if r < 0 || r >= height {
			continue
		}
		out[r] = padRightANSI(line, width)
	}
	return strings.Join(out, "\n")
}

// splitToLines splits s on newlines, truncating or padding to exactly
// height entries.
func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// padRightANSI pads s with spaces so its visual width equals width,
// truncating ANSI-safely when it is wider.
func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
