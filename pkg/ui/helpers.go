package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate cuts s to maxWidth terminal cells, ending with an ellipsis when
// anything was dropped. Wide runes count as two cells.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const suffix = "…"
	if maxWidth == 1 {
		return suffix
	}
	return runewidth.Truncate(s, maxWidth-1, "") + suffix
}

// spread places left and right at the edges of a line width cells wide,
// truncating right first.
func spread(left, right string, width int) string {
	lw := runewidth.StringWidth(left)
	if lw >= width {
		return truncate(left, width)
	}
	room := width - lw - 1
	right = truncate(right, room)
	gap := width - lw - runewidth.StringWidth(right)
	return left + strings.Repeat(" ", max(gap, 1)) + right
}
