package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// clamp restricts a value to a range
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Width returns the number of terminal cells s occupies. Styled strings
// are measured without their escape sequences.
func Width(s string) int {
	if strings.ContainsRune(s, '\x1b') {
		return lipgloss.Width(s)
	}
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most width cells, ending with an ellipsis when
// something was removed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s on the right to width cells
func PadRight(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft pads s on the left to width cells
func PadLeft(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// PadCenter pads s on both sides to width cells
func PadCenter(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Fit truncates and pads s to exactly width cells
func Fit(s string, width int, pos lipgloss.Position) string {
	s = Truncate(s, width)
	switch pos {
	case lipgloss.Right:
		return PadLeft(s, width)
	case lipgloss.Center:
		return PadCenter(s, width)
	default:
		return PadRight(s, width)
	}
}
