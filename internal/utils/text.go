package utils

import "github.com/mattn/go-runewidth"

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width cells. Wider strings are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
