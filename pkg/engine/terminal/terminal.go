// Package terminal reports the size of the controlling terminal so text
// renderings of a grid can be clipped to what fits on screen.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	return SizeOf(os.Stdout)
}

// SizeOf returns the size of the terminal attached to f, or the defaults when f
// is not a terminal (a pipe, a file, a test buffer).
func SizeOf(f *os.File) (width, height int) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Viewport returns how many grid rows and columns fit on a terminal of the given
// size when every cell is cellWidth characters wide and reserved lines are kept
// for surrounding text. The result never exceeds the grid and is at least 1x1.
func Viewport(width, height, cellWidth, reserved, rows, cols int) (visibleRows, visibleCols int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	visibleRows = min(rows, max(height-reserved, 1))
	visibleCols = min(cols, max(width/cellWidth, 1))
	return visibleRows, visibleCols
}
