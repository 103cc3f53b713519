package terminal

import "strconv"

// VT100 control sequences written by the viewer.
const (
	ClearScreen         = "\x1b[2J"
	CursorHome          = "\x1b[H"
	HideCursor          = "\x1b[?25l"
	ShowCursor          = "\x1b[?25h"
	ClearLine           = "\x1b[K"
	QueryCursorPosition = "\x1b[6n"

	// CursorFarCorner pushes the cursor to the bottom-right corner. Terminals
	// clamp C and B at the screen edge, so the cursor lands on the last cell.
	CursorFarCorner = "\x1b[999C\x1b[999B"
)

// MoveCursor returns the sequence that moves the cursor to the 1-based row and column.
func MoveCursor(row, col int) string {
	return string(AppendMoveCursor(nil, row, col))
}

// AppendMoveCursor appends the cursor move sequence to dst.
func AppendMoveCursor(dst []byte, row, col int) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}
