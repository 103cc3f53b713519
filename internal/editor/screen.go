package editor

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/stlalpha/nilo/internal/terminal"
)

// emptyRowMarker is drawn in the first column of screen rows past the end of
// the buffer.
const emptyRowMarker = '~'

// Scroll recomputes the cursor's render column and moves the viewport the
// minimum distance needed to keep the cursor on screen.
func Scroll(st *State) {
	st.Cursor.RenderCol = 0
	if st.Cursor.Row < st.Buffer.RowCount() {
		st.Cursor.RenderCol = st.Buffer.ContentToRenderColumn(st.Cursor.Row, st.Cursor.Col)
	}

	if st.Cursor.Row < st.View.RowOffset {
		st.View.RowOffset = st.Cursor.Row
	} else if st.Cursor.Row >= st.View.RowOffset+st.Screen.Rows {
		st.View.RowOffset = st.Cursor.Row - st.Screen.Rows + 1
	}

	if st.Cursor.RenderCol < st.View.ColOffset {
		st.View.ColOffset = st.Cursor.RenderCol
	} else if st.Cursor.RenderCol >= st.View.ColOffset+st.Screen.Cols {
		st.View.ColOffset = st.Cursor.RenderCol - st.Screen.Cols + 1
	}
}

// Renderer draws full frames of the viewport. A frame is assembled in memory
// and handed to the terminal in one Write so it never shows half drawn.
type Renderer struct {
	out     io.Writer
	welcome string
	frame   bytes.Buffer
	line    []byte
}

// NewRenderer creates a renderer writing to out. welcome is centered on an
// empty buffer's screen.
func NewRenderer(out io.Writer, welcome string) *Renderer {
	return &Renderer{out: out, welcome: welcome}
}

// SetWelcome replaces the welcome banner for later frames.
func (r *Renderer) SetWelcome(msg string) {
	r.welcome = msg
}

// Refresh scrolls the viewport to the cursor and redraws the whole screen.
func (r *Renderer) Refresh(st *State) error {
	Scroll(st)
	r.frame.Reset()
	r.drawFrame(st)
	if _, err := r.out.Write(r.frame.Bytes()); err != nil {
		return &terminal.Error{Op: "write", Err: err}
	}
	return nil
}

// Frame returns the bytes of the last frame drawn.
func (r *Renderer) Frame() []byte {
	return r.frame.Bytes()
}

func (r *Renderer) drawFrame(st *State) {
	r.frame.WriteString(terminal.HideCursor)
	r.frame.WriteString(terminal.CursorHome)

	r.drawRows(st)

	r.frame.Write(terminal.AppendMoveCursor(nil,
		st.Cursor.Row-st.View.RowOffset+1,
		st.Cursor.RenderCol-st.View.ColOffset+1))
	r.frame.WriteString(terminal.ShowCursor)
}

func (r *Renderer) drawRows(st *State) {
	rows, cols := st.Screen.Rows, st.Screen.Cols
	numRows := st.Buffer.RowCount()

	for y := 0; y < rows; y++ {
		fileRow := y + st.View.RowOffset
		switch {
		case fileRow < numRows:
			r.line = st.Buffer.AppendVisible(r.line[:0], fileRow, st.View.ColOffset, cols)
			r.frame.Write(r.line)
		case numRows == 0 && y == rows/3:
			r.drawWelcome(cols)
		default:
			r.frame.WriteByte(emptyRowMarker)
		}

		r.frame.WriteString(terminal.ClearLine)
		// No newline after the last row, or the terminal would scroll.
		if y < rows-1 {
			r.frame.WriteString("\r\n")
		}
	}
}

// visibleSlice returns the part of render that falls in [offset, offset+width).
func visibleSlice(render []byte, offset, width int) []byte {
	n := len(render) - offset
	if n <= 0 {
		return nil
	}
	if n > width {
		n = width
	}
	return render[offset : offset+n]
}

func (r *Renderer) drawWelcome(cols int) {
	msg := runewidth.Truncate(r.welcome, cols, "")
	padding := (cols - runewidth.StringWidth(msg)) / 2
	if padding > 0 {
		r.frame.WriteByte(emptyRowMarker)
		padding--
	}
	r.frame.WriteString(strings.Repeat(" ", padding))
	r.frame.WriteString(msg)
}
