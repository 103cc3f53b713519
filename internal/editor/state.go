package editor

// Cursor is the caret position in content space (byte offset Col into row
// Row) and the screen column RenderCol that Col maps to. Row may equal the
// row count, the position below the last row.
type Cursor struct {
	Col       int
	Row       int
	RenderCol int
}

// Viewport is the buffer coordinate shown in the top-left screen cell.
type Viewport struct {
	RowOffset int
	ColOffset int
}

// Size is a screen extent in character cells.
type Size struct {
	Rows int
	Cols int
}

// State is everything one editor loop owns: the buffer, the caret, the
// visible window and the screen size. It is only touched from the loop.
type State struct {
	Buffer *TextBuffer
	Cursor Cursor
	View   Viewport
	Screen Size
}

// NewState returns a state with the cursor and viewport at the origin.
func NewState(buf *TextBuffer, screen Size) *State {
	return &State{Buffer: buf, Screen: screen}
}

// currentRowLen is the length of the cursor's row, 0 past the last row.
func (st *State) currentRowLen() int {
	return st.Buffer.RowLen(st.Cursor.Row)
}
