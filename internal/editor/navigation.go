package editor

// Navigate applies a navigation key to the cursor. Keys that do not move the
// cursor, including KeyDelete, leave the state untouched.
func Navigate(st *State, key Key) {
	switch key {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		moveCursor(st, key)

	case KeyPageUp, KeyPageDown:
		// Snap to the viewport edge first, then step a screen's worth of rows.
		step := KeyArrowUp
		if key == KeyPageUp {
			st.Cursor.Row = st.View.RowOffset
		} else {
			step = KeyArrowDown
			st.Cursor.Row = min(st.View.RowOffset+st.Screen.Rows-1, st.Buffer.RowCount())
		}
		for i := 0; i < st.Screen.Rows; i++ {
			moveCursor(st, step)
		}

	case KeyHome:
		st.Cursor.Col = 0

	case KeyEnd:
		st.Cursor.Col = st.currentRowLen()

	case KeyDelete:
		// Deleting is not supported by the viewer.
	}

	clampColumn(st)
}

// moveCursor moves the cursor one step, wrapping between rows horizontally.
func moveCursor(st *State, key Key) {
	c := &st.Cursor
	switch key {
	case KeyArrowUp:
		if c.Row > 0 {
			c.Row--
		}
	case KeyArrowDown:
		if c.Row < st.Buffer.RowCount() {
			c.Row++
		}
	case KeyArrowLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Row > 0 {
			c.Row--
			c.Col = st.Buffer.RowLen(c.Row)
		}
	case KeyArrowRight:
		if c.Col < st.currentRowLen() {
			c.Col++
		} else if c.Row < st.Buffer.RowCount() {
			c.Row++
			c.Col = 0
		}
	}
	clampColumn(st)
}

// clampColumn keeps the cursor within its row; the row length wins over the
// column the cursor had before.
func clampColumn(st *State) {
	if n := st.currentRowLen(); st.Cursor.Col > n {
		st.Cursor.Col = n
	}
}
