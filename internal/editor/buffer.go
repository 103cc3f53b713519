package editor

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultTabStop is the column multiple a tab advances to.
const DefaultTabStop = 8

// Row is one line of the document. content is authoritative; render is the
// content with tabs expanded and is rebuilt whenever content or the tab stop
// changes.
type Row struct {
	content []byte
	render  []byte
}

// Content returns the raw bytes of the row.
func (r *Row) Content() []byte { return r.content }

// Render returns the tab-expanded form of the row.
func (r *Row) Render() []byte { return r.render }

// Len returns the content length in bytes.
func (r *Row) Len() int { return len(r.content) }

func (r *Row) update(tabStop int) {
	tabs := bytes.Count(r.content, []byte{'\t'})
	render := make([]byte, 0, len(r.content)+tabs*(tabStop-1))
	for _, c := range r.content {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

// TextBuffer is the ordered, append-only list of rows being viewed. Content
// and render forms hold source bytes, one byte per screen cell; a buffer with
// a charmap translates bytes to UTF-8 only when they are drawn.
type TextBuffer struct {
	rows     []Row
	tabStop  int
	decoding *charmap.Charmap
}

// NewTextBuffer creates an empty buffer. A tab stop below 1 selects DefaultTabStop.
func NewTextBuffer(tabStop int) *TextBuffer {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &TextBuffer{tabStop: tabStop}
}

// AppendRow adds line as the last row. Trailing line terminators are dropped
// and the bytes are copied, so the caller may reuse line.
func (b *TextBuffer) AppendRow(line []byte) {
	line = bytes.TrimRight(line, "\r\n")
	row := Row{content: append([]byte(nil), line...)}
	row.update(b.tabStop)
	b.rows = append(b.rows, row)
}

// RowCount returns the number of rows.
func (b *TextBuffer) RowCount() int {
	return len(b.rows)
}

// Row returns row i, or nil when i is outside the buffer.
func (b *TextBuffer) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return &b.rows[i]
}

// RowLen returns the content length of row i, 0 past the last row.
func (b *TextBuffer) RowLen(i int) int {
	if row := b.Row(i); row != nil {
		return row.Len()
	}
	return 0
}

// RenderForm returns the cached render bytes of row i, nil past the last row.
func (b *TextBuffer) RenderForm(i int) []byte {
	if row := b.Row(i); row != nil {
		return row.render
	}
	return nil
}

// ContentToRenderColumn converts a byte offset in row i to the screen column
// it is drawn at. Offsets past the row end are treated as the row end.
func (b *TextBuffer) ContentToRenderColumn(i, col int) int {
	row := b.Row(i)
	if row == nil {
		return 0
	}
	if col > len(row.content) {
		col = len(row.content)
	}
	rx := 0
	for _, c := range row.content[:col] {
		if c == '\t' {
			rx += (b.tabStop - 1) - (rx % b.tabStop)
		}
		rx++
	}
	return rx
}

// TabStop returns the tab width used for rendering.
func (b *TextBuffer) TabStop() int {
	return b.tabStop
}

// SetCharmap sets the single-byte encoding the rows are stored in. nil means
// the bytes are written to the terminal unchanged.
func (b *TextBuffer) SetCharmap(cm *charmap.Charmap) {
	b.decoding = cm
}

// AppendVisible appends the render cells [offset, offset+width) of row i to
// dst, translated to UTF-8 when the buffer has a charmap.
func (b *TextBuffer) AppendVisible(dst []byte, i, offset, width int) []byte {
	cells := visibleSlice(b.RenderForm(i), offset, width)
	if b.decoding == nil {
		return append(dst, cells...)
	}
	for _, c := range cells {
		dst = utf8.AppendRune(dst, b.decoding.DecodeByte(c))
	}
	return dst
}

// SetTabStop changes the tab width and rebuilds every render form.
func (b *TextBuffer) SetTabStop(tabStop int) {
	if tabStop < 1 || tabStop == b.tabStop {
		return
	}
	b.tabStop = tabStop
	for i := range b.rows {
		b.rows[i].update(tabStop)
	}
}
