package main

// Cursor position and viewport scroll offsets. The viewport is derived state:
// it is recomputed from the cursor and the terminal size after every event.

import "github.com/mattn/go-runewidth"

// statusRows is the number of terminal rows reserved below the text area for
// the status line and the command line.
const statusRows = 2

// Cursor represents a position in the buffer.
type Cursor struct {
	Row int // Row index (0-based).
	Col int // Column index in runes (0-based); may equal the line length.
}

// Clamp pulls the cursor back inside the buffer.
func (c *Cursor) Clamp(b *TextBuffer) {
	c.Row, c.Col = b.clampPos(c.Row, c.Col)
}

// Move shifts the cursor by (dx, dy). The vertical part is applied first so a
// cursor at the end of a long line snaps to the end of a shorter target line.
func (c *Cursor) Move(b *TextBuffer, dx, dy int) {
	c.Clamp(b)
	if dy != 0 {
		c.Row = b.clampRow(c.Row + dy)
		c.Col = clampInt(c.Col, 0, b.LineLen(c.Row))
	}
	if dx != 0 {
		c.Col = clampInt(c.Col+dx, 0, b.LineLen(c.Row))
	}
}

// Viewport is the position of the top-left visible cell.
type Viewport struct {
	RowOffset int // First visible buffer row.
	ColOffset int // Terminal cells scrolled off the left edge.
}

// cellCol is the terminal cell where rune column col of line starts.
func cellCol(line []rune, col int) int {
	col = clampInt(col, 0, len(line))
	x := 0
	for _, r := range line[:col] {
		x += runewidth.RuneWidth(r)
	}
	return x
}

// visibleRows returns how many text rows fit on a terminal of the given
// height.
func visibleRows(height int) int {
	if rows := height - statusRows; rows > 0 {
		return rows
	}
	return 1
}

// Recompute scrolls by the smallest amount that brings the cursor back into
// view. c.Col is a cell column here, see cellCol. Calling it again with the
// same inputs changes nothing.
func (v *Viewport) Recompute(c Cursor, height, width int) {
	rows := visibleRows(height)
	cols := width
	if cols < 1 {
		cols = 1
	}
	v.RowOffset = scrollAxis(v.RowOffset, c.Row, rows)
	v.ColOffset = scrollAxis(v.ColOffset, c.Col, cols)
}

func scrollAxis(offset, pos, span int) int {
	if pos < offset {
		return pos
	}
	if pos >= offset+span {
		return pos - span + 1
	}
	return offset
}
