package main

// Automatic line wrapping while typing. Breaks are real line splits: once a
// line is wrapped the newline is part of the saved note.

const (
	wrapMargin   = 5  // Columns kept free at the right edge of the terminal.
	wrapLookback = 20 // How far back to look for a space before breaking mid-word.
)

// wrapWidth returns the longest line length the wrap engine leaves behind for
// a terminal of the given width.
func wrapWidth(width int) int {
	if w := width - wrapMargin; w > 0 {
		return w
	}
	return 1
}

// breakPoint picks where to split line so the first part is at most limit
// runes long. It returns the cut index and how many runes (0 or 1) the break
// consumes: a space break drops the space, a hard break drops nothing.
func breakPoint(line []rune, limit int) (cut, skip int) {
	stop := limit - wrapLookback
	if stop < 1 {
		stop = 1
	}
	for i := limit; i >= stop; i-- {
		if i < len(line) && line[i] == ' ' {
			return i, 1
		}
	}
	return limit, 0
}

// wrapRunes splits line into pieces no longer than limit. soft[i] reports
// whether the break after pieces[i] consumed a space.
func wrapRunes(line []rune, limit int) (pieces [][]rune, soft []bool) {
	if limit < 1 {
		limit = 1
	}
	for len(line) > limit {
		cut, skip := breakPoint(line, limit)
		pieces = append(pieces, line[:cut])
		soft = append(soft, skip == 1)
		line = line[cut+skip:]
	}
	return append(pieces, line), soft
}

// WrapAfterInsert breaks the cursor line after ch was typed until every piece
// fits the wrap width. A space typed while the line still fits never breaks,
// so it can later serve as the break point; past the limit a typed space is
// itself consumed as the break. The cursor follows the moved text.
func WrapAfterInsert(b *TextBuffer, c *Cursor, ch rune, width int) bool {
	limit := wrapWidth(width)
	if ch == ' ' && b.LineLen(c.Row) <= limit {
		return false
	}
	return breakLine(b, c.Row, limit, c) > 1
}

// Reflow wraps row until every resulting line fits the wrap width and returns
// how many lines the original row became.
func Reflow(b *TextBuffer, row, width int) int {
	return breakLine(b, b.clampRow(row), wrapWidth(width), nil)
}

// breakLine splits row and the remainders it produces until each fits limit.
// A non-nil cursor on a moved part is carried to the matching position.
func breakLine(b *TextBuffer, row, limit int, c *Cursor) int {
	n := 1
	for b.LineLen(row) > limit {
		cut, skip := breakPoint(b.Line(row), limit)
		b.SplitLine(row, cut)
		if skip == 1 {
			b.DeleteCharAt(row+1, 0)
		}
		if c != nil && c.Row == row && c.Col > cut {
			c.Row = row + 1
			c.Col -= cut + skip
			if c.Col < 0 {
				c.Col = 0
			}
		}
		row++
		n++
	}
	return n
}

// ReflowAll wraps every line of the buffer.
func ReflowAll(b *TextBuffer, width int) {
	for row := 0; row < b.Len(); row++ {
		row += Reflow(b, row, width) - 1
	}
}
