package main

// The text buffer: an ordered list of lines, each line a slice of runes. Every
// position argument is clamped to the current bounds, so callers never see an
// out-of-range error from here.

import (
	"strings"
	"unicode"
)

// TextBuffer holds the document being edited. It always contains at least
// one (possibly empty) line.
type TextBuffer struct {
	lines [][]rune // Slice of lines, where each line is a slice of runes.
}

// NewTextBuffer builds a buffer from plain string lines.
func NewTextBuffer(lines []string) *TextBuffer {
	b := &TextBuffer{}
	for _, l := range lines {
		b.lines = append(b.lines, []rune(l))
	}
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	return b
}

// Len returns the number of lines.
func (b *TextBuffer) Len() int {
	return len(b.lines)
}

// LineLen returns the rune length of row after clamping it.
func (b *TextBuffer) LineLen(row int) int {
	return len(b.lines[b.clampRow(row)])
}

// Line returns a copy of the runes of row.
func (b *TextBuffer) Line(row int) []rune {
	line := b.lines[b.clampRow(row)]
	out := make([]rune, len(line))
	copy(out, line)
	return out
}

// Lines returns the buffer content as strings.
func (b *TextBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// String joins all lines with line feeds.
func (b *TextBuffer) String() string {
	var result strings.Builder
	for i, line := range b.lines {
		result.WriteString(string(line))
		if i < len(b.lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

func (b *TextBuffer) clampRow(row int) int {
	return clampInt(row, 0, len(b.lines)-1)
}

func (b *TextBuffer) clampPos(row, col int) (int, int) {
	row = b.clampRow(row)
	return row, clampInt(col, 0, len(b.lines[row]))
}

// InsertChar inserts ch before column col of row. It returns the clamped
// position the rune was inserted at.
func (b *TextBuffer) InsertChar(row, col int, ch rune) (int, int) {
	row, col = b.clampPos(row, col)
	line := b.lines[row]
	newLine := make([]rune, len(line)+1)
	copy(newLine[:col], line[:col])
	newLine[col] = ch
	copy(newLine[col+1:], line[col:])
	b.lines[row] = newLine
	return row, col
}

// DeleteCharBefore removes the rune left of (row, col). It reports false when
// col is already at the start of the line.
func (b *TextBuffer) DeleteCharBefore(row, col int) bool {
	row, col = b.clampPos(row, col)
	if col == 0 {
		return false
	}
	b.lines[row] = append(b.lines[row][:col-1], b.lines[row][col:]...)
	return true
}

// DeleteCharAt removes the rune under (row, col). It reports false when col
// is past the last rune.
func (b *TextBuffer) DeleteCharAt(row, col int) bool {
	row, col = b.clampPos(row, col)
	if col >= len(b.lines[row]) {
		return false
	}
	b.lines[row] = append(b.lines[row][:col], b.lines[row][col+1:]...)
	return true
}

// SplitLine breaks row at col; the runes from col onwards become a new line
// directly below.
func (b *TextBuffer) SplitLine(row, col int) {
	row, col = b.clampPos(row, col)
	line := b.lines[row]
	remaining := make([]rune, len(line)-col)
	copy(remaining, line[col:])
	b.lines[row] = line[:col:col]
	b.insertAt(row+1, remaining)
}

// JoinLine appends line row+1 to line row and removes row+1. It returns the
// column where the joined text starts, or -1 when row is the last line.
func (b *TextBuffer) JoinLine(row int) int {
	row = b.clampRow(row)
	if row >= len(b.lines)-1 {
		return -1
	}
	at := len(b.lines[row])
	b.lines[row] = append(b.lines[row][:at:at], b.lines[row+1]...)
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	return at
}

// InsertLine inserts content as a new line at row. Rows past the end append.
func (b *TextBuffer) InsertLine(row int, content []rune) {
	row = clampInt(row, 0, len(b.lines))
	line := make([]rune, len(content))
	copy(line, content)
	b.insertAt(row, line)
}

// DeleteLine removes row and returns its content. Deleting the only line
// empties it instead, keeping the buffer non-empty.
func (b *TextBuffer) DeleteLine(row int) []rune {
	row = b.clampRow(row)
	removed := b.lines[row]
	if len(b.lines) == 1 {
		b.lines[0] = []rune{}
		return removed
	}
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	return removed
}

func (b *TextBuffer) insertAt(row int, line []rune) {
	newBuffer := make([][]rune, len(b.lines)+1)
	copy(newBuffer[:row], b.lines[:row])
	newBuffer[row] = line
	copy(newBuffer[row+1:], b.lines[row:])
	b.lines = newBuffer
}

// WordCount counts maximal runs of letters and digits. Words never span a
// line break.
func (b *TextBuffer) WordCount() int {
	count := 0
	for _, line := range b.lines {
		inWord := false
		for _, r := range line {
			if isWordRune(r) {
				if !inWord {
					count++
					inWord = true
				}
			} else {
				inWord = false
			}
		}
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
