package main

// Screen rendering. Everything here reads editor state and writes termbox
// cells; nothing mutates the buffer or cursor.

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

const (
	wordGoal         = 500 // Daily target shown by the progress bar.
	warningThreshold = 375 // Word count where the status turns to warning.
	progressBarWidth = 20  // Cells used by the progress bar.
	debugLogLines    = 8   // Log lines shown in the debug window.
)

// statusTier maps the word count to the status color.
func statusTier(words int) ColorName {
	switch {
	case words >= wordGoal:
		return ColorStatusSuccess
	case words >= warningThreshold:
		return ColorStatusWarning
	}
	return ColorStatusNeutral
}

// goalPercent is the progress towards the daily goal, capped at 100.
func goalPercent(words int) int {
	p := words * 100 / wordGoal
	if p > 100 {
		p = 100
	}
	return p
}

// statusSummary is the right-hand side of the status line.
func statusSummary(words, minutes int) string {
	return fmt.Sprintf("%4d words  %3d%%  %3d min ", words, goalPercent(words), minutes)
}

// drawText writes s starting at x and returns the x after the last cell.
// Characters that would cross maxX are dropped.
func drawText(x, y, maxX int, s string, fg, bg termbox.Attribute) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if x+rw > maxX {
			break
		}
		termbox.SetCell(x, y, r, fg, bg)
		x += rw
	}
	return x
}

func (e *Editor) draw() {
	_, defaultBg := GetThemeColor(ColorDefault)
	termbox.Clear(termbox.ColorDefault, defaultBg)

	rows := visibleRows(e.height)
	fg, bg := GetThemeColor(ColorDefault)
	markerFg, markerBg := GetThemeColor(ColorEmptyLineMarker)
	for screenY := 0; screenY < rows; screenY++ {
		row := screenY + e.view.RowOffset
		if row >= e.buf.Len() {
			termbox.SetCell(0, screenY, '~', markerFg, markerBg)
			continue
		}
		drawLine(screenY, e.buf.Line(row), e.view.ColOffset, e.width, fg, bg)
	}

	if e.showsPrompt() {
		e.drawPrompt()
	}

	e.drawStatusBar(e.height - 2)
	e.drawCommandBar(e.height - 1)

	if e.showDebugLog {
		e.drawDebugLog()
	}

	// Synchronize terminal cursor with editor focus.
	if e.mode == ModeCommand {
		termbox.SetCursor(e.commandPromptWidth()+runewidth.StringWidth(string(e.commandBuffer)), e.height-1)
	} else {
		termbox.SetCursor(e.cursorScreenX(), e.cur.Row-e.view.RowOffset)
	}
	termbox.Flush()
}

// drawLine renders the cells of line from offset onwards. A wide character
// cut by either edge is left out.
func drawLine(y int, line []rune, offset, width int, fg, bg termbox.Attribute) {
	cell := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		x := cell - offset
		cell += rw
		if x < 0 {
			continue
		}
		if x+rw > width {
			break
		}
		termbox.SetCell(x, y, r, fg, bg)
	}
}

// cursorScreenX is the cursor's cell column relative to the viewport.
func (e *Editor) cursorScreenX() int {
	x := cellCol(e.buf.Line(e.cur.Row), e.cur.Col) - e.view.ColOffset
	if x > e.width-1 {
		x = e.width - 1
	}
	if x < 0 {
		x = 0
	}
	return x
}

// drawStatusBar renders the word count progress and the current mode.
func (e *Editor) drawStatusBar(statusY int) {
	if statusY < 0 {
		return
	}
	barFg, barBg := GetThemeColor(ColorStatusBar)
	for x := 0; x < e.width; x++ {
		termbox.SetCell(x, statusY, ' ', barFg, barBg)
	}

	x := 0
	if e.vim() {
		fg, bg := GetThemeColor(modeColor(e.mode))
		x = drawText(x, statusY, e.width, " "+e.mode.String()+" ", fg, bg)
	}
	x++

	words := e.buf.WordCount()
	tierFg, tierBg := GetThemeColor(statusTier(words))
	emptyFg, emptyBg := GetThemeColor(ColorProgressEmpty)
	filled := goalPercent(words) * progressBarWidth / 100
	for i := 0; i < progressBarWidth && x < e.width; i++ {
		if i < filled {
			termbox.SetCell(x, statusY, '█', tierFg, tierBg)
		} else {
			termbox.SetCell(x, statusY, '░', emptyFg, emptyBg)
		}
		x++
	}

	summary := statusSummary(words, e.typingMinutes())
	if e.modified {
		summary = "[+] " + summary
	}
	rightX := e.width - len(summary)
	if rightX > x {
		drawText(rightX, statusY, e.width, summary, tierFg, tierBg)
	}
}

// drawCommandBar shows the command line being typed or the last message.
func (e *Editor) drawCommandBar(cmdY int) {
	if cmdY < 0 {
		return
	}
	fg, bg := GetThemeColor(ColorDefault)
	if e.mode == ModeCommand {
		x := 0
		if e.commandPromptWidth() > 0 {
			x = drawText(x, cmdY, e.width, ":", fg, bg)
		}
		drawText(x, cmdY, e.width, string(e.commandBuffer), fg, bg)
		return
	}
	if e.message != "" {
		drawText(0, cmdY, e.width, e.message, fg, bg)
	}
}

// commandPromptWidth is 1 for the ':' prompt; searches show their '/' as part
// of the buffer instead.
func (e *Editor) commandPromptWidth() int {
	if len(e.commandBuffer) > 0 && e.commandBuffer[0] == '/' {
		return 0
	}
	return 1
}

// drawDebugLog draws the recent log lines in a window above the status bar.
func (e *Editor) drawDebugLog() {
	startLog := 0
	if len(e.logMessages) > debugLogLines {
		startLog = len(e.logMessages) - debugLogLines
	}
	lines := e.logMessages[startLog:]

	startY := e.height - 2 - len(lines) - 1
	if startY < 0 {
		startY = 0
	}

	// Draw window background
	fg, bg := GetThemeColor(ColorDebugWindow)
	for y := startY; y < e.height-2; y++ {
		for x := 0; x < e.width; x++ {
			termbox.SetCell(x, y, ' ', fg, bg)
		}
	}

	title := "[DEBUG LOG]"
	titleFg, titleBg := GetThemeColor(ColorDebugTitle)
	drawText((e.width-len(title))/2, startY, e.width, title, titleFg, titleBg)

	for i, msg := range lines {
		y := startY + 1 + i
		if y >= e.height-2 {
			break
		}
		drawText(1, y, e.width, msg, fg, bg)
	}
}
