package main

// The editor session. One Editor is built at startup and owned by the control
// loop for its whole lifetime; it holds the buffer, cursor, mode, clipboard,
// typing session and everything the renderer reads.

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Mode represents the current operational state of the editor.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // Text insertion; the only mode with standard bindings.
	ModeCommand      // Colon command line mode.
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

const (
	autosaveDelay      = time.Second      // Quiet time after the last edit before saving.
	checkpointInterval = 10 * time.Second // How often typing time is folded and persisted.
	maxLogMessages     = 50               // Capacity of the in-memory log ring.
)

// Editor is the main controller struct that holds all session state.
type Editor struct {
	buf    *TextBuffer
	cur    Cursor
	view   Viewport
	width  int // Terminal width in cells.
	height int // Terminal height in cells.

	settings      Settings
	mode          Mode
	pendingKey    rune     // First key of a two-key Normal command (dd, yy).
	commandBuffer []rune   // Input for the : command line.
	clipboard     [][]rune // Lines from the last yank or line delete.
	lastSearch    string   // The last searched term (for 'n'/'N').
	commands      *Command // Command handler instance.

	filename string    // Path of the note being edited.
	noteDay  string    // Day the open note was loaded on; its words count for that day only.
	modified bool      // True if changes haven't been saved.
	saveAt   time.Time // Autosave deadline; zero when nothing is pending.

	session        *TypingSession
	stats          *StatsStore // Nil when statistics are unavailable.
	lastCheckpoint time.Time

	message      string   // Status message shown on the command line.
	logMessages  []string // Recent log lines shown in the debug window.
	showDebugLog bool     // Visibility toggle for the debug window.
	logPath      string   // Log file; empty disables file logging.

	quit         bool                    // Set by a quit request; ends Run.
	now          func() time.Time        // Clock, replaceable in tests.
	copyToSystem func(text string) error // OS clipboard writer; nil disables mirroring.
	findHeadings func([]string) []int    // Heading finder used by [ and ].
}

// NewEditor creates an editor with an empty buffer. stats may be nil.
func NewEditor(settings Settings, stats *StatsStore, logPath string) *Editor {
	e := &Editor{
		buf:          NewTextBuffer(nil),
		width:        80,
		height:       24,
		settings:     settings,
		mode:         ModeInsert,
		stats:        stats,
		logPath:      logPath,
		now:          time.Now,
		findHeadings: HeadingRows,
	}
	if settings.SystemClipboard {
		e.copyToSystem = clipboard.WriteAll
	}
	e.commands = &Command{e: e}

	now := e.now()
	var accumulated time.Duration
	if stats != nil {
		rec, ok, err := stats.Get(now.Format(dayLayout))
		if err != nil {
			e.addLog("Stats", fmt.Sprintf("failed to read today's stats: %v", err))
		} else if ok {
			accumulated = time.Duration(rec.TypingSeconds) * time.Second
		}
	}
	timeout := time.Duration(settings.TypingTimeoutSeconds) * time.Second
	e.session = NewTypingSession(timeout, accumulated, now)
	e.noteDay = now.Format(dayLayout)
	e.lastCheckpoint = now
	e.addLog("Editor", "Editor initialized")
	return e
}

func (e *Editor) addLog(group, msg string) {
	t := time.Now()
	logMsg := fmt.Sprintf("[%02d:%02d:%02d] [%s] %s", t.Hour(), t.Minute(), t.Second(), group, msg)
	e.logMessages = append(e.logMessages, logMsg)
	if len(e.logMessages) > maxLogMessages {
		e.logMessages = e.logMessages[len(e.logMessages)-maxLogMessages:]
	}

	if e.logPath != "" {
		if err := appendLogFile(e.logPath, logMsg); err != nil {
			// Report once and keep logging to the ring only.
			e.logPath = ""
			e.addLog("Log", fmt.Sprintf("file logging disabled: %v", err))
		}
	}
}

func appendLogFile(path, msg string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(msg + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// reportError shows err on the status line and logs it.
func (e *Editor) reportError(group string, err error) {
	e.message = err.Error()
	e.addLog(group, err.Error())
}

// vim reports whether modal key handling is enabled.
func (e *Editor) vim() bool {
	return e.settings.VimBindings
}

// LoadFile reads filename into the buffer and parks the cursor at the end,
// on a fresh empty line if the last line has content.
func (e *Editor) LoadFile(filename string) error {
	lines, err := LoadLines(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	e.buf = NewTextBuffer(lines)
	e.filename = filename
	e.noteDay = e.now().Format(dayLayout)
	e.modified = false
	e.saveAt = time.Time{}

	last := e.buf.Len() - 1
	if e.buf.LineLen(last) > 0 {
		e.buf.InsertLine(last+1, nil)
		last++
	}
	e.cur = Cursor{Row: last, Col: e.buf.LineLen(last)}
	e.view = Viewport{}
	e.addLog("Editor", fmt.Sprintf("Loaded %s (%d lines)", filename, e.buf.Len()))
	return nil
}

// SaveFile writes the buffer to its file.
func (e *Editor) SaveFile() error {
	if e.filename == "" {
		return fmt.Errorf("no filename")
	}
	if err := SaveLines(e.filename, e.buf.Lines()); err != nil {
		return fmt.Errorf("failed to save %s: %w", e.filename, err)
	}
	e.modified = false
	e.saveAt = time.Time{}
	return nil
}

// autoSave saves pending changes, reporting but surviving failures.
func (e *Editor) autoSave() {
	if !e.modified {
		e.saveAt = time.Time{}
		return
	}
	if err := e.SaveFile(); err != nil {
		e.reportError("Save", err)
		// Retry after another quiet period instead of on every tick.
		e.saveAt = e.now().Add(autosaveDelay)
	}
}

// beginEdit runs before every buffer mutation: day rollover is settled first
// so the edit is attributed to the right day, then the edit is recorded.
func (e *Editor) beginEdit() {
	now := e.now()
	e.rollover(now)
	e.session.Record(now)
}

// markModified flags unsaved changes and re-arms the autosave deadline.
func (e *Editor) markModified() {
	e.modified = true
	e.saveAt = e.now().Add(autosaveDelay)
}

// rollover persists the finished day when the local date changed.
func (e *Editor) rollover(now time.Time) {
	day, secs, ok := e.session.Rollover(now)
	if !ok {
		return
	}
	e.addLog("Stats", fmt.Sprintf("Day %s finished with %d seconds of typing", day, secs))
	if e.stats != nil {
		if err := e.stats.Put(day, DailyStats{TypingSeconds: secs, WordCount: e.wordsFor(day)}); err != nil {
			e.reportError("Stats", err)
		}
	}
	e.lastCheckpoint = now
}

// flushStats writes today's record.
func (e *Editor) flushStats() {
	if e.stats == nil {
		return
	}
	rec := DailyStats{
		TypingSeconds: int64(e.session.Total(e.now()) / time.Second),
		WordCount:     e.wordsFor(e.session.Day()),
	}
	if err := e.stats.Put(e.session.Day(), rec); err != nil {
		e.reportError("Stats", err)
	}
}

// wordsFor is the word count recorded for day. After midnight the buffer
// still holds the previous day's note, which must not count for the new day.
func (e *Editor) wordsFor(day string) int {
	if day != e.noteDay {
		return 0
	}
	return e.buf.WordCount()
}

// Tick does the periodic work of the control loop: autosave, day rollover and
// the typing-time checkpoint.
func (e *Editor) Tick() {
	now := e.now()
	e.rollover(now)
	if !e.saveAt.IsZero() && !now.Before(e.saveAt) {
		e.autoSave()
	}
	if now.Sub(e.lastCheckpoint) >= checkpointInterval {
		e.session.Checkpoint(now)
		e.flushStats()
		e.lastCheckpoint = now
	}
}

// Shutdown flushes the pending save and the final typing checkpoint.
func (e *Editor) Shutdown() error {
	var saveErr error
	if e.modified {
		saveErr = e.SaveFile()
		if saveErr != nil {
			e.addLog("Save", saveErr.Error())
		}
	}
	e.rollover(e.now())
	e.session.Close()
	e.flushStats()
	return saveErr
}

// clampCursor keeps the cursor inside the buffer. In vim Normal mode the
// cursor sits on a character, so it may not rest past the last one.
func (e *Editor) clampCursor() {
	e.cur.Clamp(e.buf)
	if e.vim() && e.mode == ModeNormal {
		if n := e.buf.LineLen(e.cur.Row); n > 0 && e.cur.Col > n-1 {
			e.cur.Col = n - 1
		}
	}
}

// crossesLines reports whether horizontal motion wraps onto neighbouring
// lines, which it does everywhere except vim Normal mode.
func (e *Editor) crossesLines() bool {
	return !e.vim() || e.mode != ModeNormal
}

func (e *Editor) moveCursor(dx, dy int) {
	e.cur.Move(e.buf, dx, dy)
	e.clampCursor()
}

func (e *Editor) moveLeft() {
	if e.cur.Col > 0 {
		e.cur.Col--
	} else if e.cur.Row > 0 && e.crossesLines() {
		e.cur.Row--
		e.cur.Col = e.buf.LineLen(e.cur.Row)
	}
	e.clampCursor()
}

func (e *Editor) moveRight() {
	maxCol := e.buf.LineLen(e.cur.Row)
	if !e.crossesLines() && maxCol > 0 {
		maxCol--
	}
	if e.cur.Col < maxCol {
		e.cur.Col++
	} else if e.cur.Row < e.buf.Len()-1 && e.crossesLines() {
		e.cur.Row++
		e.cur.Col = 0
	}
	e.clampCursor()
}

func (e *Editor) jumpToLineStart() {
	e.cur.Col = 0
}

func (e *Editor) jumpToLineEnd() {
	e.cur.Col = e.buf.LineLen(e.cur.Row)
	e.clampCursor()
}

func (e *Editor) jumpToTop() {
	e.cur = Cursor{}
}

func (e *Editor) jumpToBottom() {
	e.cur = Cursor{Row: e.buf.Len() - 1}
}

func (e *Editor) pageUp() {
	e.moveCursor(0, -visibleRows(e.height))
}

func (e *Editor) pageDown() {
	e.moveCursor(0, visibleRows(e.height))
}

// moveWordForward moves to the start of the next word, continuing on
// following lines when the current one has none left.
func (e *Editor) moveWordForward() {
	row, x := e.cur.Row, e.cur.Col
	line := e.buf.Line(row)
	for x < len(line) && isWordRune(line[x]) {
		x++
	}
	for {
		for x < len(line) && !isWordRune(line[x]) {
			x++
		}
		if x < len(line) {
			e.cur = Cursor{Row: row, Col: x}
			return
		}
		if row >= e.buf.Len()-1 {
			return
		}
		row++
		x = 0
		line = e.buf.Line(row)
	}
}

// moveWordBackward moves to the start of the current or previous word.
func (e *Editor) moveWordBackward() {
	row, x := e.cur.Row, e.cur.Col
	line := e.buf.Line(row)
	for {
		for x > 0 && !isWordRune(line[x-1]) {
			x--
		}
		if x > 0 {
			for x > 0 && isWordRune(line[x-1]) {
				x--
			}
			e.cur = Cursor{Row: row, Col: x}
			return
		}
		if row == 0 {
			e.cur = Cursor{}
			return
		}
		row--
		line = e.buf.Line(row)
		x = len(line)
	}
}

// moveWordEnd moves to the last character of the current or next word.
func (e *Editor) moveWordEnd() {
	row, x := e.cur.Row, e.cur.Col+1
	line := e.buf.Line(row)
	for {
		for x < len(line) && !isWordRune(line[x]) {
			x++
		}
		if x < len(line) {
			for x+1 < len(line) && isWordRune(line[x+1]) {
				x++
			}
			e.cur = Cursor{Row: row, Col: x}
			return
		}
		if row >= e.buf.Len()-1 {
			return
		}
		row++
		x = 0
		line = e.buf.Line(row)
	}
}

// insertRune types r at the cursor and lets the wrap engine break the line.
func (e *Editor) insertRune(r rune) {
	e.beginEdit()
	e.cur.Row, e.cur.Col = e.buf.InsertChar(e.cur.Row, e.cur.Col, r)
	e.cur.Col++
	WrapAfterInsert(e.buf, &e.cur, r, e.width)
	e.markModified()
}

// insertTab inserts the configured number of spaces.
func (e *Editor) insertTab() {
	for i := 0; i < e.settings.TabSize; i++ {
		e.insertRune(' ')
	}
}

func (e *Editor) insertNewline() {
	e.beginEdit()
	e.buf.SplitLine(e.cur.Row, e.cur.Col)
	e.cur = Cursor{Row: e.cur.Row + 1}
	e.markModified()
}

// backspace deletes left of the cursor, joining with the previous line at
// column zero.
func (e *Editor) backspace() {
	if e.cur.Col == 0 && e.cur.Row == 0 {
		return
	}
	e.beginEdit()
	if e.cur.Col > 0 {
		e.buf.DeleteCharBefore(e.cur.Row, e.cur.Col)
		e.cur.Col--
	} else {
		at := e.buf.JoinLine(e.cur.Row - 1)
		e.cur = Cursor{Row: e.cur.Row - 1, Col: at}
	}
	e.markModified()
}

// deleteForward deletes under the cursor, joining with the next line at the
// end of a line.
func (e *Editor) deleteForward() {
	if e.cur.Col < e.buf.LineLen(e.cur.Row) {
		e.beginEdit()
		e.buf.DeleteCharAt(e.cur.Row, e.cur.Col)
		e.markModified()
		return
	}
	if e.cur.Row < e.buf.Len()-1 {
		e.beginEdit()
		e.buf.JoinLine(e.cur.Row)
		e.markModified()
	}
}

// deleteChar is Normal mode x: remove the character under the cursor.
func (e *Editor) deleteChar() {
	if e.cur.Col >= e.buf.LineLen(e.cur.Row) {
		return
	}
	e.beginEdit()
	e.buf.DeleteCharAt(e.cur.Row, e.cur.Col)
	e.clampCursor()
	e.markModified()
}

// setClipboard replaces the clipboard slot and mirrors it to the system
// clipboard when enabled.
func (e *Editor) setClipboard(lines ...[]rune) {
	e.clipboard = lines
	if e.copyToSystem == nil {
		return
	}
	text := make([]string, len(lines))
	for i, l := range lines {
		text[i] = string(l)
	}
	if err := e.copyToSystem(strings.Join(text, "\n") + "\n"); err != nil {
		e.addLog("Clipboard", fmt.Sprintf("system clipboard unavailable: %v", err))
	}
}

func (e *Editor) deleteLine() {
	e.beginEdit()
	removed := e.buf.DeleteLine(e.cur.Row)
	e.setClipboard(removed)
	e.cur = Cursor{Row: e.cur.Row}
	e.clampCursor()
	e.markModified()
}

func (e *Editor) yankLine() {
	e.setClipboard(e.buf.Line(e.cur.Row))
	e.message = "Line yanked"
}

// pasteLine inserts the clipboard lines below the cursor line and moves onto
// the first of them.
func (e *Editor) pasteLine() {
	if len(e.clipboard) == 0 {
		return
	}
	e.beginEdit()
	for i, line := range e.clipboard {
		e.buf.InsertLine(e.cur.Row+1+i, line)
	}
	e.cur = Cursor{Row: e.cur.Row + 1}
	e.markModified()
}

// pasteLineAbove inserts the clipboard lines above the cursor line.
func (e *Editor) pasteLineAbove() {
	if len(e.clipboard) == 0 {
		return
	}
	e.beginEdit()
	for i, line := range e.clipboard {
		e.buf.InsertLine(e.cur.Row+i, line)
	}
	e.cur = Cursor{Row: e.cur.Row}
	e.markModified()
}

func (e *Editor) insertLineBelow() {
	e.beginEdit()
	e.buf.InsertLine(e.cur.Row+1, nil)
	e.cur = Cursor{Row: e.cur.Row + 1}
	e.markModified()
}

func (e *Editor) insertLineAbove() {
	e.beginEdit()
	e.buf.InsertLine(e.cur.Row, nil)
	e.cur = Cursor{Row: e.cur.Row}
	e.markModified()
}

// reflowBuffer rewraps every line to the current terminal width.
func (e *Editor) reflowBuffer() {
	e.beginEdit()
	before := e.buf.Len()
	ReflowAll(e.buf, e.width)
	e.clampCursor()
	e.markModified()
	e.message = fmt.Sprintf("Wrapped to %d columns (%d lines added)", wrapWidth(e.width), e.buf.Len()-before)
}

// performSearch moves to the next (or previous) occurrence of query, wrapping
// around the buffer.
func (e *Editor) performSearch(query string, forward bool) bool {
	needle := []rune(query)
	if len(needle) == 0 {
		return false
	}
	n := e.buf.Len()
	for i := 0; i <= n; i++ {
		var row int
		if forward {
			row = (e.cur.Row + i) % n
		} else {
			row = ((e.cur.Row-i)%n + n) % n
		}
		line := e.buf.Line(row)
		if forward {
			start := 0
			if i == 0 {
				start = e.cur.Col + 1
			}
			for x := start; x+len(needle) <= len(line); x++ {
				if runesEqual(line[x:x+len(needle)], needle) && (i < n || x <= e.cur.Col) {
					e.cur = Cursor{Row: row, Col: x}
					return true
				}
			}
		} else {
			end := len(line) - len(needle)
			if i == 0 {
				end = e.cur.Col - 1
			}
			for x := end; x >= 0; x-- {
				if x+len(needle) <= len(line) && runesEqual(line[x:x+len(needle)], needle) && (i < n || x >= e.cur.Col) {
					e.cur = Cursor{Row: row, Col: x}
					return true
				}
			}
		}
	}
	e.message = fmt.Sprintf("Pattern not found: %s", query)
	return false
}

func (e *Editor) findNext() {
	if e.lastSearch != "" {
		e.performSearch(e.lastSearch, true)
	}
}

func (e *Editor) findPrev() {
	if e.lastSearch != "" {
		e.performSearch(e.lastSearch, false)
	}
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jumpToHeading moves to the next (dir > 0) or previous markdown heading.
func (e *Editor) jumpToHeading(dir int) {
	rows := e.findHeadings(e.buf.Lines())
	if dir > 0 {
		for _, r := range rows {
			if r > e.cur.Row {
				e.cur = Cursor{Row: r}
				return
			}
		}
	} else {
		for i := len(rows) - 1; i >= 0; i-- {
			if rows[i] < e.cur.Row {
				e.cur = Cursor{Row: rows[i]}
				return
			}
		}
	}
}

// typingMinutes is what the status line shows.
func (e *Editor) typingMinutes() int {
	return int(e.session.Total(e.now()) / time.Minute)
}
