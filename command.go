package main

// Colon command handler (e.g., :q, :w, :wrap). It processes strings entered in
// ModeCommand and executes the corresponding actions.

import (
	"fmt"
	"strconv"
	"strings"
)

// Command provides a context for executing editor commands.
type Command struct {
	e *Editor
}

// Handle parses and executes a command string.
func (ch *Command) Handle(cmd string) {
	// A leading slash is a search, which keeps its spaces.
	if strings.HasPrefix(cmd, "/") {
		ch.search(strings.TrimPrefix(cmd, "/"))
		return
	}

	cmd = strings.TrimSpace(cmd)
	switch cmd {
	case "":
	case "q", "q!", "Q":
		// Pending edits are flushed by Shutdown, so quitting never loses text.
		ch.e.quit = true
	case "w", "W":
		ch.write()
	case "wq", "WQ", "x":
		if ch.write() {
			ch.e.quit = true
		}
	case "wrap":
		ch.e.reflowBuffer()
	case "debug":
		ch.e.showDebugLog = !ch.e.showDebugLog
	default:
		// If the command is a number, jump to that line.
		if lineNum, err := strconv.Atoi(cmd); err == nil {
			ch.goToLine(lineNum)
			return
		}
		ch.e.message = fmt.Sprintf("Not an editor command: %s", cmd)
	}
}

// write saves the note and reports the outcome on the status line.
func (ch *Command) write() bool {
	if err := ch.e.SaveFile(); err != nil {
		ch.e.reportError("Save", err)
		return false
	}
	ch.e.message = fmt.Sprintf("\"%s\" written", ch.e.filename)
	return true
}

// search remembers query for n/N and jumps to its next occurrence.
func (ch *Command) search(query string) {
	if query == "" {
		return
	}
	ch.e.lastSearch = query
	ch.e.performSearch(query, true)
}

// goToLine moves the cursor to the beginning of the 1-based line number.
func (ch *Command) goToLine(lineNum int) {
	ch.e.cur = Cursor{Row: clampInt(lineNum-1, 0, ch.e.buf.Len()-1)}
}
