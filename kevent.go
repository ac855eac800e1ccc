package main

// Input processing engine. It contains the main event loop and dispatches
// keyboard events to mode-specific handlers (Normal, Insert, Command, or the
// single-mode standard bindings).

import (
	"time"

	"github.com/nsf/termbox-go"
)

// tickInterval is how often the loop wakes up without input to run Tick.
const tickInterval = 250 * time.Millisecond

// Run is the central loop. It draws, waits for the next event and handles it
// to completion before polling again, until a quit request arrives. The
// ticker goroutine only wakes PollEvent; all state is touched here.
func (e *Editor) Run() {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				termbox.Interrupt()
			}
		}
	}()

	e.resize(termbox.Size())
	for !e.quit {
		e.scrollToCursor()
		e.draw()

		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			e.Tick()
		case termbox.EventResize:
			e.resize(ev.Width, ev.Height)
		case termbox.EventKey:
			e.HandleKey(ev)
		case termbox.EventError:
			e.reportError("Terminal", ev.Err)
		}
	}
}

func (e *Editor) resize(w, h int) {
	if w > 0 {
		e.width = w
	}
	if h > 0 {
		e.height = h
	}
}

// HandleKey applies one key event: mutation, wrap and viewport update all
// happen before it returns.
func (e *Editor) HandleKey(ev termbox.Event) {
	// Clear message on any key press unless specifically set.
	e.message = ""

	if !e.vim() {
		e.handleStandardMode(ev)
	} else {
		switch e.mode {
		case ModeNormal:
			e.handleNormalMode(ev)
		case ModeInsert:
			e.handleInsertMode(ev)
		case ModeCommand:
			e.handleCommandMode(ev)
		}
	}
	e.scrollToCursor()
}

// scrollToCursor keeps the cursor cell on screen.
func (e *Editor) scrollToCursor() {
	cell := Cursor{Row: e.cur.Row, Col: cellCol(e.buf.Line(e.cur.Row), e.cur.Col)}
	e.view.Recompute(cell, e.height, e.width)
}

// handleStandardMode is the modeless editor: every key edits or moves.
func (e *Editor) handleStandardMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyCtrlQ:
		e.quit = true
	case termbox.KeyCtrlS:
		if err := e.SaveFile(); err != nil {
			e.reportError("Save", err)
		} else {
			e.message = "Saved"
		}
	default:
		e.handleTyping(ev)
	}
}

// handleTyping covers the keys shared by standard bindings and vim Insert
// mode. Keys it does not know are ignored.
func (e *Editor) handleTyping(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEnter:
		e.insertNewline()
	case termbox.KeySpace:
		e.insertRune(' ')
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		e.backspace()
	case termbox.KeyDelete:
		e.deleteForward()
	case termbox.KeyTab:
		e.insertTab()
	case termbox.KeyArrowLeft:
		e.moveLeft()
	case termbox.KeyArrowRight:
		e.moveRight()
	case termbox.KeyArrowUp:
		e.moveCursor(0, -1)
	case termbox.KeyArrowDown:
		e.moveCursor(0, 1)
	case termbox.KeyHome:
		e.jumpToLineStart()
	case termbox.KeyEnd:
		e.jumpToLineEnd()
	case termbox.KeyPgup:
		e.pageUp()
	case termbox.KeyPgdn:
		e.pageDown()
	default:
		// If a character key was pressed, insert the character.
		if ev.Key == 0 && ev.Ch != 0 && ev.Mod&termbox.ModAlt == 0 {
			e.insertRune(ev.Ch)
		}
	}
}

// handleNormalMode processes keyboard input when the editor is in Normal mode.
func (e *Editor) handleNormalMode(ev termbox.Event) {
	pending := e.pendingKey
	e.pendingKey = 0

	switch ev.Key {
	case termbox.KeyCtrlQ:
		e.quit = true
	case termbox.KeyArrowLeft:
		e.moveLeft()
	case termbox.KeyArrowRight:
		e.moveRight()
	case termbox.KeyArrowUp:
		e.moveCursor(0, -1)
	case termbox.KeyArrowDown:
		e.moveCursor(0, 1)
	case termbox.KeyHome:
		e.jumpToLineStart()
	case termbox.KeyEnd:
		e.jumpToLineEnd()
	case termbox.KeyPgup:
		e.pageUp()
	case termbox.KeyPgdn:
		e.pageDown()
	}

	// Prevent key event fallthrough.
	if ev.Key != 0 {
		return
	}

	switch ev.Ch {
	case 'i':
		e.mode = ModeInsert
	case 'I':
		e.mode = ModeInsert
		e.jumpToLineStart()
	case 'a':
		e.mode = ModeInsert
		e.moveCursor(1, 0)
	case 'A':
		e.mode = ModeInsert
		e.jumpToLineEnd()
	case 'o':
		e.mode = ModeInsert
		e.insertLineBelow()
	case 'O':
		e.mode = ModeInsert
		e.insertLineAbove()
	case ':':
		e.mode = ModeCommand
		e.commandBuffer = []rune{}
	case '/':
		e.mode = ModeCommand
		e.commandBuffer = []rune{'/'}
	case 'h':
		e.moveLeft()
	case 'j':
		e.moveCursor(0, 1)
	case 'k':
		e.moveCursor(0, -1)
	case 'l':
		e.moveRight()
	case '0':
		e.jumpToLineStart()
	case '$':
		e.jumpToLineEnd()
	case 'g':
		e.jumpToTop()
	case 'G':
		e.jumpToBottom()
	case 'w':
		e.moveWordForward()
	case 'b':
		e.moveWordBackward()
	case 'e':
		e.moveWordEnd()
	case '[':
		e.jumpToHeading(-1)
	case ']':
		e.jumpToHeading(1)
	case 'x':
		e.deleteChar()
	case 'd':
		if pending == 'd' {
			e.deleteLine()
		} else {
			e.pendingKey = 'd'
		}
	case 'y':
		if pending == 'y' {
			e.yankLine()
		} else {
			e.pendingKey = 'y'
		}
	case 'p':
		e.pasteLine()
	case 'P':
		e.pasteLineAbove()
	case 'n':
		e.findNext()
	case 'N':
		e.findPrev()
	}
	e.clampCursor()
}

// handleInsertMode processes keyboard input when the editor is in vim Insert
// mode.
func (e *Editor) handleInsertMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEsc:
		e.mode = ModeNormal
		e.clampCursor()
	case termbox.KeyCtrlQ:
		e.quit = true
	default:
		e.handleTyping(ev)
	}
}

// handleCommandMode processes keyboard input for the colon command line.
func (e *Editor) handleCommandMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEsc:
		// Cancel command entry.
		e.leaveCommandMode()
	case termbox.KeyEnter:
		cmd := string(e.commandBuffer)
		e.leaveCommandMode()
		e.commands.Handle(cmd)
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		if len(e.commandBuffer) > 0 {
			e.commandBuffer = e.commandBuffer[:len(e.commandBuffer)-1]
		}
		// If buffer is empty, backspace returns to Normal mode.
		if len(e.commandBuffer) == 0 {
			e.leaveCommandMode()
		}
	case termbox.KeySpace:
		e.commandBuffer = append(e.commandBuffer, ' ')
	default:
		if ev.Key == 0 && ev.Ch != 0 {
			e.commandBuffer = append(e.commandBuffer, ev.Ch)
		}
	}
}

func (e *Editor) leaveCommandMode() {
	e.mode = ModeNormal
	e.commandBuffer = []rune{}
	e.clampCursor()
}
