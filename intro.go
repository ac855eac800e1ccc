package main

// Writing prompts. When a note has no text beyond its date header, a dimmed
// prompt is drawn below the cursor to get the writer started. It is never
// part of the buffer.

import (
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

var writingPrompts = []string{
	"What is taking up most of your attention today?",
	"Describe one small thing that went well yesterday.",
	"What would make today feel finished?",
	"Write about a conversation you keep thinking about.",
	"What are you avoiding, and why?",
	"List three things you noticed on your way here.",
	"What did you learn this week that surprised you?",
	"Who would you like to thank, and for what?",
	"What does a good evening look like tonight?",
	"Write the first sentence of a letter to yourself a year from now.",
	"What is one decision you could make easier by writing it down?",
	"Describe the room you are in as if for a stranger.",
}

// PromptFor returns the prompt of the day.
func PromptFor(now time.Time) string {
	return writingPrompts[now.YearDay()%len(writingPrompts)]
}

// showsPrompt reports whether the note is still blank apart from headings and
// empty lines.
func (e *Editor) showsPrompt() bool {
	if !e.settings.ShowPrompts || e.modified {
		return false
	}
	if e.vim() && e.mode != ModeInsert {
		return false
	}
	for _, line := range e.buf.Lines() {
		if line != "" && line[0] != '#' {
			return false
		}
	}
	return true
}

// drawPrompt writes the prompt on the row below the cursor, if it is visible.
func (e *Editor) drawPrompt() {
	y := e.cur.Row - e.view.RowOffset + 1
	if y >= visibleRows(e.height) {
		return
	}
	fg, bg := GetThemeColor(ColorGhostPrompt)
	x := 0
	for _, r := range PromptFor(e.now()) {
		rw := runewidth.RuneWidth(r)
		if x+rw > e.width {
			break
		}
		termbox.SetCell(x, y, r, fg, bg)
		x += rw
	}
}
