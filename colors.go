package main

// Theme preview. Draws every semantic color of the theme next to its name so
// a terminal's 256-color rendering of the status tiers can be checked.

import (
	"fmt"

	"github.com/nsf/termbox-go"
)

var themeNames = []struct {
	name  ColorName
	label string
}{
	{ColorDefault, "default"},
	{ColorStatusBar, "status bar"},
	{ColorStatusNeutral, "status neutral"},
	{ColorStatusWarning, "status warning"},
	{ColorStatusSuccess, "status success"},
	{ColorProgressEmpty, "progress empty"},
	{ColorNormalMode, "normal mode"},
	{ColorInsertMode, "insert mode"},
	{ColorCommandMode, "command mode"},
	{ColorEmptyLineMarker, "empty line ~"},
	{ColorGhostPrompt, "writing prompt"},
	{ColorDebugWindow, "debug window"},
	{ColorDebugTitle, "debug title"},
}

// PrintTheme initializes termbox and draws a swatch per theme color.
func PrintTheme() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to init termbox: %w", err)
	}
	defer termbox.Close()

	// Enable 256-color mode for the output.
	termbox.SetOutputMode(termbox.Output256)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	for i, t := range themeNames {
		fg, bg := GetThemeColor(t.name)
		sample := fmt.Sprintf(" %-16s", t.label)
		drawText(0, i, len(sample), sample, fg, bg)
	}
	drawText(0, len(themeNames)+1, 80, "Press any key to exit...", termbox.ColorWhite, termbox.ColorDefault)

	termbox.Flush()
	// Wait for any key press before closing.
	for {
		if ev := termbox.PollEvent(); ev.Type == termbox.EventKey {
			return nil
		}
	}
}
