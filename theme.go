package main

// Color palette and theme used by the editor. Maps semantic color names (like
// ColorNormalMode) to specific terminal attributes (foreground and background).

import "github.com/nsf/termbox-go"

// Color represents a pair of foreground and background terminal attributes.
type Color struct {
	Background termbox.Attribute
	Foreground termbox.Attribute
}

// ColorName is an enum-like type for semantic color identifiers.
type ColorName int

const (
	ColorDefault ColorName = iota // Default terminal colors.

	ColorStatusBar       // Main status bar at the bottom.
	ColorStatusNeutral   // Progress below the warning threshold.
	ColorStatusWarning   // Progress close to the daily goal.
	ColorStatusSuccess   // Daily goal reached.
	ColorProgressEmpty   // Unfilled part of the progress bar.
	ColorNormalMode      // Status bar indicator for Normal mode.
	ColorInsertMode      // Status bar indicator for Insert mode.
	ColorCommandMode     // Status bar indicator for Command mode.
	ColorEmptyLineMarker // The '~' marker for lines beyond EOF.
	ColorGhostPrompt     // Writing prompt shown on an empty note.
	ColorDebugWindow     // Overlay window for logs/debug info.
	ColorDebugTitle      // Header for the debug window.
)

// Theme maps each ColorName to its actual visual attributes.
var Theme = map[ColorName]Color{
	ColorDefault: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},

	// Status bar
	ColorStatusBar:     {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorStatusNeutral: {Background: termbox.Attribute(250), Foreground: termbox.Attribute(240)},
	ColorStatusWarning: {Background: termbox.Attribute(250), Foreground: termbox.Attribute(167)},
	ColorStatusSuccess: {Background: termbox.Attribute(250), Foreground: termbox.Attribute(29)},
	ColorProgressEmpty: {Background: termbox.Attribute(250), Foreground: termbox.Attribute(246)},

	// Modes
	ColorNormalMode:  {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorInsertMode:  {Background: termbox.Attribute(58), Foreground: termbox.Attribute(255)},
	ColorCommandMode: {Background: termbox.Attribute(30), Foreground: termbox.Attribute(16)},

	ColorEmptyLineMarker: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorGhostPrompt:     {Background: termbox.ColorDefault, Foreground: termbox.Attribute(242)},

	// Debug window
	ColorDebugWindow: {Background: termbox.Attribute(19), Foreground: termbox.Attribute(16)},
	ColorDebugTitle:  {Background: termbox.Attribute(19), Foreground: termbox.Attribute(215)},
}

// GetThemeColor returns the foreground and background attributes for a given semantic name.
func GetThemeColor(name ColorName) (termbox.Attribute, termbox.Attribute) {
	if c, ok := Theme[name]; ok {
		return c.Foreground, c.Background
	}
	// Fallback to default if name is not found.
	return termbox.ColorDefault, termbox.ColorDefault
}

// modeColor picks the status indicator color for a mode.
func modeColor(m Mode) ColorName {
	switch m {
	case ModeInsert:
		return ColorInsertMode
	case ModeCommand:
		return ColorCommandMode
	}
	return ColorNormalMode
}
