package main

// Provides a way to view where river keeps its files and which settings are
// in effect after defaults and validation have been applied.

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// PrintInfo prints a summary table of resolved paths and settings.
func PrintInfo(w io.Writer, configPath string, s Settings, now time.Time) {
	notePath := filepath.Join(s.DailyNotesDir, now.Format(dayLayout)+".md")
	rows := [][2]string{
		{"config", configPath},
		{"notes dir", s.DailyNotesDir},
		{"today", notePath},
		{"stats db", filepath.Join(s.DailyNotesDir, statsFileName)},
		{"vim_bindings", fmt.Sprint(s.VimBindings)},
		{"tab_size", fmt.Sprint(s.TabSize)},
		{"typing_timeout", fmt.Sprintf("%ds", s.TypingTimeoutSeconds)},
		{"show_prompts", fmt.Sprint(s.ShowPrompts)},
		{"clipboard", fmt.Sprint(s.SystemClipboard)},
	}

	// Table header.
	fmt.Fprintf(w, "%-15s %s\n", "Name", "Value")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range rows {
		fmt.Fprintf(w, "%-15s %s\n", r[0], r[1])
	}
}
