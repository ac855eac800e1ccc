package main

// Configuration. Persistent settings live in a YAML file under the user's
// config directory; one-off switches come from command-line flags.

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings are the user preferences read from config.yaml.
type Settings struct {
	VimBindings          bool   `yaml:"vim_bindings"`           // Modal (Normal/Insert/Command) key handling.
	TabSize              int    `yaml:"tab_size"`               // Spaces inserted by Tab.
	DailyNotesDir        string `yaml:"daily_notes_dir"`        // Where daily notes and stats live.
	TypingTimeoutSeconds int    `yaml:"typing_timeout_seconds"` // Idle gap that ends a typing session.
	ShowPrompts          bool   `yaml:"show_prompts"`           // Show a writing prompt on an empty note.
	SystemClipboard      bool   `yaml:"system_clipboard"`       // Mirror yanked lines to the OS clipboard.
}

// Options are the command-line flags.
type Options struct {
	ConfigPath  string // Settings file to use instead of the default.
	ShowStats   bool   // Print the writing statistics report and exit.
	ShowInfo    bool   // Print resolved paths and settings and exit.
	ShowVersion bool   // Print the version and exit.
	ShowTheme   bool   // Preview the theme colors and exit.
	ForceVim    bool   // Enable vim bindings regardless of the settings file.
	UseLogFile  bool   // Whether to write debug logs to a file.
	LogFilePath string // Where to store the debug logs.
	File        string // File to edit instead of today's note.
}

// ParseOptions parses args (without the program name).
func ParseOptions(args []string) (Options, error) {
	var o Options
	set := flag.NewFlagSet("river", flag.ContinueOnError)
	set.StringVar(&o.ConfigPath, "config", "", "Path to config.yaml")
	set.BoolVar(&o.ShowStats, "stats", false, "Show writing statistics")
	set.BoolVar(&o.ShowInfo, "info", false, "Show resolved paths and settings")
	set.BoolVar(&o.ShowVersion, "version", false, "Show version")
	set.BoolVar(&o.ShowTheme, "theme", false, "Preview theme colors")
	set.BoolVar(&o.ForceVim, "vim", false, "Enable vim bindings")
	set.BoolVar(&o.UseLogFile, "log", false, "Enable logging to file")
	set.StringVar(&o.LogFilePath, "log-path", filepath.Join(os.TempDir(), "river-debug.log"), "Path to log file")
	if err := set.Parse(args); err != nil {
		return o, err
	}
	if set.NArg() > 1 {
		return o, fmt.Errorf("expected at most one file, got %d", set.NArg())
	}
	o.File = set.Arg(0)
	return o, nil
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	dir := "./DailyNotes"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, "Documents", "DailyNotes")
	}
	return Settings{
		VimBindings:          false,
		TabSize:              4,
		DailyNotesDir:        dir,
		TypingTimeoutSeconds: 180,
		ShowPrompts:          true,
		SystemClipboard:      false,
	}
}

// DefaultConfigPath returns <user config dir>/river/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "river", "config.yaml")
}

// LoadSettings reads path. A missing file is created with the defaults. A
// file that does not parse yields the defaults together with a warning;
// individual out-of-range values fall back to their defaults silently.
func LoadSettings(path string) (Settings, []string) {
	var warnings []string
	defaults := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := SaveSettings(path, defaults); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not create default config: %v", err))
		}
		return defaults, warnings
	}
	if err != nil {
		return defaults, append(warnings, fmt.Sprintf("could not read config: %v", err))
	}

	s := defaults
	if err := yaml.Unmarshal(data, &s); err != nil {
		return defaults, append(warnings, fmt.Sprintf("error parsing config file: %v", err))
	}
	if s.TabSize < 1 {
		s.TabSize = defaults.TabSize
	}
	if s.TypingTimeoutSeconds <= 0 {
		s.TypingTimeoutSeconds = defaults.TypingTimeoutSeconds
	}
	if strings.TrimSpace(s.DailyNotesDir) == "" {
		s.DailyNotesDir = defaults.DailyNotesDir
	}
	s.DailyNotesDir = expandHome(s.DailyNotesDir)
	return s, warnings
}

// SaveSettings writes s to path, creating parent directories.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
