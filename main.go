package main

// The entry point of river. It handles command-line flags, loads settings,
// resolves today's note, opens the statistics store, initializes the terminal
// (termbox) and starts the main editor loop.

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/nsf/termbox-go"
)

// Version of the editor, injected at build time.
var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "river: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := ParseOptions(args)
	if err != nil {
		return err
	}

	// If -version flag is provided, print version and exit.
	if opts.ShowVersion {
		fmt.Println(Version)
		return nil
	}

	// Preview theme colors if -theme flag is provided.
	if opts.ShowTheme {
		return PrintTheme()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	settings, warnings := LoadSettings(configPath)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "river: %s\n", w)
	}
	if opts.ForceVim {
		settings.VimBindings = true
	}
	now := time.Now()

	// Print resolved paths if -info flag is provided.
	if opts.ShowInfo {
		PrintInfo(os.Stdout, configPath, settings, now)
		return nil
	}

	if err := os.MkdirAll(settings.DailyNotesDir, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	statsPath := filepath.Join(settings.DailyNotesDir, statsFileName)

	if opts.ShowStats {
		store, err := OpenStatsStore(statsPath)
		if err != nil {
			return err
		}
		defer store.Close()
		report, err := BuildReport(store, settings.DailyNotesDir, now)
		if err != nil {
			return err
		}
		fmt.Println(report.Render())
		return nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("stdin is not a terminal")
	}

	filename := opts.File
	if filename == "" {
		filename, err = DailyNotePath(settings.DailyNotesDir, now)
		if err != nil {
			return err
		}
		if err := EnsureDailyNote(filename, now); err != nil {
			return fmt.Errorf("failed to create daily note: %w", err)
		}
	}

	logPath := ""
	if opts.UseLogFile {
		logPath = opts.LogFilePath
	}

	// A second instance keeps editing without statistics rather than failing.
	store, storeErr := OpenStatsStore(statsPath)
	if storeErr == nil {
		defer store.Close()
	}

	editor := NewEditor(settings, store, logPath)
	if storeErr != nil {
		editor.reportError("Stats", fmt.Errorf("statistics disabled: %w", storeErr))
	}
	if err := editor.LoadFile(filename); err != nil {
		return err
	}

	// Initialize termbox for TUI handling.
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to init termbox: %w", err)
	}
	defer termbox.Close()

	// Escape key handling is needed for leaving Insert mode.
	termbox.SetInputMode(termbox.InputEsc)
	// Use 256 color mode for better aesthetics.
	termbox.SetOutputMode(termbox.Output256)

	// Enter the main event loop.
	editor.Run()
	return editor.Shutdown()
}
