package main

// Daily note files: locating today's note, creating it with a date header, and
// moving buffer content to and from disk.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DailyNotePath returns <dir>/<YYYY-MM-DD>.md for the day of now, creating
// dir if needed.
func DailyNotePath(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create notes directory: %w", err)
	}
	return filepath.Join(dir, now.Format(dayLayout)+".md"), nil
}

// DailyNoteHeader is the content a new daily note starts with.
func DailyNoteHeader(now time.Time) string {
	return fmt.Sprintf("# %s\n\n", now.Format("Monday, January 02, 2006"))
}

// EnsureDailyNote creates the note at path with a date header unless it
// already exists.
func EnsureDailyNote(path string, now time.Time) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(DailyNoteHeader(now)), 0644)
}

// LoadLines reads path into lines. A missing or empty file yields a single
// empty line.
func LoadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{""}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readLines(file)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == io.EOF && line == "" {
			break
		}

		// Remove trailing newline
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, line)

		if err == io.EOF {
			break
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

// SaveLines overwrites path with lines joined by line feeds. The write is not
// atomic: a crash mid-write can leave a truncated file.
func SaveLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	for i, line := range lines {
		if i > 0 {
			if _, err := writer.WriteString("\n"); err != nil {
				file.Close()
				return err
			}
		}
		if _, err := writer.WriteString(line); err != nil {
			file.Close()
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// CountNotes returns how many of the days ending at end have a note file in
// dir.
func CountNotes(dir string, end time.Time, days int) int {
	n := 0
	for i := 0; i < days; i++ {
		name := end.AddDate(0, 0, -i).Format(dayLayout) + ".md"
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			n++
		}
	}
	return n
}
