package main

// The -stats report: a summary of recent writing activity printed to stdout
// instead of starting the editor.

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	reportWeekDays  = 7
	reportNotesDays = 30
	maxStreakDays   = 3650
	chartWidth      = 30
)

// Report holds the numbers shown by -stats.
type Report struct {
	Today            DailyStats
	Streak           int         // Consecutive days ending today with typing time.
	WeeklyAvgMinutes float64     // Mean typing minutes over the last seven days.
	NotesLast30      int         // Daily note files among the last thirty days.
	Week             []DayRecord // The last seven days, oldest first.
}

// BuildReport gathers the report for the day of now.
func BuildReport(store *StatsStore, dir string, now time.Time) (Report, error) {
	var r Report

	week, err := store.Range(now, reportWeekDays)
	if err != nil {
		return r, err
	}
	var total int64
	for _, d := range week {
		total += d.TypingSeconds
	}
	r.Today = week[0].DailyStats
	r.WeeklyAvgMinutes = float64(total) / reportWeekDays / 60

	r.Week = make([]DayRecord, len(week))
	for i, d := range week {
		r.Week[len(week)-1-i] = d
	}

	for r.Streak < maxStreakDays {
		rec, _, err := store.Get(now.AddDate(0, 0, -r.Streak).Format(dayLayout))
		if err != nil {
			return r, err
		}
		if rec.TypingSeconds <= 0 {
			break
		}
		r.Streak++
	}

	r.NotesLast30 = CountNotes(dir, now, reportNotesDays)
	return r, nil
}

var (
	reportTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("215"))
	reportLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(16)
	reportValue = lipgloss.NewStyle().Foreground(lipgloss.Color("254")).Bold(true)
	reportBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("29"))
	reportBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// Render lays the report out for a terminal.
func (r Report) Render() string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, reportLabel.Render(label), reportValue.Render(value))
	}

	summary := []string{
		reportTitle.Render("Writing statistics"),
		"",
		row("Today", fmt.Sprintf("%d min, %d words", r.Today.TypingSeconds/60, r.Today.WordCount)),
		row("Streak", pluralDays(r.Streak)),
		row("Weekly average", fmt.Sprintf("%.1f min/day", r.WeeklyAvgMinutes)),
		row("Notes (30 days)", fmt.Sprintf("%d", r.NotesLast30)),
		"",
		reportTitle.Render("Last 7 days"),
	}
	summary = append(summary, r.chart()...)
	return reportBox.Render(lipgloss.JoinVertical(lipgloss.Left, summary...))
}

// chart draws one bar per day scaled to the busiest day.
func (r Report) chart() []string {
	var busiest int64
	for _, d := range r.Week {
		if d.TypingSeconds > busiest {
			busiest = d.TypingSeconds
		}
	}
	lines := make([]string, 0, len(r.Week))
	for _, d := range r.Week {
		n := 0
		if busiest > 0 {
			n = int(d.TypingSeconds * chartWidth / busiest)
		}
		label := d.Day
		if t, err := time.ParseInLocation(dayLayout, d.Day, time.Local); err == nil {
			label = t.Format("Mon 01-02")
		}
		lines = append(lines, fmt.Sprintf("%s %s %d min",
			reportLabel.Render(label),
			reportBar.Render(strings.Repeat("█", n)),
			d.TypingSeconds/60))
	}
	return lines
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
