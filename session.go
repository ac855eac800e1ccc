package main

// Active writing time. Only the spans between edits count; any gap longer
// than the timeout ends the current session and is not counted.

import "time"

const dayLayout = "2006-01-02"

// TypingSession tracks today's accumulated writing time.
type TypingSession struct {
	timeout     time.Duration
	open        bool          // Whether a session is in progress.
	start       time.Time     // Start of the span not yet folded into accumulated.
	last        time.Time     // Time of the most recent edit.
	accumulated time.Duration // Folded writing time for day.
	day         string        // Local calendar day the totals belong to.
}

// NewTypingSession starts tracking for the day of now, resuming from an
// already accumulated duration.
func NewTypingSession(timeout time.Duration, accumulated time.Duration, now time.Time) *TypingSession {
	return &TypingSession{
		timeout:     timeout,
		accumulated: accumulated,
		day:         now.Format(dayLayout),
	}
}

// Day returns the calendar day the session totals belong to.
func (s *TypingSession) Day() string {
	return s.day
}

// Open reports whether a session is in progress.
func (s *TypingSession) Open() bool {
	return s.open
}

// Record registers an edit at now, opening a new session when none is open
// or the previous edit is older than the timeout.
func (s *TypingSession) Record(now time.Time) {
	if !s.open || now.Sub(s.last) > s.timeout {
		s.fold()
		s.open = true
		s.start = now
	}
	s.last = now
}

// Checkpoint folds the span covered so far into the accumulated total so a
// crash loses at most one checkpoint interval. A session idle for longer than
// the timeout is closed.
func (s *TypingSession) Checkpoint(now time.Time) {
	if !s.open {
		return
	}
	s.fold()
	if now.Sub(s.last) > s.timeout {
		s.open = false
		return
	}
	s.start = s.last
}

// Close folds the final span and ends the session.
func (s *TypingSession) Close() {
	s.fold()
	s.open = false
}

// fold moves the span between start and the last edit into accumulated.
func (s *TypingSession) fold() {
	if !s.open {
		return
	}
	if span := s.last.Sub(s.start); span > 0 {
		s.accumulated += span
	}
	s.start = s.last
}

// Total returns accumulated time plus the span not yet folded. Time after the
// last edit is never included, so the total does not depend on now.
func (s *TypingSession) Total(now time.Time) time.Duration {
	total := s.accumulated
	if s.open {
		if span := s.last.Sub(s.start); span > 0 {
			total += span
		}
	}
	return total
}

// Rollover resets the totals when now falls on a later calendar day than the
// session. It returns the finished day and its total in seconds.
func (s *TypingSession) Rollover(now time.Time) (string, int64, bool) {
	today := now.Format(dayLayout)
	if today == s.day {
		return "", 0, false
	}
	s.Close()
	day, secs := s.day, int64(s.accumulated/time.Second)
	s.day = today
	s.accumulated = 0
	return day, secs, true
}
