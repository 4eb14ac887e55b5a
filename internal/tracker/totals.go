package tracker

import (
	"fmt"
	"time"

	"toggler/internal/timeutil"
)

// TotalTime returns the milliseconds logged for taskID on the given day:
// the sum of that day's completed entries, plus the live elapsed time of
// the running session when the viewed day is today and that task is the
// one running. Historical days never include a live component.
func TotalTime(s *AppState, taskID, day string, now time.Time) int64 {
	var total int64
	for _, e := range s.DayEntries(day) {
		if e.TaskID == taskID {
			total += e.Duration
		}
	}
	if day == timeutil.Today(now) {
		if _, sess := s.ActiveSession(); sess != nil && sess.TaskID == taskID {
			if live := now.UnixMilli() - sess.StartedAt; live > 0 {
				total += live
			}
		}
	}
	return total
}

// DayTotal returns the milliseconds logged across all tasks on a day,
// including the live session component when the day is today.
func DayTotal(s *AppState, day string, now time.Time) int64 {
	var total int64
	for _, e := range s.DayEntries(day) {
		total += e.Duration
	}
	if day == timeutil.Today(now) {
		if _, sess := s.ActiveSession(); sess != nil {
			if live := now.UnixMilli() - sess.StartedAt; live > 0 {
				total += live
			}
		}
	}
	return total
}

// FormatTime renders a millisecond duration as "1h 5m 0s", "3m 20s" or
// "45s". Sub-second remainders truncate; negative values clamp to "0s".
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
