package tracker

import (
	"time"

	"toggler/internal/timeutil"
)

// SplitEntry breaks the interval [start, end) into completed entries, one
// per local calendar day, cut at each midnight crossed. The pieces are
// contiguous and their durations sum to end - start. Fragments of zero
// length (a session that started exactly at midnight and is cut at that
// same midnight) are not emitted. Returns nil when start >= end.
func SplitEntry(taskID string, start, end time.Time) []TimeEntry {
	if !start.Before(end) {
		return nil
	}

	var entries []TimeEntry
	cur := start
	for cur.Before(end) {
		boundary := timeutil.NextMidnight(cur)
		segEnd := end
		if boundary.Before(end) {
			segEnd = boundary
		}
		startMs := cur.UnixMilli()
		endMs := segEnd.UnixMilli()
		if endMs > startMs {
			entries = append(entries, TimeEntry{
				TaskID:    taskID,
				StartTime: startMs,
				EndTime:   endMs,
				Duration:  endMs - startMs,
				Date:      timeutil.DayKey(cur),
			})
		}
		cur = segEnd
	}
	return entries
}

// recordInterval splits an interval and appends each piece to its owning
// day's ledger.
func recordInterval(s *AppState, taskID string, start, end time.Time) {
	for _, e := range SplitEntry(taskID, start, end) {
		day := s.Day(e.Date)
		day.Entries = append(day.Entries, e)
	}
}
