package tracker

import (
	"time"

	"toggler/internal/timeutil"
)

// Reconcile moves a stale active session forward across any midnights that
// have passed since its day: the elapsed portion of each crossed day is
// recorded as completed entries, and the session is re-homed to today with
// its start clamped to today's midnight. It also refreshes CurrentDate.
// Idempotent: calling it twice with the same now is a no-op the second
// time. Reports whether anything changed.
func Reconcile(s *AppState, now time.Time) bool {
	changed := false

	today := timeutil.Today(now)
	if s.CurrentDate != today {
		s.CurrentDate = today
		changed = true
	}

	dayKey, sess := s.ActiveSession()
	if sess == nil || dayKey >= today {
		return changed
	}

	// Record everything from the session start up to today's midnight,
	// then keep the session running from midnight on today's ledger.
	start := time.UnixMilli(sess.StartedAt)
	midnight := timeutil.StartOfDay(now)
	recordInterval(s, sess.TaskID, start, midnight)

	s.Day(dayKey).Active = nil
	s.Day(today).Active = &Session{
		TaskID:    sess.TaskID,
		StartedAt: midnight.UnixMilli(),
	}
	return true
}

// StartTask begins a session for taskID on today's ledger. Any running
// session (for another task) is stopped first. Starting the already-active
// task is a no-op.
func StartTask(s *AppState, taskID string, now time.Time) {
	_, sess := s.ActiveSession()
	if sess != nil {
		if sess.TaskID == taskID {
			return
		}
		StopActive(s, now)
	}
	s.Day(timeutil.Today(now)).Active = &Session{
		TaskID:    taskID,
		StartedAt: now.UnixMilli(),
	}
}

// StopActive closes the running session, if any, recording its elapsed
// interval split across the days it spans. Reports whether a session was
// stopped.
func StopActive(s *AppState, now time.Time) bool {
	dayKey, sess := s.ActiveSession()
	if sess == nil {
		return false
	}
	recordInterval(s, sess.TaskID, time.UnixMilli(sess.StartedAt), now)
	s.Day(dayKey).Active = nil
	return true
}

// Toggle flips taskID between active and inactive: if it is running it is
// stopped; otherwise any other running task is stopped and taskID starts.
func Toggle(s *AppState, taskID string, now time.Time) {
	_, sess := s.ActiveSession()
	if sess != nil && sess.TaskID == taskID {
		StopActive(s, now)
		return
	}
	StartTask(s, taskID, now)
}

// ActiveTaskID returns the id of the running task, or "" when idle.
func (s *AppState) ActiveTaskID() string {
	_, sess := s.ActiveSession()
	if sess == nil {
		return ""
	}
	return sess.TaskID
}
