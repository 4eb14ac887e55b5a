// Package tracker implements the time-entry accounting core: the state
// transitions that turn "task X became active at T1, inactive at T2" events
// into a per-day ledger of completed, day-pure time intervals. All functions
// here are pure over *AppState and take an explicit clock value, so they can
// be tested without touching persistence or wall time.
package tracker

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"toggler/internal/timeutil"
)

// Task is a globally registered (day-independent) task. Tasks are never
// deleted; archiving hides them from the archive day onward.
type Task struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Color      string     `json:"color,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

// Archived reports whether the task has been archived.
func (t *Task) Archived() bool {
	return t.ArchivedAt != nil
}

// TimeEntry is a closed interval of work on one task, wholly contained in a
// single calendar day. StartTime and EndTime are epoch milliseconds; an
// entry ending exactly at midnight belongs to the day it started on.
// Entries are immutable once recorded.
type TimeEntry struct {
	TaskID    string `json:"taskId"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Duration  int64  `json:"duration"` // always EndTime - StartTime
	Date      string `json:"date"`     // owning day key
}

// Session is a running (not yet closed) stretch of work. Modeling it as a
// single value keeps the task-id/start-time pair from ever being set
// independently.
type Session struct {
	TaskID    string `json:"taskId"`
	StartedAt int64  `json:"startedAt"` // epoch millis
}

// DailyData holds one calendar day's recorded entries plus, on at most one
// day across the whole state, the active session.
type DailyData struct {
	Date    string      `json:"date"`
	Entries []TimeEntry `json:"timeEntries"`
	Active  *Session    `json:"activeSession,omitempty"`
}

// AppState is the root aggregate persisted as a single JSON blob.
type AppState struct {
	Tasks       []Task                `json:"tasks"`
	Days        map[string]*DailyData `json:"dailyData"`
	CurrentDate string                `json:"currentDate"`
}

// NewState returns an empty state initialized to the given clock's day.
func NewState(now time.Time) *AppState {
	return &AppState{
		Tasks:       []Task{},
		Days:        map[string]*DailyData{},
		CurrentDate: timeutil.Today(now),
	}
}

// Normalize repairs nil collections after a JSON round trip so callers can
// index without nil checks.
func (s *AppState) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Days == nil {
		s.Days = map[string]*DailyData{}
	}
	for key, day := range s.Days {
		if day == nil {
			s.Days[key] = &DailyData{Date: key, Entries: []TimeEntry{}}
			continue
		}
		if day.Date == "" {
			day.Date = key
		}
		if day.Entries == nil {
			day.Entries = []TimeEntry{}
		}
	}
}

// Day returns the DailyData for a day key, creating it lazily.
func (s *AppState) Day(key string) *DailyData {
	if s.Days == nil {
		s.Days = map[string]*DailyData{}
	}
	day, ok := s.Days[key]
	if !ok {
		day = &DailyData{Date: key, Entries: []TimeEntry{}}
		s.Days[key] = day
	}
	return day
}

// DayEntries returns the recorded entries for a day without creating it.
func (s *AppState) DayEntries(key string) []TimeEntry {
	if day, ok := s.Days[key]; ok && day != nil {
		return day.Entries
	}
	return nil
}

// ActiveSession returns the day key owning the active session and the
// session itself, or ("", nil) when everything is idle. At most one day can
// own a session at a time; this is maintained by the transition functions,
// not by a lock.
func (s *AppState) ActiveSession() (string, *Session) {
	for key, day := range s.Days {
		if day != nil && day.Active != nil {
			return key, day.Active
		}
	}
	return "", nil
}

// TaskByID looks up a task, archived or not. Returns nil if unknown.
func (s *AppState) TaskByID(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// newTaskID generates a unique task id.
func newTaskID(now time.Time) (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("t_%d_%s", now.UnixMilli(), hex.EncodeToString(b[:])), nil
}
