package tracker

import (
	"errors"
	"strings"
	"time"

	"toggler/internal/timeutil"
)

// ErrEmptyName is returned when a task name is empty after trimming.
var ErrEmptyName = errors.New("task name cannot be empty")

// maxNameLength caps task names at a size that still renders in a narrow
// terminal pane.
const maxNameLength = 100

// taskColors is the palette cycled through as tasks are added.
var taskColors = []string{
	"#10b981", "#3b82f6", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#14b8a6", "#f97316",
}

// AddTask registers a new task and returns it. The name is trimmed; an
// empty result is rejected. Duplicate names are allowed.
func AddTask(s *AppState, name string, now time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}

	id, err := newTaskID(now)
	if err != nil {
		return nil, err
	}
	s.Tasks = append(s.Tasks, Task{
		ID:        id,
		Name:      name,
		Color:     taskColors[len(s.Tasks)%len(taskColors)],
		CreatedAt: now,
	})
	return &s.Tasks[len(s.Tasks)-1], nil
}

// ArchiveTask marks the task archived as of now and stops its session if it
// is the one running. Archiving an already-archived or unknown task is a
// no-op. Recorded entries for the task are kept.
func ArchiveTask(s *AppState, taskID string, now time.Time) {
	task := s.TaskByID(taskID)
	if task == nil || task.Archived() {
		return
	}
	if s.ActiveTaskID() == taskID {
		StopActive(s, now)
	}
	at := now
	task.ArchivedAt = &at
}

// VisibleOn returns the tasks that belong on the given day's list, in
// insertion order: created on or before that day, and not yet archived as
// of it. A task archived on day D disappears from D onward but still shows
// on earlier days.
func VisibleOn(s *AppState, day string) []Task {
	var out []Task
	for _, t := range s.Tasks {
		if timeutil.DayKey(t.CreatedAt) > day {
			continue
		}
		if t.ArchivedAt != nil && timeutil.DayKey(*t.ArchivedAt) <= day {
			continue
		}
		out = append(out, t)
	}
	return out
}
