// This file implements import of the browser app's JSON export.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"toggler/internal/storage"
	"toggler/internal/timeutil"
	"toggler/internal/tracker"
)

// WebImporter handles JSON blobs exported from the browser tracker.
type WebImporter struct{}

// Name returns the importer name.
func (w *WebImporter) Name() string {
	return "web"
}

// legacyState mirrors the browser app's persisted shape. Task lifecycle
// timestamps are ISO-8601 strings, entry and session times are epoch
// milliseconds, and the active task is a pair of optional fields on the
// day rather than a session value.
type legacyState struct {
	Tasks       []legacyTask         `json:"tasks"`
	DailyData   map[string]legacyDay `json:"dailyData"`
	CurrentDate string               `json:"currentDate"`
}

type legacyTask struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	CreatedAt  string  `json:"createdAt"`
	ArchivedAt *string `json:"archivedAt"`
}

type legacyDay struct {
	Date            string        `json:"date"`
	TimeEntries     []legacyEntry `json:"timeEntries"`
	ActiveTaskID    string        `json:"activeTaskId"`
	ActiveStartTime *int64        `json:"activeStartTime"`
}

type legacyEntry struct {
	TaskID    string `json:"taskId"`
	StartTime int64  `json:"startTime"`
	EndTime   *int64 `json:"endTime"`
	Duration  int64  `json:"duration"`
	Date      string `json:"date"`
}

// Import merges the exported blob into the live state. Tasks and entries
// already present (same id, or same task/start/end triple) are skipped, so
// importing the same export twice is harmless.
func (w *WebImporter) Import(reader io.Reader, store *storage.Storage) (*ImportResult, error) {
	legacy, err := parseLegacy(reader)
	if err != nil {
		return nil, err
	}

	state, err := store.LoadReconciled()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	result := &ImportResult{}

	for _, lt := range legacy.Tasks {
		if strings.TrimSpace(lt.ID) == "" || strings.TrimSpace(lt.Name) == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("task %q: missing id or name", lt.Name))
			continue
		}
		if state.TaskByID(lt.ID) != nil {
			result.Skipped++
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, lt.CreatedAt)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("task %q: bad createdAt %q", lt.Name, lt.CreatedAt))
			continue
		}
		task := tracker.Task{
			ID:        lt.ID,
			Name:      strings.TrimSpace(lt.Name),
			Color:     lt.Color,
			CreatedAt: createdAt,
		}
		if lt.ArchivedAt != nil {
			at, err := time.Parse(time.RFC3339, *lt.ArchivedAt)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("task %q: bad archivedAt %q", lt.Name, *lt.ArchivedAt))
				continue
			}
			task.ArchivedAt = &at
		}
		state.Tasks = append(state.Tasks, task)
		result.Tasks++
	}

	for _, ld := range legacy.DailyData {
		for _, le := range ld.TimeEntries {
			if le.EndTime == nil || *le.EndTime <= le.StartTime || le.TaskID == "" {
				result.Skipped++
				continue
			}
			// Re-split on import: the browser sometimes recorded entries
			// straddling midnight when a day transition was missed.
			pieces := tracker.SplitEntry(le.TaskID, time.UnixMilli(le.StartTime), time.UnixMilli(*le.EndTime))
			for _, e := range pieces {
				if hasEntry(state, e) {
					result.Skipped++
					continue
				}
				day := state.Day(e.Date)
				day.Entries = append(day.Entries, e)
				result.Entries++
			}
		}

		// The loose active pair becomes a session, but only when both
		// halves are present and nothing is running locally.
		if ld.ActiveTaskID != "" && ld.ActiveStartTime != nil {
			if _, sess := state.ActiveSession(); sess == nil {
				// Home the session on the day its start falls in, not the
				// day key the browser left it under.
				day := timeutil.DayKeyMillis(*ld.ActiveStartTime)
				state.Day(day).Active = &tracker.Session{
					TaskID:    ld.ActiveTaskID,
					StartedAt: *ld.ActiveStartTime,
				}
			} else {
				result.Skipped++
			}
		} else if ld.ActiveTaskID != "" || ld.ActiveStartTime != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("day %s: half-set active task dropped", ld.Date))
		}
	}

	// An imported session may be days old; roll it forward before saving.
	tracker.Reconcile(state, store.Now())

	if err := store.Save(state); err != nil {
		return nil, err
	}
	return result, nil
}

// Preview reads the blob and reports what it holds without touching storage.
func (w *WebImporter) Preview(reader io.Reader) (*Summary, error) {
	legacy, err := parseLegacy(reader)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Tasks:       len(legacy.Tasks),
		Days:        len(legacy.DailyData),
		CurrentDate: legacy.CurrentDate,
	}
	for _, ld := range legacy.DailyData {
		sum.Entries += len(ld.TimeEntries)
		if ld.ActiveTaskID != "" && ld.ActiveStartTime != nil {
			sum.HasActive = true
		}
	}
	return sum, nil
}

func parseLegacy(reader io.Reader) (*legacyState, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var legacy legacyState
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &legacy, nil
}

func hasEntry(state *tracker.AppState, e tracker.TimeEntry) bool {
	for _, existing := range state.DayEntries(e.Date) {
		if existing.TaskID == e.TaskID && existing.StartTime == e.StartTime && existing.EndTime == e.EndTime {
			return true
		}
	}
	return false
}
