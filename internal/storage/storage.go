// Package storage persists the whole application state as a single JSON
// document and wraps the tracker's pure transitions in load-modify-save
// operations. Every mutator reconciles stale sessions against the current
// clock before applying its change, so midnight rollover happens on the
// first touch of a new day even if the app slept through it.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toggler/internal/fsutil"
	"toggler/internal/tracker"
)

// dataFileName is the single key under which all state lives.
const dataFileName = "work-task-toggler-data.json"

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Storage handles all file I/O for the app state.
type Storage struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Storage rooted at dataDir, creating the directory and an
// empty state file if they don't exist yet.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir, now: time.Now}

	if !fileExists(s.DataFilePath()) {
		if err := s.Save(tracker.NewState(s.Now())); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// DataFilePath returns the full path of the state file.
func (s *Storage) DataFilePath() string {
	return filepath.Join(s.dataDir, dataFileName)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// Save writes the state to disk atomically, keeping a best-effort .bak of
// the previous contents.
func (s *Storage) Save(state *tracker.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", dataFileName, err)
	}

	path := s.DataFilePath()
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", dataFileName, err)
	}
	return nil
}

// Load reads the state from disk. A missing file yields a fresh empty
// state. A corrupt file is recovered from the .bak copy when possible,
// otherwise quarantined and replaced with an empty state; in both cases
// the returned state is usable and the error only describes what happened.
func (s *Storage) Load() (*tracker.AppState, error) {
	state := tracker.NewState(s.Now())
	path := s.DataFilePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.Save(state); err != nil {
				return state, err
			}
			return state, nil
		}
		return state, fmt.Errorf("read %s: %w", dataFileName, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return state, s.recoverCorrupt(state, fmt.Errorf("%s is empty", dataFileName))
	}

	if err := json.Unmarshal(data, state); err != nil {
		return state, s.recoverCorrupt(state, fmt.Errorf("parse %s: %w", dataFileName, err))
	}
	state.Normalize()
	return state, nil
}

// recoverCorrupt salvages what it can after a failed parse: restore from
// the .bak copy if it parses, else quarantine the broken file and reset
// state to defaults. Never fatal; the returned error is informational.
func (s *Storage) recoverCorrupt(state *tracker.AppState, cause error) error {
	path := s.DataFilePath()
	quarantine := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))

	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		restored := tracker.NewState(s.Now())
		if err := json.Unmarshal(bakData, restored); err == nil {
			restored.Normalize()
			*state = *restored
			_ = os.Rename(path, quarantine)
			_ = s.Save(state)
			return fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), dataFileName)
		}
	}

	*state = *tracker.NewState(s.Now())
	_ = os.Rename(path, quarantine)
	_ = s.Save(state)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), quarantine)
}

// LoadReconciled loads the state and rolls any stale session forward to
// the current clock, persisting the result if anything moved.
func (s *Storage) LoadReconciled() (*tracker.AppState, error) {
	state, loadErr := s.Load()
	if tracker.Reconcile(state, s.Now()) {
		if err := s.Save(state); err != nil {
			return state, err
		}
	}
	return state, loadErr
}

// mutate runs fn against the reconciled state and persists the result.
func (s *Storage) mutate(fn func(state *tracker.AppState, now time.Time) error) error {
	state, err := s.Load()
	if err != nil {
		// Recovery errors are informational; the state is usable.
		state.Normalize()
	}
	now := s.Now()
	tracker.Reconcile(state, now)
	if err := fn(state, now); err != nil {
		return err
	}
	return s.Save(state)
}

// AddTask registers a new task and persists the state.
func (s *Storage) AddTask(name string) (*tracker.Task, error) {
	var added tracker.Task
	err := s.mutate(func(state *tracker.AppState, now time.Time) error {
		task, err := tracker.AddTask(state, name, now)
		if err != nil {
			return err
		}
		added = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// ToggleTask flips a task between active and inactive and persists the
// state. Unknown ids are rejected.
func (s *Storage) ToggleTask(taskID string) error {
	return s.mutate(func(state *tracker.AppState, now time.Time) error {
		if state.TaskByID(taskID) == nil {
			return fmt.Errorf("task not found: %s", taskID)
		}
		tracker.Toggle(state, taskID, now)
		return nil
	})
}

// StopActive closes the running session, if any, and persists the state.
func (s *Storage) StopActive() error {
	return s.mutate(func(state *tracker.AppState, now time.Time) error {
		tracker.StopActive(state, now)
		return nil
	})
}

// ArchiveTask archives a task (stopping its session if running) and
// persists the state.
func (s *Storage) ArchiveTask(taskID string) error {
	return s.mutate(func(state *tracker.AppState, now time.Time) error {
		if state.TaskByID(taskID) == nil {
			return fmt.Errorf("task not found: %s", taskID)
		}
		tracker.ArchiveTask(state, taskID, now)
		return nil
	})
}

// Reconcile rolls a stale session forward without any other mutation.
// Reports whether the state changed.
func (s *Storage) Reconcile() (bool, error) {
	state, loadErr := s.Load()
	if !tracker.Reconcile(state, s.Now()) {
		return false, loadErr
	}
	if err := s.Save(state); err != nil {
		return true, err
	}
	return true, loadErr
}
