// Package ui provides terminal user interface components for the toggler app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All storage operations should return these messages to keep
// the event loop non-blocking.
package ui

import (
	"toggler/internal/tracker"
)

// =============================================================================
// State Messages
// =============================================================================

// stateLoadedMsg is sent when the full state blob is loaded from storage.
type stateLoadedMsg struct {
	state *tracker.AppState
	err   error
}

// =============================================================================
// Task Messages
// =============================================================================

// taskAddedMsg is sent when a new task is created.
type taskAddedMsg struct {
	task *tracker.Task
	err  error
}

// taskToggledMsg is sent when a task's session is toggled.
type taskToggledMsg struct {
	id      string
	name    string
	started bool // true if a session started, false if one stopped
	err     error
}

// taskArchivedMsg is sent when a task is archived.
type taskArchivedMsg struct {
	id   string
	name string
	err  error
}

// =============================================================================
// Rollover Messages
// =============================================================================

// reconciledMsg is sent after a midnight rollover check runs against storage.
type reconciledMsg struct {
	changed bool
	err     error
}

// =============================================================================
// Export Messages
// =============================================================================

// dayExportedMsg is sent when a day's entries have been written to a CSV file.
type dayExportedMsg struct {
	day  string
	path string
	err  error
}

// =============================================================================
// Notification Messages
// =============================================================================

// notifiedMsg is sent after a desktop notification attempt.
type notifiedMsg struct {
	err error
}
