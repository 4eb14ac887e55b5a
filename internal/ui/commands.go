// Package ui provides terminal user interface components for the toggler app.
// This file contains tea.Cmd factories that wrap storage operations. These
// commands run I/O operations asynchronously to keep the Bubble Tea event
// loop responsive. Each command returns a corresponding message type defined
// in messages.go.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"toggler/internal/notify"
	"toggler/internal/reports"
	"toggler/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// loadStateCmd returns a command that loads the state blob, rolling any stale
// session forward first.
func loadStateCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		state, err := store.LoadReconciled()
		return stateLoadedMsg{state: state, err: err}
	}
}

// addTaskCmd returns a command that creates a new task.
func addTaskCmd(store *storage.Storage, name string) tea.Cmd {
	return func() tea.Msg {
		task, err := store.AddTask(name)
		return taskAddedMsg{task: task, err: err}
	}
}

// toggleTaskCmd returns a command that starts or stops a task's session.
func toggleTaskCmd(store *storage.Storage, id, name string) tea.Cmd {
	return func() tea.Msg {
		// Remember whether this task was running to report the direction.
		wasActive := false
		if state, err := store.Load(); err == nil {
			wasActive = state.ActiveTaskID() == id
		}

		err := store.ToggleTask(id)
		return taskToggledMsg{id: id, name: name, started: !wasActive, err: err}
	}
}

// archiveTaskCmd returns a command that archives a task.
func archiveTaskCmd(store *storage.Storage, id, name string) tea.Cmd {
	return func() tea.Msg {
		err := store.ArchiveTask(id)
		return taskArchivedMsg{id: id, name: name, err: err}
	}
}

// reconcileCmd returns a command that rolls a session spanning midnight
// forward and persists the result.
func reconcileCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		changed, err := store.Reconcile()
		return reconciledMsg{changed: changed, err: err}
	}
}

// exportDayCmd returns a command that writes the given day's entries as CSV
// next to the current working directory.
func exportDayCmd(store *storage.Storage, day string) tea.Cmd {
	return func() tea.Msg {
		gen := reports.NewGenerator(store)
		report, err := gen.GenerateDaily(day)
		if err != nil {
			return dayExportedMsg{day: day, err: err}
		}

		path := filepath.Join(".", fmt.Sprintf("toggler-%s.csv", day))
		if err := os.WriteFile(path, []byte(reports.FormatDailyCSV(report)), 0644); err != nil {
			return dayExportedMsg{day: day, err: err}
		}
		return dayExportedMsg{day: day, path: path}
	}
}

// notifyCmd returns a command that sends a desktop notification.
func notifyCmd(notifier notify.Notifier, title, message string, sound bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if sound {
			err = notifier.SendWithSound(title, message)
		} else {
			err = notifier.Send(title, message)
		}
		return notifiedMsg{err: err}
	}
}
