// Package ui provides terminal user interface components for the toggler app.
// This file contains tests for the main App model, including layout behavior
// and day navigation.
package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"toggler/internal/config"
	"toggler/internal/timeutil"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := createTestStorage(t)
	styles := createTestStyles()
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmArchive:        true,
		NarrowLayoutThreshold: 80,
	}
	return NewApp(store, styles, cfg)
}

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Narrow (60)", 60, LayoutNarrow},
		{"At threshold (79)", 79, LayoutNarrow},
		{"At threshold (80)", 80, LayoutWide},
		{"Wide (100)", 100, LayoutWide},
		{"Very wide (200)", 200, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})

			if app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, app.layoutMode)
			}
		})
	}
}

// TestApp_NarrowLayoutShowsTabBar verifies the tab bar in narrow mode.
func TestApp_NarrowLayoutShowsTabBar(t *testing.T) {
	setupTest(t)
	app := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if app.activePane != PaneTasks {
		t.Errorf("Expected default active pane to be Tasks")
	}

	view := app.View()

	if !strings.Contains(view, "[Tasks]") {
		t.Error("Expected to see [Tasks] tab highlighted in narrow mode")
	}
	if !strings.Contains(view, "Summary") {
		t.Error("Expected to see Summary tab in narrow mode")
	}
}

// TestApp_WideLayoutShowsBothPanes verifies both panes are shown in wide mode.
func TestApp_WideLayoutShowsBothPanes(t *testing.T) {
	setupTest(t)
	app := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	if app.layoutMode != LayoutWide {
		t.Errorf("Expected LayoutWide at width 120, got %v", app.layoutMode)
	}

	view := app.View()

	if !strings.Contains(view, "TASKS") {
		t.Error("Expected to see TASKS pane in wide mode")
	}
	if !strings.Contains(view, "SUMMARY") {
		t.Error("Expected to see SUMMARY pane in wide mode")
	}
}

// TestApp_CustomThreshold verifies custom threshold configuration.
func TestApp_CustomThreshold(t *testing.T) {
	store := createTestStorage(t)
	styles := createTestStyles()
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 100,
	}

	app := NewApp(store, styles, cfg)

	app.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if app.layoutMode != LayoutNarrow {
		t.Errorf("Expected LayoutNarrow at width 90 with threshold 100, got %v", app.layoutMode)
	}

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if app.layoutMode != LayoutWide {
		t.Errorf("Expected LayoutWide at width 100 with threshold 100, got %v", app.layoutMode)
	}
}

// TestApp_PaneSwitching verifies pane switching cycles between both panes.
func TestApp_PaneSwitching(t *testing.T) {
	app := newTestApp(t)

	if app.activePane != PaneTasks {
		t.Errorf("Expected initial pane to be Tasks")
	}

	app.switchPane()
	if app.activePane != PaneSummary {
		t.Errorf("Expected pane to be Summary after switch, got %v", app.activePane)
	}
	if !app.summaryPane.IsFocused() || app.taskPane.IsFocused() {
		t.Error("Focus did not follow the active pane")
	}

	app.switchPane()
	if app.activePane != PaneTasks {
		t.Errorf("Expected pane to cycle back to Tasks, got %v", app.activePane)
	}
}

// TestApp_DayNavigation verifies moving through days is capped at today.
func TestApp_DayNavigation(t *testing.T) {
	app := newTestApp(t)

	today := timeutil.Today(time.Now())
	yesterday := timeutil.AddDays(today, -1)

	if app.viewedDay != today {
		t.Fatalf("viewedDay = %q, want %q", app.viewedDay, today)
	}

	app.Update(keyMsg("h"))
	if app.viewedDay != yesterday {
		t.Errorf("after h: viewedDay = %q, want %q", app.viewedDay, yesterday)
	}

	app.Update(keyMsg("l"))
	if app.viewedDay != today {
		t.Errorf("after l: viewedDay = %q, want %q", app.viewedDay, today)
	}

	// Cannot navigate into the future.
	app.Update(keyMsg("l"))
	if app.viewedDay != today {
		t.Errorf("after l at today: viewedDay = %q, want %q", app.viewedDay, today)
	}

	app.Update(keyMsg("h"))
	app.Update(keyMsg("h"))
	app.Update(keyMsg("t"))
	if app.viewedDay != today {
		t.Errorf("after t: viewedDay = %q, want %q", app.viewedDay, today)
	}
}

// TestApp_ArchiveConfirmation verifies the archive overlay flow.
func TestApp_ArchiveConfirmation(t *testing.T) {
	setupTest(t)
	app := newTestApp(t)

	task, err := app.storage.AddTask("write report")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	state, _ := loadState(t, app.storage)
	app.setState(state)

	app.Update(keyMsg("x"))
	if app.confirmArch == nil {
		t.Fatal("expected archive confirmation overlay")
	}
	if !strings.Contains(app.View(), "Archive task?") {
		t.Error("overlay view missing title")
	}

	// Cancel leaves the task alone.
	app.Update(keyMsg("n"))
	if app.confirmArch != nil {
		t.Fatal("overlay not dismissed on cancel")
	}
	state, _ = loadState(t, app.storage)
	if got := state.TaskByID(task.ID); got == nil || got.Archived() {
		t.Error("task was archived despite cancel")
	}

	// Confirm archives it.
	app.Update(keyMsg("x"))
	_, cmd := app.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("expected archive command on confirm")
	}
	msg := cmd()
	archived, ok := msg.(taskArchivedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if archived.err != nil {
		t.Fatalf("archive failed: %v", archived.err)
	}
	state, _ = loadState(t, app.storage)
	if got := state.TaskByID(task.ID); got == nil || !got.Archived() {
		t.Error("task not archived after confirm")
	}
}

// TestApp_ArchiveWithoutConfirmation verifies direct archiving when the
// overlay is disabled.
func TestApp_ArchiveWithoutConfirmation(t *testing.T) {
	store := createTestStorage(t)
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmArchive:        false,
		NarrowLayoutThreshold: 80,
	}
	app := NewApp(store, createTestStyles(), cfg)

	if _, err := store.AddTask("quick"); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	state, _ := loadState(t, store)
	app.setState(state)

	_, cmd := app.Update(keyMsg("x"))
	if app.confirmArch != nil {
		t.Fatal("unexpected confirmation overlay")
	}
	if cmd == nil {
		t.Fatal("expected archive command")
	}
	if msg, ok := cmd().(taskArchivedMsg); !ok || msg.err != nil {
		t.Fatalf("archive command failed: %+v", msg)
	}
}

// TestApp_ToggleOnHistoricalDayRejected verifies time can only be tracked on
// the current day.
func TestApp_ToggleOnHistoricalDayRejected(t *testing.T) {
	app := newTestApp(t)

	if _, err := app.storage.AddTask("old work"); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	state, _ := loadState(t, app.storage)
	app.setState(state)

	app.Update(keyMsg("h"))

	_, cmd := app.Update(keyMsg(" "))
	if cmd == nil {
		t.Fatal("expected a command carrying the rejection")
	}
	msg, ok := cmd().(taskToggledMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err == nil {
		t.Fatal("toggle on a past day should be rejected")
	}

	// Routing the result sets an error status.
	app.Update(msg)
	if !app.statusErr {
		t.Error("expected error status after rejected toggle")
	}
}

// TestApp_StatusExpiry verifies transient status messages clear on tick.
func TestApp_StatusExpiry(t *testing.T) {
	app := newTestApp(t)

	app.SetStatus("saved", false)
	if app.status == "" {
		t.Fatal("status not set")
	}

	app.statusUntil = time.Now().Add(-time.Second)
	app.Update(tickMsg(time.Now()))

	if app.status != "" {
		t.Errorf("status = %q, want empty after expiry", app.status)
	}
}

// TestApp_GoodbyeShowsDayTotal verifies the exit screen.
func TestApp_GoodbyeShowsDayTotal(t *testing.T) {
	setupTest(t)
	app := newTestApp(t)

	app.quitting = true
	view := app.View()
	if !strings.Contains(view, "See you later!") {
		t.Error("missing goodbye message")
	}
}
