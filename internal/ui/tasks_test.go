package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"toggler/internal/timeutil"
)

func TestTaskPaneView_Empty(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	if !strings.Contains(pane.View(), "No tasks yet") {
		t.Error("empty pane missing placeholder text")
	}
}

func TestTaskPaneView_WithTasks(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("deep work")
	store.AddTask("email")

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	view := pane.View()
	if !strings.Contains(view, "deep work") {
		t.Error("missing task name")
	}
	if !strings.Contains(view, "email") {
		t.Error("missing task name")
	}
	if !strings.Contains(view, "Total:") {
		t.Error("missing day total line")
	}
}

func TestTaskPaneView_ActiveMarker(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, err := store.AddTask("focus")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if err := store.ToggleTask(task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	if !strings.Contains(pane.View(), "▶") {
		t.Error("running task not marked with ▶")
	}
}

func TestTaskPane_Navigation(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("one")
	store.AddTask("two")
	store.AddTask("three")

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	if pane.cursor != 0 {
		t.Errorf("initial cursor = %d, want 0", pane.cursor)
	}

	pane.Update(keyMsg("j"))
	if pane.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", pane.cursor)
	}

	pane.Update(keyMsg("G"))
	if pane.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", pane.cursor)
	}

	pane.Update(keyMsg("j"))
	if pane.cursor != 2 {
		t.Errorf("cursor stuck at bottom = %d, want 2", pane.cursor)
	}

	pane.Update(keyMsg("g"))
	if pane.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", pane.cursor)
	}
}

func TestTaskPane_AddFlow(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	pane.Update(keyMsg("a"))
	if !pane.IsAdding() {
		t.Fatal("pane not in add mode after 'a'")
	}

	for _, r := range "reading" {
		pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected add command on enter")
	}
	msg, ok := cmd().(taskAddedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("add failed: %v", msg.err)
	}
	if msg.task.Name != "reading" {
		t.Errorf("task name = %q, want %q", msg.task.Name, "reading")
	}
	if pane.IsAdding() {
		t.Error("pane still in add mode after save")
	}
}

func TestTaskPane_AddCancel(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)

	pane.Update(keyMsg("a"))
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("cancel should not produce a command")
	}
	if pane.IsAdding() {
		t.Error("pane still in add mode after esc")
	}
}

func TestTaskPane_ToggleToday(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, err := store.AddTask("focus")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	cmd := pane.Update(keyMsg(" "))
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	msg, ok := cmd().(taskToggledMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("toggle failed: %v", msg.err)
	}
	if !msg.started {
		t.Error("expected session start")
	}

	state, _ = loadState(t, store)
	if state.ActiveTaskID() != task.ID {
		t.Error("session not running after toggle")
	}
}

func TestTaskPane_ToggleHistoricalDayRejected(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	if _, err := store.AddTask("focus"); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, timeutil.AddDays(today, -1), today)

	// The task was created today, so yesterday's view is empty.
	if len(pane.tasks) != 0 {
		t.Fatalf("visible tasks on yesterday = %d, want 0", len(pane.tasks))
	}
}

func TestTaskPane_Stats(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	tasks, totalMs := pane.Stats()
	if tasks != 0 || totalMs != 0 {
		t.Errorf("Stats() = (%d, %d), want (0, 0)", tasks, totalMs)
	}

	store.AddTask("one")
	store.AddTask("two")

	state, _ = loadState(t, store)
	pane.SetState(state, today, today)

	tasks, _ = pane.Stats()
	if tasks != 2 {
		t.Errorf("Stats() tasks = %d, want 2", tasks)
	}
}

func TestTaskPane_MouseWheel(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("one")
	store.AddTask("two")

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if pane.cursor != 1 {
		t.Errorf("cursor after wheel down = %d, want 1", pane.cursor)
	}

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if pane.cursor != 0 {
		t.Errorf("cursor after wheel up = %d, want 0", pane.cursor)
	}
}

func TestTaskPane_TotalsGrowWhileRunning(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	now := time.Now()
	store.SetNowFunc(func() time.Time { return now.Add(-30 * time.Minute) })

	task, err := store.AddTask("focus")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if err := store.ToggleTask(task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	store.SetNowFunc(time.Now)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	state, today := loadState(t, store)
	pane.SetState(state, today, today)

	// Half an hour of live time should show up in the rendered total.
	if view := pane.View(); !strings.Contains(view, "30m") {
		t.Errorf("expected ~30m live total in view:\n%s", view)
	}
}
