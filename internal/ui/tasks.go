// Package ui provides terminal user interface components for the toggler app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"toggler/internal/config"
	"toggler/internal/storage"
	"toggler/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TaskPane handles the task list display and interactions.
type TaskPane struct {
	state     *tracker.AppState
	tasks     []tracker.Task
	viewedDay string
	today     string
	cursor    int
	focused   bool
	width     int
	height    int
	adding    bool
	input     textinput.Model
	storage   *storage.Storage
	styles    *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(store *storage.Storage, styles *Styles) *TaskPane {
	return NewTaskPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewTaskPaneWithKeys creates a new task pane with custom key bindings.
func NewTaskPaneWithKeys(store *storage.Storage, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 100
	ti.Width = 40

	return &TaskPane{
		tasks:     []tracker.Task{},
		cursor:    0,
		focused:   true,
		input:     ti,
		storage:   store,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// LoadStateCmd returns a command that loads state asynchronously.
func (p *TaskPane) LoadStateCmd() tea.Cmd {
	return loadStateCmd(p.storage)
}

// SetState replaces the pane's view of the world and rebuilds the visible
// task list for the viewed day.
func (p *TaskPane) SetState(state *tracker.AppState, viewedDay, today string) {
	p.state = state
	p.viewedDay = viewedDay
	p.today = today
	if state == nil {
		p.tasks = nil
		p.cursor = 0
		return
	}
	p.tasks = tracker.VisibleOn(state, viewedDay)
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add mode.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// viewingToday reports whether the pane shows the current day.
func (p *TaskPane) viewingToday() bool {
	return p.viewedDay == p.today
}

// SelectedTask returns the task under the cursor, or nil.
func (p *TaskPane) SelectedTask() *tracker.Task {
	if p.cursor < 0 || p.cursor >= len(p.tasks) {
		return nil
	}
	return &p.tasks[p.cursor]
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// If we're adding a task, handle input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				name := strings.TrimSpace(p.input.Value())
				p.adding = false
				p.input.Reset()
				if name != "" {
					return addTaskCmd(p.storage, name)
				}
				return nil

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.tasks) > 0 {
				p.cursor = len(p.tasks) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			return p.toggleSelected()
		}
	}

	return nil
}

// toggleSelected starts or stops the session for the task under the cursor.
// Toggling is only allowed while viewing the current day.
func (p *TaskPane) toggleSelected() tea.Cmd {
	task := p.SelectedTask()
	if task == nil {
		return nil
	}
	if !p.viewingToday() {
		return func() tea.Msg {
			return taskToggledMsg{id: task.ID, name: task.Name, err: fmt.Errorf("can only track time on today")}
		}
	}
	return toggleTaskCmd(p.storage, task.ID, task.Name)
}

// handleMouse processes mouse events for the task pane.
func (p *TaskPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.tasks) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) = row 2
	const headerRows = 2

	// Mirror the view windowing logic so clicks map to the visible slice.
	maxTasks := p.height - 6
	if maxTasks < 3 {
		maxTasks = 5
	}
	startIdx := 0
	if p.cursor >= maxTasks {
		startIdx = p.cursor - maxTasks + 1
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.tasks)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		taskRow := msg.Y - headerRows
		if taskRow < 0 || taskRow >= maxTasks {
			return nil
		}

		taskIdx := startIdx + taskRow
		if taskIdx < 0 || taskIdx >= len(p.tasks) {
			return nil
		}

		p.cursor = taskIdx

		// A click on the dot/marker area toggles the task.
		if msg.X < 4 {
			return p.toggleSelected()
		}
	}

	return nil
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("⏱ TASKS")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	activeID := ""
	if p.state != nil {
		activeID = p.state.ActiveTaskID()
	}

	if len(p.tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxTasks := p.height - 6
		if maxTasks < 3 {
			maxTasks = 5
		}

		startIdx := 0
		if p.cursor >= maxTasks {
			startIdx = p.cursor - maxTasks + 1
		}

		now := time.Now()

		for i, task := range p.tasks {
			if i < startIdx || i >= startIdx+maxTasks {
				continue
			}

			isActive := task.ID == activeID && p.viewingToday()

			// Marker: ▶ for the running task, colored dot otherwise
			var marker string
			if isActive {
				marker = p.styles.TaskActiveMarker
			} else {
				marker = p.styles.TaskDot(task.Color)
			}

			// Per-task total for the viewed day, live for the running task
			total := tracker.FormatTime(tracker.TotalTime(p.state, task.ID, p.viewedDay, now))
			totalWidth := runewidth.StringWidth(total)

			// Layout: [space][marker][space][name][padding][total]
			fixedWidth := 3 + totalWidth + 1
			availableNameWidth := p.width - 4 - fixedWidth
			if availableNameWidth < 5 {
				availableNameWidth = 5
			}

			name := runewidth.Truncate(task.Name, availableNameWidth, "..")
			nameWidth := runewidth.StringWidth(name)
			padding := availableNameWidth - nameWidth
			if padding < 1 {
				padding = 1
			}

			var totalStr string
			if isActive {
				totalStr = p.styles.SessionRunningStyle.Render(total)
			} else {
				totalStr = p.styles.StatLabelStyle.Render(total)
			}

			var line string
			if i == p.cursor && p.focused && !p.adding {
				textPart := fmt.Sprintf("%s %s%s%s", marker, name, strings.Repeat(" ", padding), totalStr)
				line = p.styles.TaskSelectedStyle.Render(" " + textPart + " ")
			} else {
				styledName := p.styles.TaskNameStyle.Render(name)
				line = fmt.Sprintf(" %s %s%s%s", marker, styledName, strings.Repeat(" ", padding), totalStr)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Day total
		b.WriteString("\n")
		dayTotal := tracker.FormatTime(tracker.DayTotal(p.state, p.viewedDay, now))
		stats := p.styles.StatLabelStyle.Render("Total: ") + p.styles.TotalStyle.Render(dayTotal)
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	// Input field when adding
	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// Stats returns the number of visible tasks and the viewed day's tracked time.
func (p *TaskPane) Stats() (tasks int, totalMs int64) {
	return len(p.tasks), tracker.DayTotal(p.state, p.viewedDay, time.Now())
}

// truncateText shortens text to fit within maxLen, appending ellipsis.
func truncateText(text string, maxLen int) string {
	return runewidth.Truncate(text, maxLen, "…")
}
