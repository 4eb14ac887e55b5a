// Package ui provides terminal user interface components for the toggler app.
// This file contains the main App model which coordinates the task and
// summary panes and routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"toggler/internal/config"
	"toggler/internal/notify"
	"toggler/internal/storage"
	"toggler/internal/timeutil"
	"toggler/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneSummary
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows both panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmArchive        bool
	NarrowLayoutThreshold int
	Notifications         config.NotificationConfig
}

// App is the main application model that coordinates the panes.
type App struct {
	storage     *storage.Storage
	styles      *Styles
	config      *AppConfig
	taskPane    *TaskPane
	summaryPane *SummaryPane
	helpOverlay *HelpOverlay
	notifier    notify.Notifier
	milestones  *notify.MilestoneTracker
	confirmArch *confirmArchiveState
	state       *tracker.AppState
	viewedDay   string
	today       string
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection (x coordinates)
	tasksPaneStart   int
	tasksPaneEnd     int
	summaryPaneStart int
	summaryPaneEnd   int
	contentTop       int // Y coordinate where content starts
}

type confirmArchiveState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, styles *Styles, cfg *AppConfig) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmArchive:        true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	taskPane := NewTaskPaneWithKeys(store, styles, cfg.Keys)
	summaryPane := NewSummaryPane(store, styles)
	helpOverlay := NewHelpOverlay(styles)

	today := timeutil.Today(time.Now())

	app := &App{
		storage:     store,
		styles:      styles,
		config:      cfg,
		taskPane:    taskPane,
		summaryPane: summaryPane,
		helpOverlay: helpOverlay,
		notifier:    notify.New(),
		milestones:  notify.NewMilestoneTracker(),
		viewedDay:   today,
		today:       today,
		activePane:  PaneTasks,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	// Set initial focus
	taskPane.SetFocused(true)
	summaryPane.SetFocused(false)

	return app
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads the state asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadStateCmd(a.storage),
	)
}

// setState distributes a freshly loaded state to both panes.
func (a *App) setState(state *tracker.AppState) {
	a.state = state
	a.taskPane.SetState(state, a.viewedDay, a.today)
	a.summaryPane.SetState(state, a.viewedDay, a.today)
}

// setViewedDay moves the viewed day, capped at today, and refreshes panes.
func (a *App) setViewedDay(day string) {
	if day > a.today {
		day = a.today
	}
	if _, err := timeutil.ParseDayKey(day); err != nil {
		return
	}
	a.viewedDay = day
	a.taskPane.SetState(a.state, a.viewedDay, a.today)
	a.summaryPane.SetState(a.state, a.viewedDay, a.today)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Route async messages first so storage operation results are processed
	// regardless of which pane is active.
	switch msg := msg.(type) {
	case stateLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Load: "+msg.err.Error(), true)
		}
		a.setState(msg.state)
		return a, nil

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
			return a, nil
		}
		if msg.task != nil {
			a.SetStatus("Added "+msg.task.Name, false)
		}
		return a, loadStateCmd(a.storage)

	case taskToggledMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), true)
			return a, nil
		}
		a.milestones.Reset()
		if msg.started {
			a.SetStatus("Tracking "+msg.name, false)
		} else {
			a.SetStatus("Stopped "+msg.name, false)
		}
		return a, loadStateCmd(a.storage)

	case taskArchivedMsg:
		if msg.err != nil {
			a.SetStatus("Archive: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Archived "+msg.name, false)
		return a, loadStateCmd(a.storage)

	case reconciledMsg:
		if msg.err != nil {
			a.SetStatus("Rollover: "+msg.err.Error(), true)
		}
		newToday := timeutil.Today(time.Now())
		if a.viewedDay == a.today && a.today != newToday {
			// Follow the calendar when the user was viewing today.
			a.viewedDay = newToday
		}
		a.today = newToday
		return a, loadStateCmd(a.storage)

	case dayExportedMsg:
		if msg.err != nil {
			a.SetStatus("Export: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Exported "+msg.day+" to "+msg.path, false)
		}
		return a, nil

	case notifiedMsg:
		if msg.err != nil {
			a.SetStatus("Notify: "+msg.err.Error(), true)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.confirmArch != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmArch.cmd
				a.confirmArch = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmArch = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		if !a.taskPane.IsAdding() {
			// Archiving goes through a confirmation overlay when enabled.
			if a.activePane == PaneTasks && key.Matches(msg, a.taskPane.keys.Archive) {
				task := a.taskPane.SelectedTask()
				if task == nil {
					a.SetStatus("No task selected", true)
					return a, nil
				}
				if task.Archived() {
					a.SetStatus("Already archived", true)
					return a, nil
				}
				if a.config.ConfirmArchive {
					a.confirmArch = &confirmArchiveState{
						title: "Archive task?",
						body:  truncateText(task.Name, 60),
						cmd:   archiveTaskCmd(a.storage, task.ID, task.Name),
					}
					return a, nil
				}
				return a, archiveTaskCmd(a.storage, task.ID, task.Name)
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.PrevDay):
				a.setViewedDay(timeutil.AddDays(a.viewedDay, -1))
				return a, nil

			case key.Matches(msg, a.keys.NextDay):
				a.setViewedDay(timeutil.AddDays(a.viewedDay, 1))
				return a, nil

			case key.Matches(msg, a.keys.Today):
				a.setViewedDay(a.today)
				return a, nil

			case key.Matches(msg, a.keys.Export):
				return a, exportDayCmd(a.storage, a.viewedDay)
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		if a.confirmArch != nil {
			if msg.Action == tea.MouseActionPress {
				a.confirmArch = nil
				a.SetStatus("Canceled", false)
			}
			return a, nil
		}

		if a.showHelp {
			// Any click closes help
			if msg.Action == tea.MouseActionPress {
				a.showHelp = false
			}
			return a, nil
		}

		switch msg.Action {
		case tea.MouseActionPress:
			// In narrow mode, check for tab bar clicks
			if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
				if msg.X < a.width/2 {
					a.setActivePane(PaneTasks)
				} else {
					a.setActivePane(PaneSummary)
				}
				return a, nil
			}

			// Determine which pane was clicked (in wide mode)
			clickedPane := a.paneAtPosition(msg.X)
			if clickedPane >= 0 && clickedPane != a.activePane {
				a.setActivePane(clickedPane)
			}

			// Forward click to active pane with adjusted coordinates
			if msg.Y >= a.contentTop {
				localMsg := msg
				localMsg.Y = msg.Y - a.contentTop
				if a.layoutMode == LayoutWide && a.activePane == PaneSummary {
					localMsg.X = msg.X - a.summaryPaneStart
				}

				switch a.activePane {
				case PaneTasks:
					return a, a.taskPane.Update(localMsg)
				case PaneSummary:
					return a, a.summaryPane.Update(localMsg)
				}
			}
		}

		// Handle scroll wheel
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			localMsg := msg
			localMsg.Y = msg.Y - a.contentTop

			switch a.activePane {
			case PaneTasks:
				return a, a.taskPane.Update(localMsg)
			case PaneSummary:
				return a, a.summaryPane.Update(localMsg)
			}
		}

		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}

		cmds = append(cmds, tickCmd())

		// Midnight passed: roll the ledger forward.
		if timeutil.Today(time.Now()) != a.today {
			cmds = append(cmds, reconcileCmd(a.storage))
		}

		cmds = append(cmds, a.milestoneCmds()...)

		return a, tea.Batch(cmds...)
	}

	// Forward to active pane (only if help is not shown)
	if !a.showHelp {
		switch a.activePane {
		case PaneTasks:
			if cmd := a.taskPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneSummary:
			if cmd := a.summaryPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// milestoneCmds returns notification commands for session milestones that
// just became due.
func (a *App) milestoneCmds() []tea.Cmd {
	if !a.config.Notifications.Enabled || a.state == nil {
		return nil
	}
	_, sess := a.state.ActiveSession()
	if sess == nil {
		return nil
	}
	elapsed := time.Duration(time.Now().UnixMilli()-sess.StartedAt) * time.Millisecond
	due := a.milestones.Due(elapsed, a.config.Notifications.SessionMilestones)
	if len(due) == 0 {
		return nil
	}

	name := "Unknown task"
	if task := a.state.TaskByID(sess.TaskID); task != nil {
		name = task.Name
	}

	var cmds []tea.Cmd
	for _, minutes := range due {
		message := fmt.Sprintf("%s has been running for %d minutes", name, minutes)
		cmds = append(cmds, notifyCmd(a.notifier, "toggler", message, a.config.Notifications.Sound))
	}
	return cmds
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	if a.activePane == PaneTasks {
		a.setActivePane(PaneSummary)
	} else {
		a.setActivePane(PaneTasks)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.taskPane.SetFocused(pane == PaneTasks)
	a.summaryPane.SetFocused(pane == PaneSummary)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		// In narrow mode, return the active pane
		return a.activePane
	}

	if x >= a.tasksPaneStart && x < a.tasksPaneEnd {
		return PaneTasks
	}
	if x >= a.summaryPaneStart && x < a.summaryPaneEnd {
		return PaneSummary
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	// Determine layout mode based on configured threshold
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		// In narrow mode, leave room for tab bar (1 line)
		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.taskPane.SetSize(paneWidth, narrowHeight)
		a.summaryPane.SetSize(paneWidth, narrowHeight)

		// In narrow mode, both panes occupy the same space
		a.tasksPaneStart = 0
		a.tasksPaneEnd = a.width
		a.summaryPaneStart = 0
		a.summaryPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: two panes side-by-side
		a.layoutMode = LayoutWide

		tasksWidth := (totalWidth * 45) / 100
		if tasksWidth > 50 {
			tasksWidth = 50
		}
		summaryWidth := totalWidth - tasksWidth - 1

		a.taskPane.SetSize(tasksWidth, contentHeight)
		a.summaryPane.SetSize(summaryWidth, contentHeight)

		a.tasksPaneStart = 0
		a.tasksPaneEnd = tasksWidth
		a.summaryPaneStart = tasksWidth + 1
		a.summaryPaneEnd = a.summaryPaneStart + summaryWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmArch != nil {
		return a.renderConfirmArchive()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	// Main content - switch based on layout mode
	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	// Help bar
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirmArchive() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmArch.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmArch.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] archive    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders both panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.taskPane.View(), " ", a.summaryPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	// Tab bar at top
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	// Only render the active pane
	switch a.activePane {
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	case PaneSummary:
		b.WriteString(a.summaryPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneSummary, "Summary"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	// Center the tabs
	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with the day's tracked time.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	total := tracker.DayTotal(a.state, a.today, time.Now())
	if total > 0 {
		b.WriteString(fmt.Sprintf("  Tracked today: %s\n", tracker.FormatTime(total)))
		b.WriteString("\n")
	}

	return b.String()
}

// viewedDayLabel formats the viewed day for the title bar.
func (a *App) viewedDayLabel() string {
	day, err := timeutil.ParseDayKey(a.viewedDay)
	if err != nil {
		return a.viewedDay
	}
	label := day.Format("Mon, Jan 2")
	if a.viewedDay == a.today {
		label += " (today)"
	}
	return label
}

// renderTitleBar creates the top title bar with the viewed day and the
// running session.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" toggler ")

	dayLabel := a.styles.StatValueStyle.Render(a.viewedDayLabel())

	// Session status indicator
	var sessionStatus string
	if a.state != nil {
		if _, sess := a.state.ActiveSession(); sess != nil {
			name := "Unknown task"
			if task := a.state.TaskByID(sess.TaskID); task != nil {
				name = task.Name
			}
			name = truncateText(name, 12)
			elapsed := tracker.FormatTime(time.Now().UnixMilli() - sess.StartedAt)
			sessionStatus = a.styles.SessionRunningStyle.Render(fmt.Sprintf("▶ %s %s", name, elapsed))
		}
	}

	// Current time
	clock := a.styles.DateStyle.Render(time.Now().Format("15:04"))

	// Calculate spacing
	usedWidth := lipgloss.Width(title) + lipgloss.Width(dayLabel) + lipgloss.Width(sessionStatus) + lipgloss.Width(clock)
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	var parts []string
	parts = append(parts, title, "  ", dayLabel, leftSpacer)
	if sessionStatus != "" {
		parts = append(parts, sessionStatus)
	}
	parts = append(parts, rightSpacer, clock)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.taskPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	// Normal mode help based on active pane
	switch a.activePane {
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"space", "start/stop",
			"x", "archive",
			"h/l", "day",
			"e", "export",
			"?", "help",
		)
	case PaneSummary:
		return a.styles.RenderHelp(
			"j/k", "scroll",
			"h/l", "day",
			"t", "today",
			"e", "export",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given storage backend, styles, and config.
func Run(store *storage.Storage, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
