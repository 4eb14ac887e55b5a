// Package ui provides terminal user interface components for the toggler app.
// This file contains the summary pane, which lists the viewed day's time
// entries in chronological order.
package ui

import (
	"fmt"
	"strings"
	"time"

	"toggler/internal/reports"
	"toggler/internal/storage"
	"toggler/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// SummaryPane shows the time entries recorded on the viewed day.
type SummaryPane struct {
	state     *tracker.AppState
	report    *reports.DailyReport
	viewedDay string
	today     string
	scroll    int
	focused   bool
	width     int
	height    int
	storage   *storage.Storage
	styles    *Styles
}

// NewSummaryPane creates a new summary pane.
func NewSummaryPane(store *storage.Storage, styles *Styles) *SummaryPane {
	return &SummaryPane{
		storage: store,
		styles:  styles,
	}
}

// SetState rebuilds the pane's report from a fresh state blob.
func (p *SummaryPane) SetState(state *tracker.AppState, viewedDay, today string) {
	p.state = state
	p.viewedDay = viewedDay
	p.today = today
	p.scroll = 0
	if state == nil {
		p.report = nil
		return
	}
	p.report = reports.BuildDaily(state, viewedDay, time.Now())
}

// SetSize sets the pane dimensions.
func (p *SummaryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *SummaryPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *SummaryPane) IsFocused() bool {
	return p.focused
}

// rowCount returns how many rows the pane has to show, including the live
// session row.
func (p *SummaryPane) rowCount() int {
	n := 0
	if p.report != nil {
		n = len(p.report.Rows)
	}
	if p.liveRow() != nil {
		n++
	}
	return n
}

// liveRow builds a synthetic row for the running session when it belongs to
// the viewed day.
func (p *SummaryPane) liveRow() *reports.Row {
	if p.state == nil || p.viewedDay != p.today {
		return nil
	}
	day, sess := p.state.ActiveSession()
	if sess == nil || day != p.today {
		return nil
	}
	name := "Unknown task"
	if task := p.state.TaskByID(sess.TaskID); task != nil {
		name = task.Name
	}
	elapsed := time.Now().UnixMilli() - sess.StartedAt
	if elapsed < 0 {
		elapsed = 0
	}
	return &reports.Row{
		TaskName:   name,
		StartTime:  sess.StartedAt,
		DurationMs: elapsed,
	}
}

// Update handles messages for the summary pane.
func (p *SummaryPane) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	maxVisible := p.visibleRows()

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.scroll = max(p.scroll-1, 0)
		case tea.MouseButtonWheelDown:
			p.scroll = min(p.scroll+1, max(0, p.rowCount()-maxVisible))
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			p.scroll = min(p.scroll+1, max(0, p.rowCount()-maxVisible))
		case "k", "up":
			p.scroll = max(p.scroll-1, 0)
		case "g":
			p.scroll = 0
		case "G":
			p.scroll = max(0, p.rowCount()-maxVisible)
		}
	}

	return nil
}

// visibleRows returns how many entry rows fit in the pane.
func (p *SummaryPane) visibleRows() int {
	rows := p.height - 6
	if rows < 3 {
		rows = 5
	}
	return rows
}

// View renders the summary pane.
func (p *SummaryPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("☰ SUMMARY")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	rows := p.collectRows()

	if len(rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Nothing tracked on this day."))
		b.WriteString("\n")
	} else {
		maxVisible := p.visibleRows()
		start := p.scroll
		if start > len(rows)-1 {
			start = max(0, len(rows)-1)
		}
		end := min(start+maxVisible, len(rows))

		var totalMs int64
		for _, row := range rows {
			totalMs += row.DurationMs
		}

		for _, row := range rows[start:end] {
			b.WriteString(p.renderRow(row))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		total := p.styles.StatLabelStyle.Render("Day total: ") + p.styles.TotalStyle.Render(tracker.FormatTime(totalMs))
		b.WriteString("  " + total)
		b.WriteString("\n")
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// collectRows returns completed entry rows plus the live session row.
func (p *SummaryPane) collectRows() []reports.Row {
	var rows []reports.Row
	if p.report != nil {
		rows = append(rows, p.report.Rows...)
	}
	if live := p.liveRow(); live != nil {
		rows = append(rows, *live)
	}
	return rows
}

// renderRow formats one entry line: start, end, task name and duration.
func (p *SummaryPane) renderRow(row reports.Row) string {
	start := time.UnixMilli(row.StartTime).Format("3:04 PM")

	var end string
	var endStyled string
	if row.EndTime != nil {
		end = time.UnixMilli(*row.EndTime).Format("3:04 PM")
		endStyled = p.styles.EntryTimeStyle.Render(end)
	} else {
		end = "now"
		endStyled = p.styles.EntryOpenStyle.Render(end)
	}

	duration := tracker.FormatTime(row.DurationMs)

	// Layout: [space][start]-[end][space][name][padding][duration]
	timesWidth := runewidth.StringWidth(start) + 1 + runewidth.StringWidth(end)
	durationWidth := runewidth.StringWidth(duration)
	nameWidth := p.width - 4 - timesWidth - durationWidth - 3
	if nameWidth < 5 {
		nameWidth = 5
	}

	name := runewidth.Truncate(row.TaskName, nameWidth, "..")
	padding := nameWidth - runewidth.StringWidth(name)
	if padding < 1 {
		padding = 1
	}

	return fmt.Sprintf(" %s-%s %s%s%s",
		p.styles.EntryTimeStyle.Render(start),
		endStyled,
		p.styles.TaskNameStyle.Render(name),
		strings.Repeat(" ", padding),
		p.styles.StatLabelStyle.Render(duration),
	)
}

// DayTotal returns the viewed day's total in milliseconds including live time.
func (p *SummaryPane) DayTotal() int64 {
	return tracker.DayTotal(p.state, p.viewedDay, time.Now())
}
