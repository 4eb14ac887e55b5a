package reports

import (
	"fmt"
	"sort"
	"time"

	"toggler/internal/storage"
	"toggler/internal/timeutil"
	"toggler/internal/tracker"
)

// unknownTaskName stands in for entries whose task id no longer resolves.
const unknownTaskName = "Unknown task"

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Storage
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{store: store}
}

// GenerateDaily builds the report for a day key. The state is reconciled
// first so a session left running overnight lands in the right ledgers
// before export.
func (g *Generator) GenerateDaily(day string) (*DailyReport, error) {
	if _, err := timeutil.ParseDayKey(day); err != nil {
		return nil, err
	}

	state, err := g.store.LoadReconciled()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return BuildDaily(state, day, g.store.Now()), nil
}

// BuildDaily assembles the report from an already-loaded state.
func BuildDaily(state *tracker.AppState, day string, generatedAt time.Time) *DailyReport {
	entries := append([]tracker.TimeEntry(nil), state.DayEntries(day)...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})

	report := &DailyReport{
		Date:        day,
		Rows:        make([]Row, 0, len(entries)),
		GeneratedAt: generatedAt,
	}
	for _, e := range entries {
		name := unknownTaskName
		if task := state.TaskByID(e.TaskID); task != nil {
			name = task.Name
		}
		end := e.EndTime
		report.Rows = append(report.Rows, Row{
			TaskName:   name,
			StartTime:  e.StartTime,
			EndTime:    &end,
			DurationMs: e.Duration,
		})
		report.TotalMs += e.Duration
	}
	return report
}
