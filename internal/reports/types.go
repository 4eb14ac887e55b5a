// Package reports turns one day's ledger into exportable summaries.
package reports

import (
	"time"
)

// DailyReport is the export view of a single day: its entries in
// chronological order plus the day total.
type DailyReport struct {
	Date        string    `json:"date"`
	Rows        []Row     `json:"rows"`
	TotalMs     int64     `json:"total_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Row is one time entry resolved against the task registry. EndTime is nil
// for an interval that has not finished.
type Row struct {
	TaskName   string `json:"task"`
	StartTime  int64  `json:"start_time"`
	EndTime    *int64 `json:"end_time,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}
