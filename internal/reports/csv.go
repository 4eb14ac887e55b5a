package reports

import (
	"fmt"
	"strings"
	"time"

	"toggler/internal/tracker"
)

// clockLayout renders wall-clock times in 12-hour form, e.g. "02:05:09 PM".
const clockLayout = "03:04:05 PM"

// FormatDailyCSV renders a daily report as CSV. Task names are always
// double-quoted (with embedded quotes doubled) so names containing commas
// survive; an open interval shows "-" in the end column.
func FormatDailyCSV(report *DailyReport) string {
	var b strings.Builder
	b.WriteString("Start Time,End Time,Task,Duration\n")

	for _, row := range report.Rows {
		end := "-"
		if row.EndTime != nil {
			end = formatClock(*row.EndTime)
		}
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s\n",
			formatClock(row.StartTime),
			end,
			quoteName(row.TaskName),
			tracker.FormatTime(row.DurationMs),
		))
	}
	return b.String()
}

func formatClock(ms int64) string {
	return time.UnixMilli(ms).Format(clockLayout)
}

func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
